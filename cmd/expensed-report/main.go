package main

import (
	"context"
	"fmt"
	"os"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"expensed/internal/backend"
	"expensed/internal/cli"
	"expensed/internal/report"
)

func main() {
	fs := ff.NewFlagSet("expensed-report")
	var (
		backendType = fs.StringLong("backend", "sqlite", "Storage backend: 'sqlite', 'postgres', or 'bolt'")
		dbPath      = fs.StringLong("db", "./data/expensed.db", "Database file path (sqlite and bolt backends)")
		postgresURL = fs.StringLong("postgres-url", "", "PostgreSQL connection URL (postgres backend)")
		username    = fs.StringLong("user", "", "Report a single account instead of all of them")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("EXPENSED"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := cli.SetupLogger()

	st, err := backend.Open(logger, backend.Config{
		Type:         backend.Type(*backendType),
		SQLiteDBPath: *dbPath,
		PostgresURL:  *postgresURL,
		BoltPath:     *dbPath,
	})
	if err != nil {
		logger.Error("Failed to open storage backend", "error", err, "backend", *backendType)
		os.Exit(1)
	}
	defer st.Close()

	ctx := context.Background()
	if *username != "" {
		err = report.SingleAccount(ctx, os.Stdout, st, *username)
	} else {
		err = report.AllAccounts(ctx, os.Stdout, st)
	}
	if err != nil {
		logger.Error("Report failed", "error", err)
		os.Exit(1)
	}
}
