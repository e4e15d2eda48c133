// Package postgres implements the store interfaces on PostgreSQL using
// lib/pq and squirrel for query building.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lib/pq"

	"expensed/internal/core"
	"expensed/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Store struct {
	db *sql.DB
}

func New(url string) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) CreateAccount(ctx context.Context, a core.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	query, args, err := psql.Insert("accounts").
		Columns("id", "username", "email", "password_hash", "created_at").
		Values(a.ID, a.Username, a.Email, a.PasswordHash, a.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert account query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			switch pqErr.Constraint {
			case "accounts_username_key":
				return store.ErrDuplicateUsername
			case "accounts_email_key":
				return store.ErrDuplicateEmail
			}
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *Store) AccountByUsername(ctx context.Context, username string) (core.Account, error) {
	return s.accountBy(ctx, sq.Eq{"username": username})
}

func (s *Store) AccountByID(ctx context.Context, id string) (core.Account, error) {
	return s.accountBy(ctx, sq.Eq{"id": id})
}

func (s *Store) accountBy(ctx context.Context, cond sq.Eq) (core.Account, error) {
	query, args, err := psql.Select("id", "username", "email", "password_hash", "created_at").
		From("accounts").
		Where(cond).
		ToSql()
	if err != nil {
		return core.Account{}, fmt.Errorf("build select account query: %w", err)
	}

	var a core.Account
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Account{}, store.ErrNotFound
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("scan account: %w", err)
	}
	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]core.Account, error) {
	query, args, err := psql.Select("id", "username", "email", "password_hash", "created_at").
		From("accounts").
		OrderBy("username").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list accounts query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var out []core.Account
	for rows.Next() {
		var a core.Account
		if err := rows.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return out, nil
}

func (s *Store) Insert(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	query, args, err := psql.Insert("expenses").
		Columns("id", "owner_id", "description", "amount_cents", "category", "date", "time_of_day", "created_at").
		Values(e.ID, e.OwnerID, e.Description, e.Amount.Cents, e.Category, e.Date.Time, e.TimeOfDay, e.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert expense query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]core.Expense, error) {
	query, args, err := psql.Select("id", "owner_id", "description", "amount_cents", "category", "date", "time_of_day", "created_at").
		From("expenses").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("date DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list expenses query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	out := make([]core.Expense, 0)
	for rows.Next() {
		var (
			e    core.Expense
			date time.Time
		)
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Description, &e.Amount.Cents, &e.Category, &date, &e.TimeOfDay, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Date = core.DateOf(date)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

func (s *Store) DeleteIfOwned(ctx context.Context, id, ownerID string) error {
	query, args, err := psql.Delete("expenses").
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete expense query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}
