// Package report renders terminal summaries of stored expenses, either
// for every account or for a single one.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"expensed/internal/core"
	"expensed/internal/store"
)

// AllAccounts writes a per-account expense listing followed by a grand
// total summary.
func AllAccounts(ctx context.Context, w io.Writer, s store.Store) error {
	fmt.Fprintln(w, "EXPENSES BY ACCOUNT")
	fmt.Fprintln(w, strings.Repeat("=", 80))

	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}
	if len(accounts) == 0 {
		fmt.Fprintln(w, "No accounts found.")
		return nil
	}

	var grandTotal core.Money
	var grandCount int

	for _, a := range accounts {
		fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 60))
		fmt.Fprintf(w, "ACCOUNT: %s (ID: %s)\n", a.Username, a.ID)
		fmt.Fprintf(w, "Email: %s\n", a.Email)
		fmt.Fprintln(w, strings.Repeat("=", 60))

		expenses, err := s.ListByOwner(ctx, a.ID)
		if err != nil {
			return fmt.Errorf("list expenses for %s: %w", a.Username, err)
		}
		if len(expenses) == 0 {
			fmt.Fprintln(w, "  No expenses found for this account.")
			continue
		}

		var total core.Money
		for _, e := range expenses {
			total.Cents += e.Amount.Cents
		}
		grandTotal.Cents += total.Cents
		grandCount += len(expenses)

		fmt.Fprintf(w, "  Total Expenses: %d items\n", len(expenses))
		fmt.Fprintf(w, "  Total Amount: $%.2f\n\n", total.Units())
		writeExpenseTable(w, expenses, 18)
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 80))
	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintf(w, "Total Accounts: %d\n", len(accounts))
	fmt.Fprintf(w, "Total Expenses: %d\n", grandCount)
	fmt.Fprintf(w, "Total Amount: $%.2f\n", grandTotal.Units())
	fmt.Fprintln(w, strings.Repeat("=", 80))

	return nil
}

// SingleAccount writes one account's expenses with a category
// breakdown. Unknown usernames report a message rather than an error.
func SingleAccount(ctx context.Context, w io.Writer, s store.Store, username string) error {
	a, err := s.AccountByUsername(ctx, username)
	if err == store.ErrNotFound {
		fmt.Fprintf(w, "Account '%s' not found.\n", username)
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup account: %w", err)
	}

	fmt.Fprintf(w, "EXPENSES FOR: %s\n", a.Username)
	fmt.Fprintf(w, "Email: %s\n", a.Email)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	expenses, err := s.ListByOwner(ctx, a.ID)
	if err != nil {
		return fmt.Errorf("list expenses: %w", err)
	}
	if len(expenses) == 0 {
		fmt.Fprintln(w, "No expenses found for this account.")
		return nil
	}

	var total core.Money
	categoryTotals := make(map[string]int64)
	var categoryOrder []string
	for _, e := range expenses {
		total.Cents += e.Amount.Cents
		if _, seen := categoryTotals[e.Category]; !seen {
			categoryOrder = append(categoryOrder, e.Category)
		}
		categoryTotals[e.Category] += e.Amount.Cents
	}

	fmt.Fprintf(w, "Total Expenses: %d items\n", len(expenses))
	fmt.Fprintf(w, "Total Amount: $%.2f\n", total.Units())

	fmt.Fprintln(w, "\nCategory Breakdown:")
	for _, category := range categoryOrder {
		fmt.Fprintf(w, "  %s: $%.2f\n", category, core.Money{Cents: categoryTotals[category]}.Units())
	}

	fmt.Fprintln(w, "\nDetailed Expenses:")
	writeExpenseTable(w, expenses, 23)

	return nil
}

func writeExpenseTable(w io.Writer, expenses []core.Expense, maxDesc int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDescription\tAmount\tCategory\tDate\tTime")
	for _, e := range expenses {
		timeOfDay := e.TimeOfDay
		if timeOfDay == "" {
			timeOfDay = "N/A"
		}
		fmt.Fprintf(tw, "%s\t%s\t$%.2f\t%s\t%s\t%s\n",
			shortID(e.ID), truncate(e.Description, maxDesc), e.Amount.Units(),
			e.Category, e.Date.String(), timeOfDay)
	}
	tw.Flush()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// shortID keeps listings readable with UUID keys.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
