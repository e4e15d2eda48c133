// Package storetest holds a conformance suite run against every Store
// implementation so the backends cannot drift apart on contract details.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensed/internal/core"
	"expensed/internal/store"
)

// Factory returns a fresh, empty Store for each subtest. Cleanup is
// registered by the factory itself (t.TempDir, t.Cleanup).
type Factory func(t *testing.T) store.Store

func account(username, email string) core.Account {
	return core.Account{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    time.Now().UTC(),
	}
}

func expense(ownerID, desc string, cents int64, date core.Date, createdAt time.Time) core.Expense {
	return core.Expense{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Description: desc,
		Amount:      core.Money{Cents: cents},
		Category:    "general",
		Date:        date,
		CreatedAt:   createdAt,
	}
}

// Run exercises the full Store contract against the given factory.
func Run(t *testing.T, factory Factory) {
	t.Run("accounts", func(t *testing.T) { testAccounts(t, factory) })
	t.Run("duplicate accounts", func(t *testing.T) { testDuplicateAccounts(t, factory) })
	t.Run("records round trip", func(t *testing.T) { testRecords(t, factory) })
	t.Run("records ordered", func(t *testing.T) { testRecordOrdering(t, factory) })
	t.Run("records isolated by owner", func(t *testing.T) { testOwnerIsolation(t, factory) })
	t.Run("delete if owned", func(t *testing.T) { testDeleteIfOwned(t, factory) })
}

func testAccounts(t *testing.T, factory Factory) {
	s := factory(t)
	ctx := context.Background()

	a := account("mario", "mario@example.com")
	require.NoError(t, s.CreateAccount(ctx, a))

	got, err := s.AccountByUsername(ctx, "mario")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.Email, got.Email)
	assert.Equal(t, a.PasswordHash, got.PasswordHash)

	got, err = s.AccountByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "mario", got.Username)

	_, err = s.AccountByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.AccountByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.CreateAccount(ctx, account("anna", "anna@example.com")))
	all, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "anna", all[0].Username)
	assert.Equal(t, "mario", all[1].Username)
}

func testDuplicateAccounts(t *testing.T, factory Factory) {
	s := factory(t)
	ctx := context.Background()

	require.NoError(t, s.CreateAccount(ctx, account("mario", "mario@example.com")))

	err := s.CreateAccount(ctx, account("mario", "other@example.com"))
	assert.ErrorIs(t, err, store.ErrDuplicateUsername)

	err = s.CreateAccount(ctx, account("luigi", "mario@example.com"))
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)
}

func testRecords(t *testing.T, factory Factory) {
	s := factory(t)
	ctx := context.Background()

	owner := account("mario", "mario@example.com")
	require.NoError(t, s.CreateAccount(ctx, owner))

	d := core.NewDate(2024, 3, 15)
	e := expense(owner.ID, "groceries", 2550, d, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))
	e.TimeOfDay = "10:30"
	require.NoError(t, s.Insert(ctx, e))

	got, err := s.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, e.ID, got[0].ID)
	assert.Equal(t, "groceries", got[0].Description)
	assert.Equal(t, int64(2550), got[0].Amount.Cents)
	assert.Equal(t, "general", got[0].Category)
	assert.Equal(t, "2024-03-15", got[0].Date.String())
	assert.Equal(t, "10:30", got[0].TimeOfDay)
}

func testRecordOrdering(t *testing.T, factory Factory) {
	s := factory(t)
	ctx := context.Background()

	owner := account("mario", "mario@example.com")
	require.NoError(t, s.CreateAccount(ctx, owner))

	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	older := expense(owner.ID, "older", 100, core.NewDate(2024, 3, 10), base)
	newerEarly := expense(owner.ID, "newer early", 200, core.NewDate(2024, 3, 14), base)
	newerLate := expense(owner.ID, "newer late", 300, core.NewDate(2024, 3, 14), base.Add(time.Hour))

	require.NoError(t, s.Insert(ctx, older))
	require.NoError(t, s.Insert(ctx, newerEarly))
	require.NoError(t, s.Insert(ctx, newerLate))

	got, err := s.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "newer late", got[0].Description)
	assert.Equal(t, "newer early", got[1].Description)
	assert.Equal(t, "older", got[2].Description)
}

func testOwnerIsolation(t *testing.T, factory Factory) {
	s := factory(t)
	ctx := context.Background()

	mario := account("mario", "mario@example.com")
	luigi := account("luigi", "luigi@example.com")
	require.NoError(t, s.CreateAccount(ctx, mario))
	require.NoError(t, s.CreateAccount(ctx, luigi))

	d := core.NewDate(2024, 3, 15)
	now := time.Now().UTC()
	require.NoError(t, s.Insert(ctx, expense(mario.ID, "mario's", 100, d, now)))
	require.NoError(t, s.Insert(ctx, expense(luigi.ID, "luigi's", 200, d, now)))

	got, err := s.ListByOwner(ctx, mario.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mario's", got[0].Description)

	got, err = s.ListByOwner(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func testDeleteIfOwned(t *testing.T, factory Factory) {
	s := factory(t)
	ctx := context.Background()

	mario := account("mario", "mario@example.com")
	luigi := account("luigi", "luigi@example.com")
	require.NoError(t, s.CreateAccount(ctx, mario))
	require.NoError(t, s.CreateAccount(ctx, luigi))

	d := core.NewDate(2024, 3, 15)
	now := time.Now().UTC()
	e := expense(mario.ID, "target", 100, d, now)
	require.NoError(t, s.Insert(ctx, e))

	// Foreign owner: silent no-op.
	require.NoError(t, s.DeleteIfOwned(ctx, e.ID, luigi.ID))
	got, err := s.ListByOwner(ctx, mario.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// Unknown id: silent no-op.
	require.NoError(t, s.DeleteIfOwned(ctx, uuid.NewString(), mario.ID))

	// Matching owner removes the record.
	require.NoError(t, s.DeleteIfOwned(ctx, e.ID, mario.ID))
	got, err = s.ListByOwner(ctx, mario.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Deleting again stays silent.
	require.NoError(t, s.DeleteIfOwned(ctx, e.ID, mario.ID))
}
