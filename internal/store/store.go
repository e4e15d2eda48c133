// Package store defines the persistence capability the rest of the
// application depends on. Backends implement it once each; callers never see
// backend-specific detail.
package store

import (
	"context"
	"errors"

	"expensed/internal/core"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already registered")
)

type (
	// AccountStore manages account records.
	AccountStore interface {
		// CreateAccount persists a new account. Returns ErrDuplicateUsername
		// or ErrDuplicateEmail when the unique fields collide.
		CreateAccount(ctx context.Context, a core.Account) error

		// AccountByUsername returns ErrNotFound when no such account exists.
		AccountByUsername(ctx context.Context, username string) (core.Account, error)

		// AccountByID returns ErrNotFound when no such account exists.
		AccountByID(ctx context.Context, id string) (core.Account, error)

		// ListAccounts returns every account ordered by username.
		ListAccounts(ctx context.Context) ([]core.Account, error)
	}

	// RecordStore manages expense records, always scoped to an owner.
	RecordStore interface {
		// Insert persists a new expense record.
		Insert(ctx context.Context, e core.Expense) error

		// ListByOwner returns the owner's full record set ordered by date
		// descending, then creation time descending.
		ListByOwner(ctx context.Context, ownerID string) ([]core.Expense, error)

		// DeleteIfOwned removes the record only when it belongs to ownerID.
		// A missing or foreign record is not an error.
		DeleteIfOwned(ctx context.Context, id, ownerID string) error
	}

	// Store is the full persistence surface a backend provides.
	Store interface {
		AccountStore
		RecordStore
		Close() error
	}
)
