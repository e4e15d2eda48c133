package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"expensed/internal/auth"
	"expensed/internal/core"
	"expensed/internal/store"
)

// ErrBadCredentials is returned for unknown usernames and wrong
// passwords alike, so callers cannot distinguish the two.
var ErrBadCredentials = errors.New("invalid username or password")

// AccountService handles registration and credential checks.
type AccountService struct {
	store store.AccountStore
}

func NewAccountService(s store.AccountStore) *AccountService {
	return &AccountService{store: s}
}

// Register creates a new account with a bcrypt-hashed password.
// Duplicate usernames and emails surface as store sentinel errors.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (core.Account, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return core.Account{}, err
	}

	a := core.Account{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}

	if err := s.store.CreateAccount(ctx, a); err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}

	slog.InfoContext(ctx, "Account registered", "id", a.ID, "username", a.Username)
	return a, nil
}

// ByID returns the account with the given ID.
func (s *AccountService) ByID(ctx context.Context, id string) (core.Account, error) {
	return s.store.AccountByID(ctx, id)
}

// Authenticate verifies the credentials and returns the account.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (core.Account, error) {
	a, err := s.store.AccountByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return core.Account{}, ErrBadCredentials
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("lookup account: %w", err)
	}

	if !auth.CheckPassword(a.PasswordHash, password) {
		return core.Account{}, ErrBadCredentials
	}
	return a, nil
}
