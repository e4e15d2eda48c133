// Package bolt implements the store interfaces on a bbolt file: one
// JSON document per account and per expense, no external server needed.
//
// Expenses are keyed "ownerID/expenseID" so a single cursor prefix scan
// yields all of one owner's records.
package bolt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"expensed/internal/core"
	"expensed/internal/store"
)

const (
	accountsBucket = "accounts"
	expensesBucket = "expenses"
)

type accountDoc struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

type expenseDoc struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	TimeOfDay   string    `json:"time_of_day"`
	CreatedAt   time.Time `json:"created_at"`
}

type Store struct {
	db *bbolt.DB
}

func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(accountsBucket)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(expensesBucket)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreateAccount(_ context.Context, a core.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(accountsBucket))

		var conflict error
		err := bucket.ForEach(func(_, v []byte) error {
			var doc accountDoc
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("unmarshal account: %w", err)
			}
			if doc.Username == a.Username {
				conflict = store.ErrDuplicateUsername
			} else if conflict == nil && doc.Email == a.Email {
				conflict = store.ErrDuplicateEmail
			}
			return nil
		})
		if err != nil {
			return err
		}
		if conflict != nil {
			return conflict
		}

		data, err := json.Marshal(accountDoc{
			ID:           a.ID,
			Username:     a.Username,
			Email:        a.Email,
			PasswordHash: a.PasswordHash,
			CreatedAt:    a.CreatedAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("marshal account: %w", err)
		}
		return bucket.Put([]byte(a.ID), data)
	})
}

func (s *Store) AccountByUsername(ctx context.Context, username string) (core.Account, error) {
	return s.findAccount(ctx, func(doc accountDoc) bool { return doc.Username == username })
}

func (s *Store) AccountByID(ctx context.Context, id string) (core.Account, error) {
	return s.findAccount(ctx, func(doc accountDoc) bool { return doc.ID == id })
}

func (s *Store) findAccount(_ context.Context, match func(accountDoc) bool) (core.Account, error) {
	var found *accountDoc
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(accountsBucket)).ForEach(func(_, v []byte) error {
			var doc accountDoc
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("unmarshal account: %w", err)
			}
			if found == nil && match(doc) {
				found = &doc
			}
			return nil
		})
	})
	if err != nil {
		return core.Account{}, err
	}
	if found == nil {
		return core.Account{}, store.ErrNotFound
	}
	return accountFromDoc(*found), nil
}

func (s *Store) ListAccounts(_ context.Context) ([]core.Account, error) {
	out := make([]core.Account, 0)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(accountsBucket)).ForEach(func(_, v []byte) error {
			var doc accountDoc
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("unmarshal account: %w", err)
			}
			out = append(out, accountFromDoc(doc))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func accountFromDoc(doc accountDoc) core.Account {
	return core.Account{
		ID:           doc.ID,
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}
}

func expenseKey(ownerID, id string) []byte {
	return []byte(ownerID + "/" + id)
}

func (s *Store) Insert(_ context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(expenseDoc{
			ID:          e.ID,
			OwnerID:     e.OwnerID,
			Description: e.Description,
			AmountCents: e.Amount.Cents,
			Category:    e.Category,
			Date:        e.Date.String(),
			TimeOfDay:   e.TimeOfDay,
			CreatedAt:   e.CreatedAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("marshal expense: %w", err)
		}
		return tx.Bucket([]byte(expensesBucket)).Put(expenseKey(e.OwnerID, e.ID), data)
	})
}

func (s *Store) ListByOwner(_ context.Context, ownerID string) ([]core.Expense, error) {
	out := make([]core.Expense, 0)
	prefix := []byte(ownerID + "/")
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(expensesBucket)).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var doc expenseDoc
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("unmarshal expense: %w", err)
			}
			d, err := core.ParseDate(doc.Date)
			if err != nil {
				return fmt.Errorf("parse stored date %q: %w", doc.Date, err)
			}
			out = append(out, core.Expense{
				ID:          doc.ID,
				OwnerID:     doc.OwnerID,
				Description: doc.Description,
				Amount:      core.Money{Cents: doc.AmountCents},
				Category:    doc.Category,
				Date:        d,
				TimeOfDay:   doc.TimeOfDay,
				CreatedAt:   doc.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) DeleteIfOwned(_ context.Context, id, ownerID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(expensesBucket)).Delete(expenseKey(ownerID, id))
	})
}
