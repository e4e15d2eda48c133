package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"expensed/internal/store"
	"expensed/internal/store/storetest"
)

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := New(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening an already migrated database must not fail.
	s, err = New(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
