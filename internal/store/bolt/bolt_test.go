package bolt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"expensed/internal/store"
	"expensed/internal/store/storetest"
)

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := New(filepath.Join(t.TempDir(), "test.bolt"))
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}
