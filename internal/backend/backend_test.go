package backend

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"memory needs nothing", Config{Type: MemoryBackend}, false},
		{"sqlite with path", Config{Type: SQLiteBackend, SQLiteDBPath: "/tmp/x.db"}, false},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"postgres with url", Config{Type: PostgresBackend, PostgresURL: "postgres://localhost/x"}, false},
		{"postgres without url", Config{Type: PostgresBackend}, true},
		{"bolt with path", Config{Type: BoltBackend, BoltPath: "/tmp/x.bolt"}, false},
		{"bolt without path", Config{Type: BoltBackend}, true},
		{"unknown type", Config{Type: Type("sheets")}, true},
		{"empty type", Config{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTypeIsValid(t *testing.T) {
	for _, typ := range Types() {
		assert.True(t, typ.IsValid(), typ.String())
	}
	assert.False(t, Type("").IsValid())
	assert.False(t, Type("mysql").IsValid())
}

func TestOpenMemory(t *testing.T) {
	s, err := Open(nil, Config{Type: MemoryBackend})
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestOpenSQLite(t *testing.T) {
	s, err := Open(nil, Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestOpenBolt(t *testing.T) {
	s, err := Open(nil, Config{
		Type:     BoltBackend,
		BoltPath: filepath.Join(t.TempDir(), "test.bolt"),
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	_, err := Open(nil, Config{Type: SQLiteBackend})
	assert.Error(t, err)
}
