package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
	assert.False(t, CheckPassword("not-a-hash", "hunter2"))
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestSessionLifecycle(t *testing.T) {
	m := NewSessionManager(time.Hour)
	defer m.Stop()

	id := m.Start("account-1")
	require.NotEmpty(t, id)

	accountID, ok := m.Resolve(id)
	require.True(t, ok)
	assert.Equal(t, "account-1", accountID)

	m.End(id)
	_, ok = m.Resolve(id)
	assert.False(t, ok)

	// Ending twice is harmless.
	m.End(id)
}

func TestSessionUnknownID(t *testing.T) {
	m := NewSessionManager(time.Hour)
	defer m.Stop()

	_, ok := m.Resolve("no-such-session")
	assert.False(t, ok)
}

func TestSessionExpiry(t *testing.T) {
	m := NewSessionManager(time.Hour)
	defer m.Stop()

	current := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	id := m.Start("account-1")

	current = current.Add(30 * time.Minute)
	_, ok := m.Resolve(id)
	require.True(t, ok)

	// Resolving extended the session, so another 45 minutes keeps it alive.
	current = current.Add(45 * time.Minute)
	_, ok = m.Resolve(id)
	require.True(t, ok)

	current = current.Add(2 * time.Hour)
	_, ok = m.Resolve(id)
	assert.False(t, ok)
}

func TestSessionIDsAreUnique(t *testing.T) {
	m := NewSessionManager(time.Hour)
	defer m.Stop()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := m.Start("account-1")
		assert.False(t, seen[id])
		seen[id] = true
	}
}
