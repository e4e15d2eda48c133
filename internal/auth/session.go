package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionCookie is the name of the session cookie issued on login.
const SessionCookie = "session_id"

type session struct {
	accountID string
	expiresAt time.Time
}

// SessionManager tracks logged-in sessions in memory. Sessions renew on
// use and a background sweep drops expired ones.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]session
	ttl      time.Duration
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	m := &SessionManager{
		sessions: make(map[string]session),
		ttl:      ttl,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Start creates a session for the account and returns its ID.
func (m *SessionManager) Start(accountID string) string {
	id := uuid.NewString()
	m.mu.Lock()
	m.sessions[id] = session{
		accountID: accountID,
		expiresAt: m.now().Add(m.ttl),
	}
	m.mu.Unlock()
	return id
}

// Resolve returns the account ID behind a session ID and extends the
// session's lifetime. The second return is false for unknown or expired
// sessions.
func (m *SessionManager) Resolve(id string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return "", false
	}
	if m.now().After(s.expiresAt) {
		delete(m.sessions, id)
		return "", false
	}

	s.expiresAt = m.now().Add(m.ttl)
	m.sessions[id] = s
	return s.accountID, true
}

// End removes a session. Unknown IDs are ignored.
func (m *SessionManager) End(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Stop terminates the background sweep goroutine.
func (m *SessionManager) Stop() {
	m.stopOnce.Do(func() { close(m.done) })
}

func (m *SessionManager) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := m.now()
			m.mu.Lock()
			for id, s := range m.sessions {
				if now.After(s.expiresAt) {
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}
