package auth

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// Sessions is an in-memory bearer-token session table. One user, short
// lifetimes; nothing here needs to survive a restart.
type Sessions struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time

	byToken map[string]sessionEntry
}

type sessionEntry struct {
	identity  Identity
	expiresAt time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl:     ttl,
		now:     time.Now,
		byToken: make(map[string]sessionEntry),
	}
}

// Create registers a new session and returns its bearer token.
func (s *Sessions) Create(id Identity) string {
	token := generateToken()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byToken[token] = sessionEntry{
		identity:  id,
		expiresAt: s.now().Add(s.ttl),
	}
	return token
}

// Lookup resolves a bearer token to its identity. Expired sessions are
// removed on access.
func (s *Sessions) Lookup(token string) (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.byToken[token]
	if !ok {
		return Identity{}, false
	}
	if s.now().After(entry.expiresAt) {
		delete(s.byToken, token)
		return Identity{}, false
	}
	return entry.identity, true
}

// Revoke drops a session (logout). Unknown tokens are a no-op.
func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, token)
}

// Active returns the number of live sessions.
func (s *Sessions) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	now := s.now()
	for _, e := range s.byToken {
		if !now.After(e.expiresAt) {
			n++
		}
	}
	return n
}

func generateToken() string {
	bytes := make([]byte, 24)
	if _, err := rand.Read(bytes); err != nil {
		return "sess_" + hex.EncodeToString([]byte(time.Now().String()))[:32]
	}
	return "sess_" + hex.EncodeToString(bytes)
}
