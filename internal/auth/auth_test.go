package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestGateCheck(t *testing.T) {
	gate := NewGate("Owner@Example.com")

	if err := gate.Check(Identity{Email: "owner@example.com"}); err != nil {
		t.Fatalf("allowed email rejected: %v", err)
	}
	if err := gate.Check(Identity{Email: "OWNER@EXAMPLE.COM"}); err != nil {
		t.Fatalf("email comparison should be case-insensitive: %v", err)
	}

	err := gate.Check(Identity{Email: "intruder@example.com"})
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if !strings.Contains(err.Error(), "intruder@example.com is not authorized") {
		t.Fatalf("denial message should name the email, got %q", err.Error())
	}
}

func TestSessionsLifecycle(t *testing.T) {
	s := NewSessions(time.Hour)
	id := Identity{Email: "owner@example.com", Name: "Owner"}

	token := s.Create(id)
	if !strings.HasPrefix(token, "sess_") {
		t.Fatalf("unexpected token form: %q", token)
	}

	got, ok := s.Lookup(token)
	if !ok || got.Email != id.Email {
		t.Fatalf("lookup failed: %v %v", got, ok)
	}

	if _, ok := s.Lookup("sess_unknown"); ok {
		t.Fatalf("unknown token should not resolve")
	}

	s.Revoke(token)
	if _, ok := s.Lookup(token); ok {
		t.Fatalf("revoked token should not resolve")
	}
}

func TestSessionsExpiry(t *testing.T) {
	s := NewSessions(time.Minute)
	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	token := s.Create(Identity{Email: "owner@example.com"})
	if _, ok := s.Lookup(token); !ok {
		t.Fatalf("fresh session should resolve")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := s.Lookup(token); ok {
		t.Fatalf("expired session should not resolve")
	}
	if s.Active() != 0 {
		t.Fatalf("expired session should not count as active")
	}
}

func TestTokensAreUnique(t *testing.T) {
	s := NewSessions(time.Hour)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok := s.Create(Identity{Email: "owner@example.com"})
		if seen[tok] {
			t.Fatalf("duplicate token generated")
		}
		seen[tok] = true
	}
}
