package store

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisSessionRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	sessions := NewRedisSessionStore(mr.Addr(), "", time.Hour)

	token, err := sessions.NewSession("admin-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a non-empty token")
	}

	id, ok, err := sessions.GetAdminIDByToken(token)
	if err != nil {
		t.Fatalf("resolve token: %v", err)
	}
	if !ok || id != "admin-1" {
		t.Fatalf("resolve token = (%q, %v), want (admin-1, true)", id, ok)
	}

	if err := sessions.DeleteSession(token); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, ok, _ := sessions.GetAdminIDByToken(token); ok {
		t.Fatalf("token should be revoked after logout")
	}
}

func TestRedisSessionExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	sessions := NewRedisSessionStore(mr.Addr(), "", time.Minute)

	token, err := sessions.NewSession("admin-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, ok, _ := sessions.GetAdminIDByToken(token); ok {
		t.Fatalf("token should have expired")
	}
}

func TestRedisSessionUnknownToken(t *testing.T) {
	mr := miniredis.RunT(t)
	sessions := NewRedisSessionStore(mr.Addr(), "", time.Hour)

	if _, ok, err := sessions.GetAdminIDByToken("no-such-token"); ok || err != nil {
		t.Fatalf("unknown token = (ok=%v, err=%v), want (false, nil)", ok, err)
	}
	if err := sessions.DeleteSession("no-such-token"); err != nil {
		t.Fatalf("deleting unknown token should be a no-op, got %v", err)
	}
}
