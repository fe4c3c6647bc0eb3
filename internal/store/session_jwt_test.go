package store

import (
	"testing"
	"time"
)

func TestJWTSessionRoundTrip(t *testing.T) {
	sessions := NewJWTSessionStore("test-secret", time.Hour)

	token, err := sessions.NewSession("admin-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	id, ok, err := sessions.GetAdminIDByToken(token)
	if err != nil {
		t.Fatalf("resolve token: %v", err)
	}
	if !ok || id != "admin-1" {
		t.Fatalf("resolve token = (%q, %v), want (admin-1, true)", id, ok)
	}
}

func TestJWTSessionRejectsExpiredToken(t *testing.T) {
	sessions := NewJWTSessionStore("test-secret", -time.Minute)

	token, err := sessions.NewSession("admin-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, ok, err := sessions.GetAdminIDByToken(token); ok || err != nil {
		t.Fatalf("expired token = (ok=%v, err=%v), want (false, nil)", ok, err)
	}
}

func TestJWTSessionRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTSessionStore("secret-a", time.Hour)
	verifier := NewJWTSessionStore("secret-b", time.Hour)

	token, err := issuer.NewSession("admin-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, ok, _ := verifier.GetAdminIDByToken(token); ok {
		t.Fatalf("token signed with a different secret must not validate")
	}
}

func TestJWTSessionRejectsGarbage(t *testing.T) {
	sessions := NewJWTSessionStore("test-secret", time.Hour)
	if _, ok, err := sessions.GetAdminIDByToken("not.a.jwt"); ok || err != nil {
		t.Fatalf("garbage token = (ok=%v, err=%v), want (false, nil)", ok, err)
	}
}
