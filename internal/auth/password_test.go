package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("LivelongSecret2025")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "LivelongSecret2025" {
		t.Fatalf("hash must not equal the plain password")
	}
	if !CheckPassword("LivelongSecret2025", hash) {
		t.Fatalf("expected password check to pass")
	}
	if CheckPassword("wrong-password", hash) {
		t.Fatalf("expected password check to fail for wrong password")
	}
}

func TestCheckPasswordRejectsMalformedHash(t *testing.T) {
	if CheckPassword("anything", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash must not validate")
	}
}
