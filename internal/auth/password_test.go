package auth

import (
	"testing"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if hash == "correct horse" {
		t.Error("Expected hash to differ from plaintext")
	}

	if !VerifyPassword(hash, "correct horse") {
		t.Error("Expected matching password to verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("Expected non-matching password to fail")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	h2, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if h1 == h2 {
		t.Error("Expected distinct salts to produce distinct hashes")
	}
}
