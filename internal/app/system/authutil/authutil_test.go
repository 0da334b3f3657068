package authutil

import (
	"strings"
	"testing"
)

func TestHashPassword_NotPlaintext(t *testing.T) {
	hash, err := HashPassword("123456")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "123456" {
		t.Error("hash equals the plaintext password")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}
}

func TestCheckPassword_Roundtrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPassword("correct horse", hash) {
		t.Error("expected matching password to verify")
	}
	if CheckPassword("wrong horse", hash) {
		t.Error("expected mismatched password to fail")
	}
}

func TestCheckPassword_EmptyHash(t *testing.T) {
	if CheckPassword("anything", "") {
		t.Error("expected empty hash to never verify")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("12345"); err != ErrPasswordTooShort {
		t.Errorf("expected ErrPasswordTooShort for 5 chars, got %v", err)
	}
	if err := ValidatePassword("123456"); err != nil {
		t.Errorf("expected 6 chars to pass, got %v", err)
	}
}

func TestSetCost_IgnoresOutOfRange(t *testing.T) {
	SetCost(4)
	defer SetCost(12)

	SetCost(999)
	if got := int(cost.Load()); got != 4 {
		t.Errorf("out-of-range cost applied: got %d, want 4", got)
	}
}
