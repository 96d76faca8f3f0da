package provider

import (
	"strings"
	"testing"
)

func TestGeneratePassword_Length(t *testing.T) {
	password, err := GeneratePassword(AdminPasswordLength)
	if err != nil {
		t.Fatalf("GeneratePassword() error: %v", err)
	}
	if len(password) != AdminPasswordLength {
		t.Errorf("password length = %d, want %d", len(password), AdminPasswordLength)
	}
}

func TestGeneratePassword_CharacterClasses(t *testing.T) {
	password, err := GeneratePassword(AdminPasswordLength)
	if err != nil {
		t.Fatalf("GeneratePassword() error: %v", err)
	}

	if !strings.ContainsAny(password, passwordLower) {
		t.Error("password missing a lowercase character")
	}
	if !strings.ContainsAny(password, passwordUpper) {
		t.Error("password missing an uppercase character")
	}
	if !strings.ContainsAny(password, passwordDigits) {
		t.Error("password missing a digit")
	}
	if !strings.ContainsAny(password, passwordSpecial) {
		t.Error("password missing a special character")
	}
}

func TestGeneratePassword_OnlyAllowedCharacters(t *testing.T) {
	allowed := passwordLower + passwordUpper + passwordDigits + passwordSpecial

	password, err := GeneratePassword(AdminPasswordLength)
	if err != nil {
		t.Fatalf("GeneratePassword() error: %v", err)
	}
	for _, c := range password {
		if !strings.ContainsRune(allowed, c) {
			t.Errorf("password contains disallowed character %q", c)
		}
	}
}

func TestGeneratePassword_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 16; i++ {
		password, err := GeneratePassword(AdminPasswordLength)
		if err != nil {
			t.Fatalf("GeneratePassword() error: %v", err)
		}
		if seen[password] {
			t.Fatal("generated a duplicate password")
		}
		seen[password] = true
	}
}

func TestGeneratePassword_TooShort(t *testing.T) {
	if _, err := GeneratePassword(3); err == nil {
		t.Error("expected error for length below the number of character classes")
	}
}
