package domain

import "testing"

func TestValidateSignUp(t *testing.T) {
	if err := ValidateSignUp("ada@example.com", "secret1"); err != nil {
		t.Fatalf("valid sign up rejected: %v", err)
	}
	cases := map[string][2]string{
		"empty email":    {"", "secret1"},
		"not an address": {"ada", "secret1"},
		"display name":   {"Ada <ada@example.com>", "secret1"},
		"short password": {"ada@example.com", "12345"},
	}
	for name, c := range cases {
		if err := ValidateSignUp(c[0], c[1]); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestNormalizeEmailAndDisplayName(t *testing.T) {
	if got := NormalizeEmail("  Ada@Example.COM "); got != "ada@example.com" {
		t.Fatalf("unexpected normalized email %q", got)
	}
	if got := (Identity{Email: "ada@example.com"}).DisplayName(); got != "ada" {
		t.Fatalf("expected local part fallback, got %q", got)
	}
	if got := (Identity{Email: "ada@example.com", FullName: "Ada Lovelace"}).DisplayName(); got != "Ada Lovelace" {
		t.Fatalf("expected full name, got %q", got)
	}
}
