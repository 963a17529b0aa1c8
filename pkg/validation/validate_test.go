package validation

import "testing"

func TestUsername(t *testing.T) {
	if err := Username("ab"); err == nil {
		t.Fatalf("2-char username must fail")
	}
	if err := Username("  ab  "); err == nil {
		t.Fatalf("padding must not count toward length")
	}
	if err := Username("abc"); err != nil {
		t.Fatalf("3-char username must pass: %v", err)
	}
}

func TestPassword(t *testing.T) {
	if err := Password("abc"); err == nil {
		t.Fatalf("3-char password must fail")
	}
	if err := Password("abcd"); err != nil {
		t.Fatalf("4-char password must pass: %v", err)
	}
}

func TestContent(t *testing.T) {
	if err := Content("   "); err == nil {
		t.Fatalf("whitespace-only content must fail")
	}
	if err := Content("hi"); err != nil {
		t.Fatalf("non-empty content must pass: %v", err)
	}
}
