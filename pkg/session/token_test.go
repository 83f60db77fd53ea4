package session

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	tok, err := Issue("test-secret", "staff@example.com", time.Hour, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := Verify(tok, "test-secret", now.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Email != "staff@example.com" {
		t.Fatalf("expected email staff@example.com, got %s", claims.Email)
	}
}

func TestVerify_Expired(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	tok, err := Issue("test-secret", "staff@example.com", time.Hour, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := Verify(tok, "test-secret", now.Add(2*time.Hour)); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	now := time.Now()

	tok, err := Issue("test-secret", "staff@example.com", time.Hour, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := Verify(tok, "other-secret", now); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestVerify_Garbage(t *testing.T) {
	if _, err := Verify("not-a-token", "test-secret", time.Now()); err == nil {
		t.Fatalf("expected error for malformed token")
	}
	if _, err := Verify("", "test-secret", time.Now()); err == nil {
		t.Fatalf("expected error for empty token")
	}
}
