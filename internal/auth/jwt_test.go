package auth

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret-key", time.Hour)

	token, issued, err := issuer.Issue(7, "ana")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("expected user_id 7, got %d", claims.UserID)
	}
	if claims.Username != "ana" {
		t.Errorf("expected username 'ana', got %q", claims.Username)
	}
	if claims.ID != issued.ID || claims.ID == "" {
		t.Errorf("expected JTI %q, got %q", issued.ID, claims.ID)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, _, _ := NewIssuer("secret1", time.Hour).Issue(1, "ana")

	if _, err := NewIssuer("secret2", time.Hour).Verify(token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestVerifyInvalid(t *testing.T) {
	if _, err := NewIssuer("secret", time.Hour).Verify("not-a-token"); err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestVerifyExpired(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	start := time.Now()
	issuer.Now = func() time.Time { return start }

	token, claims, err := issuer.Issue(1, "ana")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if got := claims.ExpiresAt.Sub(start); got < 59*time.Minute || got > 61*time.Minute {
		t.Errorf("expected a one hour lifetime, got %v", got)
	}

	issuer.Now = func() time.Time { return start.Add(2 * time.Hour) }
	if _, err := issuer.Verify(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestIssuerDefaultTTL(t *testing.T) {
	issuer := &Issuer{Secret: []byte("secret")}
	_, claims, err := issuer.Issue(1, "ana")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	diff := time.Until(claims.ExpiresAt.Time) - DefaultTTL
	if diff < -5*time.Second || diff > 5*time.Second {
		t.Errorf("token expiry too far from expected: diff=%v", diff)
	}
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "correct horse") {
		t.Error("expected password to match")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("expected wrong password to fail")
	}

	p, err := GeneratePassword(16)
	if err != nil {
		t.Fatalf("GeneratePassword: %v", err)
	}
	if len(p) != 16 {
		t.Errorf("expected 16 characters, got %d", len(p))
	}
}
