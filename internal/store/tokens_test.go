package store

import (
	"context"
	"testing"
	"time"

	"github.com/farmbook/farmbook/internal/db"
)

func TestRevokeTokenInTransaction(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	expires := time.Now().Add(time.Hour)

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	if err := RevokeToken(ctx, tx, "session-a", expires); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
	if revoked, err := IsTokenRevoked(ctx, tx, "session-a"); err != nil || !revoked {
		t.Fatalf("IsTokenRevoked inside tx = %v, %v; want true", revoked, err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	if revoked, _ := IsTokenRevoked(ctx, database, "session-a"); revoked {
		t.Error("revocation survived a rolled back transaction")
	}

	// Revoking twice is harmless.
	for i := 0; i < 2; i++ {
		if err := RevokeToken(ctx, database, "session-a", expires); err != nil {
			t.Fatalf("RevokeToken #%d: %v", i+1, err)
		}
	}

	checks := map[string]bool{"session-a": true, "session-b": false}
	for jti, want := range checks {
		got, err := IsTokenRevoked(ctx, database, jti)
		if err != nil {
			t.Fatalf("IsTokenRevoked(%q): %v", jti, err)
		}
		if got != want {
			t.Errorf("IsTokenRevoked(%q) = %v, want %v", jti, got, want)
		}
	}
}

func TestPurgeExpiredTokens(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	now := time.Now()
	if _, err := database.ExecContext(ctx,
		`INSERT INTO revoked_tokens (jti, expires_at) VALUES (?, ?), (?, ?)`,
		"old", now.Add(-time.Hour), "fresh", now.Add(time.Hour),
	); err != nil {
		t.Fatalf("seeding revoked tokens: %v", err)
	}

	n, err := PurgeExpiredTokens(ctx, database, now)
	if err != nil {
		t.Fatalf("PurgeExpiredTokens: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 purged token, got %d", n)
	}

	if revoked, _ := IsTokenRevoked(ctx, database, "fresh"); !revoked {
		t.Error("expected unexpired revocation to remain")
	}
}
