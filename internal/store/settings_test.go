package store

import (
	"context"
	"testing"

	"github.com/farmbook/farmbook/internal/db"
)

func TestGetJWTSecret_GeneratesAndPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// First call should generate a secret.
	secret1, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	// Second call should return the same secret.
	secret2, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestEnsureSettingKeepsFirstValue(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, ok, _ := GetSetting(ctx, database, "season"); ok {
		t.Fatal("expected no setting before EnsureSetting")
	}

	v, err := EnsureSetting(ctx, database, "season", "spring")
	if err != nil || v != "spring" {
		t.Fatalf("EnsureSetting = %q, %v", v, err)
	}

	v, err = EnsureSetting(ctx, database, "season", "autumn")
	if err != nil || v != "spring" {
		t.Errorf("expected first value to win, got %q, %v", v, err)
	}
}
