package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/farmbook/farmbook/internal/model"
)

func mustUser(t *testing.T, database *sql.DB, username string) *model.User {
	t.Helper()
	u, err := CreateUser(context.Background(), database, username, "hash")
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	return u
}

func mustField(t *testing.T, database *sql.DB, userID int64, name string) *model.Field {
	t.Helper()
	f, err := CreateField(context.Background(), database, &model.Field{UserID: userID, Name: name, Area: 1.5, Year: 2025})
	if err != nil {
		t.Fatalf("CreateField(%s): %v", name, err)
	}
	return f
}
