package store

import (
	"context"
	"testing"
	"time"

	"github.com/farmbook/farmbook/internal/db"
	"github.com/farmbook/farmbook/internal/model"
)

func newTestTransportation(fieldID int64, lot, date string, p model.Packets) *model.Transportation {
	d, _ := model.ParseDate(date)
	at := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	return &model.Transportation{
		FieldID: fieldID, LotNumber: lot, TransportDate: d, Packets: p,
		CreatedAt: at, UpdatedAt: at,
	}
}

func TestInsertAndGetTransportation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := mustUser(t, database, "farmer")
	field := mustField(t, database, user.ID, "North")

	tr := newTestTransportation(field.ID, "L1", "2025-09-01", model.Packets{Small: 2, Medium: 1})
	tr.Notes = "first load"
	if err := InsertTransportation(ctx, database, tr); err != nil {
		t.Fatalf("InsertTransportation: %v", err)
	}

	got, err := GetTransportation(ctx, database, user.ID, tr.ID)
	if err != nil {
		t.Fatalf("GetTransportation: %v", err)
	}
	if got == nil {
		t.Fatal("expected transportation, got nil")
	}
	if got.FieldName != "North" {
		t.Errorf("expected joined field name 'North', got %q", got.FieldName)
	}
	if got.Packets.Total() != 3 {
		t.Errorf("expected total 3, got %d", got.Packets.Total())
	}
	if got.Notes != "first load" {
		t.Errorf("expected notes, got %q", got.Notes)
	}
}

func TestGetTransportationScopedToFieldOwner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := mustUser(t, database, "alice")
	bob := mustUser(t, database, "bob")
	field := mustField(t, database, alice.ID, "North")

	tr := newTestTransportation(field.ID, "L1", "2025-09-01", model.Packets{Small: 1})
	InsertTransportation(ctx, database, tr)

	got, err := GetTransportation(ctx, database, bob.ID, tr.ID)
	if err != nil {
		t.Fatalf("GetTransportation: %v", err)
	}
	if got != nil {
		t.Error("expected bob not to see alice's transportation")
	}
}

func TestSaveAndDeleteTransportation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := mustUser(t, database, "farmer")
	field := mustField(t, database, user.ID, "North")

	tr := newTestTransportation(field.ID, "L1", "2025-09-01", model.Packets{Small: 1})
	InsertTransportation(ctx, database, tr)

	tr.LotNumber = "L2"
	tr.Packets = model.Packets{Large: 5}
	if err := SaveTransportation(ctx, database, tr); err != nil {
		t.Fatalf("SaveTransportation: %v", err)
	}
	got, _ := GetTransportation(ctx, database, user.ID, tr.ID)
	if got.LotNumber != "L2" || got.Packets.Large != 5 || got.Packets.Small != 0 {
		t.Errorf("unexpected saved transportation %+v", got)
	}

	if err := DeleteTransportation(ctx, database, tr.ID); err != nil {
		t.Fatalf("DeleteTransportation: %v", err)
	}
	if got, _ := GetTransportation(ctx, database, user.ID, tr.ID); got != nil {
		t.Error("expected transportation to be gone")
	}
}

func TestListTransportations(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := mustUser(t, database, "farmer")
	north := mustField(t, database, user.ID, "North")
	south := mustField(t, database, user.ID, "South")

	InsertTransportation(ctx, database, newTestTransportation(north.ID, "L1", "2025-09-01", model.Packets{Small: 1}))
	InsertTransportation(ctx, database, newTestTransportation(south.ID, "L1", "2025-09-03", model.Packets{Small: 1}))
	InsertTransportation(ctx, database, newTestTransportation(north.ID, "L2", "2025-09-02", model.Packets{Small: 1}))

	all, err := ListTransportations(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("ListTransportations: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 transportations, got %d", len(all))
	}
	if all[0].TransportDate.String() != "2025-09-03" {
		t.Errorf("expected newest first, got %s", all[0].TransportDate)
	}

	byField, _ := ListTransportationsByField(ctx, database, user.ID, north.ID)
	if len(byField) != 2 {
		t.Errorf("expected 2 transportations off North, got %d", len(byField))
	}

	byLot, _ := ListTransportationsByLot(ctx, database, user.ID, "L1")
	if len(byLot) != 2 {
		t.Errorf("expected 2 transportations into L1, got %d", len(byLot))
	}
}

func TestSaveTransportationMovesField(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := mustUser(t, database, "farmer")
	north := mustField(t, database, user.ID, "North")
	south := mustField(t, database, user.ID, "South")

	tr := newTestTransportation(north.ID, "L1", "2025-09-01", model.Packets{Small: 2})
	if err := InsertTransportation(ctx, database, tr); err != nil {
		t.Fatalf("InsertTransportation: %v", err)
	}

	tr.FieldID = south.ID
	if err := SaveTransportation(ctx, database, tr); err != nil {
		t.Fatalf("SaveTransportation: %v", err)
	}

	got, err := GetTransportation(ctx, database, user.ID, tr.ID)
	if err != nil {
		t.Fatalf("GetTransportation: %v", err)
	}
	if got.FieldID != south.ID || got.FieldName != "South" {
		t.Errorf("expected field South (%d), got %q (%d)", south.ID, got.FieldName, got.FieldID)
	}
	if list, _ := ListTransportationsByField(ctx, database, user.ID, north.ID); len(list) != 0 {
		t.Errorf("expected no transportations left on North, got %d", len(list))
	}
}
