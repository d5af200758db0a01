package store

import (
	"context"
	"testing"

	"github.com/farmbook/farmbook/internal/db"
	"github.com/farmbook/farmbook/internal/model"
)

func TestGetSummary(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := mustUser(t, database, "alice")
	bob := mustUser(t, database, "bob")

	empty, err := GetSummary(ctx, database, alice.ID)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if *empty != (model.Summary{}) {
		t.Errorf("expected zero summary, got %+v", empty)
	}

	north := mustField(t, database, alice.ID, "North")
	south := mustField(t, database, alice.ID, "South")
	bobs := mustField(t, database, bob.ID, "Hill")

	loads := []*model.Transportation{
		newTestTransportation(north.ID, "L1", "2025-09-01", model.Packets{Small: 2, Medium: 1}),
		newTestTransportation(south.ID, "L1", "2025-09-02", model.Packets{Large: 4, XLarge: 1}),
		newTestTransportation(bobs.ID, "B1", "2025-09-02", model.Packets{Small: 50}),
	}
	for _, tr := range loads {
		if err := InsertTransportation(ctx, database, tr); err != nil {
			t.Fatalf("InsertTransportation: %v", err)
		}
	}
	lots := []*model.Lot{
		newTestLot(alice.ID, "L1", "North, South", "2025-09-01", model.Packets{Small: 2, Medium: 1, Large: 4, XLarge: 1}),
		newTestLot(alice.ID, "D1", "", "2025-09-03", model.Packets{Medium: 6}),
		newTestLot(bob.ID, "B1", "Hill", "2025-09-02", model.Packets{Small: 50}),
	}
	for _, lot := range lots {
		if err := InsertLot(ctx, database, lot); err != nil {
			t.Fatalf("InsertLot: %v", err)
		}
	}

	got, err := GetSummary(ctx, database, alice.ID)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	want := model.Summary{
		TotalFields:      2,
		TotalLots:        2,
		Transported:      model.Packets{Small: 2, Medium: 1, Large: 4, XLarge: 1},
		TotalTransported: 8,
		InLots:           model.Packets{Small: 2, Medium: 7, Large: 4, XLarge: 1},
		TotalInLots:      14,
	}
	if *got != want {
		t.Errorf("GetSummary = %+v, want %+v", *got, want)
	}
}
