package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/farmbook/farmbook/internal/errors"
	"github.com/farmbook/farmbook/internal/model"
)

func TestCreateLot(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	lot, err := f.ledger.CreateLot(ctx, f.owner, CreateLotInput{
		LotNumber: " C7 ",
		FieldName: "Hill",
		Packets:   model.Packets{Medium: 10},
		Notes:     "cold store row 3",
	})
	require.NoError(t, err)
	assert.Equal(t, "C7", lot.LotNumber)
	assert.Equal(t, "2025-09-10", lot.StorageDate.String(), "storage date defaults to today")
	assert.Equal(t, model.NoteLog("2025-09-10: cold store row 3"), lot.Notes)

	_, err = f.ledger.CreateLot(ctx, f.owner, CreateLotInput{LotNumber: "C7", Packets: model.Packets{Small: 1}})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrDuplicateLot), "direct creation never merges: %v", err)

	_, err = f.ledger.CreateLot(ctx, f.owner, CreateLotInput{LotNumber: "C8", Packets: model.Packets{Small: -1}})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestCreateTransportationMergesIntoDirectLot(t *testing.T) {
	f := setup(t, "North")
	ctx := context.Background()

	storage, _ := model.ParseDate("2025-08-01")
	_, err := f.ledger.CreateLot(ctx, f.owner, CreateLotInput{LotNumber: "L1", FieldName: "Hill", Packets: model.Packets{Small: 1}, StorageDate: storage})
	require.NoError(t, err)

	f.transport(t, "North", "L1", model.Packets{Small: 2})

	lot := f.lot(t, "L1")
	assert.Equal(t, 3, lot.Packets.Small)
	assert.Equal(t, model.Provenance("Hill, North"), lot.FieldName)
	assert.Equal(t, "2025-08-01", lot.StorageDate.String(), "storage date is fixed at creation")
}

func TestAddPacketsToLot(t *testing.T) {
	f := setup(t, "North")
	ctx := context.Background()
	f.transport(t, "North", "L1", model.Packets{Small: 2})
	lot := f.lot(t, "L1")

	got, err := f.ledger.AddPacketsToLot(ctx, f.owner, lot.ID, model.Packets{Large: 3}, "from the barn")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Packets.Total())
	assertAppendOnly(t, lot.Notes, got.Notes)
	assert.Equal(t, "2025-09-10: Added S:0, M:0, L:3, XL:0. from the barn", got.Notes.Lines()[1])

	_, err = f.ledger.AddPacketsToLot(ctx, f.owner, lot.ID, model.Packets{}, "")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidQuantity))

	_, err = f.ledger.AddPacketsToLot(ctx, f.owner, lot.ID, model.Packets{Small: 2, Medium: -3}, "")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidQuantity))

	_, err = f.ledger.AddPacketsToLot(ctx, f.owner, 999, model.Packets{Small: 1}, "")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestUpdateLot(t *testing.T) {
	f := setup(t, "North")
	ctx := context.Background()
	f.transport(t, "North", "L1", model.Packets{Small: 2})
	f.transport(t, "North", "L2", model.Packets{Small: 1})
	lot := f.lot(t, "L1")

	_, err := f.ledger.UpdateLot(ctx, f.owner, lot.ID, LotUpdate{LotNumber: ptr("L2")})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrDuplicateLot))

	got, err := f.ledger.UpdateLot(ctx, f.owner, lot.ID, LotUpdate{
		LotNumber: ptr("L9"),
		FieldName: ptr("South"),
		Packets:   &model.Packets{Small: 2, Large: 1},
		Notes:     ptr("checked by hand"),
	})
	require.NoError(t, err)
	assert.Equal(t, "L9", got.LotNumber)
	assert.Equal(t, model.Provenance("North, South"), got.FieldName)
	assert.Equal(t, model.Packets{Small: 2, Large: 1}, got.Packets)
	assertAppendOnly(t, lot.Notes, got.Notes)
	assert.Equal(t, []string{
		"2025-09-10: Renamed from lot L1",
		"2025-09-10: Updated lot - S:+0, M:+0, L:+1, XL:+0",
		"2025-09-10: checked by hand",
	}, got.Notes.Lines()[1:])

	_, err = f.ledger.UpdateLot(ctx, f.owner, 999, LotUpdate{Notes: ptr("x")})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestDeleteLotKeepsTransportations(t *testing.T) {
	f := setup(t, "North")
	ctx := context.Background()
	tr := f.transport(t, "North", "L1", model.Packets{Small: 2})

	require.NoError(t, f.ledger.DeleteLot(ctx, f.owner, f.lot(t, "L1").ID))
	assert.True(t, domainerrors.Is(f.ledger.DeleteLot(ctx, f.owner, 999), domainerrors.ErrNotFound))

	// The transportation survives and can still be removed.
	require.NoError(t, f.ledger.DeleteTransportation(ctx, f.owner, tr.ID))
}

func TestListLots(t *testing.T) {
	f := setup(t, "North", "South")
	ctx := context.Background()

	for _, in := range []CreateLotInput{
		{LotNumber: "A", FieldName: "North", StorageDate: mustDate(t, "2025-07-01")},
		{LotNumber: "B", FieldName: "South", StorageDate: mustDate(t, "2025-09-01")},
		{LotNumber: "C", FieldName: "North", StorageDate: mustDate(t, "2025-08-01")},
	} {
		_, err := f.ledger.CreateLot(ctx, f.owner, in)
		require.NoError(t, err)
	}

	lots, err := f.ledger.ListLots(ctx, f.owner)
	require.NoError(t, err)
	numbers := make([]string, len(lots))
	for i, l := range lots {
		numbers[i] = l.LotNumber
	}
	assert.Equal(t, []string{"B", "C", "A"}, numbers)

	north, err := f.ledger.ListLotsByField(ctx, f.owner, "North")
	require.NoError(t, err)
	assert.Len(t, north, 2)

	_, err = f.ledger.GetLot(ctx, f.owner, 999)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}
