package ledger

import (
	"context"
	"database/sql"
	"strings"

	domainerrors "github.com/farmbook/farmbook/internal/errors"
	"github.com/farmbook/farmbook/internal/model"
	"github.com/farmbook/farmbook/internal/store"
)

// CreateLotInput creates a lot directly, outside any transportation.
type CreateLotInput struct {
	LotNumber string        `json:"lot_number" validate:"notblank,max=64"`
	FieldName string        `json:"field_name" validate:"max=200"`
	Packets   model.Packets `json:"packets"`
	// StorageDate defaults to today.
	StorageDate model.Date `json:"storage_date"`
	Notes       string     `json:"notes" validate:"max=1000"`
}

// LotUpdate edits a lot directly. Nil fields are left unchanged. Notes are
// appended to the audit trail, never substituted for it.
type LotUpdate struct {
	LotNumber *string        `json:"lot_number,omitempty" validate:"omitnil,notblank,max=64"`
	FieldName *string        `json:"field_name,omitempty" validate:"omitnil,max=200"`
	Packets   *model.Packets `json:"packets,omitempty" validate:"omitnil"`
	Notes     *string        `json:"notes,omitempty" validate:"omitnil,max=1000"`
}

// GetLot returns the owner's lot or NOT_FOUND.
func (l *Ledger) GetLot(ctx context.Context, ownerID, id int64) (*model.Lot, error) {
	lot, err := store.GetLot(ctx, l.DB, ownerID, id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domainerrors.NotFoundf("lot %d not found", id)
	}
	return lot, nil
}

// ListLots returns the owner's lots, most recently stored first.
func (l *Ledger) ListLots(ctx context.Context, ownerID int64) ([]model.Lot, error) {
	return store.ListLots(ctx, l.DB, ownerID)
}

// ListLotsByField returns the owner's lots that fieldName contributed to.
func (l *Ledger) ListLotsByField(ctx context.Context, ownerID int64, fieldName string) ([]model.Lot, error) {
	return store.ListLotsByField(ctx, l.DB, ownerID, strings.TrimSpace(fieldName))
}

// CreateLot creates a lot. Unlike the transportation path it never merges
// into an existing lot: a taken number is DUPLICATE_LOT.
func (l *Ledger) CreateLot(ctx context.Context, ownerID int64, in CreateLotInput) (*model.Lot, error) {
	in.LotNumber = strings.TrimSpace(in.LotNumber)
	if err := l.validate(in); err != nil {
		return nil, err
	}

	var lot *model.Lot
	err := l.inTx(ctx, "creating lot", func(tx *sql.Tx) error {
		existing, err := store.FindLot(ctx, tx, ownerID, in.LotNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return domainerrors.DuplicateLotf("lot %s already exists", in.LotNumber)
		}

		at := l.now()
		storageDate := in.StorageDate
		if storageDate.IsZero() {
			storageDate = model.NewDate(at)
		}
		lot = model.NewLot(ownerID, in.LotNumber, in.FieldName, in.Packets, storageDate, at, strings.TrimSpace(in.Notes))
		return store.InsertLot(ctx, tx, lot)
	})
	if err != nil {
		return nil, err
	}

	l.logger().Info("lot created", "owner", ownerID, "lot", lot.LotNumber, "lot_total", lot.Packets.Total())
	return lot, nil
}

// AddPacketsToLot adds delta to a lot outside any transportation.
func (l *Ledger) AddPacketsToLot(ctx context.Context, ownerID, lotID int64, delta model.Packets, note string) (*model.Lot, error) {
	if delta.Total() <= 0 {
		return nil, domainerrors.InvalidQuantity("at least one packet must be added")
	}

	var lot *model.Lot
	err := l.inTx(ctx, "adding packets", func(tx *sql.Tx) error {
		var err error
		lot, err = store.GetLot(ctx, tx, ownerID, lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domainerrors.NotFoundf("lot %d not found", lotID)
		}

		l.applyDelta(lot, l.now(), "", delta, addedMessage(delta, note))
		return store.SaveLot(ctx, tx, lot)
	})
	if err != nil {
		return nil, err
	}

	l.logger().Info("packets added to lot",
		"owner", ownerID,
		"lot", lot.LotNumber,
		"packets", delta.Total(),
		"lot_total", lot.Packets.Total(),
	)
	return lot, nil
}

// UpdateLot renames a lot, corrects its counts, extends its provenance or
// appends a note. Transportations keep pointing at the number they carry,
// so renaming a lot does not move them.
func (l *Ledger) UpdateLot(ctx context.Context, ownerID, id int64, upd LotUpdate) (*model.Lot, error) {
	if err := l.validate(upd); err != nil {
		return nil, err
	}

	var lot *model.Lot
	err := l.inTx(ctx, "updating lot", func(tx *sql.Tx) error {
		var err error
		lot, err = store.GetLot(ctx, tx, ownerID, id)
		if err != nil {
			return err
		}
		if lot == nil {
			return domainerrors.NotFoundf("lot %d not found", id)
		}

		at := l.now()
		if upd.LotNumber != nil {
			number := strings.TrimSpace(*upd.LotNumber)
			if number != lot.LotNumber {
				existing, err := store.FindLot(ctx, tx, ownerID, number)
				if err != nil {
					return err
				}
				if existing != nil {
					return domainerrors.DuplicateLotf("lot %s already exists", number)
				}
				lot.Notes = lot.Notes.Append(at, renamedLotMessage(lot.LotNumber))
				lot.LotNumber = number
			}
		}
		if upd.FieldName != nil {
			lot.FieldName = lot.FieldName.Merge(*upd.FieldName)
		}
		if upd.Packets != nil {
			if diff := upd.Packets.Sub(lot.Packets); !diff.IsZero() {
				l.applyDelta(lot, at, "", diff, updatedLotMessage(diff))
			}
		}
		if upd.Notes != nil {
			if note := strings.TrimSpace(*upd.Notes); note != "" {
				lot.Notes = lot.Notes.Append(at, note)
			}
		}
		lot.UpdatedAt = at

		return store.SaveLot(ctx, tx, lot)
	})
	if err != nil {
		return nil, err
	}

	l.logger().Info("lot updated", "owner", ownerID, "lot", lot.LotNumber, "lot_total", lot.Packets.Total())
	return lot, nil
}

// DeleteLot removes a lot. Transportations that name it are left alone.
func (l *Ledger) DeleteLot(ctx context.Context, ownerID, id int64) error {
	var deleted bool
	err := l.inTx(ctx, "deleting lot", func(tx *sql.Tx) error {
		var err error
		deleted, err = store.DeleteLot(ctx, tx, ownerID, id)
		return err
	})
	if err != nil {
		return err
	}
	if !deleted {
		return domainerrors.NotFoundf("lot %d not found", id)
	}

	l.logger().Info("lot deleted", "owner", ownerID, "lot_id", id)
	return nil
}
