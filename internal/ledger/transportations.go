package ledger

import (
	"context"
	"database/sql"
	"strings"

	domainerrors "github.com/farmbook/farmbook/internal/errors"
	"github.com/farmbook/farmbook/internal/model"
	"github.com/farmbook/farmbook/internal/store"
)

// CreateTransportationInput describes packets moved off a field into a lot.
type CreateTransportationInput struct {
	FieldID       int64         `json:"field_id" validate:"gt=0"`
	LotNumber     string        `json:"lot_number" validate:"notblank,max=64"`
	// TransportDate defaults to today.
	TransportDate model.Date    `json:"transport_date"`
	Packets       model.Packets `json:"packets" validate:"-"`
	Notes         string        `json:"notes" validate:"max=1000"`
}

// PacketsPatch sets individual buckets. It has the same JSON shape as
// model.Packets; buckets left out keep their current count.
type PacketsPatch struct {
	Small  *int `json:"small_packets,omitempty"`
	Medium *int `json:"medium_packets,omitempty"`
	Large  *int `json:"large_packets,omitempty"`
	XLarge *int `json:"xlarge_packets,omitempty"`
}

// apply overlays the set buckets onto p.
func (pp PacketsPatch) apply(p model.Packets) model.Packets {
	if pp.Small != nil {
		p.Small = *pp.Small
	}
	if pp.Medium != nil {
		p.Medium = *pp.Medium
	}
	if pp.Large != nil {
		p.Large = *pp.Large
	}
	if pp.XLarge != nil {
		p.XLarge = *pp.XLarge
	}
	return p
}

// TransportationUpdate is a partial update. Nil fields are left unchanged.
type TransportationUpdate struct {
	FieldID       *int64       `json:"field_id,omitempty" validate:"omitnil,gt=0"`
	LotNumber     *string      `json:"lot_number,omitempty" validate:"omitnil,notblank,max=64"`
	TransportDate *model.Date  `json:"transport_date,omitempty"`
	Packets       PacketsPatch `json:"packets"`
	Notes         *string      `json:"notes,omitempty" validate:"omitnil,max=1000"`
}

func checkLoad(p model.Packets) error {
	if p.HasNegative() {
		return domainerrors.InvalidQuantity("packet counts cannot be negative")
	}
	if p.Total() <= 0 {
		return domainerrors.InvalidQuantity("a transportation must carry at least one packet")
	}
	return nil
}

// CreateTransportation records a transportation and adds its packets to the
// lot it names, creating the lot when the number is new.
func (l *Ledger) CreateTransportation(ctx context.Context, ownerID int64, in CreateTransportationInput) (*model.Transportation, error) {
	in.LotNumber = strings.TrimSpace(in.LotNumber)
	if err := l.validate(in); err != nil {
		return nil, err
	}

	var t *model.Transportation
	var lot *model.Lot
	err := l.inTx(ctx, "creating transportation", func(tx *sql.Tx) error {
		field, err := store.GetField(ctx, tx, ownerID, in.FieldID)
		if err != nil {
			return err
		}
		if field == nil {
			return domainerrors.NotFoundf("field %d not found", in.FieldID)
		}
		if err := checkLoad(in.Packets); err != nil {
			return err
		}

		at := l.now()
		if in.TransportDate.IsZero() {
			in.TransportDate = model.NewDate(at)
		}
		lot, err = store.FindLot(ctx, tx, ownerID, in.LotNumber)
		if err != nil {
			return err
		}
		if lot != nil {
			l.applyDelta(lot, at, field.Name, in.Packets, transportedMessage(field.Name, in.Packets, in.Notes))
			if err := store.SaveLot(ctx, tx, lot); err != nil {
				return err
			}
		} else {
			lot = model.NewLot(ownerID, in.LotNumber, field.Name, in.Packets, in.TransportDate, at,
				createdFromTransportationMessage(field.Name, in.Notes))
			if err := store.InsertLot(ctx, tx, lot); err != nil {
				return err
			}
		}

		t = &model.Transportation{
			FieldID:       field.ID,
			LotNumber:     in.LotNumber,
			TransportDate: in.TransportDate,
			Packets:       in.Packets,
			Notes:         strings.TrimSpace(in.Notes),
			CreatedAt:     at,
			UpdatedAt:     at,
			FieldName:     field.Name,
		}
		return store.InsertTransportation(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}

	l.logger().Info("transportation created",
		"owner", ownerID,
		"transportation", t.ID,
		"lot", lot.LotNumber,
		"packets", t.Packets.Total(),
		"lot_total", lot.Packets.Total(),
	)
	return t, nil
}

// UpdateTransportation applies a partial update. Moving the transportation
// to another lot carries its previous packets across first; any change in
// counts is then applied to the lot it ends up in.
func (l *Ledger) UpdateTransportation(ctx context.Context, ownerID, id int64, upd TransportationUpdate) (*model.Transportation, error) {
	if err := l.validate(upd); err != nil {
		return nil, err
	}

	var t *model.Transportation
	var current *model.Lot
	var moved bool
	err := l.inTx(ctx, "updating transportation", func(tx *sql.Tx) error {
		var err error
		t, err = store.GetTransportation(ctx, tx, ownerID, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domainerrors.NotFoundf("transportation %d not found", id)
		}

		oldPackets, oldLotNumber := t.Packets, t.LotNumber
		newPackets := upd.Packets.apply(oldPackets)
		if err := checkLoad(newPackets); err != nil {
			return err
		}

		if upd.FieldID != nil && *upd.FieldID != t.FieldID {
			field, err := store.GetField(ctx, tx, ownerID, *upd.FieldID)
			if err != nil {
				return err
			}
			if field == nil {
				return domainerrors.NotFoundf("field %d not found", *upd.FieldID)
			}
			t.FieldID, t.FieldName = field.ID, field.Name
		}
		if upd.Notes != nil {
			t.Notes = strings.TrimSpace(*upd.Notes)
		}

		newLotNumber := oldLotNumber
		if upd.LotNumber != nil {
			newLotNumber = strings.TrimSpace(*upd.LotNumber)
		}

		at := l.now()
		insert := false
		if newLotNumber != oldLotNumber {
			moved = true
			oldLot, err := store.FindLot(ctx, tx, ownerID, oldLotNumber)
			if err != nil {
				return err
			}
			if oldLot != nil {
				l.applyDelta(oldLot, at, "", oldPackets.Scale(-1), movedToMessage(newLotNumber, oldPackets))
				if err := store.SaveLot(ctx, tx, oldLot); err != nil {
					return err
				}
			}

			current, err = store.FindLot(ctx, tx, ownerID, newLotNumber)
			if err != nil {
				return err
			}
			if current != nil {
				l.applyDelta(current, at, t.FieldName, oldPackets, movedFromMessage(oldLotNumber, oldPackets))
			} else {
				current = model.NewLot(ownerID, newLotNumber, t.FieldName, oldPackets, t.TransportDate, at,
					createdFromUpdateMessage(t.FieldName))
				insert = true
			}
			t.LotNumber = newLotNumber
		} else {
			current, err = store.FindLot(ctx, tx, ownerID, oldLotNumber)
			if err != nil {
				return err
			}
			if current != nil {
				current.FieldName = current.FieldName.Merge(t.FieldName)
			}
		}

		if current != nil {
			if diff := newPackets.Sub(oldPackets); !diff.IsZero() {
				l.applyDelta(current, at, "", diff, updatedTransportationMessage(diff))
			}
			if insert {
				err = store.InsertLot(ctx, tx, current)
			} else {
				err = store.SaveLot(ctx, tx, current)
			}
			if err != nil {
				return err
			}
		} else {
			l.logger().Warn("transportation references a missing lot",
				"owner", ownerID, "transportation", id, "lot", oldLotNumber)
		}

		// A lot created by the move above is dated from the transportation as
		// it was before this update.
		if upd.TransportDate != nil {
			t.TransportDate = *upd.TransportDate
		}
		t.Packets = newPackets
		t.UpdatedAt = at
		return store.SaveTransportation(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}

	attrs := []any{
		"owner", ownerID,
		"transportation", t.ID,
		"lot", t.LotNumber,
		"packets", t.Packets.Total(),
		"moved", moved,
	}
	if current != nil {
		attrs = append(attrs, "lot_total", current.Packets.Total())
	}
	l.logger().Info("transportation updated", attrs...)
	return t, nil
}

// DeleteTransportation removes a transportation and takes its packets back
// out of its lot. The lot itself is kept even when it drops to zero.
func (l *Ledger) DeleteTransportation(ctx context.Context, ownerID, id int64) error {
	var t *model.Transportation
	var lot *model.Lot
	err := l.inTx(ctx, "deleting transportation", func(tx *sql.Tx) error {
		var err error
		t, err = store.GetTransportation(ctx, tx, ownerID, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domainerrors.NotFoundf("transportation %d not found", id)
		}

		lot, err = store.FindLot(ctx, tx, ownerID, t.LotNumber)
		if err != nil {
			return err
		}
		if lot != nil {
			l.applyDelta(lot, l.now(), "", t.Packets.Scale(-1), removedTransportationMessage(t.Packets))
			if err := store.SaveLot(ctx, tx, lot); err != nil {
				return err
			}
		}

		return store.DeleteTransportation(ctx, tx, t.ID)
	})
	if err != nil {
		return err
	}

	attrs := []any{"owner", ownerID, "transportation", id, "lot", t.LotNumber, "packets", t.Packets.Total()}
	if lot != nil {
		attrs = append(attrs, "lot_total", lot.Packets.Total())
	}
	l.logger().Info("transportation deleted", attrs...)
	return nil
}
