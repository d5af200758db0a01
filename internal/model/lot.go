package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Lot is the cumulative packet count stored under one lot number, together
// with the fields that contributed to it and its audit trail.
type Lot struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"-"`
	LotNumber   string     `json:"lot_number"`
	FieldName   Provenance `json:"field_name"`
	Packets     Packets    `json:"packets"`
	StorageDate Date       `json:"storage_date"`
	Notes       NoteLog    `json:"notes"`
	HasPhoto    bool       `json:"has_photo"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewLot returns an unsaved lot seeded with packets from fieldName. The
// storage date is fixed here and never changed by later contributions.
func NewLot(userID int64, lotNumber, fieldName string, packets Packets, storageDate Date, at time.Time, message string) *Lot {
	lot := &Lot{
		UserID:      userID,
		LotNumber:   lotNumber,
		FieldName:   Provenance("").Merge(fieldName),
		Packets:     packets,
		StorageDate: storageDate,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
	if message != "" {
		lot.Notes = lot.Notes.Append(at, message)
	}
	return lot
}

// ApplyDelta merges fieldName into the provenance, adds delta to the counts
// and records message in the audit trail. Buckets that would drop below zero
// are clamped and the cut-off amount is returned (and recorded) as shortfall.
func (l *Lot) ApplyDelta(at time.Time, fieldName string, delta Packets, message string) (shortfall Packets) {
	l.FieldName = l.FieldName.Merge(fieldName)
	l.Packets = l.Packets.Add(delta)
	if message != "" {
		l.Notes = l.Notes.Append(at, message)
	}
	l.UpdatedAt = at

	if l.Packets.HasNegative() {
		l.Packets, shortfall = l.Packets.Floor()
		l.Notes = l.Notes.Append(at, "Clamped negative counts to zero - "+shortfall.SignedBreakdown())
	}
	return shortfall
}

// MarshalJSON adds the derived total_packets field.
func (l Lot) MarshalJSON() ([]byte, error) {
	type lotJSON Lot
	return json.Marshal(struct {
		lotJSON
		TotalPackets int `json:"total_packets"`
	}{lotJSON(l), l.Packets.Total()})
}

// Provenance is the comma-joined set of field names that contributed to a lot.
type Provenance string

// Names returns the distinct field names in insertion order.
func (p Provenance) Names() []string {
	var names []string
	for _, name := range strings.Split(string(p), ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Contains reports whether name (trimmed, case-sensitive) is already recorded.
func (p Provenance) Contains(name string) bool {
	name = strings.TrimSpace(name)
	for _, n := range p.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Merge returns the provenance with name appended if it is not already present.
func (p Provenance) Merge(name string) Provenance {
	name = strings.TrimSpace(name)
	if name == "" || p.Contains(name) {
		return p
	}
	return Provenance(strings.Join(append(p.Names(), name), ", "))
}
