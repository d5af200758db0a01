package model

import (
	"encoding/json"
	"time"
)

// Transportation records packets moved off a field into a lot on a date. It
// is the source of truth for how many packets moved, from where and when.
// The lot is referenced by number, not by id.
type Transportation struct {
	ID            int64     `json:"id"`
	FieldID       int64     `json:"field_id"`
	LotNumber     string    `json:"lot_number"`
	TransportDate Date      `json:"transport_date"`
	Packets       Packets   `json:"packets"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Joined from fields (not always populated).
	FieldName string `json:"field_name,omitempty"`
}

// MarshalJSON adds the derived total_packets field.
func (t Transportation) MarshalJSON() ([]byte, error) {
	type transportationJSON Transportation
	return json.Marshal(struct {
		transportationJSON
		TotalPackets int `json:"total_packets"`
	}{transportationJSON(t), t.Packets.Total()})
}
