package model

import "time"

// Field is a plot of land owned by a user. Transportations reference it for
// ownership and to stamp the field name onto lots.
type Field struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"-"`
	Name       string    `json:"field_name"`
	Location   string    `json:"location,omitempty"`
	Area       float64   `json:"area"`
	PotatoType string    `json:"potato_type,omitempty"`
	Season     string    `json:"season,omitempty"`
	Year       int       `json:"year"`
	CreatedAt  time.Time `json:"created_at"`
}
