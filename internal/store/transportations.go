package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/farmbook/farmbook/internal/model"
)

// Ownership of a transportation is the ownership of its field.
const transportationSelect = `SELECT t.id, t.field_id, t.lot_number, t.transport_date,
	        t.small_packets, t.medium_packets, t.large_packets, t.xlarge_packets,
	        t.notes, t.created_at, t.updated_at, f.field_name
	 FROM transportations t
	 JOIN fields f ON f.id = t.field_id`

func scanTransportation(s scanner) (*model.Transportation, error) {
	t := &model.Transportation{}
	var notes sql.NullString
	err := s.Scan(&t.ID, &t.FieldID, &t.LotNumber, &t.TransportDate,
		&t.Packets.Small, &t.Packets.Medium, &t.Packets.Large, &t.Packets.XLarge,
		&notes, &t.CreatedAt, &t.UpdatedAt, &t.FieldName)
	if err != nil {
		return nil, err
	}
	t.Notes = notes.String
	return t, nil
}

func scanTransportations(rows *sql.Rows) ([]model.Transportation, error) {
	var list []model.Transportation
	for rows.Next() {
		t, err := scanTransportation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transportation: %w", err)
		}
		list = append(list, *t)
	}
	return list, rows.Err()
}

// GetTransportation returns a transportation by ID if its field belongs to userID.
func GetTransportation(ctx context.Context, q Querier, userID, id int64) (*model.Transportation, error) {
	t, err := scanTransportation(q.QueryRowContext(ctx,
		transportationSelect+` WHERE t.id = ? AND f.user_id = ?`, id, userID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting transportation: %w", err)
	}
	return t, nil
}

// ListTransportations returns all of a user's transportations, newest first.
func ListTransportations(ctx context.Context, q Querier, userID int64) ([]model.Transportation, error) {
	rows, err := q.QueryContext(ctx,
		transportationSelect+` WHERE f.user_id = ? ORDER BY t.transport_date DESC, t.id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing transportations: %w", err)
	}
	defer rows.Close()

	return scanTransportations(rows)
}

// ListTransportationsByField returns the transportations off one field, newest first.
func ListTransportationsByField(ctx context.Context, q Querier, userID, fieldID int64) ([]model.Transportation, error) {
	rows, err := q.QueryContext(ctx,
		transportationSelect+` WHERE f.user_id = ? AND t.field_id = ?
		 ORDER BY t.transport_date DESC, t.id DESC`, userID, fieldID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing field transportations: %w", err)
	}
	defer rows.Close()

	return scanTransportations(rows)
}

// ListTransportationsByLot returns the user's transportations into one lot number.
func ListTransportationsByLot(ctx context.Context, q Querier, userID int64, lotNumber string) ([]model.Transportation, error) {
	rows, err := q.QueryContext(ctx,
		transportationSelect+` WHERE f.user_id = ? AND t.lot_number = ?
		 ORDER BY t.transport_date DESC, t.id DESC`, userID, lotNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("listing lot transportations: %w", err)
	}
	defer rows.Close()

	return scanTransportations(rows)
}

// InsertTransportation stores a new transportation and sets its ID.
func InsertTransportation(ctx context.Context, q Querier, t *model.Transportation) error {
	result, err := q.ExecContext(ctx,
		`INSERT INTO transportations (field_id, lot_number, transport_date,
		                              small_packets, medium_packets, large_packets, xlarge_packets,
		                              notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.FieldID, t.LotNumber, t.TransportDate,
		t.Packets.Small, t.Packets.Medium, t.Packets.Large, t.Packets.XLarge,
		nullString(t.Notes), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting transportation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting transportation id: %w", err)
	}
	t.ID = id
	return nil
}

// SaveTransportation writes back every mutable column of a transportation.
func SaveTransportation(ctx context.Context, q Querier, t *model.Transportation) error {
	_, err := q.ExecContext(ctx,
		`UPDATE transportations SET field_id = ?, lot_number = ?, transport_date = ?,
		        small_packets = ?, medium_packets = ?, large_packets = ?, xlarge_packets = ?,
		        notes = ?, updated_at = ?
		 WHERE id = ?`,
		t.FieldID, t.LotNumber, t.TransportDate,
		t.Packets.Small, t.Packets.Medium, t.Packets.Large, t.Packets.XLarge,
		nullString(t.Notes), t.UpdatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("saving transportation: %w", err)
	}
	return nil
}

// DeleteTransportation deletes a transportation row.
func DeleteTransportation(ctx context.Context, q Querier, id int64) error {
	_, err := q.ExecContext(ctx, `DELETE FROM transportations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting transportation: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
