package store

import (
	"context"
	"database/sql"
	"fmt"

	domainerrors "github.com/farmbook/farmbook/internal/errors"
	"github.com/farmbook/farmbook/internal/model"
)

const lotColumns = `id, user_id, lot_number, field_name,
	small_packets, medium_packets, large_packets, xlarge_packets,
	storage_date, notes, photo IS NOT NULL, created_at, updated_at`

func scanLot(s scanner) (*model.Lot, error) {
	l := &model.Lot{}
	err := s.Scan(&l.ID, &l.UserID, &l.LotNumber, &l.FieldName,
		&l.Packets.Small, &l.Packets.Medium, &l.Packets.Large, &l.Packets.XLarge,
		&l.StorageDate, &l.Notes, &l.HasPhoto, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func scanLots(rows *sql.Rows) ([]model.Lot, error) {
	var lots []model.Lot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lot: %w", err)
		}
		lots = append(lots, *l)
	}
	return lots, rows.Err()
}

// FindLot returns the lot with the given number owned by userID.
func FindLot(ctx context.Context, q Querier, userID int64, lotNumber string) (*model.Lot, error) {
	l, err := scanLot(q.QueryRowContext(ctx,
		`SELECT `+lotColumns+` FROM lots WHERE user_id = ? AND lot_number = ?`, userID, lotNumber,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding lot %q: %w", lotNumber, err)
	}
	return l, nil
}

// GetLot returns a lot by ID if it belongs to userID.
func GetLot(ctx context.Context, q Querier, userID, id int64) (*model.Lot, error) {
	l, err := scanLot(q.QueryRowContext(ctx,
		`SELECT `+lotColumns+` FROM lots WHERE id = ? AND user_id = ?`, id, userID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting lot: %w", err)
	}
	return l, nil
}

// InsertLot stores a new lot and sets its ID. A lot number the user already
// has yields a DUPLICATE_LOT error.
func InsertLot(ctx context.Context, q Querier, l *model.Lot) error {
	result, err := q.ExecContext(ctx,
		`INSERT INTO lots (user_id, lot_number, field_name,
		                   small_packets, medium_packets, large_packets, xlarge_packets,
		                   storage_date, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.UserID, l.LotNumber, l.FieldName,
		l.Packets.Small, l.Packets.Medium, l.Packets.Large, l.Packets.XLarge,
		l.StorageDate, l.Notes, l.CreatedAt, l.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domainerrors.DuplicateLotf("lot number %q already exists", l.LotNumber)
	}
	if err != nil {
		return fmt.Errorf("inserting lot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting lot id: %w", err)
	}
	l.ID = id
	return nil
}

// SaveLot writes back the mutable state of a lot: number, provenance, counts,
// notes and updated_at. The storage date is never rewritten.
func SaveLot(ctx context.Context, q Querier, l *model.Lot) error {
	result, err := q.ExecContext(ctx,
		`UPDATE lots SET lot_number = ?, field_name = ?,
		        small_packets = ?, medium_packets = ?, large_packets = ?, xlarge_packets = ?,
		        notes = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		l.LotNumber, l.FieldName,
		l.Packets.Small, l.Packets.Medium, l.Packets.Large, l.Packets.XLarge,
		l.Notes, l.UpdatedAt, l.ID, l.UserID,
	)
	if isUniqueViolation(err) {
		return domainerrors.DuplicateLotf("lot number %q already exists", l.LotNumber)
	}
	if err != nil {
		return fmt.Errorf("saving lot %q: %w", l.LotNumber, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("saving lot %q: %w", l.LotNumber, err)
	}
	if n == 0 {
		return fmt.Errorf("saving lot %q: row %d vanished", l.LotNumber, l.ID)
	}
	return nil
}

// ListLots returns a user's lots, most recently stored first.
func ListLots(ctx context.Context, q Querier, userID int64) ([]model.Lot, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+lotColumns+` FROM lots WHERE user_id = ? ORDER BY storage_date DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing lots: %w", err)
	}
	defer rows.Close()

	return scanLots(rows)
}

// ListLotsByField returns the user's lots that fieldName contributed to.
func ListLotsByField(ctx context.Context, q Querier, userID int64, fieldName string) ([]model.Lot, error) {
	all, err := ListLots(ctx, q, userID)
	if err != nil {
		return nil, err
	}

	var lots []model.Lot
	for _, l := range all {
		if l.FieldName.Contains(fieldName) {
			lots = append(lots, l)
		}
	}
	return lots, nil
}

// DeleteLot removes a lot. Transportations that reference its number are
// left untouched.
func DeleteLot(ctx context.Context, q Querier, userID, id int64) (bool, error) {
	result, err := q.ExecContext(ctx, `DELETE FROM lots WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("deleting lot: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting lot: %w", err)
	}
	return n > 0, nil
}

// SetLotPhoto stores a photo of the lot.
func SetLotPhoto(ctx context.Context, q Querier, userID, id int64, data []byte, mime string) (bool, error) {
	result, err := q.ExecContext(ctx,
		`UPDATE lots SET photo = ?, photo_mime = ? WHERE id = ? AND user_id = ?`,
		data, mime, id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("setting lot photo: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("setting lot photo: %w", err)
	}
	return n > 0, nil
}

// GetLotPhoto returns the photo bytes and MIME type, or nil data if the lot
// has none.
func GetLotPhoto(ctx context.Context, q Querier, userID, id int64) ([]byte, string, error) {
	var data []byte
	var mime sql.NullString
	err := q.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM lots WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&data, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting lot photo: %w", err)
	}
	return data, mime.String, nil
}
