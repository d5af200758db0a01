package store

import (
	"context"
	"database/sql"
	"fmt"

	domainerrors "github.com/farmbook/farmbook/internal/errors"
	"github.com/farmbook/farmbook/internal/model"
)

const fieldColumns = `id, user_id, field_name, location, area, potato_type, season, year, created_at`

func scanField(s scanner) (*model.Field, error) {
	f := &model.Field{}
	err := s.Scan(&f.ID, &f.UserID, &f.Name, &f.Location, &f.Area, &f.PotatoType, &f.Season, &f.Year, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// CreateField inserts a field owned by f.UserID and returns the stored row.
func CreateField(ctx context.Context, q Querier, f *model.Field) (*model.Field, error) {
	result, err := q.ExecContext(ctx,
		`INSERT INTO fields (user_id, field_name, location, area, potato_type, season, year)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.UserID, f.Name, f.Location, f.Area, f.PotatoType, f.Season, f.Year,
	)
	if err != nil {
		return nil, fmt.Errorf("creating field: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting field id: %w", err)
	}

	return GetField(ctx, q, f.UserID, id)
}

// GetField returns a field by ID if it belongs to userID.
func GetField(ctx context.Context, q Querier, userID, id int64) (*model.Field, error) {
	f, err := scanField(q.QueryRowContext(ctx,
		`SELECT `+fieldColumns+` FROM fields WHERE id = ? AND user_id = ?`, id, userID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting field: %w", err)
	}
	return f, nil
}

// ListFields returns all fields of a user, newest season first.
func ListFields(ctx context.Context, q Querier, userID int64) ([]model.Field, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+fieldColumns+` FROM fields WHERE user_id = ? ORDER BY year DESC, field_name`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing fields: %w", err)
	}
	defer rows.Close()

	var fields []model.Field
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning field: %w", err)
		}
		fields = append(fields, *f)
	}
	return fields, rows.Err()
}

// UpdateField overwrites the editable attributes of a field. Returns false if
// the field does not exist or is not owned by f.UserID.
func UpdateField(ctx context.Context, q Querier, f *model.Field) (bool, error) {
	result, err := q.ExecContext(ctx,
		`UPDATE fields SET field_name = ?, location = ?, area = ?, potato_type = ?, season = ?, year = ?
		 WHERE id = ? AND user_id = ?`,
		f.Name, f.Location, f.Area, f.PotatoType, f.Season, f.Year, f.ID, f.UserID,
	)
	if err != nil {
		return false, fmt.Errorf("updating field: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating field: %w", err)
	}
	return n > 0, nil
}

// CountFieldTransportations returns how many transportations reference a field.
func CountFieldTransportations(ctx context.Context, q Querier, fieldID int64) (int, error) {
	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transportations WHERE field_id = ?`, fieldID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting field transportations: %w", err)
	}
	return count, nil
}

// DeleteField deletes a field. Fails if any transportation still references it.
func DeleteField(ctx context.Context, q Querier, userID, id int64) (bool, error) {
	count, err := CountFieldTransportations(ctx, q, id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, domainerrors.Conflict(fmt.Sprintf("field is still referenced by %d transportations", count))
	}

	result, err := q.ExecContext(ctx, `DELETE FROM fields WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("deleting field: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting field: %w", err)
	}
	return n > 0, nil
}
