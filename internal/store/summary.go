package store

import (
	"context"
	"fmt"

	"github.com/farmbook/farmbook/internal/model"
)

// GetSummary totals userID's fields, lots and packets per size bucket.
func GetSummary(ctx context.Context, q Querier, userID int64) (*model.Summary, error) {
	s := &model.Summary{}

	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM fields WHERE user_id = ?`, userID,
	).Scan(&s.TotalFields)
	if err != nil {
		return nil, fmt.Errorf("counting fields: %w", err)
	}

	err = q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(t.small_packets), 0), COALESCE(SUM(t.medium_packets), 0),
		        COALESCE(SUM(t.large_packets), 0), COALESCE(SUM(t.xlarge_packets), 0)
		 FROM transportations t
		 JOIN fields f ON f.id = t.field_id
		 WHERE f.user_id = ?`, userID,
	).Scan(&s.Transported.Small, &s.Transported.Medium, &s.Transported.Large, &s.Transported.XLarge)
	if err != nil {
		return nil, fmt.Errorf("summing transportations: %w", err)
	}

	err = q.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(small_packets), 0), COALESCE(SUM(medium_packets), 0),
		        COALESCE(SUM(large_packets), 0), COALESCE(SUM(xlarge_packets), 0)
		 FROM lots WHERE user_id = ?`, userID,
	).Scan(&s.TotalLots, &s.InLots.Small, &s.InLots.Medium, &s.InLots.Large, &s.InLots.XLarge)
	if err != nil {
		return nil, fmt.Errorf("summing lots: %w", err)
	}

	s.TotalTransported = s.Transported.Total()
	s.TotalInLots = s.InLots.Total()
	return s, nil
}
