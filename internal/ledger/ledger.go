// Package ledger keeps lots consistent with the transportations that feed
// them. Every exported mutation runs in one database transaction: the lot
// deltas, the audit entries and the transportation row commit together or
// not at all.
package ledger

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	domainerrors "github.com/farmbook/farmbook/internal/errors"
	"github.com/farmbook/farmbook/internal/model"
	"github.com/farmbook/farmbook/internal/validation"
)

// Ledger reconciles transportations and lots for one database.
type Ledger struct {
	DB     *sql.DB
	Logger *slog.Logger
	// Now stamps audit entries and updated_at. Defaults to time.Now.
	Now func() time.Time

	validator *validation.Validator
}

// New returns a ledger over db that logs through logger.
func New(db *sql.DB, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{DB: db, Logger: logger, Now: time.Now, validator: validation.New()}
}

func (l *Ledger) now() time.Time {
	if l.Now == nil {
		return time.Now().UTC()
	}
	return l.Now().UTC()
}

func (l *Ledger) validate(v any) error {
	if l.validator == nil {
		l.validator = validation.New()
	}
	return l.validator.Validate(v)
}

func (l *Ledger) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

// inTx runs fn inside a write transaction. The connection is opened with
// _txlock=immediate, so BEGIN already holds the write lock and concurrent
// reconciliations on the same lot run one after another. Any error from fn
// rolls everything back; storage errors surface as TRANSACTION_FAILED.
func (l *Ledger) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return domainerrors.TransactionFailed(op, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		var domainErr *domainerrors.Error
		if domainerrors.As(err, &domainErr) {
			return err
		}
		return domainerrors.TransactionFailed(op, err)
	}

	if err := tx.Commit(); err != nil {
		return domainerrors.TransactionFailed(op, err)
	}
	return nil
}

// applyDelta is (*model.Lot).ApplyDelta plus a warning when the lot had to
// be clamped at zero.
func (l *Ledger) applyDelta(lot *model.Lot, at time.Time, fieldName string, delta model.Packets, message string) {
	shortfall := lot.ApplyDelta(at, fieldName, delta, message)
	if !shortfall.IsZero() {
		l.logger().Warn("lot clamped at zero",
			"owner", lot.UserID,
			"lot", lot.LotNumber,
			"shortfall", shortfall.SignedBreakdown(),
		)
	}
}
