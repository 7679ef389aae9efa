package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ledgerRepositoryImpl struct {
	db *database.DB
}

const ledgerColumns = `
	id, user_id, date, type, hours, reference_type, reference_id,
	description, notes, created_by, created_at
`

func scanLedgerEntry(row pgx.Row) (ledger.LedgerEntry, error) {
	var e ledger.LedgerEntry
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Date,
		&e.Type,
		&e.Hours,
		&e.ReferenceType,
		&e.ReferenceID,
		&e.Description,
		&e.Notes,
		&e.CreatedBy,
		&e.CreatedAt,
	)
	return e, err
}

// AppendEntry implements ledger.LedgerRepository.
func (r *ledgerRepositoryImpl) AppendEntry(ctx context.Context, entry ledger.LedgerEntry) (ledger.LedgerEntry, bool, error) {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return ledger.LedgerEntry{}, false, err
		}
		entry.ID = id.String()
	}

	query := `
		INSERT INTO ledger_entries (
			id, user_id, date, type, hours, reference_type, reference_id,
			description, notes, created_by, created_at
		) VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (reference_type, reference_id) DO NOTHING
		RETURNING ` + ledgerColumns

	created, err := scanLedgerEntry(q.QueryRow(ctx, query,
		entry.ID, entry.UserID, entry.Date, entry.Type, entry.Hours,
		entry.ReferenceType, entry.ReferenceID, entry.Description,
		entry.Notes, entry.CreatedBy,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.LedgerEntry{}, false, nil
		}
		return ledger.LedgerEntry{}, false, err
	}
	return created, true, nil
}

// SumCredits implements ledger.LedgerRepository.
func (r *ledgerRepositoryImpl) SumCredits(ctx context.Context, userID string, from, to time.Time) (ledger.Credits, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(hours) FILTER (WHERE type = $4), 0),
			COALESCE(SUM(hours) FILTER (WHERE type = $5), 0)
		FROM ledger_entries
		WHERE user_id = $1 AND date BETWEEN $2::date AND $3::date
	`

	var c ledger.Credits
	err := q.QueryRow(ctx, query, userID, from, to,
		ledger.EntryTypeManualCredit, ledger.EntryTypeRecoverySettlement,
	).Scan(&c.Manual, &c.Recovery)
	if err != nil {
		return ledger.Credits{}, err
	}
	return c, nil
}

// ListByUser implements ledger.LedgerRepository.
func (r *ledgerRepositoryImpl) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]ledger.LedgerEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE user_id = $1 AND date BETWEEN $2::date AND $3::date
		ORDER BY date DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ledger.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetByReference implements ledger.LedgerRepository.
func (r *ledgerRepositoryImpl) GetByReference(ctx context.Context, referenceType, referenceID string) (*ledger.LedgerEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE reference_type = $1 AND reference_id = $2
	`

	e, err := scanLedgerEntry(q.QueryRow(ctx, query, referenceType, referenceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func NewLedgerRepository(db *database.DB) ledger.LedgerRepository {
	return &ledgerRepositoryImpl{db: db}
}
