package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/recovery"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/timecalc"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type recoveryRepositoryImpl struct {
	db *database.DB
}

const recoveryColumns = `
	id, user_id, recovery_date,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	hours, reason, notes, status, balance_added, created_by, context,
	created_by_user_id, reviewed_by, reviewed_at, rejection_reason,
	settled_at, created_at, updated_at
`

func scanRecovery(row pgx.Row) (recovery.RecoveryRequest, error) {
	var (
		r          recovery.RecoveryRequest
		start, end string
	)
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.RecoveryDate,
		&start,
		&end,
		&r.Hours,
		&r.Reason,
		&r.Notes,
		&r.Status,
		&r.BalanceAdded,
		&r.CreatedBy,
		&r.Context,
		&r.CreatedByUserID,
		&r.ReviewedBy,
		&r.ReviewedAt,
		&r.RejectionReason,
		&r.SettledAt,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return recovery.RecoveryRequest{}, err
	}
	if r.StartTime, err = timecalc.ParseClock(start); err != nil {
		return recovery.RecoveryRequest{}, fmt.Errorf("recovery %s start_time: %w", r.ID, err)
	}
	if r.EndTime, err = timecalc.ParseClock(end); err != nil {
		return recovery.RecoveryRequest{}, fmt.Errorf("recovery %s end_time: %w", r.ID, err)
	}
	return r, nil
}

func collectRecoveries(rows pgx.Rows) ([]recovery.RecoveryRequest, error) {
	defer rows.Close()

	var out []recovery.RecoveryRequest
	for rows.Next() {
		r, err := scanRecovery(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Create implements recovery.RecoveryRepository.
func (r *recoveryRepositoryImpl) Create(ctx context.Context, req recovery.RecoveryRequest) (recovery.RecoveryRequest, error) {
	q := GetQuerier(ctx, r.db)

	if req.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return recovery.RecoveryRequest{}, err
		}
		req.ID = id.String()
	}

	query := `
		INSERT INTO recovery_requests (
			id, user_id, recovery_date, start_time, end_time, hours,
			reason, notes, status, balance_added, created_by, context,
			created_by_user_id, created_at, updated_at
		) VALUES (
			$1, $2, $3::date, $4::text::time, $5::text::time, $6,
			$7, $8, $9, FALSE, $10, $11,
			$12, NOW(), NOW()
		)
		RETURNING ` + recoveryColumns

	return scanRecovery(q.QueryRow(ctx, query,
		req.ID, req.UserID, req.RecoveryDate, req.StartTime.String(), req.EndTime.String(), req.Hours,
		req.Reason, req.Notes, req.Status, req.CreatedBy, req.Context,
		req.CreatedByUserID,
	))
}

// GetByID implements recovery.RecoveryRepository.
func (r *recoveryRepositoryImpl) GetByID(ctx context.Context, id string) (recovery.RecoveryRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recoveryColumns + ` FROM recovery_requests WHERE id = $1`

	req, err := scanRecovery(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return recovery.RecoveryRequest{}, recovery.ErrRecoveryNotFound
		}
		return recovery.RecoveryRequest{}, err
	}
	return req, nil
}

// conflict explains why a conditional update matched no row.
func (r *recoveryRepositoryImpl) conflict(ctx context.Context, id string) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.IsSettled() {
		return recovery.ErrImmutableSettlement
	}
	return recovery.ErrInvalidTransition
}

// UpdateDetails implements recovery.RecoveryRepository.
func (r *recoveryRepositoryImpl) UpdateDetails(ctx context.Context, req recovery.RecoveryRequest) (recovery.RecoveryRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE recovery_requests SET
			recovery_date = $2::date,
			start_time    = $3::text::time,
			end_time      = $4::text::time,
			hours         = $5,
			reason        = $6,
			notes         = $7,
			updated_at    = NOW()
		WHERE id = $1
		  AND status IN ('pending', 'proposed')
		  AND balance_added = FALSE
		RETURNING ` + recoveryColumns

	updated, err := scanRecovery(q.QueryRow(ctx, query,
		req.ID, req.RecoveryDate, req.StartTime.String(), req.EndTime.String(),
		req.Hours, req.Reason, req.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return recovery.RecoveryRequest{}, r.conflict(ctx, req.ID)
		}
		return recovery.RecoveryRequest{}, err
	}
	return updated, nil
}

// UpdateStatus implements recovery.RecoveryRepository.
func (r *recoveryRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to recovery.Status, reviewerID string, reason *string) (recovery.RecoveryRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE recovery_requests SET
			status           = $3,
			reviewed_by      = $4,
			reviewed_at      = NOW(),
			rejection_reason = $5,
			updated_at       = NOW()
		WHERE id = $1
		  AND status = $2
		  AND balance_added = FALSE
		RETURNING ` + recoveryColumns

	updated, err := scanRecovery(q.QueryRow(ctx, query, id, from, to, reviewerID, reason))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return recovery.RecoveryRequest{}, r.conflict(ctx, id)
		}
		return recovery.RecoveryRequest{}, err
	}
	return updated, nil
}

// MarkSettled implements recovery.RecoveryRepository.
func (r *recoveryRepositoryImpl) MarkSettled(ctx context.Context, id string, at time.Time) (recovery.RecoveryRequest, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE recovery_requests SET
			status        = 'completed',
			balance_added = TRUE,
			settled_at    = $2,
			updated_at    = NOW()
		WHERE id = $1
		  AND status = 'approved'
		  AND balance_added = FALSE
		RETURNING ` + recoveryColumns

	settled, err := scanRecovery(q.QueryRow(ctx, query, id, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return recovery.RecoveryRequest{}, false, nil
		}
		return recovery.RecoveryRequest{}, false, err
	}
	return settled, true, nil
}

// Delete implements recovery.RecoveryRepository.
func (r *recoveryRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM recovery_requests
		WHERE id = $1
		  AND balance_added = FALSE
		  AND status IN ('pending', 'proposed', 'approved')
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.conflict(ctx, id)
	}
	return nil
}

// List implements recovery.RecoveryRepository.
func (r *recoveryRepositoryImpl) List(ctx context.Context, filter recovery.RecoveryFilter) ([]recovery.RecoveryRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("recovery_date >= $%d::date", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("recovery_date <= $%d::date", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	whereClause := strings.Join(whereClauses, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM recovery_requests WHERE " + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	selectQuery := fmt.Sprintf(`SELECT %s FROM recovery_requests WHERE %s
		ORDER BY recovery_date DESC, start_time DESC
		LIMIT $%d OFFSET $%d`, recoveryColumns, whereClause, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	out, err := collectRecoveries(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListDue implements recovery.RecoveryRepository.
func (r *recoveryRepositoryImpl) ListDue(ctx context.Context, day time.Time) ([]recovery.RecoveryRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recoveryColumns + `
		FROM recovery_requests
		WHERE status = 'approved'
		  AND balance_added = FALSE
		  AND recovery_date <= $1::date
		ORDER BY recovery_date, end_time
	`

	rows, err := q.Query(ctx, query, day)
	if err != nil {
		return nil, err
	}
	return collectRecoveries(rows)
}

func NewRecoveryRepository(db *database.DB) recovery.RecoveryRepository {
	return &recoveryRepositoryImpl{db: db}
}
