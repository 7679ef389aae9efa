package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/timecalc"
)

type leaveOverrideRepositoryImpl struct {
	db *database.DB
}

// GetApprovedOverrides implements leave.OverrideRepository.
func (r *leaveOverrideRepositoryImpl) GetApprovedOverrides(ctx context.Context, userID string, date time.Time) ([]leave.Override, error) {
	return r.ListApprovedOverrides(ctx, userID, date, date)
}

// ListApprovedOverrides implements leave.OverrideRepository.
func (r *leaveOverrideRepositoryImpl) ListApprovedOverrides(ctx context.Context, userID string, from, to time.Time) ([]leave.Override, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, kind, start_date, end_date, to_char(permission_time, 'HH24:MI'), status, reason
		FROM leave_requests
		WHERE user_id = $1
		  AND status = $2
		  AND start_date <= $4::date
		  AND end_date >= $3::date
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, userID, leave.LeaveRequestStatusApproved, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overrides []leave.Override
	for rows.Next() {
		var (
			o        leave.Override
			permTime *string
		)
		err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.Kind,
			&o.StartDate,
			&o.EndDate,
			&permTime,
			&o.Status,
			&o.Reason,
		)
		if err != nil {
			return nil, err
		}
		if permTime != nil {
			c, err := timecalc.ParseClock(*permTime)
			if err != nil {
				return nil, err
			}
			o.Time = &c
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}

func NewLeaveOverrideRepository(db *database.DB) leave.OverrideRepository {
	return &leaveOverrideRepositoryImpl{db: db}
}
