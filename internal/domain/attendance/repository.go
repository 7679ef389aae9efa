package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the Record Store for daily attendance rows.
type AttendanceRepository interface {
	// GetByUserAndDate returns nil, nil when no row exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*AttendanceRecord, error)

	// ListByUserAndRange returns rows with from <= date <= to ordered by date.
	ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]AttendanceRecord, error)

	// UpsertComputed stores expected, balance and status for a day. An
	// existing actual_hours value is never overwritten.
	UpsertComputed(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)
}
