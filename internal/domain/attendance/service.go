package attendance

import (
	"context"
	"time"
)

// AttendanceService exposes the status calculator to the transport layer.
type AttendanceService interface {
	// GetMyStatus computes the caller's status for a date as of now.
	GetMyStatus(ctx context.Context, req StatusRequest) (StatusResponse, error)

	// GetUserStatus computes another user's status (admin).
	GetUserStatus(ctx context.Context, userID string, req StatusRequest) (StatusResponse, error)

	// ListDays computes the status of every day in a range.
	ListDays(ctx context.Context, filter DayRangeFilter) (ListDaysResponse, error)

	// ComputeDay computes a user's status for date without authorization checks.
	// Used by the ledger and by scheduled jobs.
	ComputeDay(ctx context.Context, userID string, date time.Time, now time.Time) (StatusResult, error)

	// ComputeRange computes every day in [from, to].
	ComputeRange(ctx context.Context, userID string, from, to time.Time, now time.Time) ([]StatusResult, error)

	// FinalizeDay persists the computed record of date for every scheduled user.
	FinalizeDay(ctx context.Context, date time.Time) (FinalizeResult, error)
}
