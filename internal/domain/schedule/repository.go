package schedule

import (
	"context"
	"time"
)

// WorkScheduleRepository is the Schedule Provider. Schedules are maintained by
// the HR profile workflow; this subsystem only reads them.
type WorkScheduleRepository interface {
	// GetByUserAndDay returns nil, nil when the user has no row for that weekday.
	GetByUserAndDay(ctx context.Context, userID string, day time.Weekday) (*WorkSchedule, error)
	ListByUser(ctx context.Context, userID string) ([]WorkSchedule, error)
	// ListUserIDs returns every user with at least one schedule row.
	ListUserIDs(ctx context.Context) ([]string, error)
}
