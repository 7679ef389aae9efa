package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/timecalc"
	"github.com/jackc/pgx/v5"
)

type workScheduleRepositoryImpl struct {
	db *database.DB
}

const workScheduleColumns = `
	id, user_id, day_of_week, is_working_day,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), to_char(break_start_time, 'HH24:MI'),
	break_duration_minutes, created_at, updated_at
`

func scanWorkSchedule(row pgx.Row) (schedule.WorkSchedule, error) {
	var (
		ws         schedule.WorkSchedule
		day        int16
		start, end *string
		breakStart *string
	)
	err := row.Scan(
		&ws.ID,
		&ws.UserID,
		&day,
		&ws.IsWorkingDay,
		&start,
		&end,
		&breakStart,
		&ws.BreakDurationMinutes,
		&ws.CreatedAt,
		&ws.UpdatedAt,
	)
	if err != nil {
		return schedule.WorkSchedule{}, err
	}

	if day < 0 || day > 6 {
		return schedule.WorkSchedule{}, fmt.Errorf("%w: %d", schedule.ErrInvalidDayOfWeek, day)
	}
	ws.DayOfWeek = time.Weekday(day)

	// times of a non-working day are not used in arithmetic
	if !ws.IsWorkingDay {
		return ws, nil
	}
	if start == nil || end == nil {
		ws.IsWorkingDay = false
		return ws, nil
	}
	if ws.StartTime, err = timecalc.ParseClock(*start); err != nil {
		return schedule.WorkSchedule{}, err
	}
	if ws.EndTime, err = timecalc.ParseClock(*end); err != nil {
		return schedule.WorkSchedule{}, err
	}
	if breakStart != nil {
		c, err := timecalc.ParseClock(*breakStart)
		if err != nil {
			return schedule.WorkSchedule{}, err
		}
		ws.BreakStartTime = &c
	}
	return ws, nil
}

// GetByUserAndDay implements schedule.WorkScheduleRepository.
func (r *workScheduleRepositoryImpl) GetByUserAndDay(ctx context.Context, userID string, day time.Weekday) (*schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workScheduleColumns + `
		FROM work_schedules
		WHERE user_id = $1 AND day_of_week = $2
	`

	ws, err := scanWorkSchedule(q.QueryRow(ctx, query, userID, int16(day)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ws, nil
}

// ListByUser implements schedule.WorkScheduleRepository.
func (r *workScheduleRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workScheduleColumns + `
		FROM work_schedules
		WHERE user_id = $1
		ORDER BY day_of_week
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []schedule.WorkSchedule
	for rows.Next() {
		ws, err := scanWorkSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, ws)
	}
	return schedules, rows.Err()
}

// ListUserIDs implements schedule.WorkScheduleRepository.
func (r *workScheduleRepositoryImpl) ListUserIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT user_id FROM work_schedules ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepositoryImpl{db: db}
}
