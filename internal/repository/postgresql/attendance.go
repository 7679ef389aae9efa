package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

const attendanceColumns = `
	id, user_id, date, expected_hours, actual_hours, balance_hours,
	status, is_vacation, notes, created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.AttendanceRecord, error) {
	var a attendance.AttendanceRecord
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Date,
		&a.ExpectedHours,
		&a.ActualHours,
		&a.BalanceHours,
		&a.Status,
		&a.IsVacation,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE user_id = $1 AND date = $2::date
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// ListByUserAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE user_id = $1 AND date BETWEEN $2::date AND $3::date
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// UpsertComputed implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpsertComputed(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	// actual_hours is owned by clocking and admin edits; keep the stored value
	query := `
		INSERT INTO attendance_records (
			id, user_id, date, expected_hours, actual_hours, balance_hours,
			status, is_vacation, notes, created_at, updated_at
		) VALUES (
			$1, $2, $3::date, $4, $5, $6,
			$7, $8, $9, NOW(), NOW()
		)
		ON CONFLICT (user_id, date) DO UPDATE SET
			expected_hours = EXCLUDED.expected_hours,
			balance_hours  = attendance_records.actual_hours - EXCLUDED.expected_hours,
			status         = EXCLUDED.status,
			is_vacation    = attendance_records.is_vacation OR EXCLUDED.is_vacation,
			updated_at     = NOW()
		RETURNING ` + attendanceColumns

	return scanAttendance(q.QueryRow(ctx, query,
		id.String(), record.UserID, record.Date,
		record.ExpectedHours, record.ActualHours, record.BalanceHours,
		record.Status, record.IsVacation, record.Notes,
	))
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}
