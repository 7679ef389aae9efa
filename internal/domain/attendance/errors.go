package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidDateRange   = errors.New("end_date must not be before start_date")
	ErrDateRangeTooLong   = errors.New("date range must not exceed 366 days")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
)
