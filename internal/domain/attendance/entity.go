package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/leave"
)

// Status is the closed set of day states derived by the status calculator.
type Status string

const (
	StatusNotStarted    Status = "not_started"
	StatusWorking       Status = "working"
	StatusOnBreak       Status = "on_break"
	StatusCompleted     Status = "completed"
	StatusAbsent        Status = "absent"
	StatusSickLeave     Status = "sick_leave"
	StatusVacation      Status = "vacation"
	StatusPermission104 Status = "permission_104"
	StatusNonWorkingDay Status = "non_working_day"
	StatusScheduled     Status = "scheduled"

	// Recovery session states, shown on days carrying a recovery request.
	StatusRecoveryScheduled Status = "recovery_scheduled"
	StatusRecoveryActive    Status = "recovery_active"
	StatusRecoveryCompleted Status = "recovery_completed"
)

var validStatuses = map[Status]struct{}{
	StatusNotStarted: {}, StatusWorking: {}, StatusOnBreak: {}, StatusCompleted: {},
	StatusAbsent: {}, StatusSickLeave: {}, StatusVacation: {}, StatusPermission104: {},
	StatusNonWorkingDay: {}, StatusScheduled: {},
	StatusRecoveryScheduled: {}, StatusRecoveryActive: {}, StatusRecoveryCompleted: {},
}

func (s Status) IsValid() bool {
	_, ok := validStatuses[s]
	return ok
}

func (s Status) String() string { return string(s) }

// StatusForOverride maps a full-day override to its day status.
func StatusForOverride(kind leave.OverrideKind) Status {
	switch kind {
	case leave.OverrideSickLeave:
		return StatusSickLeave
	case leave.OverrideVacation:
		return StatusVacation
	case leave.OverridePermission104:
		return StatusPermission104
	}
	return ""
}

// AttendanceRecord is the stored row for one (user, date). For past dates
// only ActualHours is trusted; expected hours are always recomputed.
type AttendanceRecord struct {
	ID            string
	UserID        string
	Date          time.Time
	ExpectedHours float64
	ActualHours   float64
	BalanceHours  float64
	Status        Status
	IsVacation    bool
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IndicatesSickLeave reports whether the record's notes mark the day as sick leave.
func (r *AttendanceRecord) IndicatesSickLeave() bool {
	if r == nil {
		return false
	}
	if r.Status == StatusSickLeave {
		return true
	}
	if r.Notes == nil {
		return false
	}
	notes := strings.ToLower(*r.Notes)
	return strings.Contains(notes, "sick") || strings.Contains(notes, "malattia")
}

// StatusResult is the outcome of a status computation for one day.
type StatusResult struct {
	Date          time.Time
	ExpectedHours float64
	ActualHours   float64
	BalanceHours  float64
	Status        Status
	// Ambiguous is set when more than one full-day override covered the date.
	Ambiguous bool
}
