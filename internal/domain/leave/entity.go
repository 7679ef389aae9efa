package leave

import (
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/timecalc"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusWaitingApproval LeaveRequestStatus = "waiting_approval"
	LeaveRequestStatusApproved        LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected        LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled       LeaveRequestStatus = "cancelled"
)

// OverrideKind tags the leave or permission variants that change how a day is counted.
type OverrideKind string

const (
	OverrideSickLeave     OverrideKind = "sick_leave"
	OverrideVacation      OverrideKind = "vacation"
	OverridePermission104 OverrideKind = "permission_104"
	OverrideEarlyExit     OverrideKind = "early_exit"
	OverrideLateEntry     OverrideKind = "late_entry"
)

// FullDayPrecedence ranks the full-day overrides: the first kind covering a
// date decides the day.
var FullDayPrecedence = []OverrideKind{
	OverrideSickLeave,
	OverrideVacation,
	OverridePermission104,
}

func (k OverrideKind) IsFullDay() bool {
	switch k {
	case OverrideSickLeave, OverrideVacation, OverridePermission104:
		return true
	}
	return false
}

func (k OverrideKind) IsPartialDay() bool {
	return k == OverrideEarlyExit || k == OverrideLateEntry
}

// Override is an approved leave or permission as seen by the status calculator.
// Full-day kinds span [StartDate, EndDate]; partial-day kinds carry the clock
// time of the early exit or late entry in Time.
type Override struct {
	ID        string
	UserID    string
	Kind      OverrideKind
	StartDate time.Time
	EndDate   time.Time
	Time      *timecalc.Clock
	Status    LeaveRequestStatus
	Reason    *string
}

// Covers reports whether the override applies to the calendar day of date.
func (o Override) Covers(date time.Time) bool {
	d := civil(date)
	return !d.Before(civil(o.StartDate)) && !d.After(civil(o.EndDate))
}

func (o Override) IsApproved() bool {
	return o.Status == LeaveRequestStatusApproved
}

// Resolution is the outcome of ranking a day's overrides.
type Resolution struct {
	// FullDay is the winning full-day kind, empty when none applies.
	FullDay OverrideKind
	// EarlyExit moves the effective end of the day earlier.
	EarlyExit *timecalc.Clock
	// LateEntry moves the effective start of the day later.
	LateEntry *timecalc.Clock
	// Conflicting lists every full-day kind that covered the date when more than one did.
	Conflicting []OverrideKind
}

func (r Resolution) HasFullDay() bool { return r.FullDay != "" }

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
