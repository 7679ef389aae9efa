package schedule

import (
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/timecalc"
)

// Default break used by recovery sessions booked on days without a schedule.
var (
	DefaultBreakStart    = timecalc.NewClock(13, 0)
	DefaultBreakDuration = 60
)

// WorkSchedule is one user's work window for one weekday.
// DayOfWeek follows time.Weekday: 0=Sunday ... 6=Saturday.
type WorkSchedule struct {
	ID                   string
	UserID               string
	DayOfWeek            time.Weekday
	IsWorkingDay         bool
	StartTime            timecalc.Clock
	EndTime              timecalc.Clock
	BreakStartTime       *timecalc.Clock
	BreakDurationMinutes int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ContractMinutes is the scheduled work for the day, break excluded.
// Non-working days always yield 0.
func (s *WorkSchedule) ContractMinutes() int {
	if s == nil || !s.IsWorkingDay {
		return 0
	}
	return max(int(s.EndTime-s.StartTime)-max(s.BreakDurationMinutes, 0), 0)
}

// ContractHours is ContractMinutes in hours.
func (s *WorkSchedule) ContractHours() float64 {
	return timecalc.MinutesToHours(s.ContractMinutes())
}

// BreakWindowFor places the break for an effective work window.
// An explicit break start wins; otherwise the break is centered on the
// midpoint of the window and clamped into it, provided the window is longer
// than the break.
func (s *WorkSchedule) BreakWindowFor(start, end timecalc.Clock) timecalc.BreakWindow {
	if s == nil || s.BreakDurationMinutes <= 0 {
		return timecalc.NoBreak
	}
	if s.BreakStartTime != nil {
		return timecalc.BreakWindow{Start: *s.BreakStartTime, Duration: s.BreakDurationMinutes}
	}

	total := int(end - start)
	if total <= s.BreakDurationMinutes {
		return timecalc.NoBreak
	}

	mid := int(start) + total/2
	lo := max(mid-s.BreakDurationMinutes/2, int(start))
	hi := min(lo+s.BreakDurationMinutes, int(end))
	if hi <= lo {
		return timecalc.NoBreak
	}
	return timecalc.BreakWindow{Start: timecalc.Clock(lo), Duration: hi - lo}
}

// BreakWindow is the break over the full scheduled window.
func (s *WorkSchedule) BreakWindow() timecalc.BreakWindow {
	if s == nil {
		return timecalc.NoBreak
	}
	return s.BreakWindowFor(s.StartTime, s.EndTime)
}

// RecoveryBreakWindow is the break a recovery session on a given day must skip:
// the schedule's break on working days, the company default otherwise.
func RecoveryBreakWindow(s *WorkSchedule) timecalc.BreakWindow {
	if s != nil && s.IsWorkingDay {
		return s.BreakWindow()
	}
	return timecalc.BreakWindow{Start: DefaultBreakStart, Duration: DefaultBreakDuration}
}
