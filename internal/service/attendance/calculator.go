package attendance

import (
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/timecalc"
)

// DayInput is everything the calculator needs for one (user, date).
// Date and Now must be expressed in the same location.
type DayInput struct {
	Date      time.Time
	Now       time.Time
	Schedule  *schedule.WorkSchedule // nil when the user has no row for the weekday
	Overrides leave.Resolution
	Record    *attendance.AttendanceRecord // stored row, nil when absent
}

// ComputeStatus derives expected, actual and balance hours and the status of
// a day. It is pure: the same input always yields the same result.
func ComputeStatus(in DayInput) attendance.StatusResult {
	date := dayOf(in.Date)
	res := attendance.StatusResult{
		Date:      date,
		Ambiguous: len(in.Overrides.Conflicting) > 1,
	}

	expectedMinutes := in.Schedule.ContractMinutes()

	switch in.Overrides.FullDay {
	case leave.OverrideSickLeave, leave.OverrideVacation:
		res.Status = attendance.StatusForOverride(in.Overrides.FullDay)
		return res
	case leave.OverridePermission104:
		res.Status = attendance.StatusPermission104
		res.ExpectedHours = timecalc.MinutesToHours(expectedMinutes)
		return res
	}

	today := dayOf(in.Now)
	if in.Schedule == nil || !in.Schedule.IsWorkingDay {
		res.Status = attendance.StatusNonWorkingDay
		// hours worked on a day off are pure credit
		if date.Before(today) && in.Record != nil && in.Record.ActualHours > 0 {
			res.ActualHours = timecalc.RoundHours(in.Record.ActualHours)
			res.BalanceHours = res.ActualHours
		}
		return res
	}

	switch {
	case date.Before(today):
		return computePast(res, expectedMinutes, in.Record)
	case date.After(today):
		res.Status = attendance.StatusScheduled
		res.ExpectedHours = timecalc.MinutesToHours(expectedMinutes)
		return res
	}

	return computeToday(res, in, expectedMinutes)
}

func computePast(res attendance.StatusResult, expectedMinutes int, record *attendance.AttendanceRecord) attendance.StatusResult {
	actual := 0.0
	if record != nil {
		actual = timecalc.RoundHours(record.ActualHours)
	}
	expected := timecalc.MinutesToHours(expectedMinutes)

	res.ActualHours = actual
	res.ExpectedHours = expected
	res.BalanceHours = timecalc.RoundHours(actual - expected)

	switch {
	case record != nil && record.IsVacation:
		res.Status = attendance.StatusVacation
		res.ExpectedHours = 0
		res.BalanceHours = 0
	case actual == 0 && expected > 0:
		res.Status = attendance.StatusAbsent
	case record.IndicatesSickLeave():
		res.Status = attendance.StatusSickLeave
		res.ExpectedHours = 0
		res.BalanceHours = 0
	case expected == 0:
		res.Status = attendance.StatusNonWorkingDay
	default:
		res.Status = attendance.StatusCompleted
	}
	return res
}

func computeToday(res attendance.StatusResult, in DayInput, expectedMinutes int) attendance.StatusResult {
	start, end := effectiveWindow(in.Schedule, in.Overrides)
	bw := in.Schedule.BreakWindowFor(start, end)
	now := timecalc.ClockOf(in.Now)

	res.ExpectedHours = timecalc.MinutesToHours(expectedMinutes)

	var actualMinutes int
	switch {
	case end <= start || now < start:
		res.Status = attendance.StatusNotStarted
	case now < end:
		if bw.Contains(now) {
			res.Status = attendance.StatusOnBreak
		} else {
			res.Status = attendance.StatusWorking
		}
		actualMinutes, _ = timecalc.NetWorkedMinutes(start, now, bw)
	default:
		res.Status = attendance.StatusCompleted
		actualMinutes, _ = timecalc.NetWorkedMinutes(start, end, bw)
		if in.Record != nil && in.Record.ActualHours > 0 {
			actualMinutes = timecalc.HoursToMinutes(in.Record.ActualHours)
		}
	}

	res.ActualHours = timecalc.MinutesToHours(actualMinutes)
	res.BalanceHours = timecalc.MinutesToHours(actualMinutes - expectedMinutes)
	return res
}

// effectiveWindow applies late entry and early exit permissions to the
// scheduled window. Permissions never widen the window.
func effectiveWindow(s *schedule.WorkSchedule, r leave.Resolution) (start, end timecalc.Clock) {
	start, end = s.StartTime, s.EndTime
	if r.LateEntry != nil && *r.LateEntry > start {
		start = *r.LateEntry
	}
	if r.EarlyExit != nil && *r.EarlyExit < end {
		end = *r.EarlyExit
	}
	return start, end
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
