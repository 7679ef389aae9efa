package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/timecalc"
	"github.com/stretchr/testify/assert"
)

var rome = mustLoad("Europe/Rome")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func clock(s string) *timecalc.Clock {
	c := timecalc.MustParseClock(s)
	return &c
}

// Monday 2025-10-06.
func at(day int, hhmm string) time.Time {
	c := timecalc.MustParseClock(hhmm)
	return time.Date(2025, time.October, day, c.Hour(), c.Minute(), 0, 0, rome)
}

func standardSchedule() *schedule.WorkSchedule {
	return &schedule.WorkSchedule{
		UserID:               "user-1",
		DayOfWeek:            time.Monday,
		IsWorkingDay:         true,
		StartTime:            *clock("09:00"),
		EndTime:              *clock("18:00"),
		BreakStartTime:       clock("13:00"),
		BreakDurationMinutes: 60,
	}
}

func TestComputeStatus_Today(t *testing.T) {
	cases := []struct {
		name     string
		now      string
		status   attendance.Status
		actual   float64
		expected float64
		balance  float64
	}{
		{"before start", "08:30", attendance.StatusNotStarted, 0, 8, -8},
		{"at start", "09:00", attendance.StatusWorking, 0, 8, -8},
		{"mid morning", "12:00", attendance.StatusWorking, 3, 8, -5},
		{"on break", "13:30", attendance.StatusOnBreak, 4, 8, -4},
		{"break end", "14:00", attendance.StatusWorking, 4, 8, -4},
		{"afternoon", "16:15", attendance.StatusWorking, 6.25, 8, -1.75},
		{"at end", "18:00", attendance.StatusCompleted, 8, 8, 0},
		{"after end", "18:30", attendance.StatusCompleted, 8, 8, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ComputeStatus(DayInput{
				Date:     at(6, "00:00"),
				Now:      at(6, c.now),
				Schedule: standardSchedule(),
			})
			assert.Equal(t, c.status, got.Status)
			assert.Equal(t, c.actual, got.ActualHours)
			assert.Equal(t, c.expected, got.ExpectedHours)
			assert.Equal(t, c.balance, got.BalanceHours)
		})
	}
}

func TestComputeStatus_NothingWorkedBeforeStart(t *testing.T) {
	s := standardSchedule()
	for m := 0; m < int(s.StartTime); m++ {
		now := time.Date(2025, time.October, 6, m/60, m%60, 0, 0, rome)
		got := ComputeStatus(DayInput{Date: now, Now: now, Schedule: s})
		if !assert.Equal(t, attendance.StatusNotStarted, got.Status, "minute %d", m) {
			return
		}
		if !assert.Zero(t, got.ActualHours, "minute %d", m) {
			return
		}
	}
}

func TestComputeStatus_FullDayOverrides(t *testing.T) {
	cases := []struct {
		name     string
		kind     leave.OverrideKind
		status   attendance.Status
		expected float64
	}{
		{"sick leave", leave.OverrideSickLeave, attendance.StatusSickLeave, 0},
		{"vacation", leave.OverrideVacation, attendance.StatusVacation, 0},
		{"permission 104", leave.OverridePermission104, attendance.StatusPermission104, 8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ComputeStatus(DayInput{
				Date:      at(6, "00:00"),
				Now:       at(6, "12:00"),
				Schedule:  standardSchedule(),
				Overrides: leave.Resolution{FullDay: c.kind},
			})
			assert.Equal(t, c.status, got.Status)
			assert.Equal(t, c.expected, got.ExpectedHours)
			assert.Zero(t, got.ActualHours)
			assert.Zero(t, got.BalanceHours)
			assert.False(t, got.Ambiguous)
		})
	}
}

func TestComputeStatus_AmbiguousOverrideKeepsPrecedence(t *testing.T) {
	got := ComputeStatus(DayInput{
		Date:     at(6, "00:00"),
		Now:      at(6, "12:00"),
		Schedule: standardSchedule(),
		Overrides: leave.Resolution{
			FullDay:     leave.OverrideSickLeave,
			Conflicting: []leave.OverrideKind{leave.OverrideSickLeave, leave.OverrideVacation},
		},
	})
	assert.Equal(t, attendance.StatusSickLeave, got.Status)
	assert.True(t, got.Ambiguous)
}

func TestComputeStatus_NonWorkingDay(t *testing.T) {
	off := standardSchedule()
	off.IsWorkingDay = false

	for name, s := range map[string]*schedule.WorkSchedule{"day off": off, "missing schedule": nil} {
		t.Run(name, func(t *testing.T) {
			got := ComputeStatus(DayInput{Date: at(6, "00:00"), Now: at(6, "12:00"), Schedule: s})
			assert.Equal(t, attendance.StatusNonWorkingDay, got.Status)
			assert.Zero(t, got.ExpectedHours)
			assert.Zero(t, got.ActualHours)
			assert.Zero(t, got.BalanceHours)
		})
	}
}

func TestComputeStatus_PartialPermissions(t *testing.T) {
	cases := []struct {
		name      string
		overrides leave.Resolution
		now       string
		status    attendance.Status
		actual    float64
		balance   float64
	}{
		{"early exit completes the day early", leave.Resolution{EarlyExit: clock("16:00")}, "16:30", attendance.StatusCompleted, 6, -2},
		{"early exit still working", leave.Resolution{EarlyExit: clock("16:00")}, "15:00", attendance.StatusWorking, 5, -3},
		{"late entry not yet started", leave.Resolution{LateEntry: clock("11:00")}, "10:00", attendance.StatusNotStarted, 0, -8},
		{"late entry working", leave.Resolution{LateEntry: clock("11:00")}, "12:00", attendance.StatusWorking, 1, -7},
		{"late entry after early exit", leave.Resolution{LateEntry: clock("15:00"), EarlyExit: clock("14:00")}, "16:00", attendance.StatusNotStarted, 0, -8},
		{"permissions never widen", leave.Resolution{LateEntry: clock("08:00"), EarlyExit: clock("19:00")}, "18:30", attendance.StatusCompleted, 8, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ComputeStatus(DayInput{
				Date:      at(6, "00:00"),
				Now:       at(6, c.now),
				Schedule:  standardSchedule(),
				Overrides: c.overrides,
			})
			assert.Equal(t, c.status, got.Status)
			assert.Equal(t, 8.0, got.ExpectedHours)
			assert.Equal(t, c.actual, got.ActualHours)
			assert.Equal(t, c.balance, got.BalanceHours)
		})
	}
}

func TestComputeStatus_TodayStoredRecordAfterEnd(t *testing.T) {
	record := &attendance.AttendanceRecord{ActualHours: 8.5}

	during := ComputeStatus(DayInput{Date: at(6, "00:00"), Now: at(6, "12:00"), Schedule: standardSchedule(), Record: record})
	assert.Equal(t, 3.0, during.ActualHours, "stored value is ignored while the day is running")

	after := ComputeStatus(DayInput{Date: at(6, "00:00"), Now: at(6, "19:00"), Schedule: standardSchedule(), Record: record})
	assert.Equal(t, attendance.StatusCompleted, after.Status)
	assert.Equal(t, 8.5, after.ActualHours)
	assert.Equal(t, 0.5, after.BalanceHours)
}

func TestComputeStatus_PastNonWorkingDayKeepsStoredHours(t *testing.T) {
	off := standardSchedule()
	off.IsWorkingDay = false

	got := ComputeStatus(DayInput{
		Date:     at(4, "00:00"), // Saturday
		Now:      at(6, "10:00"),
		Schedule: off,
		Record:   &attendance.AttendanceRecord{ActualHours: 4},
	})
	assert.Equal(t, attendance.StatusNonWorkingDay, got.Status)
	assert.Zero(t, got.ExpectedHours)
	assert.Equal(t, 4.0, got.ActualHours)
	assert.Equal(t, 4.0, got.BalanceHours)

	got = ComputeStatus(DayInput{Date: at(4, "00:00"), Now: at(6, "10:00"), Schedule: nil, Record: &attendance.AttendanceRecord{ActualHours: 2.5}})
	assert.Equal(t, 2.5, got.BalanceHours)

	// today and future days off stay at zero
	got = ComputeStatus(DayInput{Date: at(6, "00:00"), Now: at(6, "10:00"), Schedule: off, Record: &attendance.AttendanceRecord{ActualHours: 3}})
	assert.Zero(t, got.BalanceHours)
}

func TestComputeStatus_PastDay(t *testing.T) {
	notes := func(s string) *string { return &s }

	cases := []struct {
		name     string
		record   *attendance.AttendanceRecord
		status   attendance.Status
		expected float64
		actual   float64
		balance  float64
	}{
		{"no record is absent", nil, attendance.StatusAbsent, 8, 0, -8},
		{"worked full day", &attendance.AttendanceRecord{ActualHours: 8}, attendance.StatusCompleted, 8, 8, 0},
		{"worked less", &attendance.AttendanceRecord{ActualHours: 6.5}, attendance.StatusCompleted, 8, 6.5, -1.5},
		{"stored expected is ignored", &attendance.AttendanceRecord{ActualHours: 8, ExpectedHours: 6, BalanceHours: 2}, attendance.StatusCompleted, 8, 8, 0},
		{"vacation flag", &attendance.AttendanceRecord{IsVacation: true}, attendance.StatusVacation, 0, 0, 0},
		{"sick notes with hours", &attendance.AttendanceRecord{ActualHours: 2, Notes: notes("sick after lunch")}, attendance.StatusSickLeave, 0, 2, 0},
		{"sick notes without hours is absent", &attendance.AttendanceRecord{Notes: notes("sick")}, attendance.StatusAbsent, 8, 0, -8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ComputeStatus(DayInput{
				Date:     at(6, "00:00"),
				Now:      at(8, "10:00"),
				Schedule: standardSchedule(),
				Record:   c.record,
			})
			assert.Equal(t, c.status, got.Status)
			assert.Equal(t, c.expected, got.ExpectedHours)
			assert.Equal(t, c.actual, got.ActualHours)
			assert.Equal(t, c.balance, got.BalanceHours)
		})
	}
}

func TestComputeStatus_FutureDay(t *testing.T) {
	got := ComputeStatus(DayInput{
		Date:     at(13, "00:00"),
		Now:      at(6, "10:00"),
		Schedule: standardSchedule(),
	})
	assert.Equal(t, attendance.StatusScheduled, got.Status)
	assert.Equal(t, 8.0, got.ExpectedHours)
	assert.Zero(t, got.ActualHours)
	assert.Zero(t, got.BalanceHours)
}

func TestComputeStatus_CenteredBreak(t *testing.T) {
	s := standardSchedule()
	s.BreakStartTime = nil
	s.EndTime = *clock("17:00")

	// 09:00-17:00 with a 60 minute break centered at 12:30-13:30
	got := ComputeStatus(DayInput{Date: at(6, "00:00"), Now: at(6, "13:00"), Schedule: s})
	assert.Equal(t, attendance.StatusOnBreak, got.Status)
	assert.Equal(t, 3.5, got.ActualHours)
	assert.Equal(t, 7.0, got.ExpectedHours)
}
