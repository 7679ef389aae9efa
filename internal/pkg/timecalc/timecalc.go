// Package timecalc implements break-aware arithmetic on wall-clock times of day.
//
// All computations run on integer minutes; hours only appear at the boundary
// (MinutesToHours / HoursToMinutes) so repeated calls never accumulate drift.
package timecalc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of minutes in a calendar day.
const MinutesPerDay = 24 * 60

var (
	ErrInvalidRange        = errors.New("invalid time range")
	ErrArithmeticOverflow  = errors.New("work duration does not fit in the day")
	ErrInvalidClockFormat  = errors.New("invalid time format, use HH:MM")
	ErrNegativeBreakLength = errors.New("break duration must not be negative")
)

// Clock is a wall-clock time of day expressed in minutes since midnight.
type Clock int

// NewClock builds a Clock from hour and minute.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock parses "HH:MM" or "HH:MM:SS". Seconds are truncated.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockFormat, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockFormat, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockFormat, s)
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClockFormat, s)
		}
	}

	return NewClock(hour, minute), nil
}

// MustParseClock is ParseClock for constants; it panics on malformed input.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ClockOf returns the time of day of t in t's own location.
func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute())
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

// String formats the clock as "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On anchors the clock to the calendar day of date, in date's location.
func (c Clock) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), 0, 0, date.Location())
}

// BreakWindow is the half-open interval [Start, Start+Duration).
// A window with Duration <= 0 is empty.
type BreakWindow struct {
	Start    Clock
	Duration int
}

// NoBreak is the empty break window.
var NoBreak = BreakWindow{}

func (b BreakWindow) IsZero() bool { return b.Duration <= 0 }

func (b BreakWindow) End() Clock { return b.Start + Clock(b.Duration) }

// Contains reports whether c falls inside the break.
func (b BreakWindow) Contains(c Clock) bool {
	return !b.IsZero() && c >= b.Start && c < b.End()
}

// OverlapMinutes returns how many break minutes fall inside [start, end).
func OverlapMinutes(start, end Clock, bw BreakWindow) int {
	if bw.IsZero() || end <= start {
		return 0
	}
	lo := max(start, bw.Start)
	hi := min(end, bw.End())
	if hi <= lo {
		return 0
	}
	return int(hi - lo)
}

// NetWorkedMinutes returns the minutes of work in [start, end) excluding the break.
// An empty range yields 0; a reversed range yields ErrInvalidRange.
func NetWorkedMinutes(start, end Clock, bw BreakWindow) (int, error) {
	if end < start {
		return 0, fmt.Errorf("%w: %s-%s", ErrInvalidRange, start, end)
	}
	return int(end-start) - OverlapMinutes(start, end, bw), nil
}

// NetWorkedHours is NetWorkedMinutes converted to hours.
func NetWorkedHours(start, end Clock, bw BreakWindow) (float64, error) {
	m, err := NetWorkedMinutes(start, end, bw)
	if err != nil {
		return 0, err
	}
	return MinutesToHours(m), nil
}

// AddWorkMinutes advances from start consuming minutes of work, jumping over
// the break when the cursor enters it. The session must end within the day.
func AddWorkMinutes(start Clock, minutes int, bw BreakWindow) (Clock, error) {
	if minutes <= 0 {
		return 0, fmt.Errorf("%w: duration must be positive", ErrInvalidRange)
	}
	if start < 0 || start >= MinutesPerDay {
		return 0, fmt.Errorf("%w: start %d out of day", ErrInvalidRange, start)
	}

	cursor := start
	remaining := minutes
	advanced := 0
	for remaining > 0 {
		if advanced >= MinutesPerDay {
			return 0, ErrArithmeticOverflow
		}
		if bw.Contains(cursor) {
			advanced += int(bw.End() - cursor)
			cursor = bw.End()
			continue
		}
		cursor++
		remaining--
		advanced++
	}

	if cursor >= MinutesPerDay {
		return 0, fmt.Errorf("%w: %d minutes from %s", ErrArithmeticOverflow, minutes, start)
	}
	return cursor, nil
}

// AddWorkDuration is AddWorkMinutes with the duration given in hours,
// rounded to the nearest minute.
func AddWorkDuration(start Clock, hours float64, bw BreakWindow) (Clock, error) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, fmt.Errorf("%w: duration is not a number", ErrInvalidRange)
	}
	return AddWorkMinutes(start, HoursToMinutes(hours), bw)
}

// HoursToMinutes converts hours to whole minutes.
func HoursToMinutes(hours float64) int {
	return int(math.Round(hours * 60))
}

// MinutesToHours converts minutes to hours rounded to two decimals.
func MinutesToHours(minutes int) float64 {
	return RoundHours(float64(minutes) / 60)
}

// RoundHours rounds to two decimals.
func RoundHours(h float64) float64 {
	r := math.Round(h*100) / 100
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}
