package timecalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lunch = BreakWindow{Start: NewClock(13, 0), Duration: 60}

func TestParseClock(t *testing.T) {
	cases := []struct {
		input   string
		want    Clock
		wantErr bool
	}{
		{"09:00", NewClock(9, 0), false},
		{"18:30:00", NewClock(18, 30), false},
		{" 07:05 ", NewClock(7, 5), false},
		{"00:00", 0, false},
		{"23:59", NewClock(23, 59), false},
		{"24:00", 0, true},
		{"9", 0, true},
		{"09:7", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := ParseClock(c.input)
		if c.wantErr {
			assert.ErrorIs(t, err, ErrInvalidClockFormat, c.input)
			continue
		}
		require.NoError(t, err, c.input)
		assert.Equal(t, c.want, got, c.input)
	}
}

func TestClock_String(t *testing.T) {
	assert.Equal(t, "09:05", NewClock(9, 5).String())
	assert.Equal(t, "00:00", Clock(0).String())
}

func TestNetWorkedHours(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		bw    BreakWindow
		want  float64
	}{
		{"no overlap before break", "09:00", "12:00", lunch, 3},
		{"no overlap after break", "14:00", "18:00", lunch, 4},
		{"contains break", "09:00", "18:00", lunch, 8},
		{"partial overlap at start of break", "09:00", "13:30", lunch, 4},
		{"partial overlap at end of break", "13:30", "15:00", lunch, 1},
		{"inside break", "13:10", "13:50", lunch, 0},
		{"no break", "09:00", "18:00", NoBreak, 9},
		{"empty range", "10:00", "10:00", lunch, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := NetWorkedHours(MustParseClock(c.start), MustParseClock(c.end), c.bw)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestNetWorkedHours_ReversedRange(t *testing.T) {
	_, err := NetWorkedHours(NewClock(18, 0), NewClock(9, 0), lunch)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestNetWorkedMinutes_PlusOverlapEqualsElapsed(t *testing.T) {
	windows := []BreakWindow{NoBreak, lunch, {Start: NewClock(12, 30), Duration: 45}, {Start: NewClock(10, 0), Duration: 15}}
	for _, bw := range windows {
		for start := NewClock(6, 0); start <= NewClock(20, 0); start += 17 {
			for end := start; end <= NewClock(22, 0); end += 23 {
				net, err := NetWorkedMinutes(start, end, bw)
				require.NoError(t, err)
				assert.Equal(t, int(end-start), net+OverlapMinutes(start, end, bw), "%s-%s", start, end)
			}
		}
	}
}

func TestAddWorkDuration(t *testing.T) {
	cases := []struct {
		name  string
		start string
		hours float64
		bw    BreakWindow
		want  string
	}{
		{"passes through lunch", "11:00", 4, lunch, "16:00"},
		{"ends right at break start", "09:00", 4, lunch, "13:00"},
		{"starts inside break", "13:30", 2, lunch, "16:00"},
		{"after break", "14:00", 3.5, lunch, "17:30"},
		{"no break", "11:00", 4, NoBreak, "15:00"},
		{"fractional", "08:00", 1.25, lunch, "09:15"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := AddWorkDuration(MustParseClock(c.start), c.hours, c.bw)
			require.NoError(t, err)
			assert.Equal(t, c.want, got.String())
		})
	}
}

func TestAddWorkDuration_Errors(t *testing.T) {
	_, err := AddWorkDuration(NewClock(9, 0), 0, lunch)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = AddWorkDuration(NewClock(9, 0), -2, lunch)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = AddWorkDuration(NewClock(20, 0), 5, lunch)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)

	_, err = AddWorkDuration(NewClock(1, 0), 30, lunch)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
}

func TestAddWorkDuration_RoundTrip(t *testing.T) {
	windows := []BreakWindow{NoBreak, lunch, {Start: NewClock(12, 0), Duration: 30}}
	for _, bw := range windows {
		for start := NewClock(7, 0); start <= NewClock(15, 0); start += 13 {
			for _, h := range []float64{0.25, 0.5, 1, 1.33, 2, 3.75, 4, 6} {
				end, err := AddWorkDuration(start, h, bw)
				require.NoError(t, err)
				got, err := NetWorkedHours(start, end, bw)
				require.NoError(t, err)
				assert.InDelta(t, h, got, 1.0/60, "start=%s h=%v", start, h)
			}
		}
	}
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 0.33, MinutesToHours(20))
	assert.Equal(t, 8.0, MinutesToHours(480))
	assert.Equal(t, -1.5, MinutesToHours(-90))
	assert.Equal(t, 90, HoursToMinutes(1.5))
}
