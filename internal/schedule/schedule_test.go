package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 is a Monday.
func at(day, hour, min, sec, ms int) time.Time {
	return time.Date(2024, time.January, day, hour, min, sec, ms*int(time.Millisecond), time.UTC)
}

func TestDeadlineByWeekday(t *testing.T) {
	s := Default()
	tests := []struct {
		name     string
		day      int
		wantHour int
	}{
		{"monday", 1, 9},
		{"tuesday", 2, 10},
		{"wednesday", 3, 9},
		{"thursday", 4, 10},
		{"friday", 5, 9},
		{"saturday", 6, 9},
		{"sunday", 7, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := at(tt.day, 14, 30, 12, 345)
			dl := s.Deadline(now)
			assert.Equal(t, tt.wantHour, dl.Hour())
			assert.Equal(t, 1, dl.Minute())
			assert.Equal(t, 0, dl.Second())
			assert.Equal(t, 0, dl.Nanosecond())
			assert.Equal(t, now.YearDay(), dl.YearDay(), "deadline must be on the same date")
		})
	}
}

func TestIsStandupDay(t *testing.T) {
	s := Default()
	for day := 1; day <= 7; day++ {
		now := at(day, 8, 0, 0, 0)
		want := now.Weekday() > time.Sunday && now.Weekday() < time.Saturday
		assert.Equal(t, want, s.IsStandupDay(now), now.Weekday().String())
	}
}

func TestComputeLatenessBoundary(t *testing.T) {
	s := Default()

	atDeadline := s.Compute(at(1, 9, 1, 0, 0))
	assert.False(t, atDeadline.IsLate, "exactly at the deadline is not late")
	assert.Equal(t, time.Duration(0), atDeadline.Delta)

	justAfter := s.Compute(at(1, 9, 1, 0, 1))
	assert.True(t, justAfter.IsLate)
	assert.Equal(t, time.Millisecond, justAfter.Delta)
}

func TestComputeIsIdempotent(t *testing.T) {
	s := Default()
	now := at(3, 8, 59, 59, 999)
	assert.Equal(t, s.Compute(now), s.Compute(now))
}

func TestComputeScenarios(t *testing.T) {
	s := Default()
	tests := []struct {
		name      string
		now       time.Time
		standup   bool
		late      bool
		delta     string
		deadlineL string
	}{
		{"monday one minute before", at(1, 9, 0, 0, 0), true, false, "00:01:00", "09:01"},
		{"tuesday late", at(2, 10, 5, 30, 0), true, true, "00:04:30", "10:01"},
		{"saturday", at(6, 9, 0, 0, 0), false, false, "00:01:00", "09:01"},
		{"sunday evening", at(7, 21, 1, 0, 0), false, true, "12:00:00", "09:01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := s.Compute(tt.now)
			assert.Equal(t, tt.standup, st.IsStandupDay)
			assert.Equal(t, tt.late, st.IsLate)
			assert.Equal(t, tt.delta, FormatDelta(st.Delta))
			assert.Equal(t, tt.deadlineL, st.DeadlineLabel)
			assert.GreaterOrEqual(t, st.Delta, time.Duration(0))
		})
	}
}

func TestRemaining(t *testing.T) {
	s := Default()
	assert.Equal(t, time.Minute, s.Compute(at(1, 9, 0, 0, 0)).Remaining())
	assert.Equal(t, time.Duration(0), s.Compute(at(1, 9, 2, 0, 0)).Remaining())
}

func TestFormatDelta(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{3661000 * time.Millisecond, "01:01:01"},
		{59*time.Second + 999*time.Millisecond, "00:00:59"},
		{25 * time.Hour, "25:00:00"},
		{100*time.Hour + 5*time.Second, "100:00:05"},
		{-90 * time.Second, "00:01:30"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDelta(tt.in), tt.in.String())
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "21:05:09", FormatClock(at(1, 21, 5, 9, 500)))
}

func TestNextDelay(t *testing.T) {
	assert.Equal(t, time.Second, NextDelay(at(1, 9, 0, 0, 0)))
	assert.Equal(t, 750*time.Millisecond, NextDelay(at(1, 9, 0, 0, 250)))
	assert.Equal(t, time.Millisecond, NextDelay(at(1, 9, 0, 0, 999)))
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:01")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 9, Minute: 1}, tod)

	tod, err = ParseTimeOfDay(" 10:01:30 ")
	require.NoError(t, err)
	assert.Equal(t, "10:01:30", tod.String())

	for _, bad := range []string{"", "9", "24:00", "09:60", "09:01:60", "aa:bb", "1:2:3:4"} {
		_, err := ParseTimeOfDay(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay, bad)
	}
}

func TestParseDays(t *testing.T) {
	days, err := ParseDays("mon-fri")
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}, days)

	days, err = ParseDays("Sat-Sun")
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, days)

	days, err = ParseDays("mon, wed,FRI,mon")
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, days)

	for _, bad := range []string{"fri-mon", "mon-tue-wed", "funday", "mon,,tue"} {
		_, err := ParseDays(bad)
		assert.ErrorIs(t, err, ErrInvalidDays, bad)
	}
}

func TestCustomSchedule(t *testing.T) {
	s := Schedule{
		Days:    []time.Weekday{time.Saturday},
		Default: TimeOfDay{Hour: 11, Minute: 30},
	}
	assert.True(t, s.IsStandupDay(at(6, 0, 0, 0, 0)))
	assert.False(t, s.IsStandupDay(at(1, 0, 0, 0, 0)))
	assert.Equal(t, at(2, 11, 30, 0, 0), s.Deadline(at(2, 23, 0, 0, 0)))
}

func TestWeek(t *testing.T) {
	s := Default()
	week := s.Week(at(3, 12, 0, 0, 0))
	require.Len(t, week, 7)
	assert.Equal(t, time.Monday, week[0].Date.Weekday())
	assert.Equal(t, at(1, 0, 0, 0, 0), week[0].Date)
	assert.Equal(t, at(2, 10, 1, 0, 0), week[1].Deadline)
	assert.True(t, week[4].HasStandup)
	assert.False(t, week[5].HasStandup)
	assert.False(t, week[6].HasStandup)

	// Sunday belongs to the week that started the Monday before.
	assert.Equal(t, at(1, 0, 0, 0, 0), WeekStart(at(7, 18, 0, 0, 0)))
}

func TestNext(t *testing.T) {
	s := Default()

	dl, ok := s.Next(at(1, 8, 0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, at(1, 9, 1, 0, 0), dl)

	dl, ok = s.Next(at(5, 9, 30, 0, 0))
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.January, 8, 9, 1, 0, 0, time.UTC), dl)

	_, ok = Schedule{}.Next(at(1, 8, 0, 0, 0))
	assert.False(t, ok)
}
