// Package schedule derives the daily standup deadline and the display state
// for a given instant. Everything here is pure: same instant in, same state out.
package schedule

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidDays      = errors.New("invalid standup days")
)

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// On returns t placed on the calendar date of day, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, t.Second, 0, day.Location())
}

// ParseTimeOfDay accepts HH:MM or HH:MM:SS.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("%w %q, use HH:MM or HH:MM:SS", ErrInvalidTimeOfDay, s)
	}
	vals := make([]int, 3)
	limits := []int{23, 59, 59}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return TimeOfDay{}, fmt.Errorf("%w %q", ErrInvalidTimeOfDay, s)
		}
		vals[i] = n
	}
	return TimeOfDay{Hour: vals[0], Minute: vals[1], Second: vals[2]}, nil
}

var dayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
}

// ParseDay maps a three letter day name (any case) to a weekday.
func ParseDay(s string) (time.Weekday, error) {
	d, ok := dayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown day %q", ErrInvalidDays, s)
	}
	return d, nil
}

// ParseDays accepts a range ("mon-fri") or a list ("mon,wed,fri").
// Ranges run Monday first, so "fri-mon" is rejected.
func ParseDays(s string) ([]time.Weekday, error) {
	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: invalid range %q", ErrInvalidDays, s)
		}
		start, err := ParseDay(parts[0])
		if err != nil {
			return nil, err
		}
		end, err := ParseDay(parts[1])
		if err != nil {
			return nil, err
		}
		si, ei := isoDay(start), isoDay(end)
		if si > ei {
			return nil, fmt.Errorf("%w: range %q runs backwards", ErrInvalidDays, s)
		}
		var days []time.Weekday
		for i := si; i <= ei; i++ {
			days = append(days, time.Weekday(i%7))
		}
		return days, nil
	}

	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		d, err := ParseDay(part)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(days, d) {
			days = append(days, d)
		}
	}
	return days, nil
}

// isoDay numbers Monday=1 .. Sunday=7.
func isoDay(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// Schedule says on which weekdays the standup happens and when it starts.
type Schedule struct {
	Days      []time.Weekday
	Default   TimeOfDay
	Overrides map[time.Weekday]TimeOfDay
}

// Default is the team's schedule: 09:01 on Monday, Wednesday and Friday,
// 10:01 on Tuesday and Thursday, nothing in the weekend.
func Default() Schedule {
	late := TimeOfDay{Hour: 10, Minute: 1}
	return Schedule{
		Days:    []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		Default: TimeOfDay{Hour: 9, Minute: 1},
		Overrides: map[time.Weekday]TimeOfDay{
			time.Tuesday:  late,
			time.Thursday: late,
		},
	}
}

// TimeFor returns the start time used on weekday d.
func (s Schedule) TimeFor(d time.Weekday) TimeOfDay {
	if tod, ok := s.Overrides[d]; ok {
		return tod
	}
	return s.Default
}

// Deadline returns the standup start on t's calendar date. A deadline is
// produced for every day, including days without a standup.
func (s Schedule) Deadline(t time.Time) time.Time {
	return s.TimeFor(t.Weekday()).On(t)
}

// IsStandupDay reports whether a standup is held on t's weekday.
func (s Schedule) IsStandupDay(t time.Time) bool {
	return slices.Contains(s.Days, t.Weekday())
}
