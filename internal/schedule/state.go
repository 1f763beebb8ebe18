package schedule

import (
	"fmt"
	"time"
)

// State is everything the display needs for one tick. It is recomputed from
// scratch on every tick and never updated in place.
type State struct {
	Now           time.Time
	Deadline      time.Time
	IsStandupDay  bool
	IsLate        bool
	Delta         time.Duration // time remaining, or elapsed once late; never negative
	DeadlineLabel string
}

// Compute derives the State for now. Lateness is strict: exactly at the
// deadline is still on time.
func (s Schedule) Compute(now time.Time) State {
	deadline := s.Deadline(now)
	late := now.After(deadline)
	delta := deadline.Sub(now)
	if late {
		delta = now.Sub(deadline)
	}
	return State{
		Now:           now,
		Deadline:      deadline,
		IsStandupDay:  s.IsStandupDay(now),
		IsLate:        late,
		Delta:         delta,
		DeadlineLabel: deadline.Format("15:04"),
	}
}

// Remaining is the time left before the deadline, zero once late.
func (st State) Remaining() time.Duration {
	if st.IsLate {
		return 0
	}
	return st.Delta
}

// FormatDelta renders d as HH:MM:SS using floor division. Hours do not wrap
// into days, so 25h renders as "25:00:00".
func FormatDelta(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	sec := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

// FormatClock renders the wall-clock time in 24-hour HH:MM:SS.
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}

// NextDelay is how long to wait so the next tick lands on the next whole
// second: 1000ms minus the current millisecond.
func NextDelay(now time.Time) time.Duration {
	ms := now.Nanosecond() / int(time.Millisecond)
	return time.Duration(1000-ms) * time.Millisecond
}
