package schedule

import "time"

// Day is one row of a weekly listing.
type Day struct {
	Date       time.Time
	Deadline   time.Time
	HasStandup bool
}

// WeekStart returns midnight of the Monday of t's ISO week.
func WeekStart(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -(isoDay(t.Weekday()) - 1))
}

// Week lists the seven days of t's ISO week, Monday first.
func (s Schedule) Week(t time.Time) []Day {
	start := WeekStart(t)
	days := make([]Day, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		days = append(days, Day{
			Date:       d,
			Deadline:   s.Deadline(d),
			HasStandup: s.IsStandupDay(d),
		})
	}
	return days
}

// Next returns the first standup deadline strictly after now, looking at
// most a week ahead. ok is false when the schedule has no days.
func (s Schedule) Next(now time.Time) (deadline time.Time, ok bool) {
	for i := 0; i <= 7; i++ {
		d := now.AddDate(0, 0, i)
		if !s.IsStandupDay(d) {
			continue
		}
		dl := s.Deadline(d)
		if dl.After(now) {
			return dl, true
		}
	}
	return time.Time{}, false
}
