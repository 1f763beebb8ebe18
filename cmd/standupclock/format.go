package main

import (
	"fmt"
	"time"
)

// humanDuration renders d rounded down to minutes, e.g. "1 hr 5 mins".
func humanDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	mins := int(d / time.Minute)
	h := mins / 60
	m := mins % 60
	switch {
	case h > 0 && m > 0:
		if h == 1 {
			return fmt.Sprintf("1 hr %d mins", m)
		}
		return fmt.Sprintf("%d hrs %d mins", h, m)
	case h > 0:
		if h == 1 {
			return "1 hr"
		}
		return fmt.Sprintf("%d hrs", h)
	case m == 1:
		return "1 min"
	case m == 0:
		return "less than a minute"
	default:
		return fmt.Sprintf("%d mins", m)
	}
}
