package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rezmoss/standupclock/internal/locale"
	"github.com/rezmoss/standupclock/internal/reminder"
	"github.com/rezmoss/standupclock/internal/schedule"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4A90E2")).
			Padding(0, 1)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	lateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	onTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6B6B")).
			Padding(1, 2)
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 || !m.started {
		return "Loading..."
	}

	header := headerStyle.Width(m.width).Render(
		fmt.Sprintf("🥐 Standup Clock - %s", m.snap.Now.Format("Monday Jan 2, 2006")),
	)
	footer := lipgloss.NewStyle().Width(m.width).Render(m.help.View(m.keys))

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if m.alert != "" {
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.alertView())
	} else {
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.panel())
		if m.animating {
			body = m.burst.overlay(body)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) alertView() string {
	return alertStyle.Render(m.alert + "\n\n" + mutedStyle.Render(m.printer.Sprintf(locale.DismissHint)))
}

// panel is the centered clock face with its status lines.
func (m Model) panel() string {
	st := m.snap.State
	late := st.IsStandupDay && st.IsLate

	face := clockStyle
	if late {
		face = lateStyle
	}
	lines := []string{face.Render(bigText(schedule.FormatClock(st.Now))), ""}

	if !st.IsStandupDay {
		lines = append(lines, mutedStyle.Render(m.printer.Sprintf(locale.NoStandup)))
	} else {
		delta := schedule.FormatDelta(st.Delta)
		if late {
			lines = append(lines, lateStyle.Render(m.printer.Sprintf(locale.LateBy, delta)))
		} else {
			lines = append(lines, onTimeStyle.Render(m.printer.Sprintf(locale.StartsIn, delta)))
		}
		lines = append(lines, mutedStyle.Render(m.printer.Sprintf(locale.StandupAt, st.DeadlineLabel)))
		if !late && st.Delta <= time.Hour {
			lines = append(lines, "", countdownBar(st.Delta, 30))
		}
	}

	lines = append(lines, "", mutedStyle.Render(m.notificationLine()))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m Model) notificationLine() string {
	n := m.snap.Notification
	switch {
	case n.AlreadySentToday:
		return m.printer.Sprintf(locale.ReminderSent)
	case n.Permission == reminder.PermissionGranted:
		return m.printer.Sprintf(locale.NotificationsOn)
	case n.Permission == reminder.PermissionDenied:
		return m.printer.Sprintf(locale.NotificationsBlocked)
	default:
		return m.printer.Sprintf(locale.NotificationsHint)
	}
}

// countdownBar fills up over the last hour before the standup.
func countdownBar(remaining time.Duration, width int) string {
	pct := int((time.Hour - remaining) * 100 / time.Hour)
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := (pct * width) / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#F7DC6F")).Render(bar)
}
