package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rezmoss/standupclock/internal/locale"
	"github.com/rezmoss/standupclock/internal/reminder"
	"github.com/rezmoss/standupclock/internal/schedule"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current standup status and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		printer, err := locale.New(cfg.Display.Locale)
		if err != nil {
			return err
		}
		sched, err := cfg.ScheduleValue()
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), sched, printer, cfg.Permission(), time.Now())
		return nil
	},
}

func printStatus(w io.Writer, s schedule.Schedule, p *locale.Printer, perm reminder.Permission, now time.Time) {
	st := s.Compute(now)
	label := color.New(color.Bold)
	late := color.New(color.FgRed, color.Bold)
	onTime := color.New(color.FgGreen)

	label.Fprintf(w, "%-15s", "Time")
	fmt.Fprintln(w, schedule.FormatClock(st.Now))

	label.Fprintf(w, "%-15s", "Status")
	delta := schedule.FormatDelta(st.Delta)
	switch {
	case !st.IsStandupDay:
		fmt.Fprintln(w, p.Sprintf(locale.NoStandup))
	case st.IsLate:
		late.Fprintf(w, "%s (%s)\n", p.Sprintf(locale.LateBy, delta), humanDuration(st.Delta))
	default:
		onTime.Fprintf(w, "%s (%s)\n", p.Sprintf(locale.StartsIn, delta), humanDuration(st.Delta))
	}

	if st.IsStandupDay {
		label.Fprintf(w, "%-15s", "Standup")
		fmt.Fprintln(w, p.Sprintf(locale.StandupAt, st.DeadlineLabel))
	}

	if next, ok := s.Next(now); ok {
		label.Fprintf(w, "%-15s", "Next standup")
		fmt.Fprintf(w, "%s (in %s)\n", next.Format("Mon Jan 2 15:04"), humanDuration(next.Sub(now)))
	}

	label.Fprintf(w, "%-15s", "Notifications")
	fmt.Fprintln(w, permissionText(p, perm))
}

func permissionText(p *locale.Printer, perm reminder.Permission) string {
	switch perm {
	case reminder.PermissionGranted:
		return p.Sprintf(locale.NotificationsOn)
	case reminder.PermissionDenied:
		return p.Sprintf(locale.NotificationsBlocked)
	default:
		return p.Sprintf(locale.NotificationsOff)
	}
}
