package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rezmoss/standupclock/internal/schedule"
)

var weekOf string

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "List the standup times for a week",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		sched, err := cfg.ScheduleValue()
		if err != nil {
			return err
		}

		now := time.Now()
		day := now
		if weekOf != "" {
			day, err = time.ParseInLocation("2006-01-02", weekOf, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --week-of %q, use YYYY-MM-DD: %w", weekOf, err)
			}
		}
		printWeek(cmd.OutOrStdout(), sched, day, now)
		return nil
	},
}

func init() {
	scheduleCmd.Flags().StringVar(&weekOf, "week-of", "", "any date in the week to list (YYYY-MM-DD, default this week)")
}

// printWeek prints one row per day of day's week. Standups already past
// relative to now are dimmed.
func printWeek(w io.Writer, s schedule.Schedule, day, now time.Time) {
	start := schedule.WeekStart(day)
	past := color.New(color.Faint)
	today := color.New(color.Bold)

	fmt.Fprintf(w, "for week starting %s\n", start.Format("2006-01-02"))
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "%-15s | %s\n", "Date", "Standup")
	fmt.Fprintln(w, strings.Repeat("-", 50))

	count := 0
	for _, d := range s.Week(day) {
		when := "-"
		if d.HasStandup {
			when = d.Deadline.Format("15:04:05")
			count++
		}
		row := fmt.Sprintf("%-15s | %s\n", d.Date.Format("Mon 2006-01-02"), when)
		switch {
		case sameDay(d.Date, now):
			today.Fprint(w, row)
		case d.HasStandup && d.Deadline.Before(now):
			past.Fprint(w, row)
		default:
			fmt.Fprint(w, row)
		}
	}
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "Standups this week : %d\n", count)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
