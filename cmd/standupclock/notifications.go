package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezmoss/standupclock/internal/locale"
	"github.com/rezmoss/standupclock/internal/notify"
	"github.com/rezmoss/standupclock/internal/reminder"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notify"},
	Short:   "Manage the one-minute standup reminder",
}

var notificationsEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Allow the standup reminder",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !notify.NewSender().Available() {
			return reminder.ErrUnsupported
		}
		return setPermission(cmd, reminder.PermissionGranted)
	},
}

var notificationsDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Block the standup reminder",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPermission(cmd, reminder.PermissionDenied)
	},
}

var notificationsTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send the reminder now to check that notifications show up",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		sender := notify.NewSender()
		if !sender.Available() {
			return reminder.ErrUnsupported
		}
		printer, err := locale.New(cfg.Display.Locale)
		if err != nil {
			return err
		}
		rc := reminderConfig(cfg, printer)
		n := notify.New(rc.Title, rc.Body, rc.Icon)
		if err := sender.Send(n); err != nil {
			return fmt.Errorf("sending test notification: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sent %q on %s\n", n.Title, notify.Platform())
		return nil
	},
}

func init() {
	notificationsCmd.AddCommand(notificationsEnableCmd)
	notificationsCmd.AddCommand(notificationsDisableCmd)
	notificationsCmd.AddCommand(notificationsTestCmd)
}

// setPermission stores p. Unlike the dashboard prompt, an explicit enable
// also lifts an earlier denial.
func setPermission(cmd *cobra.Command, p reminder.Permission) error {
	m, _, err := loadConfig()
	if err != nil {
		return err
	}
	if err := m.SetPermission(p); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Notifications %s (%s)\n", p, m.Path())
	return nil
}
