package main

import (
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/rezmoss/standupclock/internal/clock"
	"github.com/rezmoss/standupclock/internal/config"
	"github.com/rezmoss/standupclock/internal/locale"
	"github.com/rezmoss/standupclock/internal/logfields"
	"github.com/rezmoss/standupclock/internal/metrics"
	"github.com/rezmoss/standupclock/internal/notify"
	"github.com/rezmoss/standupclock/internal/reminder"
)

// app is the wired set of components shared by the commands.
type app struct {
	manager  *config.Manager
	cfg      *config.Config
	printer  *locale.Printer
	sender   notify.Sender
	reminder *reminder.Reminder
	clock    *clock.Clock
}

func loadConfig() (*config.Manager, *config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, nil, err
	}
	m, err := config.Open(configPath)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := m.Config()
	if err != nil {
		return nil, nil, err
	}
	return m, cfg, nil
}

func newApp(rec metrics.Recorder, opts ...clock.Option) (*app, error) {
	m, cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	printer, err := locale.New(cfg.Display.Locale)
	if err != nil {
		return nil, err
	}
	sched, err := cfg.ScheduleValue()
	if err != nil {
		return nil, err
	}

	resets, err := reminder.NewGocronScheduler(clockwork.NewRealClock())
	if err != nil {
		return nil, fmt.Errorf("starting reminder scheduler: %w", err)
	}
	sender := notify.NewSender()
	rem := reminder.New(reminderConfig(cfg, printer), cfg.Permission(), sender, resets,
		reminder.WithRecorder(rec),
		reminder.WithPermissionStore(m.SetPermission))

	opts = append([]clock.Option{clock.WithRecorder(rec)}, opts...)
	return &app{
		manager:  m,
		cfg:      cfg,
		printer:  printer,
		sender:   sender,
		reminder: rem,
		clock:    clock.New(sched, rem, opts...),
	}, nil
}

func (a *app) Close() error {
	return a.reminder.Close()
}

// reminderConfig falls back to the bundled icon when none is configured.
func reminderConfig(cfg *config.Config, p *locale.Printer) reminder.Config {
	rc := cfg.ReminderConfig(p)
	if rc.Icon == "" {
		icon, err := notify.DefaultIcon()
		if err != nil {
			slog.Warn("Sending notifications without an icon", logfields.Error(err))
			return rc
		}
		rc.Icon = icon
	}
	return rc
}
