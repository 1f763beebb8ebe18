package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rezmoss/standupclock/internal/config"
	"github.com/rezmoss/standupclock/internal/locale"
	"github.com/rezmoss/standupclock/internal/logfields"
	"github.com/rezmoss/standupclock/internal/metrics"
	"github.com/rezmoss/standupclock/internal/tui"
)

func runDashboard() error {
	a, err := newApp(metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	defer a.Close()

	logFile, err := openLogFile(a.cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()
	setupLogging(a.cfg.Log.Level, logFile)

	model := tui.New(a.clock, tui.Options{
		Printer:   a.printer,
		Particles: a.cfg.Display.Particles,
		Seed:      uint64(time.Now().UnixNano()),
	})
	p := tui.NewProgram(model)

	a.manager.Watch(func(cfg *config.Config, err error) {
		p.Send(configMsg(cfg, err))
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// configMsg turns a reloaded config into a dashboard update.
func configMsg(cfg *config.Config, err error) tui.ConfigMsg {
	if err != nil {
		slog.Warn("Ignoring invalid config change", logfields.Error(err))
		return tui.ConfigMsg{Err: err}
	}
	sched, err := cfg.ScheduleValue()
	if err != nil {
		return tui.ConfigMsg{Err: err}
	}
	printer, err := locale.New(cfg.Display.Locale)
	if err != nil {
		return tui.ConfigMsg{Err: err}
	}
	return tui.ConfigMsg{Schedule: sched, Printer: printer, Particles: cfg.Display.Particles}
}
