package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/rezmoss/standupclock/internal/clock"
	"github.com/rezmoss/standupclock/internal/config"
	"github.com/rezmoss/standupclock/internal/locale"
	"github.com/rezmoss/standupclock/internal/logfields"
	"github.com/rezmoss/standupclock/internal/metrics"
	"github.com/rezmoss/standupclock/internal/notify"
	"github.com/rezmoss/standupclock/internal/schedule"
)

var (
	metricsAddr string
	quiet       bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the clock without a dashboard and send reminders",
	Long: `watch runs the clock headless, for a terminal tab or a login agent.
It sends the standup reminder like the dashboard does and prints one status
line per second unless --quiet is set.

With --metrics-addr the clock state is exported for Prometheus on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, cmd.OutOrStdout())
	},
}

func init() {
	watchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9091")
	watchCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the status line")
}

func runWatch(ctx context.Context, out io.Writer) error {
	var (
		rec metrics.Recorder = metrics.NoopRecorder{}
		reg *prom.Registry
	)
	if metricsAddr != "" {
		reg = prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
	}

	var printer *locale.Printer
	opts := []clock.Option{}
	if !quiet {
		opts = append(opts, clock.WithPublisher(func(s clock.Snapshot) {
			fmt.Fprintf(out, "\r%s", statusLine(s, printer))
		}))
	}

	a, err := newApp(rec, opts...)
	if err != nil {
		return err
	}
	defer a.Close()
	printer = a.printer

	setupLogging(a.cfg.Log.Level, os.Stderr)
	slog.Info("Watching standup schedule",
		logfields.ConfigFile(a.manager.Path()),
		logfields.Permission(string(a.cfg.Permission())),
		logfields.Platform(notify.Platform()))

	a.manager.Watch(func(cfg *config.Config, err error) {
		if err != nil {
			slog.Warn("Ignoring invalid config change", logfields.Error(err))
			return
		}
		sched, err := cfg.ScheduleValue()
		if err != nil {
			slog.Warn("Ignoring invalid schedule", logfields.Error(err))
			return
		}
		a.clock.SetSchedule(sched)
	})

	if reg != nil {
		srv := &http.Server{
			Addr:              metricsAddr,
			Handler:           metricsMux(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			slog.Info("Serving metrics", logfields.Addr(metricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", logfields.Addr(metricsAddr), logfields.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	err = a.clock.Run(ctx)
	if !quiet {
		fmt.Fprintln(out)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func metricsMux(reg *prom.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// statusLine is the single line watch rewrites every second.
func statusLine(s clock.Snapshot, p *locale.Printer) string {
	now := schedule.FormatClock(s.Now)
	delta := schedule.FormatDelta(s.Delta)
	var line string
	switch {
	case !s.IsStandupDay:
		line = fmt.Sprintf("%s  %s", now, p.Sprintf(locale.NoStandup))
	case s.IsLate:
		line = fmt.Sprintf("%s  %s", now, color.RedString(p.Sprintf(locale.LateBy, delta)))
	default:
		line = fmt.Sprintf("%s  %s", now, p.Sprintf(locale.StartsIn, delta))
	}
	if s.Notified {
		line += "  " + p.Sprintf(locale.ReminderSent)
	}
	return line + "\x1b[K"
}
