package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezmoss/standupclock/internal/clock"
	"github.com/rezmoss/standupclock/internal/config"
	"github.com/rezmoss/standupclock/internal/locale"
	"github.com/rezmoss/standupclock/internal/metrics"
	"github.com/rezmoss/standupclock/internal/reminder"
	"github.com/rezmoss/standupclock/internal/schedule"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func english(t *testing.T) *locale.Printer {
	t.Helper()
	p, err := locale.New("en")
	require.NoError(t, err)
	return p
}

// 2024-01-03 is a Wednesday.
func wednesday(h, m, s int) time.Time {
	return time.Date(2024, time.January, 3, h, m, s, 0, time.Local)
}

func TestHumanDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "less than a minute"},
		{time.Minute, "1 min"},
		{59 * time.Minute, "59 mins"},
		{time.Hour, "1 hr"},
		{65 * time.Minute, "1 hr 5 mins"},
		{3 * time.Hour, "3 hrs"},
		{26*time.Hour + 2*time.Minute, "26 hrs 2 mins"},
		{-90 * time.Second, "1 min"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, humanDuration(tt.d), tt.d.String())
	}
}

func TestPrintStatus(t *testing.T) {
	t.Run("before standup", func(t *testing.T) {
		var buf bytes.Buffer
		printStatus(&buf, schedule.Default(), english(t), reminder.PermissionGranted, wednesday(8, 0, 0))
		out := buf.String()
		assert.Contains(t, out, "08:00:00")
		assert.Contains(t, out, "Starts in 01:01:00 (1 hr 1 mins)")
		assert.Contains(t, out, "Standup at 09:01")
		assert.Contains(t, out, "Wed Jan 3 09:01")
		assert.Contains(t, out, "Notifications on")
	})

	t.Run("late", func(t *testing.T) {
		var buf bytes.Buffer
		printStatus(&buf, schedule.Default(), english(t), reminder.PermissionDefault, wednesday(9, 11, 0))
		out := buf.String()
		assert.Contains(t, out, "Late by 00:10:00")
		assert.Contains(t, out, "Notifications off")
		assert.Contains(t, out, "Thu Jan 4 10:01", "next standup is tomorrow")
	})

	t.Run("weekend", func(t *testing.T) {
		var buf bytes.Buffer
		saturday := time.Date(2024, time.January, 6, 12, 0, 0, 0, time.Local)
		printStatus(&buf, schedule.Default(), english(t), reminder.PermissionDefault, saturday)
		out := buf.String()
		assert.Contains(t, out, "No standup today")
		assert.NotContains(t, out, "Standup at")
		assert.Contains(t, out, "Mon Jan 8 09:01")
	})
}

func TestPermissionText(t *testing.T) {
	p := english(t)
	assert.Equal(t, "Notifications on", permissionText(p, reminder.PermissionGranted))
	assert.Equal(t, "Notifications are blocked", permissionText(p, reminder.PermissionDenied))
	assert.Equal(t, "Notifications off", permissionText(p, reminder.PermissionDefault))

	nl, err := locale.New("nl-BE")
	require.NoError(t, err)
	assert.Equal(t, "Meldingen uit", permissionText(nl, reminder.PermissionDefault))
}

func TestPrintWeek(t *testing.T) {
	var buf bytes.Buffer
	printWeek(&buf, schedule.Default(), wednesday(12, 0, 0), wednesday(12, 0, 0))
	out := buf.String()

	assert.Contains(t, out, "for week starting 2024-01-01")
	assert.Contains(t, out, "Mon 2024-01-01  | 09:01:00")
	assert.Contains(t, out, "Tue 2024-01-02  | 10:01:00")
	assert.Contains(t, out, "Sat 2024-01-06  | -")
	assert.Contains(t, out, "Standups this week : 5")
}

func TestSameDay(t *testing.T) {
	assert.True(t, sameDay(wednesday(0, 0, 0), wednesday(23, 59, 59)))
	assert.False(t, sameDay(wednesday(0, 0, 0), wednesday(0, 0, 0).AddDate(0, 0, 1)))
}

func TestStatusLine(t *testing.T) {
	p := english(t)
	s := schedule.Default()

	line := statusLine(clock.Snapshot{State: s.Compute(wednesday(9, 0, 0)), Notified: true}, p)
	assert.True(t, strings.HasPrefix(line, "09:00:00  Starts in 00:01:00"))
	assert.Contains(t, line, "Reminder sent")

	line = statusLine(clock.Snapshot{State: s.Compute(wednesday(9, 2, 0))}, p)
	assert.Contains(t, line, "Late by 00:01:00")
	assert.NotContains(t, line, "Reminder sent")
}

func TestLaunchAgentPlist(t *testing.T) {
	plist := launchAgentPlist(launchAgentLabel,
		[]string{"/Applications/Standup Clock/standupclock", "watch", "--quiet"},
		"/tmp/out.log", "/tmp/err&.log")

	assert.Contains(t, plist, "<key>Label</key><string>com.standupclock.watch</string>")
	assert.Contains(t, plist, "<string>/Applications/Standup Clock/standupclock</string><string>watch</string><string>--quiet</string>")
	assert.Contains(t, plist, "<string>/tmp/err&amp;.log</string>")
	assert.Contains(t, plist, "<key>RunAtLoad</key><true/>")
}

func TestMetricsMux(t *testing.T) {
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	rec.ObserveTick(schedule.Default().Compute(wednesday(9, 0, 0)))

	srv := httptest.NewServer(metricsMux(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "standupclock_seconds_until_standup 60")

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestConfigMsg(t *testing.T) {
	m, err := config.Open(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	cfg, err := m.Config()
	require.NoError(t, err)

	msg := configMsg(cfg, nil)
	require.NoError(t, msg.Err)
	assert.Equal(t, schedule.Default(), msg.Schedule)
	assert.True(t, msg.Particles)
	assert.Equal(t, "nl", msg.Printer.Tag().String())

	cfg.Schedule.Time = "noon"
	assert.Error(t, configMsg(cfg, nil).Err)

	assert.Error(t, configMsg(nil, assert.AnError).Err)
}

func TestReminderConfigIcon(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("cache directory follows XDG_CACHE_HOME only on linux")
	}
	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)

	m, err := config.Open(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	cfg, err := m.Config()
	require.NoError(t, err)

	rc := reminderConfig(cfg, english(t))
	assert.Equal(t, filepath.Join(cache, "standupclock", "icon.png"), rc.Icon)
	assert.FileExists(t, rc.Icon)

	cfg.Notifications.Icon = "/usr/share/icons/custom.png"
	assert.Equal(t, "/usr/share/icons/custom.png", reminderConfig(cfg, english(t)).Icon)
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(io.Discard)
		rootCmd.SetArgs(append(args, "--config", path, "--env-file", filepath.Join(dir, ".env")))
		err := rootCmd.Execute()
		return out.String(), err
	}

	out, err := run("config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+" (not created yet)\n", out)

	_, err = run("config", "set", "display.locale", "en")
	require.NoError(t, err)

	out, err = run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "locale: en")

	_, err = run("config", "set", "notifications.lead", "0s")
	assert.Error(t, err)

	_, err = run("notifications", "disable")
	require.NoError(t, err)
	m, err := config.Open(path)
	require.NoError(t, err)
	cfg, err := m.Config()
	require.NoError(t, err)
	assert.Equal(t, reminder.PermissionDenied, cfg.Permission())

	out, err = run("version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "standupclock dev"))
}
