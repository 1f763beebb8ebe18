package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/rezmoss/standupclock/internal/logfields"
	"github.com/rezmoss/standupclock/internal/reminder"
	"github.com/rezmoss/standupclock/internal/schedule"
)

// Set updates key to value and writes the file. Only what the file already
// holds plus key is written, never defaults or STANDUP_* values. The change
// is rejected, and nothing is written, when the result does not validate.
func (m *Manager) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if !m.knownKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}

	file, err := m.fileLayer()
	if err != nil {
		return err
	}
	file.Set(key, value)

	candidate := newViper()
	if err := candidate.MergeConfigMap(file.AllSettings()); err != nil {
		return fmt.Errorf("merging config: %w", err)
	}
	if _, err := m.decode(candidate); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := file.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("writing config %s: %w", m.path, err)
	}
	if err := m.v.ReadInConfig(); err != nil {
		return fmt.Errorf("reloading config %s: %w", m.path, err)
	}
	return nil
}

// fileLayer reads the config file alone, without defaults or environment.
func (m *Manager) fileLayer() (*viper.Viper, error) {
	file := viper.New()
	file.SetConfigType("yaml")
	file.SetConfigFile(m.path)
	if err := file.ReadInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("reading config %s: %w", m.path, err)
	}
	return file, nil
}

func (m *Manager) knownKey(key string) bool {
	if day, ok := strings.CutPrefix(key, "schedule.overrides."); ok {
		_, err := schedule.ParseDay(day)
		return err == nil
	}
	return slices.Contains(m.v.AllKeys(), key)
}

// SetPermission stores the notification permission.
func (m *Manager) SetPermission(p reminder.Permission) error {
	return m.Set("notifications.permission", string(p))
}

// Settings returns every key with its effective value, for display.
func (m *Manager) Settings() map[string]any {
	return m.v.AllSettings()
}

// Watch calls fn with the reloaded config each time the file changes. fn
// runs on the watcher goroutine; a config that fails validation is passed
// as an error and the previous one stays in effect for the caller. Watch is
// a no-op when the file does not exist yet.
func (m *Manager) Watch(fn func(*Config, error)) {
	if !m.Exists() {
		return
	}
	m.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		slog.Info("Config file changed", logfields.ConfigFile(e.Name))
		fn(m.Config())
	})
	m.v.WatchConfig()
}
