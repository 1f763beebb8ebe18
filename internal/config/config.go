// Package config loads standupclock settings.
//
// Precedence, highest first:
//  1. STANDUP_* environment variables (a .env file is loaded into the environment first)
//  2. The config file (--config, or $XDG_CONFIG_HOME/standupclock/config.yaml)
//  3. Built-in defaults
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rezmoss/standupclock/internal/locale"
	"github.com/rezmoss/standupclock/internal/reminder"
	"github.com/rezmoss/standupclock/internal/schedule"
)

// Config holds all configuration for standupclock.
type Config struct {
	Schedule      ScheduleConfig      `mapstructure:"schedule"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Display       DisplayConfig       `mapstructure:"display"`
	Log           LogConfig           `mapstructure:"log"`
}

// ScheduleConfig says when the standup happens.
type ScheduleConfig struct {
	// Days is a range ("mon-fri") or a list ("mon,wed,fri").
	Days string `mapstructure:"days" validate:"required"`
	// Time is the start time on days without an override, HH:MM[:SS].
	Time string `mapstructure:"time" validate:"required"`
	// Overrides maps a day name to its own start time.
	Overrides map[string]string `mapstructure:"overrides"`
}

// NotificationsConfig holds the reminder settings.
type NotificationsConfig struct {
	// Permission is default, granted or denied. Only granted sends anything.
	Permission string        `mapstructure:"permission" validate:"oneof=default granted denied"`
	Lead       time.Duration `mapstructure:"lead" validate:"min=1s"`
	ResetAfter time.Duration `mapstructure:"reset_after" validate:"min=1m"`
	// Title and Body fall back to the localized defaults when empty.
	Title string `mapstructure:"title"`
	Body  string `mapstructure:"body"`
	Icon  string `mapstructure:"icon"`
}

// DisplayConfig holds dashboard settings.
type DisplayConfig struct {
	Locale    string `mapstructure:"locale" validate:"required"`
	Particles bool   `mapstructure:"particles"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	// File receives the log in dashboard mode; empty discards it.
	File string `mapstructure:"file"`
}

const envPrefix = "STANDUP"

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("schedule.days", "mon-fri")
	v.SetDefault("schedule.time", "09:01")
	// Maps merge across layers, so a config file can add days but not drop these.
	v.SetDefault("schedule.overrides", map[string]any{
		"tue": "10:01",
		"thu": "10:01",
	})

	v.SetDefault("notifications.permission", string(reminder.PermissionDefault))
	v.SetDefault("notifications.lead", "1m")
	v.SetDefault("notifications.reset_after", "24h")
	v.SetDefault("notifications.title", "")
	v.SetDefault("notifications.body", "")
	v.SetDefault("notifications.icon", "")

	v.SetDefault("display.locale", "nl-BE")
	v.SetDefault("display.particles", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// UserConfigPath returns the default config file location.
func UserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "standupclock", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "standupclock", "config.yaml")
	}
	return filepath.Join(home, ".config", "standupclock", "config.yaml")
}

// LoadDotEnv loads path (".env" when empty) into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Manager reads, validates, updates and watches one config file.
type Manager struct {
	v        *viper.Viper
	path     string
	validate *validator.Validate
}

// Open reads the config at path, or at UserConfigPath when path is empty.
// A missing file leaves the defaults in place.
func Open(path string) (*Manager, error) {
	if path == "" {
		path = UserConfigPath()
	}
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return &Manager{v: v, path: path, validate: validator.New()}, nil
}

// newViper returns a viper with the defaults and the environment layer.
func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
}

// Path is the file this manager reads and writes.
func (m *Manager) Path() string { return m.path }

// Exists reports whether the config file is present on disk.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// Config decodes and validates the current settings.
func (m *Manager) Config() (*Config, error) {
	return m.decode(m.v)
}

func (m *Manager) decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(m.validate); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate runs the struct rules plus the checks that need parsing.
func (c *Config) Validate(v *validator.Validate) error {
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if _, err := c.ScheduleValue(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if !locale.Supported(c.Display.Locale) {
		return fmt.Errorf("config validation failed: unsupported locale %q", c.Display.Locale)
	}
	return nil
}

// ScheduleValue converts the schedule section.
func (c *Config) ScheduleValue() (schedule.Schedule, error) {
	days, err := schedule.ParseDays(c.Schedule.Days)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("schedule.days: %w", err)
	}
	def, err := schedule.ParseTimeOfDay(c.Schedule.Time)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("schedule.time: %w", err)
	}
	overrides := make(map[time.Weekday]schedule.TimeOfDay, len(c.Schedule.Overrides))
	for name, value := range c.Schedule.Overrides {
		day, err := schedule.ParseDay(name)
		if err != nil {
			return schedule.Schedule{}, fmt.Errorf("schedule.overrides: %w", err)
		}
		tod, err := schedule.ParseTimeOfDay(value)
		if err != nil {
			return schedule.Schedule{}, fmt.Errorf("schedule.overrides.%s: %w", name, err)
		}
		overrides[day] = tod
	}
	return schedule.Schedule{Days: days, Default: def, Overrides: overrides}, nil
}

// ReminderConfig converts the notifications section, filling title and
// body from p when they are not configured.
func (c *Config) ReminderConfig(p *locale.Printer) reminder.Config {
	rc := reminder.Config{
		Lead:       c.Notifications.Lead,
		ResetAfter: c.Notifications.ResetAfter,
		Title:      c.Notifications.Title,
		Body:       c.Notifications.Body,
		Icon:       c.Notifications.Icon,
	}
	if rc.Title == "" {
		rc.Title = p.Sprintf(locale.ReminderTitle)
	}
	if rc.Body == "" {
		rc.Body = p.Sprintf(locale.ReminderBody)
	}
	return rc
}

// Permission returns the stored notification permission.
func (c *Config) Permission() reminder.Permission {
	return reminder.ParsePermission(c.Notifications.Permission)
}
