package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names shared across packages.
const (
	KeyNotificationID = "notification_id"
	KeyDeadline       = "deadline"
	KeyRemaining      = "remaining"
	KeyLate           = "late"
	KeyPermission     = "permission"
	KeyPlatform       = "platform"
	KeyConfigFile     = "config_file"
	KeyResetAt        = "reset_at"
	KeyAddr           = "addr"
	KeyError          = "error"
)

func NotificationID(id string) slog.Attr   { return slog.String(KeyNotificationID, id) }
func Deadline(t time.Time) slog.Attr       { return slog.Time(KeyDeadline, t) }
func Remaining(d time.Duration) slog.Attr  { return slog.Duration(KeyRemaining, d) }
func Late(late bool) slog.Attr             { return slog.Bool(KeyLate, late) }
func Permission(p string) slog.Attr        { return slog.String(KeyPermission, p) }
func Platform(p string) slog.Attr          { return slog.String(KeyPlatform, p) }
func ConfigFile(path string) slog.Attr     { return slog.String(KeyConfigFile, path) }
func ResetAt(t time.Time) slog.Attr        { return slog.Time(KeyResetAt, t) }
func Addr(addr string) slog.Attr           { return slog.String(KeyAddr, addr) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
