package event

import (
	"log/slog"
	"strings"
)

// Level numbers used by the record format.
const (
	LevelDebug    = 10
	LevelInfo     = 20
	LevelWarning  = 30
	LevelError    = 40
	LevelCritical = 50
)

var levelNames = map[int]string{
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelWarning:  "WARNING",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
}

// LevelName returns the canonical name for a level number, or "" if unknown.
func LevelName(no int) string {
	return levelNames[no]
}

// LevelNo returns the level number for a name such as "warn" or "ERROR".
func LevelNo(name string) (int, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG", "TRACE":
		return LevelDebug, true
	case "INFO", "NOTICE":
		return LevelInfo, true
	case "WARN", "WARNING":
		return LevelWarning, true
	case "ERROR", "ERR":
		return LevelError, true
	case "CRITICAL", "FATAL", "PANIC":
		return LevelCritical, true
	}
	return 0, false
}

// FromSlogLevel maps a slog level onto the record level number and name.
func FromSlogLevel(l slog.Level) (int, string) {
	switch {
	case l < slog.LevelInfo:
		return LevelDebug, levelNames[LevelDebug]
	case l < slog.LevelWarn:
		return LevelInfo, levelNames[LevelInfo]
	case l < slog.LevelError:
		return LevelWarning, levelNames[LevelWarning]
	case l < slog.LevelError+4:
		return LevelError, levelNames[LevelError]
	default:
		return LevelCritical, levelNames[LevelCritical]
	}
}
