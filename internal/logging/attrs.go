package logging

import (
	"log/slog"
	"slices"
	"time"
)

// Attr helpers keep call sites free of a direct log/slog import.
type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

// Error records err under the "error" key.
func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

func toArgs(attrs []Attr) []any {
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}
	return args
}

// NewNop returns a logger that drops every record.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger tags logger with a component name. A nil logger becomes
// a no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// WarnWithContext logs a warning that always carries event_type and impact,
// so every WARN line names what was lost.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	has := func(key string) bool {
		return slices.ContainsFunc(attrs, func(a Attr) bool { return a.Key == key })
	}
	if !has(FieldEventType) {
		attrs = append(attrs, String(FieldEventType, eventType))
	}
	if !has(FieldImpact) {
		attrs = append(attrs, String(FieldImpact, "item skipped"))
	}
	logger.Warn(msg, toArgs(attrs)...)
}
