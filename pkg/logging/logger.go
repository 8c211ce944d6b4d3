// Package logging provides the structured logger used by the dialog runtime.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a structured logger for focus-trap components
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger writing to stdout
func NewLogger(component string, level slog.Level) *Logger {
	return NewLoggerWithWriter(os.Stdout, component, level)
}

// NewLoggerWithWriter creates a JSON logger writing to w.
// Terminal apps pass a log file here since stdout belongs to the screen.
func NewLoggerWithWriter(w io.Writer, component string, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With(
		slog.String("component", component),
		slog.String("system", "focustrap"),
	)
	return &Logger{Logger: logger}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewLoggerWithWriter(io.Discard, "discard", slog.LevelError+1)
}

// ParseLevel maps a config level name to a slog level. Unknown names map
// to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithDialog returns a logger with the dialog's label attached
func (l *Logger) WithDialog(label string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("dialog", label))}
}

// TrapActivated logs the Inactive to Active transition
func (l *Logger) TrapActivated(remembered string) {
	l.Info("focus trap activated", slog.String("remembered", remembered))
}

// TrapDeactivated logs the Active to Inactive transition
func (l *Logger) TrapDeactivated(restored bool) {
	l.Info("focus trap deactivated", slog.Bool("restored", restored))
}

// FocusRedirected logs a focus move pulled back inside the container
func (l *Logger) FocusRedirected(from, to string) {
	l.Debug("focus redirected",
		slog.String("escaped_to", from),
		slog.String("redirected_to", to),
	)
}

// TabWrapped logs a Tab or Shift+Tab that wrapped around the focusable set
func (l *Logger) TabWrapped(direction string, to string) {
	l.Debug("tab wrapped",
		slog.String("direction", direction),
		slog.String("to", to),
	)
}

// DismissRequested logs a close request from escape or backdrop
func (l *Logger) DismissRequested(reason string) {
	l.Info("dismiss requested", slog.String("reason", reason))
}

// RestoreSkipped logs a close whose remembered element is gone
func (l *Logger) RestoreSkipped(reason string) {
	l.Debug("focus restore skipped", slog.String("reason", reason))
}
