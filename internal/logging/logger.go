// Package logging holds the request-scoped logger shared by services and
// handlers. Output goes through log/slog so the level is configurable.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type requestIDKey struct{}

// WithRequestID stores the request id in ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request id set by WithRequestID.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// ParseLevel maps LOG_LEVEL values onto slog levels. Unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// Setup installs the default slog handler. Text output in development,
// JSON everywhere else.
func Setup(w io.Writer, level, env string) {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var h slog.Handler
	if env == "" || env == "development" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
}

// Logger provides structured logging for services
type Logger struct {
	requestID string
	base      *slog.Logger
}

// NewLogger creates a logger bound to the request id in ctx.
func NewLogger(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{requestID: requestID, base: slog.Default()}
}

// RequestID returns the id this logger reports.
func (l *Logger) RequestID() string { return l.requestID }

func (l *Logger) log(level slog.Level, operation, msg string, args ...any) {
	l.base.Log(context.Background(), level, msg,
		append([]any{"request_id", l.requestID, "operation", operation}, args...)...)
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	l.log(slog.LevelError, operation, "operation failed", "error", err)
}

// LogErrorf logs a formatted error with context
func (l *Logger) LogErrorf(operation string, format string, args ...any) {
	l.log(slog.LevelError, operation, fmt.Sprintf(format, args...))
}

// LogInfo logs an info message with context
func (l *Logger) LogInfo(operation string, message string) {
	l.log(slog.LevelInfo, operation, message)
}

// LogInfof logs a formatted info message with context
func (l *Logger) LogInfof(operation string, format string, args ...any) {
	l.log(slog.LevelInfo, operation, fmt.Sprintf(format, args...))
}

// LogWarn logs a warning with context
func (l *Logger) LogWarn(operation string, message string) {
	l.log(slog.LevelWarn, operation, message)
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...any) {
	l.log(slog.LevelWarn, operation, fmt.Sprintf(format, args...))
}

// LogDebugf is for chatty detail such as prompt sizes.
func (l *Logger) LogDebugf(operation string, format string, args ...any) {
	l.log(slog.LevelDebug, operation, fmt.Sprintf(format, args...))
}

// Redact shortens image payloads so they never end up in logs.
func Redact(s string) string {
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i != -1 {
			return s[:i+1] + fmt.Sprintf("<%d bytes>", len(s)-i-1)
		}
	}
	if len(s) > 64 {
		return fmt.Sprintf("%s...<%d bytes>", s[:32], len(s))
	}
	return s
}
