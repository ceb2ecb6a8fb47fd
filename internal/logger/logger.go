package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
)

const (
	ServiceNameKey = "service"
	RequestIDKey   = "request_id"
)

// New builds the process logger. format is "json" or "pretty".
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stdout, level, format)
}

func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLevel(level)

	var handler slog.Handler
	if format == "pretty" {
		handler = &PrettyHandler{w: w, level: lvl}
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	}
	return slog.New(handler).With(slog.String("app", "dashboard-web"))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard drops everything; used as the default when no logger is wired.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func WithService(l *slog.Logger, name string) *slog.Logger {
	return l.With(slog.String(ServiceNameKey, name))
}

func WithRequestID(l *slog.Logger, requestID string) *slog.Logger {
	return l.With(slog.String(RequestIDKey, requestID))
}

// PrettyHandler prints colored one-line records for local development.
type PrettyHandler struct {
	w     io.Writer
	level slog.Level
	attrs []slog.Attr
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var levelColor func(format string, a ...any) string
	switch r.Level {
	case slog.LevelDebug:
		levelColor = color.New(color.FgCyan).SprintfFunc()
	case slog.LevelInfo:
		levelColor = color.New(color.FgGreen).SprintfFunc()
	case slog.LevelWarn:
		levelColor = color.New(color.FgYellow).SprintfFunc()
	case slog.LevelError:
		levelColor = color.New(color.FgRed).SprintfFunc()
	default:
		levelColor = color.New(color.FgWhite).SprintfFunc()
	}
	timestamp := color.New(color.FgWhite, color.Faint).Sprint(r.Time.Format("2006/01/02 15:04:05"))

	var service, requestID string
	lines := []string{}
	collect := func(a slog.Attr) bool {
		switch a.Key {
		case ServiceNameKey:
			service = a.Value.String()
		case RequestIDKey:
			requestID = a.Value.String()
		default:
			lines = append(lines, fmt.Sprintf("    %-12s: %v", a.Key, a.Value.Any()))
		}
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	var ctxParts []string
	if service != "" {
		ctxParts = append(ctxParts, "svc:"+service)
	}
	if requestID != "" {
		ctxParts = append(ctxParts, "rid:"+requestID)
	}
	ctxStr := ""
	if len(ctxParts) > 0 {
		ctxStr = "[" + strings.Join(ctxParts, " ") + "] "
	}

	msg := fmt.Sprintf("%s %s %s%s", timestamp, levelColor("%-5s", r.Level.String()), ctxStr, r.Message)
	if len(lines) > 0 {
		sort.Strings(lines)
		msg += "\n" + strings.Join(lines, "\n")
	}
	_, err := fmt.Fprintln(h.w, msg)
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &PrettyHandler{w: h.w, level: h.level, attrs: merged}
}

// groups are flattened
func (h *PrettyHandler) WithGroup(string) slog.Handler {
	return h
}
