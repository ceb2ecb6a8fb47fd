package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoggerCarriesContext(t *testing.T) {
	var buf bytes.Buffer
	l := WithRequestID(WithService(NewWithWriter(&buf, "info", "json"), "gateway"), "req-1")

	l.Debug("hidden")
	l.Info("fetched", slog.String("student_id", "STU1"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "fetched", rec["msg"])
	assert.Equal(t, "gateway", rec[ServiceNameKey])
	assert.Equal(t, "req-1", rec[RequestIDKey])
	assert.Equal(t, "STU1", rec["student_id"])
	assert.Equal(t, "dashboard-web", rec["app"])
}

func TestPrettyLoggerHonoursLevel(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	l := WithService(NewWithWriter(&buf, "warn", "pretty"), "cli")

	l.Info("skipped")
	assert.Empty(t, buf.String())

	l.Warn("slow backend", slog.Int("attempt", 2))
	out := buf.String()
	assert.Contains(t, out, "[svc:cli] slow backend")
	assert.Contains(t, out, "attempt")
	assert.Contains(t, out, "app")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}
