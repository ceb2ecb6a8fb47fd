package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/madhava-poojari/dashboard-web/internal/config"
	"github.com/madhava-poojari/dashboard-web/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeBackend(t *testing.T) (*httptest.Server, *atomic.Value) {
	t.Helper()
	var auth atomic.Value
	auth.Store("")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/web/students/S1/progress-log":
			_, _ = w.Write([]byte(`{"success":true,"data":{"foo":1},"message":"ok"}`))
		case "/api/web/students/S2/progress-log":
			_, _ = w.Write([]byte(`{"success":true,"data":{"foo":2},"message":"ok"}`))
		case "/api/web/students/EMPTY/progress-log":
			_, _ = w.Write([]byte(`{"success":true,"data":null,"message":"ok"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"data":null,"message":"not found","error":"not_found"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &auth
}

func testConfig(base string, t *testing.T) *config.Config {
	return &config.Config{
		BackendBaseURL: base,
		BackendTimeout: 5 * time.Second,
		ArchiveDir:     t.TempDir(),
	}
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(cfg, logger.Discard(), &out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSingleStudentPrintsPayload(t *testing.T) {
	srv, _ := fakeBackend(t)
	out, err := run(t, testConfig(srv.URL, t), "S1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"foo":1}`, out)
}

func TestSeveralStudentsPrintsMap(t *testing.T) {
	srv, _ := fakeBackend(t)
	out, err := run(t, testConfig(srv.URL, t), "S1", "--student", "S2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"S1":{"foo":1},"S2":{"foo":2}}`, out)
}

func TestTokenFlagOverridesConfig(t *testing.T) {
	srv, auth := fakeBackend(t)
	cfg := testConfig(srv.URL, t)
	cfg.BackendAccessToken = "from-env"

	_, err := run(t, cfg, "S1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer from-env", auth.Load())

	_, err = run(t, cfg, "S1", "--token", "from-flag")
	require.NoError(t, err)
	assert.Equal(t, "Bearer from-flag", auth.Load())
}

func TestNullPayloadPrintsNull(t *testing.T) {
	srv, _ := fakeBackend(t)
	out, err := run(t, testConfig(srv.URL, t), "EMPTY")
	require.NoError(t, err)
	assert.Equal(t, "null", strings.TrimSpace(out))
}

func TestBackendFailureIsReturned(t *testing.T) {
	srv, _ := fakeBackend(t)
	_, err := run(t, testConfig(srv.URL, t), "NOPE")
	assert.Error(t, err)
}

func TestNoStudentIsAnError(t *testing.T) {
	srv, _ := fakeBackend(t)
	_, err := run(t, testConfig(srv.URL, t))
	assert.EqualError(t, err, "at least one student id is required")
}

func TestArchiveWritesFiles(t *testing.T) {
	srv, _ := fakeBackend(t)
	cfg := testConfig(srv.URL, t)
	_, err := run(t, cfg, "S1", "EMPTY", "--archive")
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join(cfg.ArchiveDir, "progress-logs", "S1", "*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	b, err := os.ReadFile(files[0])
	require.NoError(t, err)
	var v map[string]int
	require.NoError(t, json.Unmarshal(b, &v))
	assert.Equal(t, 1, v["foo"])

	_, err = os.Stat(filepath.Join(cfg.ArchiveDir, "progress-logs", "EMPTY"))
	assert.True(t, os.IsNotExist(err))
}
