package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/madhava-poojari/dashboard-web/internal/config"
	"github.com/madhava-poojari/dashboard-web/internal/logger"
	"github.com/madhava-poojari/dashboard-web/internal/models"
	"github.com/stretchr/testify/assert"
)

type noopFetcher struct{}

func (noopFetcher) GetStudentProgressLog(context.Context, string) (models.ProgressLog, error) {
	return nil, nil
}

func (noopFetcher) GetStudentProgressLogs(context.Context, []string) (map[string]models.ProgressLog, error) {
	return nil, nil
}

func newTestServer() *Server {
	cfg := &config.Config{
		BindAddr:       ":0",
		JWTSecret:      "secret",
		AllowedOrigins: []string{"https://dashboard.example.com"},
	}
	return NewServer(cfg, noopFetcher{}, nil, logger.Discard())
}

func TestHealthMountedUnderAPIV1(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/students/S1/progress-log", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, req)

	assert.Equal(t, "https://dashboard.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/students/S1/progress-log", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewHTTPServerUsesBindAddr(t *testing.T) {
	srv := newTestServer().NewHTTPServer()
	assert.Equal(t, ":0", srv.Addr)
	assert.NotNil(t, srv.Handler)
}
