package v1

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/madhava-poojari/dashboard-web/internal/auth"
	"github.com/madhava-poojari/dashboard-web/internal/config"
	"github.com/madhava-poojari/dashboard-web/internal/models"
)

// ProgressFetcher is satisfied by *client.Client.
type ProgressFetcher interface {
	GetStudentProgressLog(ctx context.Context, studentID string) (models.ProgressLog, error)
	GetStudentProgressLogs(ctx context.Context, studentIDs []string) (map[string]models.ProgressLog, error)
}

// FetchRecorder is satisfied by *store.Store.
type FetchRecorder interface {
	RecordFetch(ctx context.Context, f *models.ProgressLogFetch) error
	ListFetchesByStudent(ctx context.Context, studentID string, limit int) ([]models.ProgressLogFetch, error)
	Ping(ctx context.Context) error
}

type API struct {
	cfg      *config.Config
	router   *chi.Mux
	fetcher  ProgressFetcher
	recorder FetchRecorder // nil when the audit store is disabled
	log      *slog.Logger
}

func NewAPI(cfg *config.Config, fetcher ProgressFetcher, recorder FetchRecorder, log *slog.Logger) *API {
	api := &API{cfg: cfg, router: chi.NewRouter(), fetcher: fetcher, recorder: recorder, log: log}
	api.router.Use(middleware.RequestID)
	api.router.Use(middleware.Logger)
	api.router.Use(middleware.Recoverer)

	api.routes()
	return api
}

func (a *API) Routes() *chi.Mux {
	return a.router
}

func (a *API) routes() {
	progressH := NewProgressHandler(a.fetcher, a.recorder, a.log)
	requireAuth := auth.AuthMiddleware(a.cfg.JWTSecret)

	r := a.router
	r.Route("/students", func(r chi.Router) {
		r.Options("/*", func(w http.ResponseWriter, r *http.Request) {})
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/{id}/progress-log", progressH.GetStudentProgressLog)
			r.With(auth.RoleMiddleware(models.RoleAdmin)).Get("/{id}/progress-log/fetches", progressH.ListFetches)
		})
	})

	r.Route("/progress-logs", func(r chi.Router) {
		r.Options("/*", func(w http.ResponseWriter, r *http.Request) {})
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(auth.RoleMiddleware(models.RoleAdmin, models.RoleCoach, models.RoleMentor))
			r.Get("/", progressH.GetProgressLogs)
		})
	})

	r.Route("/health", func(r chi.Router) {
		r.Options("/*", func(w http.ResponseWriter, r *http.Request) {})
		r.Get("/", HealthHandler(a.recorder))
	})
}
