package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	v1 "github.com/madhava-poojari/dashboard-web/internal/api/v1"
	"github.com/madhava-poojari/dashboard-web/internal/config"
)

type Server struct {
	cfg      *config.Config
	fetcher  v1.ProgressFetcher
	recorder v1.FetchRecorder
	log      *slog.Logger
}

func NewServer(cfg *config.Config, fetcher v1.ProgressFetcher, recorder v1.FetchRecorder, log *slog.Logger) *Server {
	return &Server{cfg: cfg, fetcher: fetcher, recorder: recorder, log: log}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	api := v1.NewAPI(s.cfg, s.fetcher, s.recorder, s.log)
	r.Mount("/api/v1", api.Routes())
	return r
}

func (s *Server) NewHTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.BindAddr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
