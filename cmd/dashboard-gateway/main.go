package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/madhava-poojari/dashboard-web/internal/api/v1"
	"github.com/madhava-poojari/dashboard-web/internal/client"
	"github.com/madhava-poojari/dashboard-web/internal/config"
	"github.com/madhava-poojari/dashboard-web/internal/logger"
	"github.com/madhava-poojari/dashboard-web/internal/server"
	"github.com/madhava-poojari/dashboard-web/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}
	log := logger.WithService(logger.New(cfg.LogLevel, cfg.LogFormat), "dashboard-gateway")
	slog.SetDefault(log)

	if cfg.JWTSecret == "" {
		log.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	c, err := client.New(cfg.ClientConfig(), client.WithLogger(log))
	if err != nil {
		log.Error("backend client init failed", slog.Any("error", err))
		os.Exit(1)
	}

	var recorder v1.FetchRecorder
	if cfg.DatabaseURL != "" {
		st, err := store.NewGormStore(cfg)
		if err != nil {
			log.Error("db init failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer st.Close()
		recorder = st
	} else {
		log.Info("DATABASE_URL not set, fetch audit disabled")
	}

	srv := server.NewServer(cfg, c, recorder, log).NewHTTPServer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", slog.String("addr", cfg.BindAddr), slog.String("backend", cfg.BackendBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", slog.Any("error", err))
	}
	log.Info("server stopped")
}
