package main

import (
	"fmt"
	"os"

	"github.com/madhava-poojari/dashboard-web/internal/config"
	"github.com/madhava-poojari/dashboard-web/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logger.WithService(logger.NewWithWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat), "progress-log")

	if err := newRootCmd(cfg, log, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
