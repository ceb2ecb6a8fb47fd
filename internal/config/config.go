package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/madhava-poojari/dashboard-web/internal/client"
)

type Config struct {
	BackendBaseURL     string
	BackendTimeout     time.Duration
	BackendMaxRetries  int
	BackendAccessToken string
	BindAddr           string
	DatabaseURL        string
	JWTSecret          string
	AllowedOrigins     []string
	ArchiveDir         string
	R2AccessKeyID      string
	R2SecretAccessKey  string
	R2Endpoint         string
	R2BucketName       string
	LogLevel           string
	LogFormat          string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	base := os.Getenv("BACKEND_BASE_URL")
	if base == "" {
		// name used by the old web build
		base = os.Getenv("VITE_BACKEND_TEST_URI")
	}
	if base == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}

	timeoutSec, err := strconv.Atoi(getEnv("BACKEND_TIMEOUT_SECONDS", "15"))
	if err != nil || timeoutSec < 0 {
		return nil, fmt.Errorf("BACKEND_TIMEOUT_SECONDS must be a non-negative integer")
	}
	retries, err := strconv.Atoi(getEnv("BACKEND_MAX_RETRIES", "0"))
	if err != nil || retries < 0 {
		return nil, fmt.Errorf("BACKEND_MAX_RETRIES must be a non-negative integer")
	}

	return &Config{
		BackendBaseURL:     base,
		BackendTimeout:     time.Duration(timeoutSec) * time.Second,
		BackendMaxRetries:  retries,
		BackendAccessToken: os.Getenv("BACKEND_ACCESS_TOKEN"),
		BindAddr:           getEnv("BIND_ADDR", ":8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		ArchiveDir:         getEnv("ARCHIVE_DIR", "./archive"),
		R2AccessKeyID:      os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:  os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2Endpoint:         os.Getenv("R2_ENDPOINT"),
		R2BucketName:       os.Getenv("R2_BUCKET_NAME"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
	}, nil
}

// ClientConfig derives the fetch client settings.
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		BaseURL:     c.BackendBaseURL,
		Timeout:     c.BackendTimeout,
		MaxRetries:  c.BackendMaxRetries,
		AccessToken: c.BackendAccessToken,
	}
}

// R2Enabled reports whether every R2 setting is present.
func (c *Config) R2Enabled() bool {
	return c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2Endpoint != "" && c.R2BucketName != ""
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
