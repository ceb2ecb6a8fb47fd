package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/madhava-poojari/dashboard-web/internal/logger"
	"github.com/madhava-poojari/dashboard-web/internal/models"
	"golang.org/x/sync/errgroup"
)

const defaultUserAgent = "dashboard-web"

type Config struct {
	BaseURL     string
	Timeout     time.Duration // per attempt; 0 means none
	MaxRetries  int           // 0 means exactly one request per call
	AccessToken string
	UserAgent   string

	// RetryInterval is the first backoff delay; defaults to 500ms.
	RetryInterval time.Duration
}

// Client talks to the dashboard backend's /api/web endpoints.
// It keeps no state between calls: no caching and no request coalescing.
type Client struct {
	cfg         Config
	baseURL     string
	http        *http.Client
	log         *slog.Logger
	concurrency int
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithConcurrency bounds the fan-out of GetStudentProgressLogs.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

func New(cfg Config, opts ...Option) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("client: invalid base url %q", cfg.BaseURL)
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("client: max retries must not be negative")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 500 * time.Millisecond
	}

	c := &Client{
		cfg:         cfg,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		http:        &http.Client{},
		log:         logger.Discard(),
		concurrency: 8,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func ProgressLogPath(studentID string) string {
	return "/api/web/students/" + url.PathEscape(studentID) + "/progress-log"
}

// GetStudentProgressLog fetches one student's progress log. A nil log with a
// nil error means the backend succeeded but sent no payload.
func (c *Client) GetStudentProgressLog(ctx context.Context, studentID string) (models.ProgressLog, error) {
	if studentID == "" {
		return nil, ErrInvalidStudentID
	}
	p, err := Fetch[models.ProgressLog](ctx, c, ProgressLogPath(studentID))
	if err != nil || p == nil {
		return nil, err
	}
	return *p, nil
}

// GetStudentProgressLogs fetches several logs concurrently. Every id is an
// independent request; the first failure cancels the ones still running and
// is returned as a *StudentError.
func (c *Client) GetStudentProgressLogs(ctx context.Context, studentIDs []string) (map[string]models.ProgressLog, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	var mu sync.Mutex
	out := make(map[string]models.ProgressLog, len(studentIDs))
	for _, id := range studentIDs {
		g.Go(func() error {
			pl, err := c.GetStudentProgressLog(gctx, id)
			if err != nil {
				return &StudentError{StudentID: id, Err: err}
			}
			mu.Lock()
			out[id] = pl
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
