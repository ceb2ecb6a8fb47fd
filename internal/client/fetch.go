package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/madhava-poojari/dashboard-web/internal/models"
)

type authTokenKey struct{}

// WithAuthToken makes calls made with ctx send token instead of the
// configured access token.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey{}, token)
}

// AuthTokenFrom returns the token set by WithAuthToken.
func AuthTokenFrom(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(authTokenKey{}).(string)
	return tok, ok && tok != ""
}

// Fetch GETs path from the backend and unwraps the envelope payload.
// Only a success envelope on a 2xx response yields a value.
func Fetch[T any](ctx context.Context, c *Client, path string) (*T, error) {
	if c.cfg.MaxRetries == 0 {
		return fetchOnce[T](ctx, c, path, 1)
	}

	var (
		out     *T
		attempt int
	)
	op := func() error {
		attempt++
		v, err := fetchOnce[T](ctx, c, path, attempt)
		if err != nil {
			var fe *FetchError
			if errors.As(err, &fe) && fe.retryable() {
				return err
			}
			return backoff.Permanent(err)
		}
		out = v
		return nil
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.cfg.RetryInterval
	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(c.cfg.MaxRetries)), ctx)

	if err := backoff.Retry(op, b); err != nil {
		var fe *FetchError
		if !errors.As(err, &fe) {
			// context ended between attempts
			err = &FetchError{Kind: ErrTransport, Path: path, Err: err}
		}
		return nil, err
	}
	return out, nil
}

func fetchOnce[T any](ctx context.Context, c *Client, path string, attempt int) (*T, error) {
	reqCtx := ctx
	cancel := func() {}
	if c.cfg.Timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
	}
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &FetchError{Kind: ErrTransport, Path: path, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("X-Request-ID", requestID)
	if tok, ok := AuthTokenFrom(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	} else if c.cfg.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	}

	log := c.log.With(
		slog.String("request_id", requestID),
		slog.String("path", path),
		slog.Int("attempt", attempt),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.WarnContext(ctx, "backend request failed", slog.Any("error", err))
		return nil, &FetchError{Kind: ErrTransport, Path: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WarnContext(ctx, "reading backend response failed", slog.Any("error", err))
		return nil, &FetchError{Kind: ErrTransport, Path: path, StatusCode: resp.StatusCode, Err: err}
	}
	log.DebugContext(ctx, "backend responded",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
		slog.Int("bytes", len(body)),
	)

	env, decErr := models.DecodeEnvelope[T](body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fe := &FetchError{Kind: ErrStatus, Path: path, StatusCode: resp.StatusCode}
		if f, ok := env.(models.Failure); decErr == nil && ok {
			fe.Code, fe.Message, fe.Meta = f.Error, f.Message, f.Meta
		}
		log.WarnContext(ctx, "backend returned error status", slog.Int("status", resp.StatusCode))
		return nil, fe
	}
	if decErr != nil {
		log.WarnContext(ctx, "backend response is not an envelope", slog.Any("error", decErr))
		return nil, &FetchError{Kind: ErrDecode, Path: path, StatusCode: resp.StatusCode, Err: decErr}
	}

	switch e := env.(type) {
	case models.Success[T]:
		return e.Data, nil
	case models.Failure:
		log.InfoContext(ctx, "backend reported failure", slog.String("error", e.Error))
		return nil, &FetchError{
			Kind:       ErrFailure,
			Path:       path,
			StatusCode: resp.StatusCode,
			Code:       e.Error,
			Message:    e.Message,
			Meta:       e.Meta,
		}
	}
	return nil, &FetchError{Kind: ErrDecode, Path: path, StatusCode: resp.StatusCode}
}
