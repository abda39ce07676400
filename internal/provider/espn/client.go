// Package espn provides HTTP client infrastructure for ESPN's unofficial
// NFL site API.
//
// The API is plain JSON over GET with query parameters. Request pacing is
// handled via a token bucket limiter; transient failures retry with
// exponential backoff.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/gridironlab/nfl-stats-etl/internal/config"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// Backoff for retryable failures doubles from the configured delay up
	// to this cap.
	maxBackoff = 10 * time.Second
)

// FetchError is the typed failure returned for any request the client could
// not complete. Retryable reports whether the failure class is worth
// retrying; the client has already exhausted its attempts by the time a
// retryable error reaches the caller.
type FetchError struct {
	Endpoint   string
	StatusCode int // 0 for transport-level failures
	Retryable  bool
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("espn %s: HTTP %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("espn %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client is the shared HTTP client for all ESPN endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewClient creates an ESPN client from the application config. The limiter
// enforces the configured minimum spacing between consecutive requests.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.RequestInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		baseURL:    cfg.ESPNBaseURL,
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		maxRetries: maxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     logger,
	}
}

// get performs a paced GET request with retry, decoding the JSON body into
// out. Malformed JSON and non-429 client errors are terminal; 429, server
// errors, timeouts, and transport errors retry with exponential backoff.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	delay := c.retryDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}

	var lastErr *FetchError
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return &FetchError{Endpoint: path, Err: fmt.Errorf("rate limit wait: %w", err)}
		}

		start := time.Now()
		ferr := c.doOnce(ctx, path, params, out)
		if ferr == nil {
			c.logger.Debug("espn request ok", "endpoint", path, "elapsed", time.Since(start).Round(time.Millisecond))
			return nil
		}

		lastErr = ferr
		if !ferr.Retryable {
			return ferr
		}

		if attempt < c.maxRetries {
			c.logger.Warn("espn request failed, retrying",
				"endpoint", path, "attempt", attempt, "backoff", delay, "error", ferr.Err)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return &FetchError{Endpoint: path, Err: ctx.Err()}
			}
			delay *= 2
			if delay > maxBackoff {
				delay = maxBackoff
			}
		}
	}

	return lastErr
}

// doOnce issues a single request and classifies any failure.
func (c *Client) doOnce(ctx context.Context, path string, params url.Values, out interface{}) *FetchError {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &FetchError{Endpoint: path, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts and connection errors are both transient.
		return &FetchError{Endpoint: path, Retryable: true, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Endpoint: path, StatusCode: resp.StatusCode, Retryable: true, Err: fmt.Errorf("read response body: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &FetchError{Endpoint: path, StatusCode: resp.StatusCode, Retryable: true, Err: fmt.Errorf("rate limited")}
	case resp.StatusCode >= 500:
		return &FetchError{Endpoint: path, StatusCode: resp.StatusCode, Retryable: true, Err: fmt.Errorf("server error: %s", truncate(body, 200))}
	case resp.StatusCode != http.StatusOK:
		return &FetchError{Endpoint: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status: %s", truncate(body, 200))}
	}

	if err := json.Unmarshal(body, out); err != nil {
		// A body that does not match the expected shape will not improve
		// on retry.
		return &FetchError{Endpoint: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
