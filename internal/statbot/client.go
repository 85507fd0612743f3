package statbot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/osse101/StardustBot_Go/internal/logger"
	"github.com/osse101/StardustBot_Go/internal/metrics"
)

// RateLimit is the rate limit state observed from response headers.
// Zero-valued fields mean the header has not been seen yet.
type RateLimit struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	seen      bool
}

// Client talks to the StatBot statistics API with Bearer auth. It tracks
// the API's rate limit headers, waiting out a known-exhausted window before
// sending, and retries 429 and transient transport errors up to MaxRetries.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	maxRetries int
	httpClient *http.Client

	mu        sync.Mutex
	rateLimit RateLimit

	sleep func(time.Duration)
	now   func() time.Time
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithMaxRetries overrides how often 429 and transient errors are retried.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithUserAgent sets the User-Agent header on outgoing requests.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a new StatBot API client
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		maxRetries: DefaultMaxRetries,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		sleep:      time.Sleep,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RateLimit returns a snapshot of the last observed rate limit state.
func (c *Client) RateLimit() RateLimit {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rateLimit
}

// seriesPoint is one bucket of a StatBot series response.
type seriesPoint struct {
	Count         int   `json:"count"`
	UnixTimestamp int64 `json:"unixTimestamp"`
}

// fetchSeriesTotal GETs a series endpoint and sums the bucket counts.
func (c *Client) fetchSeriesTotal(ctx context.Context, path string, query url.Values) (int, error) {
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.waitIfRateLimited(ctx); err != nil {
			return 0, err
		}

		points, retryable, err := c.doSeriesRequest(ctx, path, query)
		if err == nil {
			total := 0
			for _, point := range points {
				total += point.Count
			}
			log.Debug(LogMsgSeriesFetched, "path", path, "points", len(points), "total", total)
			return total, nil
		}

		lastErr = err
		if !retryable || attempt == c.maxRetries {
			break
		}

		wait := c.retryWait(attempt)
		log.Warn(LogMsgRetrying, "path", path, "attempt", attempt+1, "wait", wait, "error", err)
		c.sleep(wait)
	}

	metrics.StatbotRequestErrors.Inc()
	return 0, lastErr
}

// doSeriesRequest performs one attempt. The bool reports whether the error
// is worth retrying.
func (c *Client) doSeriesRequest(ctx context.Context, path string, query url.Values) ([]seriesPoint, bool, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf(ErrMsgBuildRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport errors (DNS, refused connections, timeouts) are
		// transient more often than not.
		return nil, true, fmt.Errorf(ErrMsgRequestFailed, err)
	}
	defer resp.Body.Close()

	metrics.StatbotRequestDuration.Observe(c.now().Sub(start).Seconds())
	c.updateRateLimit(resp)

	switch {
	case resp.StatusCode == http.StatusOK:
		var points []seriesPoint
		if err := json.NewDecoder(resp.Body).Decode(&points); err != nil {
			return nil, false, fmt.Errorf(ErrMsgDecodeFailed, err)
		}
		return points, false, nil

	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, fmt.Errorf(ErrMsgRateLimited, path)

	case resp.StatusCode == http.StatusBadRequest:
		// Surface the API's validation message, it names the bad parameter.
		return nil, false, fmt.Errorf(ErrMsgBadRequest, apiErrorMessage(resp.Body))

	default:
		return nil, resp.StatusCode >= 500, fmt.Errorf(ErrMsgUnexpectedStatus, resp.StatusCode, path)
	}
}

// waitIfRateLimited blocks until a known-exhausted rate limit window has
// reset, honoring context cancellation.
func (c *Client) waitIfRateLimited(ctx context.Context) error {
	c.mu.Lock()
	limited := c.rateLimit.seen && c.rateLimit.Remaining <= 0
	resetAt := c.rateLimit.ResetAt
	c.mu.Unlock()

	if !limited {
		return nil
	}
	wait := resetAt.Sub(c.now())
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait + jitter())
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) updateRateLimit(resp *http.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := headerInt(resp, "X-RateLimit-Limit"); ok {
		c.rateLimit.Limit = v
		c.rateLimit.seen = true
	}
	if v, ok := headerInt(resp, "X-RateLimit-Remaining"); ok {
		c.rateLimit.Remaining = v
		c.rateLimit.seen = true
	}
	if v, ok := headerInt(resp, "X-RateLimit-Reset"); ok {
		c.rateLimit.ResetAt = c.now().Add(time.Duration(v) * time.Second)
	}
	if v, ok := headerInt(resp, "Retry-After"); ok {
		c.rateLimit.ResetAt = c.now().Add(time.Duration(v) * time.Second)
		c.rateLimit.Remaining = 0
		c.rateLimit.seen = true
	}
}

// retryWait picks the pause before the next attempt: the server-provided
// reset when known, otherwise a linear backoff.
func (c *Client) retryWait(attempt int) time.Duration {
	c.mu.Lock()
	resetAt := c.rateLimit.ResetAt
	c.mu.Unlock()

	if wait := resetAt.Sub(c.now()); wait > 0 {
		return wait + jitter()
	}
	return time.Duration(attempt+1)*RetryBackoffStep + jitter()
}

func headerInt(resp *http.Response, name string) (int, bool) {
	raw := resp.Header.Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// jitter spreads retries out to avoid a thundering herd.
func jitter() time.Duration {
	return time.Duration(rand.Int63n(int64(MaxJitter)))
}

// apiErrorMessage pulls a human-readable detail out of an error body. The
// API sends either {"error": "...", "message": "..."} or a nested
// {"error": {"message": "..."}}, so the error field is decoded lazily.
func apiErrorMessage(body io.Reader) string {
	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		var errText string
		if json.Unmarshal(payload.Error, &errText) == nil && errText != "" {
			return errText
		}
		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(payload.Error, &nested) == nil && nested.Message != "" {
			return nested.Message
		}
	}
	return "no details provided"
}
