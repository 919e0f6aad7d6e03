package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// StatusError reports a non-200 response from the web service.
//
// The lookup layer maps status codes onto its error taxonomy (404 is
// not-found, 503 is a retryable outage); this package only carries the
// code.
type StatusError struct {
	// Code is the HTTP status code of the response.
	Code int

	// Status is the status line, e.g. "503 Service Unavailable".
	Status string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// Client wraps HTTP operations with rate limiting and web-service
// configuration.
//
// One Client is shared by all concurrent resolver tasks so that its token
// bucket enforces a process-wide outbound request rate.
type Client struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
}

// NewClient creates a new rate-limited HTTP client.
//
// requestsPerSecond sizes the token bucket (burst 1, so requests are
// spread evenly rather than clumped). timeout bounds each request
// independently of retries.
func NewClient(userAgent string, requestsPerSecond float64, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Acquire blocks until issuing one request would not exceed the configured
// rate, or until ctx is canceled. Exposed so callers that batch work can
// reserve a slot without performing a request.
func (c *Client) Acquire(ctx context.Context) error {
	return c.limiter.Wait(ctx)
}

// Get performs a rate-limited GET request and returns the response body.
//
// Returns a *StatusError when the response status is not 200 OK, so the
// caller can classify the failure.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	return io.ReadAll(resp.Body)
}

// GetJSON performs a rate-limited GET request and decodes the JSON
// response body into v.
//
// A body that is not valid JSON surfaces as a decode error, distinct from
// *StatusError, so the caller can treat it as a malformed response rather
// than a service failure.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}
