// Package client is the Go SDK for the FragSAR enumeration service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/FragSAR/pkg/types/common"
	moltypes "github.com/turtacn/FragSAR/pkg/types/molecule"
)

const Version = "0.1.0"

const requestIDHeader = "X-Request-ID"

// ErrInvalidBaseURL is returned by NewClient for an unusable server address.
var ErrInvalidBaseURL = errors.New("fragsar: invalid base URL")

// Logger defines the logging interface used by the Client
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...interface{}) {}
func (noopLogger) Infof(format string, args ...interface{})  {}
func (noopLogger) Errorf(format string, args ...interface{}) {}

// Client talks to a FragSAR server over HTTP.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	userAgent    string
	logger       Logger
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// APIError is a non-2xx response. Detail is the server's "detail" field.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail"`
	RequestID  string `json:"request_id"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fragsar: HTTP %d: %s [request_id=%s]", e.StatusCode, e.Detail, e.RequestID)
}

func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsClientError reports whether the request itself was rejected.
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrInvalidBaseURL
	}
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https", ErrInvalidBaseURL)
	}

	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		userAgent:    fmt.Sprintf("fragsar-go-sdk/%s", Version),
		logger:       noopLogger{},
		retryMax:     3,
		retryWaitMin: 500 * time.Millisecond,
		retryWaitMax: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the server address without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// ─── Endpoints ─────────────────────────────────────────────────────────────

// Enumerate posts req to /enumerate and returns the descriptor rows.
func (c *Client) Enumerate(ctx context.Context, req *moltypes.EnumerateRequest) ([]moltypes.DescriptorRow, error) {
	if req == nil || strings.TrimSpace(req.SMILES) == "" {
		return nil, fmt.Errorf("fragsar: smiles is required")
	}
	var resp moltypes.EnumerateResponse
	if err := c.post(ctx, "/enumerate", req, &resp); err != nil {
		return nil, err
	}
	if resp.Rows == nil {
		resp.Rows = []moltypes.DescriptorRow{}
	}
	return resp.Rows, nil
}

// Describe returns the descriptor row of a single structure.
func (c *Client) Describe(ctx context.Context, smiles string) (*moltypes.DescriptorRow, error) {
	var row moltypes.DescriptorRow
	if err := c.post(ctx, "/describe", moltypes.DescribeRequest{SMILES: smiles}, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// Groups lists the fragment table in table order.
func (c *Client) Groups(ctx context.Context) ([]moltypes.Group, error) {
	var resp moltypes.GroupsResponse
	if err := c.get(ctx, "/groups", &resp); err != nil {
		return nil, err
	}
	return resp.Groups, nil
}

// Health queries the readiness probe. A server that is up but not ready
// yields an *APIError with status 503.
func (c *Client) Health(ctx context.Context) (*common.HealthResponse, error) {
	var resp common.HealthResponse
	if err := c.get(ctx, "/readyz", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ─── Transport ─────────────────────────────────────────────────────────────

// do performs an HTTP request with retry logic
func (c *Client) do(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	fullURL := c.baseURL + path

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = b
	}

	var lastErr error
	for attempt := 0; attempt <= c.retryMax; attempt++ {
		if attempt > 0 {
			backoff := c.calculateBackoff(attempt)
			c.logger.Debugf("retry attempt %d after %v", attempt, backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		requestID := uuid.New().String()
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set(requestIDHeader, requestID)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		duration := time.Since(start)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Errorf("request failed: %v", err)
			lastErr = err
			continue
		}

		c.logger.Debugf("%s %s %d (%v)", method, path, resp.StatusCode, duration)

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode >= 400 {
			apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: requestID}
			if id := resp.Header.Get(requestIDHeader); id != "" {
				apiErr.RequestID = id
			}
			var errResp common.ErrorResponse
			if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Detail != "" {
				apiErr.Detail = errResp.Detail
			} else {
				apiErr.Detail = strings.TrimSpace(string(respBody))
			}

			lastErr = apiErr
			if shouldRetry(resp.StatusCode) {
				continue
			}
			return apiErr
		}

		if result != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, result); err != nil {
				return fmt.Errorf("failed to unmarshal response: %w", err)
			}
		}
		return nil
	}

	return lastErr
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// shouldRetry is true for gateway and availability failures. Enumeration is
// deterministic, so a 500 would fail the same way again.
func shouldRetry(status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.retryWaitMin * time.Duration(1<<uint(attempt-1))
	if backoff > c.retryWaitMax {
		backoff = c.retryWaitMax
	}
	// 0-25% jitter
	if q := int64(backoff / 4); q > 0 {
		backoff += time.Duration(rand.Int63n(q))
	}
	return backoff
}

//Personal.AI order the ending
