package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second

	headerRequestID = "X-Request-ID"
)

// TokenSource supplies the bearer token for authenticated requests
type TokenSource interface {
	Token() (string, bool)
}

// Options tunes the HTTP client
type Options struct {
	Timeout           time.Duration
	RequestsPerSecond float64 // <= 0 disables pacing
	Burst             int
	HTTPClient        *http.Client // Overrides Timeout when set
}

// Client talks to the movie backend. It performs no retries: every failure
// is returned to the caller classified as a TransportError, StatusError or
// DecodeError.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a backend client rooted at baseURL
func NewClient(baseURL string, tokens TokenSource, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger,
	}
}

// BaseURL returns the backend root the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one request. When authed is set and no token is stored it fails
// with ErrNoCredential without touching the network. out may be nil.
func (c *Client) do(ctx context.Context, method, path string, body any, authed bool, out any) error {
	var token string
	if authed {
		t, ok := c.tokens.Token()
		if !ok {
			return domain.ErrNoCredential
		}
		token = t
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return &domain.TransportError{Err: err}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &domain.StatusError{Code: resp.StatusCode, Message: errorMessage(data)}
		c.logger.Warn("api request rejected", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)
		return statusErr
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &domain.DecodeError{Err: errors.New("empty response body")}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &domain.DecodeError{Err: err}
	}
	return nil
}

// errorMessage extracts a server-provided message from an error body, if any
func errorMessage(body []byte) string {
	var dto ErrorDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return ""
	}
	if dto.Message != nil {
		return strings.TrimSpace(*dto.Message)
	}
	return ""
}
