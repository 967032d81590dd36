// ABOUTME: HTTP client wrapper for the banking REST API
// ABOUTME: Builds requests from method, path, query and body and decodes one result per call

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8080/api"

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Client calls the banking REST API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The client is copied,
// so later options never modify the caller's value. Nil is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		cp := *hc
		c.httpClient = &cp
	}
}

// WithTimeout sets a per-request timeout. Zero keeps the HTTP client's own
// timeout. It applies regardless of option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.With("component", "api")
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a Client rooted at baseURL (for example "http://host/api").
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		userAgent: "banca-console",
		logger:    slog.Default().With("component", "api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		c.httpClient.Timeout = c.timeout
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes one API call.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	accept string
}

// do sends req and returns the successful response. The caller must close
// the body. Non-2xx responses are converted to *Error.
func (c *Client) do(ctx context.Context, req request) (*http.Response, error) {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	accept := req.accept
	if accept == "" {
		accept = "application/json"
	}
	httpReq.Header.Set("Accept", accept)
	httpReq.Header.Set("User-Agent", c.userAgent)
	requestID := uuid.New().String()
	httpReq.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Debug("api request failed",
			"method", req.method,
			"path", req.path,
			"request_id", requestID,
			"error", err,
		)
		return nil, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}

	c.logger.Debug("api request",
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeError(resp, req.path)
	}
	return resp, nil
}

// decodeError builds an *Error from a failed response. Bodies that are not
// an ErrorResponse leave Message empty.
func decodeError(resp *http.Response, path string) error {
	apiErr := &Error{Status: resp.StatusCode, Path: path}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var payload ErrorResponse
	if err := json.Unmarshal(data, &payload); err == nil {
		apiErr.Message = payload.Message
		if payload.Path != "" {
			apiErr.Path = payload.Path
		}
	}
	return apiErr
}

// doJSON sends req and decodes a JSON response into out. A nil out discards
// the body.
func (c *Client) doJSON(ctx context.Context, req request, out any) error {
	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", req.method, req.path, err)
	}
	return nil
}
