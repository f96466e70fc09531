// Package client dispatches requests to the osu! v2 API. Every outbound call
// funnels through one path that checks authentication and scope up front,
// waits on the shared rate limiter, and records usage once a response exists.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osukit/osukit/internal/core"
	"github.com/osukit/osukit/internal/core/engine"
)

// Client issues API requests. One Client owns one Limiter; multiple
// goroutines may dispatch through the same Client concurrently.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Auth       TokenSource
	Limiter    *engine.Limiter
	Logger     *zap.Logger
	UserAgent  string
	Clock      func() time.Time
}

// New returns a client with defaults applied.
func New(baseURL string, auth TokenSource, limiter *engine.Limiter) *Client {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = core.DefaultBaseURL
	}
	return &Client{
		BaseURL: trimmed,
		Auth:    auth,
		Limiter: limiter,
	}
}

type requestOptions struct {
	body    any
	headers map[string]string
	query   url.Values
}

// RequestOption adjusts a single dispatch.
type RequestOption func(*requestOptions)

// WithBody attaches a JSON-encoded request body.
func WithBody(body any) RequestOption {
	return func(o *requestOptions) { o.body = body }
}

// WithHeader adds a caller-supplied header. Empty values are ignored, and the
// Authorization header is always overwritten by the dispatcher for
// authenticated endpoints.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}

// WithQuery adds a query parameter.
func WithQuery(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.query == nil {
			o.query = url.Values{}
		}
		o.query.Set(key, value)
	}
}

// Get dispatches a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, endpoint core.Endpoint, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, endpoint, out, opts...)
}

// Post dispatches a POST request and decodes the response into out.
func (c *Client) Post(ctx context.Context, endpoint core.Endpoint, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, endpoint, out, opts...)
}

// Put dispatches a PUT request and decodes the response into out.
func (c *Client) Put(ctx context.Context, endpoint core.Endpoint, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPut, endpoint, out, opts...)
}

// Patch dispatches a PATCH request and decodes the response into out.
func (c *Client) Patch(ctx context.Context, endpoint core.Endpoint, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPatch, endpoint, out, opts...)
}

// Delete dispatches a DELETE request and decodes the response into out.
func (c *Client) Delete(ctx context.Context, endpoint core.Endpoint, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, endpoint, out, opts...)
}

// do is the single dispatch path behind every verb. Preconditions are checked
// once, before the rate gate; a request that fails them is never sent and
// never counted against the limiter.
func (c *Client) do(ctx context.Context, method string, endpoint core.Endpoint, out any, opts ...RequestOption) error {
	if c == nil {
		return fmt.Errorf("client is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var options requestOptions
	for _, opt := range opts {
		opt(&options)
	}

	var token *core.Token
	if endpoint.RequiresAuth {
		if c.Auth == nil {
			return &AuthRequiredError{Path: endpoint.Path}
		}
		fetched, err := c.Auth.Token(ctx)
		if err != nil {
			return fmt.Errorf("fetch credential: %w", err)
		}
		if !fetched.Valid(c.now()) {
			return &AuthRequiredError{Path: endpoint.Path}
		}
		if missing := fetched.Scopes.Missing(endpoint.Scopes); len(missing) > 0 {
			return &ScopeError{Path: endpoint.Path, Missing: missing, Granted: fetched.Scopes}
		}
		token = fetched
	}

	if err := c.Limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if options.body != nil {
		encoded, err := json.Marshal(options.body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	reqURL := strings.TrimRight(c.BaseURL, "/") + endpoint.Path
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if len(options.query) > 0 {
		req.URL.RawQuery = options.query.Encode()
	}

	// Base headers first, caller extras next, Authorization last so it wins
	// over any caller-supplied value.
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	for key, value := range options.headers {
		if strings.TrimSpace(value) == "" {
			continue
		}
		req.Header.Set(key, value)
	}
	if token != nil {
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	}

	requestID := uuid.New().String()
	logger := c.logger()
	logger.Debug("dispatching request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", endpoint.Path),
	)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	// Usage accounting reflects requests sent, not requests that succeeded.
	c.Limiter.Record()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.Debug("request failed",
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
		)
		return &APIError{StatusCode: resp.StatusCode, Body: respBody, Method: method, Path: endpoint.Path}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) logger() *zap.Logger {
	if c != nil && c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

func (c *Client) now() time.Time {
	if c != nil && c.Clock != nil {
		return c.Clock()
	}
	return time.Now().UTC()
}
