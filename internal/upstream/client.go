// Package upstream is the single egress point for calls to the remote
// ExamoBuddy API. Every request picks up the caller's bearer token at
// dispatch time, and every unauthorized response is reported to registered
// observers before the error reaches the caller.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"examobuddy/internal/metrics"
)

// DefaultBaseURL is used when no API_BASE_URL is configured.
const DefaultBaseURL = "http://localhost:8000/api"

// TokenSource returns the bearer token for the request's caller, or "" when
// the caller holds no session. It is consulted once per request, immediately
// before dispatch.
type TokenSource func(ctx context.Context) string

// UnauthorizedFunc is notified whenever the upstream rejects a request with
// 401. The original error is still returned to the caller afterwards.
type UnauthorizedFunc func(ctx context.Context)

type bearerKey struct{}

// WithBearer pins the bearer token for requests made with the returned
// context, taking precedence over the client's token source. The login flow
// uses it to call Me with a token that is not yet stored in any session.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

// APIError is a non-2xx response from the upstream API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream: %s", http.StatusText(e.Status))
	}
	return fmt.Sprintf("upstream: %s: %s", http.StatusText(e.Status), e.Message)
}

// Client talks to the remote ExamoBuddy API. The zero value is not usable;
// construct with New.
type Client struct {
	baseURL      string
	http         *http.Client
	tokens       TokenSource
	unauthorized []UnauthorizedFunc
}

// New creates a Client for the given base URL. A nil tokens source means
// requests are sent without credentials.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
		tokens:  tokens,
	}
}

// OnUnauthorized registers an observer for 401 responses.
func (c *Client) OnUnauthorized(fn UnauthorizedFunc) {
	c.unauthorized = append(c.unauthorized, fn)
}

// SetHTTPClient replaces the underlying HTTP client, mainly for tests.
func (c *Client) SetHTTPClient(h *http.Client) {
	c.http = h
}

// doJSON issues a request with an optional JSON body and decodes a JSON
// response into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path, endpoint string, in, out any) error {
	body, contentType, err := encodeBody(in)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, method, path, endpoint, body, contentType)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("upstream: decoding %s response: %w", endpoint, err)
	}
	return nil
}

// doRaw issues a request and returns the raw response body, for endpoints
// that produce binary payloads.
func (c *Client) doRaw(ctx context.Context, method, path, endpoint string, in any) ([]byte, string, error) {
	body, contentType, err := encodeBody(in)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.do(ctx, method, path, endpoint, body, contentType)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("upstream: reading %s response: %w", endpoint, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) do(ctx context.Context, method, path, endpoint string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("upstream: building %s request: %w", endpoint, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	// Token lookup happens here, per request, so a session replaced or
	// cleared since the last call is always reflected. A token pinned with
	// WithBearer wins over the source.
	token, _ := ctx.Value(bearerKey{}).(string)
	if token == "" && c.tokens != nil {
		token = c.tokens(ctx)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestSeconds.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("upstream: %s: %w", endpoint, err)
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		_ = resp.Body.Close()
		if resp.StatusCode == http.StatusUnauthorized {
			for _, fn := range c.unauthorized {
				fn(ctx)
			}
		}
		return nil, apiErr
	}
	return resp, nil
}

func encodeBody(in any) (io.Reader, string, error) {
	if in == nil {
		return nil, "", nil
	}
	data, err := json.Marshal(in)
	if err != nil {
		return nil, "", fmt.Errorf("upstream: encoding request: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

// readErrorMessage pulls the detail field FastAPI-style backends put in error
// bodies, falling back to the raw body text.
func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(data))
}

// IsUnauthorized reports whether err is an upstream 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
