package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout is applied when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns itself. An empty value
// behaves as a missing token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", ErrNoToken
	}
	return string(t), nil
}

// Options configures a Client.
type Options struct {
	BaseURL string
	// Timeout bounds every call, onboarding included.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client issues exactly one authenticated HTTP request per resource call.
// It does not cache, retry or coalesce.
type Client struct {
	baseURL  string
	timeout  time.Duration
	http     *http.Client
	tokens   TokenSource
	observer Observer
}

// NewClient creates a Client for the REST service at opts.BaseURL.
func NewClient(opts Options, tokens TokenSource, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	if tokens == nil {
		tokens = StaticToken("")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		}
	}
	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		timeout:  timeout,
		http:     httpClient,
		tokens:   tokens,
		observer: observer,
	}
}

// endpoint describes one REST operation.
type endpoint struct {
	method   string
	resource string
	key      string
	auth     bool
}

func (e endpoint) path() string {
	if e.key == "" {
		return "/" + e.resource
	}
	return "/" + e.resource + "/" + e.key
}

type validator interface {
	Validate() error
}

// call performs ep and decodes the 2xx body into T. Every failure is
// reported to the observer and returned unchanged.
func call[T any](ctx context.Context, c *Client, ep endpoint, body any) (T, error) {
	var out T
	start := time.Now()

	status, err := c.do(ctx, ep, body, &out)

	event := CallEvent{
		Resource:   ep.resource,
		Method:     ep.method,
		StatusCode: status,
		LatencyMs:  time.Since(start).Milliseconds(),
		Success:    err == nil,
	}
	if err != nil {
		event.ErrorCode = ErrorCode(err)
		event.Err = err
	}
	c.observer.OnCallComplete(ctx, event)

	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, ep endpoint, body any, out any) (int, error) {
	var token string
	if ep.auth {
		t, err := c.tokens.Token(ctx)
		if err == nil && t == "" {
			err = ErrNoToken
		}
		if err != nil {
			return 0, &AuthenticationError{Resource: ep.resource, Err: err}
		}
		token = t
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%s: marshaling request: %w", ep.resource, err)
		}
		reader = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, ep.method, c.baseURL+ep.path(), reader)
	if err != nil {
		return 0, fmt.Errorf("%s: creating request: %w", ep.resource, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &NetworkError{Method: ep.method, Resource: ep.resource, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &NetworkError{Method: ep.method, Resource: ep.resource, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &RequestError{
			Method:     ep.method,
			Resource:   ep.resource,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Message:    errorMessage(respBody),
		}
	}

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return resp.StatusCode, &DeserializationError{Resource: ep.resource, Err: errors.New("empty response body")}
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, &DeserializationError{Resource: ep.resource, Err: err}
	}
	if v, ok := out.(validator); ok {
		if err := v.Validate(); err != nil {
			return resp.StatusCode, &DeserializationError{Resource: ep.resource, Err: err}
		}
	}
	return resp.StatusCode, nil
}

// errorMessage extracts {"error": ...} or {"message": ...} from an error body.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
