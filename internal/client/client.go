// ABOUTME: HTTP client for the game catalogue REST API
// ABOUTME: Sends JSON requests through the auth/logging pipeline and decodes responses

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ronaldobertolucci/my-games-cli/internal/session"
)

const defaultTimeout = 30 * time.Second

// Client is the API client for the game catalogue backend
type Client struct {
	baseURL    string
	session    *session.Store
	navigator  Navigator
	httpClient *http.Client
}

// Option customizes a Client
type Option func(*options)

type options struct {
	navigator Navigator
	timeout   time.Duration
	rateLimit float64
	transport http.RoundTripper
}

// WithNavigator sets the receiver of login-required signals
func WithNavigator(n Navigator) Option {
	return func(o *options) { o.navigator = n }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRateLimit throttles outgoing requests to perSecond (0 disables)
func WithRateLimit(perSecond float64) Option {
	return func(o *options) { o.rateLimit = perSecond }
}

// WithTransport replaces the underlying network transport
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// New creates a new API client with the given base URL. All requests go
// through the bearer token interceptor backed by store.
func New(baseURL string, store *session.Store, opts ...Option) *Client {
	o := options{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	baseURL = strings.TrimRight(baseURL, "/")

	var rt http.RoundTripper = http.DefaultTransport
	if o.transport != nil {
		rt = o.transport
	}
	if o.rateLimit > 0 {
		rt = newRateLimitTransport(rt, o.rateLimit)
	}
	rt = &loggingTransport{base: rt}

	basePath := ""
	if u, err := url.Parse(baseURL); err == nil {
		basePath = u.Path
	}

	c := &Client{
		baseURL:   baseURL,
		session:   store,
		navigator: o.navigator,
	}
	c.httpClient = &http.Client{
		Timeout: o.timeout,
		Transport: &AuthTransport{
			Base:      rt,
			Session:   store,
			Navigator: c,
			BasePath:  basePath,
		},
	}
	return c
}

// BaseURL returns the API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns the session store the client authenticates with
func (c *Client) Session() *session.Store {
	return c.session
}

// SetNavigator replaces the receiver of login-required signals. The TUI
// uses it once its program exists.
func (c *Client) SetNavigator(n Navigator) {
	c.navigator = n
}

// LoginRequired forwards to the configured navigator, if any.
func (c *Client) LoginRequired() {
	if c.navigator != nil {
		c.navigator.LoginRequired()
	}
}

// params is an ordered query string builder; the backend sees parameters in
// the order they were added.
type params []struct{ key, value string }

func (p *params) add(key, value string) {
	*p = append(*p, struct{ key, value string }{key, value})
}

func (p *params) addInt(key string, n int64) {
	p.add(key, strconv.FormatInt(n, 10))
}

func (p params) encode() string {
	parts := make([]string, len(p))
	for i, kv := range p {
		parts[i] = url.QueryEscape(kv.key) + "=" + url.QueryEscape(kv.value)
	}
	return strings.Join(parts, "&")
}

// send issues a request and returns the response when the status is 2xx.
// Any other outcome is an *APIError.
func (c *Client) send(ctx context.Context, method, path string, query params, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(ctx, c.baseURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, newAPIError(resp)
	}
	return resp, nil
}

// do sends a JSON request and decodes a JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, query params, body, out interface{}) error {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty body, e.g. 204 No Content
			return nil
		}
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// doText sends a JSON request and returns the response body as plain text.
func (c *Client) doText(ctx context.Context, method, path string, query params, body interface{}) (string, error) {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(data), nil
}
