// ABOUTME: Request pipeline for outgoing backend calls
// ABOUTME: Bearer token interceptor, request logging with correlation IDs, and optional throttling

package client

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/ronaldobertolucci/my-games-cli/internal/session"
	"github.com/ronaldobertolucci/my-games-cli/internal/token"
)

// Navigator receives the signal that the user must log in again.
type Navigator interface {
	LoginRequired()
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func()

func (f NavigatorFunc) LoginRequired() { f() }

// PublicPaths are sent without a bearer token.
var PublicPaths = []string{"/auth/login", "/auth/register"}

// AuthTransport attaches the stored bearer token to outgoing requests.
//
// Per request:
//  1. requests to a public path pass through unmodified
//  2. with no stored token the request passes through unmodified
//  3. with an expired token the session is cleared, the navigator is told
//     to show login, and the original request still passes through unmodified
//  4. otherwise a clone carrying "Authorization: Bearer <token>" is sent
//
// It keeps no state between requests and never retries or blocks.
type AuthTransport struct {
	Base      http.RoundTripper
	Session   *session.Store
	Navigator Navigator
	BasePath  string   // path of the API base URL, e.g. "/api"
	Public    []string // suffixes under BasePath; defaults to PublicPaths

	now func() time.Time
}

// RoundTrip implements http.RoundTripper
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if t.isPublic(req) {
		return base.RoundTrip(req)
	}

	tok := t.Session.Token()
	if tok == "" {
		return base.RoundTrip(req)
	}

	now := time.Now
	if t.now != nil {
		now = t.now
	}

	if token.IsExpiredAt(tok, now()) {
		slog.Info("Session token expired, clearing session", "path", sanitizePath(req.URL.Path))
		t.Session.Clear()
		if t.Navigator != nil {
			t.Navigator.LoginRequired()
		}
		// The request still goes out, without a token
		return base.RoundTrip(req)
	}

	authed := req.Clone(req.Context())
	authed.Header.Set("Authorization", "Bearer "+tok)
	return base.RoundTrip(authed)
}

func (t *AuthTransport) isPublic(req *http.Request) bool {
	public := t.Public
	if public == nil {
		public = PublicPaths
	}

	path := strings.TrimRight(req.URL.Path, "/")
	basePath := strings.TrimRight(t.BasePath, "/")
	for _, suffix := range public {
		if path == basePath+suffix {
			return true
		}
	}
	return false
}

// loggingTransport logs each request with a correlation ID. The ID stays in
// the log; the request itself is passed on untouched.
type loggingTransport struct {
	base http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	requestID := uuid.NewString()

	path := sanitizePath(req.URL.Path)
	slog.Debug("Request started",
		"request_id", requestID,
		"method", req.Method,
		"path", path,
	)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		slog.Debug("Request failed",
			"request_id", requestID,
			"method", req.Method,
			"path", path,
			"error", err,
			"latency_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	slog.Debug("Request completed",
		"request_id", requestID,
		"method", req.Method,
		"path", path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

// rateLimitTransport spaces out requests to at most limit per second.
type rateLimitTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func newRateLimitTransport(base http.RoundTripper, perSecond float64) *rateLimitTransport {
	return &rateLimitTransport{
		base:    base,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// sanitizePath strips control characters so paths cannot forge log lines.
func sanitizePath(path string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, path)
}
