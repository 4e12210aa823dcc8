// ABOUTME: Shared helpers for client tests
// ABOUTME: Builds unsigned test tokens and clients against httptest servers

package client

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ronaldobertolucci/my-games-cli/internal/session"
)

// testToken builds an unsigned JWT-shaped token expiring at exp.
func testToken(t *testing.T, exp time.Time) string {
	t.Helper()
	payload := fmt.Sprintf(`{"sub":"testuser","exp":%d}`, exp.Unix())
	return "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
}

func validToken(t *testing.T) string {
	t.Helper()
	return testToken(t, time.Now().Add(time.Hour))
}

func expiredToken(t *testing.T) string {
	t.Helper()
	return testToken(t, time.Now().Add(-time.Hour))
}

// countingNavigator records login-required signals.
type countingNavigator struct {
	calls int
}

func (n *countingNavigator) LoginRequired() { n.calls++ }

// newTestClient starts server with handler and returns a client whose base
// URL is server.URL + "/api".
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *session.Store, *countingNavigator) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.Open(t.TempDir())
	nav := &countingNavigator{}
	c := New(server.URL+"/api", store, WithNavigator(nav))
	return c, store, nav
}
