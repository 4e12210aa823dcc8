// ABOUTME: Shared fixtures for TUI tests
// ABOUTME: Builds apps against httptest backends with isolated session stores

package tui

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ronaldobertolucci/my-games-cli/internal/client"
	"github.com/ronaldobertolucci/my-games-cli/internal/session"
)

func testToken(user string, exp time.Time) string {
	payload := fmt.Sprintf(`{"sub":%q,"exp":%d}`, user, exp.Unix())
	return "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
}

// newTestClient points a client at handler under /api
func newTestClient(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()
	if handler == nil {
		handler = func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unexpected request", http.StatusTeapot)
		}
	}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return client.New(server.URL+"/api", session.Open(t.TempDir()))
}

// newTestApp returns an app, logged in as testuser when loggedIn is set
func newTestApp(t *testing.T, handler http.HandlerFunc, loggedIn bool) *App {
	t.Helper()
	c := newTestClient(t, handler)
	if loggedIn {
		c.Session().Set(testToken("testuser", time.Now().Add(time.Hour)), "testuser")
	}
	app := New(c, 10)
	t.Cleanup(app.closeList)
	return app
}
