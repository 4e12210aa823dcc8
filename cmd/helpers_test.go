// ABOUTME: Shared fixtures for command tests
// ABOUTME: Points commands at an httptest backend and a temporary config directory

package cmd

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ronaldobertolucci/my-games-cli/internal/session"
)

// testBackend starts handler under /api and points the commands at it with
// an isolated config directory. It returns the config directory.
func testBackend(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	t.Setenv("MYGAMES_CONFIG_DIR", dir)
	t.Setenv("MYGAMES_API_URL", "")
	t.Setenv("MYGAMES_PAGE_SIZE", "")
	t.Setenv("MYGAMES_TIMEOUT", "")
	t.Setenv("MYGAMES_RATE_LIMIT", "")

	apiURL = server.URL + "/api"
	hintOut = io.Discard
	t.Cleanup(func() {
		apiURL = ""
		jsonOutput = false
		hintOut = os.Stderr
	})
	return dir
}

// captureHints collects login hints printed during the test
func captureHints(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	hintOut = &buf
	return &buf
}

// loginAs seeds a stored session in dir
func loginAs(t *testing.T, dir, user string, exp time.Time) string {
	t.Helper()
	payload := fmt.Sprintf(`{"sub":%q,"exp":%d}`, user, exp.Unix())
	tok := "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
	session.Open(dir).Set(tok, user)
	return tok
}
