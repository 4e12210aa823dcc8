// ABOUTME: Durable session store holding the bearer token and username
// ABOUTME: Persists to a JSON file in the XDG config directory and publishes username changes

package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/ronaldobertolucci/my-games-cli/internal/observable"
)

const fileName = "session.json"

// Store is the single source of truth for "am I logged in, and as whom".
// Token and username are always written and cleared together.
type Store struct {
	dir string

	mu       sync.RWMutex
	token    string
	username string

	user *observable.Value[string]
}

type sessionData struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// DefaultConfigDir returns the default config directory following XDG base directory conventions
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mygames")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mygames")
}

// Open creates a store backed by dir and loads any persisted session.
// An empty dir keeps the session in memory only. A missing or unreadable
// file yields an empty session.
func Open(dir string) *Store {
	s := &Store{dir: dir}

	if data, ok := s.load(); ok && data.Token != "" {
		s.token = data.Token
		s.username = data.Username
	}

	s.user = observable.NewValue(s.username)
	return s
}

// Set stores a new session. Persisting is best effort: a write failure is
// logged and the in-memory session still changes. An empty token clears
// the session.
func (s *Store) Set(token, username string) {
	if token == "" {
		s.Clear()
		return
	}

	s.mu.Lock()
	s.token = token
	s.username = username
	s.mu.Unlock()

	if err := s.save(sessionData{Token: token, Username: username}); err != nil {
		slog.Warn("Failed to persist session", "error", err)
	}

	s.user.Set(username)
}

// Clear removes both the token and the username.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.username = ""
	s.mu.Unlock()

	if err := s.remove(); err != nil {
		slog.Warn("Failed to remove persisted session", "error", err)
	}

	s.user.Set("")
}

// Token returns the stored bearer token, or "" when there is no session.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Username returns the stored username, or "" when there is no session.
func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// CurrentUser streams the username: the current value on subscribe, then
// every change. "" means logged out.
func (s *Store) CurrentUser() observable.Source[string] {
	return s.user
}

// Path returns the session file location, or "" for memory-only stores.
func (s *Store) Path() string {
	if s.dir == "" {
		return ""
	}
	return filepath.Join(s.dir, fileName)
}

func (s *Store) load() (sessionData, bool) {
	var data sessionData
	path := s.Path()
	if path == "" {
		return data, false
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read session file", "path", path, "error", err)
		}
		return data, false
	}

	if err := json.Unmarshal(raw, &data); err != nil {
		// Corrupt file, start logged out
		slog.Warn("Ignoring invalid session file", "path", path, "error", err)
		return sessionData{}, false
	}
	return data, true
}

func (s *Store) save(data sessionData) error {
	path := s.Path()
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, raw, 0600)
}

func (s *Store) remove() error {
	path := s.Path()
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
