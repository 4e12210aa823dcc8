// ABOUTME: Configuration loader for the mygames client
// ABOUTME: Loads settings from .env and environment variables with defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ronaldobertolucci/my-games-cli/internal/session"
)

// DefaultAPIURL is used when neither flag nor environment sets the backend.
const DefaultAPIURL = "http://localhost:8080/api"

type Config struct {
	// Backend
	APIURL  string        // base URL all resource paths are relative to
	Timeout time.Duration // per-request timeout (default 30s)

	// Client-side throttle, requests per second (0 = unlimited)
	RateLimit float64

	// Lists
	PageSize int // default page size for list screens and commands (default 10)

	// Local state
	ConfigDir string // session file and debug log location

	// TUI icon set: auto, nerd, or plain (default auto)
	Icons string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:    NormalizeURL(getEnv("MYGAMES_API_URL", DefaultAPIURL)),
		Timeout:   time.Duration(getEnvInt("MYGAMES_TIMEOUT", 30)) * time.Second,
		RateLimit: getEnvFloat("MYGAMES_RATE_LIMIT", 0),
		PageSize:  getEnvInt("MYGAMES_PAGE_SIZE", 10),
		ConfigDir: getEnv("MYGAMES_CONFIG_DIR", session.DefaultConfigDir()),
		Icons:     strings.ToLower(strings.TrimSpace(getEnv("MYGAMES_ICONS", "auto"))),
	}

	if cfg.PageSize < 1 || cfg.PageSize > 100 {
		return nil, fmt.Errorf("MYGAMES_PAGE_SIZE must be between 1 and 100, got %d", cfg.PageSize)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("MYGAMES_TIMEOUT must be positive, got %s", cfg.Timeout)
	}
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("MYGAMES_RATE_LIMIT must not be negative, got %g", cfg.RateLimit)
	}
	switch cfg.Icons {
	case "auto", "nerd", "plain":
	default:
		return nil, fmt.Errorf("MYGAMES_ICONS must be auto, nerd, or plain, got %q", cfg.Icons)
	}

	return cfg, nil
}

// NormalizeURL adds an https:// scheme when missing and drops trailing slashes
func NormalizeURL(url string) string {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
