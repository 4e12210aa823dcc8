// ABOUTME: Root command for the mygames CLI
// ABOUTME: Handles global flags, configuration, and the shared client environment

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/ronaldobertolucci/my-games-cli/internal/client"
	"github.com/ronaldobertolucci/my-games-cli/internal/config"
	"github.com/ronaldobertolucci/my-games-cli/internal/logger"
	"github.com/ronaldobertolucci/my-games-cli/internal/messages"
	"github.com/ronaldobertolucci/my-games-cli/internal/session"
)

var (
	apiURL     string
	jsonOutput bool

	// hintOut receives the login hint when the stored session expires
	hintOut io.Writer = os.Stderr
)

// rootCmd is the base command. Without a subcommand it starts the TUI.
var rootCmd = &cobra.Command{
	Use:   "mygames",
	Short: "Admin client for the My Games catalogue",
	Long: `mygames manages the My Games catalogue: companies, platforms, genres,
themes, sources, games, and your personal collection.

Run without arguments to start the interactive interface.

Environment Variables:
  MYGAMES_API_URL     Backend API URL (default: http://localhost:8080/api)
  MYGAMES_CONFIG_DIR  Session and debug log directory (default: ~/.config/mygames)
  MYGAMES_TIMEOUT     Request timeout in seconds (default: 30)
  MYGAMES_PAGE_SIZE   Default page size, 1-100 (default: 10)
  MYGAMES_RATE_LIMIT  Max requests per second, 0 for unlimited (default: 0)
  MYGAMES_ICONS       TUI icon set: auto, nerd, or plain (default: auto)
  LOG_LEVEL           debug, info, warn, error (default: info)
  LOG_FORMAT          text, json (default: text)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(os.Stderr)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides MYGAMES_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return config.NormalizeURL(apiURL)
	}
	if envURL := os.Getenv("MYGAMES_API_URL"); envURL != "" {
		return config.NormalizeURL(envURL)
	}
	return config.DefaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// appEnv is what every command needs to talk to the backend.
type appEnv struct {
	cfg     *config.Config
	session *session.Store
	client  *client.Client
}

// newEnv loads configuration, opens the session file, and builds a client.
func newEnv() (*appEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.APIURL = GetAPIURL()

	store := session.Open(cfg.ConfigDir)
	c := client.New(cfg.APIURL, store,
		client.WithNavigator(loginHint(hintOut)),
		client.WithTimeout(cfg.Timeout),
		client.WithRateLimit(cfg.RateLimit),
	)

	slog.Debug("Client configured", "api_url", cfg.APIURL, "config_dir", cfg.ConfigDir)
	return &appEnv{cfg: cfg, session: store, client: c}, nil
}

// loginHint tells the user to sign in again, at most once per command.
func loginHint(w io.Writer) client.Navigator {
	var once sync.Once
	return client.NavigatorFunc(func() {
		once.Do(func() {
			fmt.Fprintln(w, "Session expired, run `mygames login`")
		})
	})
}

// withEnv runs fn with a fresh environment, reporting setup failures with
// exit code 2.
func withEnv(w io.Writer, fn func(env *appEnv) int) int {
	env, err := newEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	return fn(env)
}

// fail prints the user-facing message for a failed call on resource and
// returns exit code 1.
func fail(w io.Writer, err error, resource string) int {
	slog.Debug("Command failed", "resource", resource, "error", err)
	fmt.Fprintf(w, "Error: %s\n", messages.ForError(err, resource))
	return 1
}

// usageError prints a usage problem and returns exit code 2.
func usageError(w io.Writer, format string, args ...interface{}) int {
	fmt.Fprintf(w, "Error: "+format+"\n", args...)
	return 2
}

// exit terminates the process when code is non-zero.
func exit(code int) {
	if code != 0 {
		os.Exit(code)
	}
}
