// ABOUTME: Interactive terminal interface command
// ABOUTME: Routes logging to the debug log file and starts the bubbletea program

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ronaldobertolucci/my-games-cli/internal/logger"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui"
	"github.com/ronaldobertolucci/my-games-cli/internal/tui/icons"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI starts the interactive interface with logs redirected away from
// the terminal.
func runTUI() error {
	env, err := newEnv()
	if err != nil {
		return err
	}

	closeLog, err := logger.InitFile(env.cfg.ConfigDir)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}
	defer closeLog()

	mode, _ := icons.ParseMode(env.cfg.Icons)
	icons.Configure(mode)

	slog.Info("Starting TUI", "api_url", env.cfg.APIURL, "user", env.session.Username())
	return tui.Run(env.client, env.cfg.PageSize)
}
