// ABOUTME: Check command for the mygames CLI
// ABOUTME: Verifies the stored session against the backend for scripts and CI

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ronaldobertolucci/my-games-cli/internal/client"
	"github.com/ronaldobertolucci/my-games-cli/internal/messages"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the stored session is usable",
	Long: `Check the stored session and exit non-zero if it cannot be used.

Exit codes:
  0 - Logged in and the backend accepts the token
  1 - Not logged in, or the session has expired
  2 - Error (connectivity, invalid configuration)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exit(runCheck(ctx, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkResult is the outcome of a session check
type checkResult struct {
	authenticated bool
	username      string
	message       string
}

// runCheck verifies the session and returns exit code
func runCheck(ctx context.Context, w io.Writer) int {
	return withEnv(w, func(env *appEnv) int {
		result, code := performCheck(ctx, env)

		if IsJSONOutput() {
			fmt.Fprintln(w, formatCheckJSON(result))
		} else {
			fmt.Fprintln(w, formatCheckHuman(result))
		}
		return code
	})
}

// performCheck makes the smallest authenticated request the backend offers.
func performCheck(ctx context.Context, env *appEnv) (checkResult, int) {
	result := checkResult{username: env.session.Username()}

	if !env.client.IsAuthenticated() {
		result.message = "not logged in or session expired"
		return result, 1
	}

	_, err := env.client.MyGames().List(ctx, 0, 1, client.Filter{})
	if err == nil {
		result.authenticated = true
		return result, 0
	}

	result.message = messages.ForError(err, "session")
	if apiErr, ok := client.AsAPIError(err); ok && apiErr.Kind == client.KindUnauthorized {
		return result, 1
	}
	return result, 2
}

// formatCheckHuman formats the check result for human readability
func formatCheckHuman(r checkResult) string {
	if r.authenticated {
		return fmt.Sprintf("✓ Logged in as %s", r.username)
	}
	return fmt.Sprintf("✗ %s", r.message)
}

// formatCheckJSON formats the check result as JSON
func formatCheckJSON(r checkResult) string {
	status := "passed"
	if !r.authenticated {
		status = "failed"
	}
	output := map[string]interface{}{
		"status":        status,
		"authenticated": r.authenticated,
	}
	if r.username != "" {
		output["username"] = r.username
	}
	if r.message != "" {
		output["message"] = r.message
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
