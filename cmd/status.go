// ABOUTME: Status command for the mygames CLI
// ABOUTME: Shows who is logged in, where the session lives, and when it expires

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ronaldobertolucci/my-games-cli/internal/token"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Long:  `Display the logged in user, the backend URL, and the session expiry. No request is sent to the backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		exit(runStatus(os.Stdout, time.Now()))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// sessionStatus is the local view of the stored session
type sessionStatus struct {
	APIURL    string     `json:"api_url"`
	Session   string     `json:"session_file"`
	LoggedIn  bool       `json:"logged_in"`
	Username  string     `json:"username,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Expired   bool       `json:"expired"`
}

// runStatus prints the session status and returns exit code
func runStatus(w io.Writer, now time.Time) int {
	return withEnv(w, func(env *appEnv) int {
		st := sessionStatus{
			APIURL:   env.cfg.APIURL,
			Session:  env.session.Path(),
			Username: env.session.Username(),
		}

		if tok := env.session.Token(); tok != "" {
			st.LoggedIn = true
			if exp, err := token.Expiry(tok); err == nil {
				st.ExpiresAt = &exp
			}
			st.Expired = token.IsExpiredAt(tok, now)
		}

		if IsJSONOutput() {
			fmt.Fprintln(w, formatStatusJSON(st))
		} else {
			fmt.Fprintln(w, formatStatusHuman(st, now))
		}
		return 0
	})
}

// formatStatusHuman formats the session status for human readability
func formatStatusHuman(st sessionStatus, now time.Time) string {
	if !st.LoggedIn {
		return fmt.Sprintf(`Backend:  %s
Session:  not logged in
Run 'mygames login' to sign in.`, st.APIURL)
	}

	expiry := "unknown"
	if st.ExpiresAt != nil {
		expiry = st.ExpiresAt.Local().Format("2006-01-02 15:04:05")
		if st.Expired {
			expiry += " (expired)"
		} else {
			expiry += fmt.Sprintf(" (in %s)", st.ExpiresAt.Sub(now).Round(time.Minute))
		}
	} else if st.Expired {
		expiry = "invalid token"
	}

	return fmt.Sprintf(`Backend:  %s
User:     %s
Expires:  %s
Session:  %s`, st.APIURL, st.Username, expiry, st.Session)
}

// formatStatusJSON formats the session status as JSON
func formatStatusJSON(st sessionStatus) string {
	data, _ := json.MarshalIndent(st, "", "  ")
	return string(data)
}
