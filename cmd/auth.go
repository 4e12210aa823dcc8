// ABOUTME: Login, register, and logout commands
// ABOUTME: Prompts for missing credentials and persists the session on login

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ronaldobertolucci/my-games-cli/internal/messages"
)

var (
	username string
	password string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	Long: `Log in to the backend. The returned token is stored in the config
directory and sent with every later command until it expires.

Missing --username or --password values are prompted for.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := promptCredentials(&username, &password); err != nil {
			exit(usageError(os.Stdout, "%v", err))
		}
		exit(runLogin(ctx, os.Stdout, username, password))
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long:  `Create a new account. Registering does not log you in.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := promptCredentials(&username, &password); err != nil {
			exit(usageError(os.Stdout, "%v", err))
		}
		exit(runRegister(ctx, os.Stdout, username, password))
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		exit(runLogout(os.Stdout))
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVarP(&username, "username", "u", "", "Account username")
		c.Flags().StringVarP(&password, "password", "p", "", "Account password")
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(logoutCmd)
}

// promptCredentials asks for whichever of username and password is empty.
func promptCredentials(user, pass *string) error {
	var fields []huh.Field
	if *user == "" {
		fields = append(fields, huh.NewInput().Title("Username").Value(user).Validate(required("username")))
	}
	if *pass == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(pass).Validate(required("password")))
	}
	if len(fields) == 0 {
		return nil
	}

	err := huh.NewForm(huh.NewGroup(fields...)).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return errors.New("aborted")
	}
	return err
}

func required(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// runLogin authenticates and returns exit code
func runLogin(ctx context.Context, w io.Writer, user, pass string) int {
	return withEnv(w, func(env *appEnv) int {
		resp, err := env.client.Login(ctx, user, pass)
		if err != nil {
			fmt.Fprintf(w, "Error: %s\n", messages.ForLogin(err))
			return 1
		}

		if IsJSONOutput() {
			writeJSON(w, map[string]string{"username": resp.Username, "session": env.session.Path()})
			return 0
		}
		fmt.Fprintf(w, "Logged in as %s\n", resp.Username)
		return 0
	})
}

// runRegister creates an account and returns exit code
func runRegister(ctx context.Context, w io.Writer, user, pass string) int {
	return withEnv(w, func(env *appEnv) int {
		msg, err := env.client.Register(ctx, user, pass)
		if err != nil {
			return fail(w, err, "user")
		}

		if IsJSONOutput() {
			writeJSON(w, map[string]string{"username": user, "message": msg})
			return 0
		}
		msg = strings.TrimSuffix(strings.TrimSpace(msg), ".")
		if msg == "" {
			msg = "Account created"
		}
		fmt.Fprintf(w, "%s. Run 'mygames login' to sign in.\n", msg)
		return 0
	})
}

// runLogout clears the session and returns exit code
func runLogout(w io.Writer) int {
	return withEnv(w, func(env *appEnv) int {
		was := env.session.Username()
		// Logging out on request needs no hint
		env.client.SetNavigator(nil)
		env.client.Logout()
		if was == "" {
			fmt.Fprintln(w, "Not logged in.")
			return 0
		}
		fmt.Fprintf(w, "Logged out %s\n", was)
		return 0
	})
}
