// ABOUTME: Password recovery commands
// ABOUTME: Request a reset email, validate a reset token, and set a new password

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var newPassword string

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Recover a forgotten password",
}

var passwordForgotCmd = &cobra.Command{
	Use:   "forgot <email>",
	Short: "Send a password reset email",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exit(runPasswordForgot(ctx, os.Stdout, args[0]))
	},
}

var passwordValidateCmd = &cobra.Command{
	Use:   "validate <token>",
	Short: "Check that a reset token is still valid",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exit(runPasswordValidate(ctx, os.Stdout, args[0]))
	},
}

var passwordResetCmd = &cobra.Command{
	Use:   "reset <token>",
	Short: "Set a new password using a reset token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if newPassword == "" {
			err := huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Validate(required("password")).
				Value(&newPassword).
				Run()
			if err != nil {
				exit(usageError(os.Stdout, "%v", err))
			}
		}
		exit(runPasswordReset(ctx, os.Stdout, args[0], newPassword))
	},
}

func init() {
	passwordResetCmd.Flags().StringVar(&newPassword, "new-password", "", "New password (prompted when omitted)")
	passwordCmd.AddCommand(passwordForgotCmd, passwordValidateCmd, passwordResetCmd)
	rootCmd.AddCommand(passwordCmd)
}

func runPasswordForgot(ctx context.Context, w io.Writer, email string) int {
	return withEnv(w, func(env *appEnv) int {
		msg, err := env.client.ForgotPassword(ctx, email)
		if err != nil {
			return fail(w, err, "account")
		}
		printServerText(w, msg, "If the address is registered, a reset email is on its way.")
		return 0
	})
}

func runPasswordValidate(ctx context.Context, w io.Writer, resetToken string) int {
	return withEnv(w, func(env *appEnv) int {
		msg, err := env.client.ValidateResetToken(ctx, resetToken)
		if err != nil {
			return fail(w, err, "reset token")
		}
		printServerText(w, msg, "Reset token is valid.")
		return 0
	})
}

func runPasswordReset(ctx context.Context, w io.Writer, resetToken, pass string) int {
	return withEnv(w, func(env *appEnv) int {
		msg, err := env.client.ResetPassword(ctx, resetToken, pass)
		if err != nil {
			return fail(w, err, "reset token")
		}
		printServerText(w, msg, "Password updated. Run 'mygames login' to sign in.")
		return 0
	})
}

// printServerText prints the backend's plain text reply, or fallback when empty
func printServerText(w io.Writer, msg, fallback string) {
	if IsJSONOutput() {
		writeJSON(w, map[string]string{"message": msg})
		return
	}
	if msg == "" {
		msg = fallback
	}
	fmt.Fprintln(w, msg)
}
