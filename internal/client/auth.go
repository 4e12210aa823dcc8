// ABOUTME: Authentication and password recovery calls
// ABOUTME: The only code that writes the session as a result of a network call

package client

import (
	"context"
	"net/http"

	"github.com/ronaldobertolucci/my-games-cli/internal/token"
)

// Credentials are sent to login and register
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /auth/login
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Login calls POST /auth/login and stores the returned session.
// Failures are returned unchanged; nothing is stored.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, Credentials{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Username == "" {
		resp.Username = username
	}
	c.session.Set(resp.Token, resp.Username)
	return &resp, nil
}

// Register calls POST /auth/register. The response is returned as-is and
// does not log the user in.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	return c.doText(ctx, http.MethodPost, "/auth/register", nil, Credentials{Username: username, Password: password})
}

// Logout clears the local session and signals that login is required.
// It never calls the backend and is safe to call without a session.
func (c *Client) Logout() {
	c.session.Clear()
	c.LoginRequired()
}

// IsAuthenticated reports whether a non-expired token is stored.
func (c *Client) IsAuthenticated() bool {
	tok := c.session.Token()
	return tok != "" && !token.IsExpired(tok)
}

// ForgotPassword calls POST /password/forgot
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	return c.doText(ctx, http.MethodPost, "/password/forgot", nil, forgotPasswordRequest{Email: email})
}

// ValidateResetToken calls GET /password/reset/validate
func (c *Client) ValidateResetToken(ctx context.Context, resetToken string) (string, error) {
	var q params
	q.add("token", resetToken)
	return c.doText(ctx, http.MethodGet, "/password/reset/validate", q, nil)
}

// ResetPassword calls POST /password/reset
func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) (string, error) {
	return c.doText(ctx, http.MethodPost, "/password/reset", nil, resetPasswordRequest{Token: resetToken, NewPassword: newPassword})
}
