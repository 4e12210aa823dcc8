// ABOUTME: User-facing text for failed backend calls
// ABOUTME: Maps every client error kind onto a short sentence for the CLI and TUI

package messages

import (
	"context"
	"errors"
	"fmt"

	"github.com/ronaldobertolucci/my-games-cli/internal/client"
)

const (
	Network      = "Unable to reach the server. Check your connection."
	BadLogin     = "Invalid username or password."
	Expired      = "Your session has expired. Please log in again."
	InvalidData  = "Invalid data. Check the fields and try again."
	ServerError  = "Server error. Please try again later."
	Canceled     = "Request canceled."
	UnknownError = "Something went wrong."
)

// ForError returns the message shown when an operation on resource fails.
// resource is a lower-case singular noun such as "company" or "game".
func ForError(err error, resource string) string {
	if err == nil {
		return ""
	}

	apiErr, ok := client.AsAPIError(err)
	if !ok {
		return UnknownError
	}

	switch apiErr.Kind {
	case client.KindNetwork:
		if errors.Is(apiErr, context.Canceled) {
			return Canceled
		}
		return Network
	case client.KindUnauthorized:
		return Expired
	case client.KindConflict:
		return fmt.Sprintf("%s %s with this name already exists.", article(resource), resource)
	case client.KindValidation:
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return InvalidData
	case client.KindNotFound:
		return fmt.Sprintf("This %s no longer exists.", resource)
	default:
		return ServerError
	}
}

// ForLogin is ForError for the login form, where 401 means bad credentials.
func ForLogin(err error) string {
	if apiErr, ok := client.AsAPIError(err); ok && apiErr.Kind == client.KindUnauthorized {
		return BadLogin
	}
	return ForError(err, "user")
}

func article(noun string) string {
	if noun == "" {
		return "A"
	}
	switch noun[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "An"
	}
	return "A"
}
