// ABOUTME: Closed error taxonomy for backend calls
// ABOUTME: APIError is built once at the transport boundary and inspected with errors.As

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Kind classifies a failed backend call.
type Kind int

const (
	// KindNetwork means no response reached the client (status 0)
	KindNetwork Kind = iota
	// KindUnauthorized means bad credentials or an expired session
	KindUnauthorized
	// KindConflict means a duplicate or unique-constraint violation
	KindConflict
	// KindValidation means the backend rejected the submitted data
	KindValidation
	// KindNotFound means the entity no longer exists
	KindNotFound
	// KindServer covers 5xx and any other unexpected status
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// maxErrorBody bounds how much of an error body is read for the message.
const maxErrorBody = 4096

// APIError is returned by every client call that fails.
type APIError struct {
	Kind    Kind
	Status  int    // HTTP status, 0 for network failures
	Message string // server-supplied message, may be empty
	Err     error  // underlying transport error for KindNetwork
}

func (e *APIError) Error() string {
	if e.Kind == KindNetwork {
		if e.Message != "" {
			return e.Message
		}
		return "cannot connect to backend"
	}
	if e.Message != "" {
		return fmt.Sprintf("backend error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// AsAPIError extracts an *APIError from err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindForStatus maps an HTTP status code onto the error taxonomy.
func KindForStatus(status int) Kind {
	switch {
	case status == 0:
		return KindNetwork
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusNotFound:
		return KindNotFound
	default:
		return KindServer
	}
}

// errorBody is the JSON error shape; backends use either field.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// newAPIError builds an APIError from a non-2xx response, reading its body
// for a message. JSON bodies use message or error; anything else is taken as
// plain text.
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		Kind:   KindForStatus(resp.StatusCode),
		Status: resp.StatusCode,
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body errorBody
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
		return apiErr
	}

	text := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(text, "<") {
		apiErr.Message = text
	}
	return apiErr
}

// networkError converts transport and context errors into KindNetwork.
func networkError(ctx context.Context, baseURL string, err error) *APIError {
	apiErr := &APIError{Kind: KindNetwork, Err: err}
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		apiErr.Message = "request canceled"
		apiErr.Err = fmt.Errorf("%w: %w", context.Canceled, err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		apiErr.Message = "request timed out"
		apiErr.Err = fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
	case isTimeout(err):
		apiErr.Message = "request timed out"
	default:
		apiErr.Message = fmt.Sprintf("cannot connect to backend at %s", baseURL)
	}
	return apiErr
}

func isTimeout(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
