package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrSessionExpired is returned when the refresh token was rejected (or
// missing) and the stored session has been cleared. The caller must log in
// again.
var ErrSessionExpired = errors.New("session expired")

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Status returns the HTTP status code.
func (e *HTTPError) Status() int { return e.StatusCode }

// AuthError is a 401 that survived the refresh-and-retry cycle.
type AuthError struct {
	HTTPError
}

// ValidationError is a 4xx rejection carrying the server's message(s).
type ValidationError struct {
	HTTPError
	// Messages holds every message when the server returned a list
	// (typically one per invalid field).
	Messages []string
}

// ServerError is a 5xx response. It is never retried automatically.
type ServerError struct {
	HTTPError
}

// NetworkError means no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// IsStatus returns true if err (or any wrapped error) is an API error with the given status code.
func IsStatus(err error, code int) bool {
	var se interface{ Status() int }
	if errors.As(err, &se) {
		return se.Status() == code
	}
	return false
}

// ErrorKind is the coarse category of a client error.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindAuth
	KindSessionExpired
	KindValidation
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindSessionExpired:
		return "session_expired"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// Classify maps err onto an ErrorKind. Session expiry wins over the
// underlying cause so callers can route straight to re-login.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var (
		authErr   *AuthError
		valErr    *ValidationError
		serverErr *ServerError
		netErr    *NetworkError
	)
	switch {
	case errors.Is(err, ErrSessionExpired):
		return KindSessionExpired
	case errors.As(err, &authErr):
		return KindAuth
	case errors.As(err, &valErr):
		return KindValidation
	case errors.As(err, &serverErr):
		return KindServer
	case errors.As(err, &netErr):
		return KindNetwork
	}
	return KindUnknown
}

// UserMessage renders err for the status line of a screen.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch Classify(err) {
	case KindSessionExpired:
		return "session expired, run `backoffice login`"
	case KindAuth:
		return "not authorized"
	case KindNetwork:
		if errors.Is(err, context.DeadlineExceeded) {
			return "request timed out"
		}
		return "cannot reach the server"
	case KindValidation:
		var valErr *ValidationError
		errors.As(err, &valErr)
		if len(valErr.Messages) > 1 {
			return strings.Join(valErr.Messages, "; ")
		}
		return valErr.Message
	case KindServer:
		var serverErr *ServerError
		errors.As(err, &serverErr)
		return fmt.Sprintf("server error (%d): %s", serverErr.StatusCode, serverErr.Message)
	}
	return err.Error()
}

// errorFromResponse builds the typed error for a >= 400 response.
func errorFromResponse(status int, body []byte) error {
	msgs := errorMessages(body)
	msg := strings.Join(msgs, "; ")
	if msg == "" {
		msg = http.StatusText(status)
	}
	base := HTTPError{StatusCode: status, Message: msg}
	switch {
	case status == http.StatusUnauthorized:
		return &AuthError{HTTPError: base}
	case status >= 500:
		return &ServerError{HTTPError: base}
	default:
		return &ValidationError{HTTPError: base, Messages: msgs}
	}
}
