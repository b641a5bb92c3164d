package api

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrNoToken is returned by a TokenSource that holds no credentials.
var ErrNoToken = errors.New("no auth token available")

// AuthenticationError means no bearer token could be obtained. It is raised
// before any network I/O.
type AuthenticationError struct {
	Resource string
	Err      error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s: not authenticated: %v", e.Resource, e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// NetworkError means the request never produced an HTTP response.
type NetworkError struct {
	Method   string
	Resource string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Resource, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the request was abandoned because its deadline passed.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// RequestError is a non-2xx response. Message holds the server's
// {"error"} or {"message"} text when the body carried one.
type RequestError struct {
	Method     string
	Resource   string
	StatusCode int
	Status     string
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Resource, e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Resource, e.StatusCode, e.Status)
}

// DeserializationError means a 2xx body was not valid JSON or failed the
// resource's shape validation.
type DeserializationError struct {
	Resource string
	Err      error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("%s: decoding response: %v", e.Resource, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

// ErrorCode classifies err for logs and call events.
func ErrorCode(err error) string {
	var (
		authErr *AuthenticationError
		netErr  *NetworkError
		reqErr  *RequestError
		decErr  *DeserializationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &authErr):
		return "UNAUTHENTICATED"
	case errors.As(err, &netErr):
		if netErr.Timeout() {
			return "TIMEOUT"
		}
		if errors.Is(err, context.Canceled) {
			return "CANCELED"
		}
		return "NETWORK"
	case errors.As(err, &reqErr):
		return fmt.Sprintf("HTTP_%d", reqErr.StatusCode)
	case errors.As(err, &decErr):
		return "DECODE"
	default:
		return "UNKNOWN"
	}
}

// IsStatus reports whether err is a RequestError with the given status code.
func IsStatus(err error, code int) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == code
}
