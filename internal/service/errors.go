package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/wisemind/internal/api"
)

// UIError is the display shape of an onboarding failure: {"error": "..."}.
type UIError struct {
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *UIError) Error() string { return e.Message }
func (e *UIError) Unwrap() error { return e.Err }

// NormalizeError turns any client error into a UIError with text suitable
// for inline display. nil stays nil.
func NormalizeError(err error) *UIError {
	if err == nil {
		return nil
	}
	var ui *UIError
	if errors.As(err, &ui) {
		return ui
	}
	return &UIError{Message: userMessage(err), Err: err}
}

func userMessage(err error) string {
	var (
		authErr *api.AuthenticationError
		netErr  *api.NetworkError
		reqErr  *api.RequestError
		decErr  *api.DeserializationError
	)
	switch {
	case errors.As(err, &authErr):
		return "You are signed out. Run `wisemind login` to continue."
	case errors.As(err, &netErr) && netErr.Timeout():
		return "The server took too long to respond. Please try again."
	case errors.As(err, &netErr):
		return "Unable to reach the server. Check your connection and try again."
	case errors.As(err, &reqErr):
		if reqErr.Message != "" {
			return reqErr.Message
		}
		return fmt.Sprintf("Request failed: %s", reqErr.Status)
	case errors.As(err, &decErr):
		return "The server sent an unexpected response."
	}
	return err.Error()
}

// RetryableError marks a failed write the user can safely repeat.
type RetryableError struct {
	Op  string
	Err error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("could not save %s, please try again: %s", e.Op, userMessage(e.Err))
}

func (e *RetryableError) Unwrap() error { return e.Err }

func retryable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Op: op, Err: err}
}
