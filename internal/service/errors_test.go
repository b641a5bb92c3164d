package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/wisemind/internal/api"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth", &api.AuthenticationError{Resource: "goals", Err: api.ErrNoToken}, "You are signed out. Run `wisemind login` to continue."},
		{"timeout", &api.NetworkError{Err: context.DeadlineExceeded}, "The server took too long to respond. Please try again."},
		{"network", &api.NetworkError{Err: errors.New("refused")}, "Unable to reach the server. Check your connection and try again."},
		{"request with body", &api.RequestError{StatusCode: 409, Status: "Conflict", Message: "Email already registered"}, "Email already registered"},
		{"request without body", &api.RequestError{StatusCode: 502, Status: "Bad Gateway"}, "Request failed: Bad Gateway"},
		{"decode", &api.DeserializationError{Err: errors.New("eof")}, "The server sent an unexpected response."},
		{"other", errors.New("plain"), "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := NormalizeError(tt.err)
			assert.Equal(t, tt.want, ui.Message)
			assert.ErrorIs(t, ui, tt.err)
		})
	}
	assert.Nil(t, NormalizeError(nil))
}

func TestNormalizeError_KeepsExistingUIError(t *testing.T) {
	orig := &UIError{Message: "already friendly"}
	assert.Same(t, orig, NormalizeError(orig))
}
