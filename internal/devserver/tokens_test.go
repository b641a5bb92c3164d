package devserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RejectsForeignSignature(t *testing.T) {
	a := &tokenIssuer{secret: []byte("a"), ttl: DefaultTokenTTL, now: time.Now}
	b := &tokenIssuer{secret: []byte("b"), ttl: DefaultTokenTTL, now: time.Now}

	tok, claims, err := a.Issue("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	parsed, err := a.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)

	_, err = b.Parse(tok)
	assert.ErrorIs(t, err, errInvalidToken)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := &tokenIssuer{secret: []byte("a"), ttl: -time.Minute, now: time.Now}

	tok, _, err := issuer.Issue("user-1")
	require.NoError(t, err)

	_, err = issuer.Parse(tok)
	assert.ErrorIs(t, err, errInvalidToken)
}
