package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innovation-hub/config"
)

func TestCreateAndParse(t *testing.T) {
	s := NewSigner(config.JWT{AccessSecret: "secret", AccessExpire: 60})
	token, claims, err := s.CreateToken(Payload{UserID: "1", Email: "a@b.c", Role: "admin"})
	require.NoError(t, err)
	assert.NotEmpty(t, claims.SessionID())

	parsed, err := s.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "1", parsed.UserID)
	assert.Equal(t, "admin", parsed.Role)
	assert.Equal(t, claims.SessionID(), parsed.SessionID())
}

func TestParseExpired(t *testing.T) {
	s := NewSigner(config.JWT{AccessSecret: "secret", AccessExpire: 60})
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := s.CreateToken(Payload{UserID: "1"})
	require.NoError(t, err)

	_, err = s.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseWrongSecret(t *testing.T) {
	token, _, err := NewSigner(config.JWT{AccessSecret: "a"}).CreateToken(Payload{UserID: "1"})
	require.NoError(t, err)

	_, err = NewSigner(config.JWT{AccessSecret: "b"}).ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = NewSigner(config.JWT{AccessSecret: "a"}).ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
