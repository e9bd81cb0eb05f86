package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/dailychallenge/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.Set(config.AppConfig{JWTSecret: "s3cret", TokenTTLHours: 2})
	id := uuid.New()

	tok, err := GenerateToken(id, "alice", TokenTTL())
	require.NoError(t, err)

	claims, err := ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenRejects(t *testing.T) {
	config.Set(config.AppConfig{JWTSecret: "s3cret"})

	expired, err := GenerateToken(uuid.New(), "bob", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired)
	assert.Error(t, err)

	_, err = ParseToken("not-a-token")
	assert.Error(t, err)

	signed, err := GenerateToken(uuid.New(), "bob", time.Hour)
	require.NoError(t, err)
	config.Set(config.AppConfig{JWTSecret: "rotated"})
	_, err = ParseToken(signed)
	assert.Error(t, err)
}
