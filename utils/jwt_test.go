package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-for-token-round-trip")

	token, err := GenerateAccessToken("user-123", "a@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-for-token-round-trip")

	_, err := ParseAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one-secret-one-secret-one")
	token, err := GenerateAccessToken("user-123", "a@example.com")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-two-secret-two-secret-two")
	_, err = ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateRefreshTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateRefreshToken()
		require.NoError(t, err)
		require.Len(t, token, 64) // 32 random bytes, hex-encoded
		assert.False(t, seen[token])
		seen[token] = true
	}
}
