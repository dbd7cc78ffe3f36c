package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateTokenPair(t *testing.T) {
	pair, err := GenerateTokenPair(42, "user@example.com", "user", testSecret, time.Hour, 24*time.Hour)
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, int64(3600), pair.ExpiresIn)
}

func TestValidateToken(t *testing.T) {
	pair, err := GenerateTokenPair(42, "user@example.com", "admin", testSecret, time.Hour, 24*time.Hour)
	require.NoError(t, err)

	t.Run("valid access token", func(t *testing.T) {
		claims, err := ValidateToken(pair.AccessToken, testSecret)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "user@example.com", claims.Email)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, TokenTypeAccess, claims.Type)
	})

	t.Run("valid refresh token", func(t *testing.T) {
		claims, err := ValidateToken(pair.RefreshToken, testSecret)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.Type)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := ValidateToken(pair.AccessToken, "other-secret")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ValidateToken("not.a.token", testSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := GenerateTokenPair(42, "user@example.com", "user", testSecret, -time.Minute, -time.Minute)
		require.NoError(t, err)

		_, err = ValidateToken(expired.AccessToken, testSecret)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
