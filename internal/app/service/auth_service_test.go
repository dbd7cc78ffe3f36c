package service

import (
	"context"
	"testing"
	"time"

	"github.com/ekaraca/mekanbul-backend/config"
	"github.com/ekaraca/mekanbul-backend/internal/app/model"
	"github.com/ekaraca/mekanbul-backend/internal/app/repository"
	"github.com/ekaraca/mekanbul-backend/internal/db"
	"github.com/ekaraca/mekanbul-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*gorm.DB, *AuthService) {
	t.Helper()

	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })

	jwtCfg := &config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
	}
	return database, NewAuthService(repository.NewUserRepository(database), jwtCfg)
}

func TestRegister(t *testing.T) {
	_, svc := setupAuthTest(t)

	user, err := svc.Register("alice@example.com", "password123", "Alice")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register("alice@example.com", "otherpass123", "Alice Again")
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}

func TestLogin(t *testing.T) {
	_, svc := setupAuthTest(t)
	_, err := svc.Register("alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, tokens, err := svc.Login("alice@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		require.NotNil(t, tokens)

		claims, err := util.ValidateToken(tokens.AccessToken, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, util.TokenTypeAccess, claims.Type)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login("alice@example.com", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login("nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefreshToken(t *testing.T) {
	_, svc := setupAuthTest(t)
	_, err := svc.Register("alice@example.com", "password123", "Alice")
	require.NoError(t, err)
	_, tokens, err := svc.Login("alice@example.com", "password123")
	require.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		fresh, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, fresh.AccessToken)
	})

	t.Run("access token is not accepted", func(t *testing.T) {
		_, err := svc.RefreshToken(context.Background(), tokens.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.RefreshToken(context.Background(), "garbage")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestChangePassword(t *testing.T) {
	_, svc := setupAuthTest(t)
	user, err := svc.Register("alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(user.ID, "nope", "newpassword1")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("successful change", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(user.ID, "password123", "newpassword1"))

		_, _, err := svc.Login("alice@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = svc.Login("alice@example.com", "newpassword1")
		assert.NoError(t, err)
	})
}

func TestUpdateProfile(t *testing.T) {
	_, svc := setupAuthTest(t)
	user, err := svc.Register("alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(user.ID, "Alice Karaca")
	require.NoError(t, err)
	assert.Equal(t, "Alice Karaca", updated.Name)

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UpdateProfile(9999, "Ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
