package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ekaraca/mekanbul-backend/config"
	apperrors "github.com/ekaraca/mekanbul-backend/internal/errors"
	"github.com/ekaraca/mekanbul-backend/pkg/logger"
	"github.com/ekaraca/mekanbul-backend/pkg/redis"
	"github.com/ekaraca/mekanbul-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
)

type AuthMiddleware struct {
	jwtCfg *config.JWTConfig
}

func NewAuthMiddleware(jwtCfg *config.JWTConfig) *AuthMiddleware {
	return &AuthMiddleware{jwtCfg: jwtCfg}
}

// Authenticate requires a valid, non-revoked access token and loads the
// caller's identity into the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearerToken(c)
		if !ok {
			apperrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := m.validateAccessToken(c, token)
		if err != nil {
			code := apperrors.AuthTokenInvalid
			message := "Invalid token"
			switch {
			case errors.Is(err, util.ErrExpiredToken):
				code = apperrors.AuthTokenExpired
				message = "Token has expired"
			case errors.Is(err, errTokenRevoked):
				code = apperrors.AuthTokenRevoked
				message = "Token has been revoked"
			}
			apperrors.RespondWithError(c, http.StatusUnauthorized, code, message)
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUserEmail, claims.Email)
		c.Set(ContextKeyUserRole, claims.Role)
		c.Next()
	}
}

// OptionalAuthenticate loads identity when a valid token is presented but
// lets anonymous requests through.
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := m.validateAccessToken(c, token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUserEmail, claims.Email)
		c.Set(ContextKeyUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole allows only callers whose role is in the given set.
// It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			apperrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		logger.Warn("Role check failed", map[string]interface{}{
			"role":     role,
			"required": roles,
			"path":     c.Request.URL.Path,
		})
		apperrors.Forbidden(c, "Insufficient permissions")
		c.Abort()
	}
}

var errTokenRevoked = errors.New("token revoked")

func (m *AuthMiddleware) validateAccessToken(c *gin.Context, token string) (*util.Claims, error) {
	claims, err := util.ValidateToken(token, m.jwtCfg.Secret)
	if err != nil {
		return nil, err
	}
	if claims.Type != util.TokenTypeAccess {
		return nil, util.ErrInvalidToken
	}

	revoked, err := redis.IsTokenBlacklisted(c.Request.Context(), token)
	if err != nil {
		logger.Warn("Blacklist lookup failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if revoked {
		return nil, errTokenRevoked
	}

	return claims, nil
}

func extractBearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetUserID returns the authenticated user's ID from the request context
func GetUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

func GetUserEmail(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextKeyUserEmail)
	if !exists {
		return "", false
	}
	email, ok := value.(string)
	return email, ok
}

func GetUserRole(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextKeyUserRole)
	if !exists {
		return "", false
	}
	role, ok := value.(string)
	return role, ok
}
