package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Naseebullah-Wali/MoProject/internal/constants"
	"github.com/Naseebullah-Wali/MoProject/internal/repository"
	"github.com/Naseebullah-Wali/MoProject/internal/service"
	ctxutil "github.com/Naseebullah-Wali/MoProject/pkg/context"
	"github.com/Naseebullah-Wali/MoProject/pkg/logger"
)

// Gin context keys set by RequireAuth.
const (
	GinKeyUserID        = "user_id"
	GinKeyUserEmail     = "user_email"
	GinKeyUserRole      = "user_role"
	GinKeySessionClaims = "session_claims"
)

type JWTMiddleware struct {
	tokens   *service.TokenService
	identity *service.IdentityService
	userRepo *repository.UserRepository
}

func NewJWTMiddleware(tokens *service.TokenService, identity *service.IdentityService, userRepo *repository.UserRepository) *JWTMiddleware {
	return &JWTMiddleware{
		tokens:   tokens,
		identity: identity,
		userRepo: userRepo,
	}
}

// RequireAuth validates the bearer token, rejects revoked sessions and
// sessions whose user no longer exists, and sets identity in context.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			logger.GetLogger().Warn("Missing Authorization header",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			m.unauthorized(c)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.GetLogger().Warn("Invalid Authorization header format",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			m.unauthorized(c)
			return
		}

		claims, err := m.tokens.ValidateSessionToken(tokenParts[1])
		if err != nil {
			logger.GetLogger().Warn("Invalid or expired token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err))
			m.unauthorized(c)
			return
		}

		ctx := c.Request.Context()

		if m.identity.IsSessionRevoked(ctx, claims.JTI) {
			logger.GetLogger().Warn("Revoked token rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Uint("user_id", claims.UserID))
			m.unauthorized(c)
			return
		}

		// A soft-deleted user's outstanding sessions die with the row.
		if _, err := m.userRepo.GetByID(ctx, claims.UserID); err != nil {
			logger.GetLogger().Warn("Token for missing user rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Uint("user_id", claims.UserID),
				zap.Error(err))
			m.unauthorized(c)
			return
		}

		c.Set(GinKeyUserID, claims.UserID)
		c.Set(GinKeyUserEmail, claims.Email)
		c.Set(GinKeyUserRole, claims.Role)
		c.Set(GinKeySessionClaims, claims)

		ctx = ctxutil.WithUserID(ctx, claims.UserID)
		ctx = context.WithValue(ctx, ctxutil.UserEmailKey, claims.Email)
		ctx = context.WithValue(ctx, ctxutil.UserRoleKey, claims.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole gates a route to one or more role names. RequireAuth must
// run first.
func (m *JWTMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(GinKeyUserRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		logger.GetLogger().Warn("Insufficient role",
			zap.String("path", c.Request.URL.Path),
			zap.String("role", role))
		c.JSON(http.StatusForbidden, gin.H{
			"error": "forbidden",
			"code":  "FORBIDDEN",
		})
		c.Abort()
	}
}

func (m *JWTMiddleware) unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": "unauthorized",
		"code":  "UNAUTHORIZED",
	})
	c.Abort()
}
