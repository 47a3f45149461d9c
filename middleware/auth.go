package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	userRepo "github.com/Happyesss/careerlive---alpha/database/repository/user"
	"github.com/Happyesss/careerlive---alpha/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Context keys set by the auth middleware.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// roleCacheTTL bounds how long a cached role is trusted before the store is
// consulted again.
const roleCacheTTL = time.Hour

var errUnknownUser = errors.New("unknown user")

// JWTAuthMiddleware authenticates requests via a bearer token or the
// auth-token cookie set at login. The user's role is cached in Redis so the
// hot path avoids a store round trip.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		role, err := resolveRole(c.Request.Context(), users, userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequireRole rejects requests whose authenticated user lacks the role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// extractToken reads the bearer header first and falls back to the
// auth-token cookie used by browser sessions.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie("auth-token"); err == nil {
		return cookie
	}
	return ""
}

// resolveRole looks up the user's role, preferring the auth cache and
// falling back to the user store on a miss.
func resolveRole(ctx context.Context, users userRepo.UserRepository, userID string) (string, error) {
	cacheKey := utils.AuthCachePrefix + "role:" + userID
	authCache := utils.GetAuthCacheClient()

	role, err := authCache.Get(ctx, cacheKey).Result()
	if err == nil && role != "" {
		return role, nil
	}
	if err != nil && err != redis.Nil {
		zap.L().Warn("Auth cache lookup failed, falling back to store", zap.Error(err))
	}

	user, err := users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", errUnknownUser
	}

	if err := authCache.Set(ctx, cacheKey, user.Role, roleCacheTTL).Err(); err != nil {
		zap.L().Warn("Failed to cache user role", zap.Error(err))
	}
	return user.Role, nil
}
