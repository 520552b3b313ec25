package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"spacebook/models"
	"spacebook/services/identity"
	"spacebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const callerKey = "caller"

// AuthMiddleware resolves the bearer token into a models.Caller. Resolved
// identities are cached in Redis keyed by the token hash; a nil cache disables caching.
func AuthMiddleware(resolver identity.Resolver, cache *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortJSON(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "unauthorized")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			abortJSON(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "unauthorized")
			return
		}

		ctx := c.Request.Context()
		cacheKey := utils.AuthCachePrefix + utils.HashToken(token)

		if caller, ok := cachedCaller(ctx, cache, cacheKey, logger); ok {
			SetCaller(c, caller)
			c.Next()
			return
		}

		caller, err := resolver.Resolve(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, identity.ErrInvalidToken):
				abortJSON(c, http.StatusUnauthorized, "Invalid token", "unauthorized")
			case errors.Is(err, identity.ErrUnknownUser):
				abortJSON(c, http.StatusUnauthorized, "User not registered", "unauthorized")
			default:
				logger.Error("AuthMiddleware: identity resolution failed", zap.Error(err))
				abortJSON(c, http.StatusInternalServerError, "Authentication error", "serverError")
			}
			return
		}

		if cache != nil {
			if raw, err := json.Marshal(caller); err == nil {
				if err := cache.Set(ctx, cacheKey, raw, utils.AuthCacheTTL).Err(); err != nil {
					logger.Warn("AuthMiddleware: failed to cache identity", zap.Error(err))
				}
			}
		}

		SetCaller(c, caller)
		c.Next()
	}
}

func cachedCaller(ctx context.Context, cache *redis.Client, key string, logger *zap.Logger) (models.Caller, bool) {
	var caller models.Caller
	if cache == nil {
		return caller, false
	}
	raw, err := cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("AuthMiddleware: auth cache unavailable, resolving token", zap.Error(err))
		}
		return caller, false
	}
	if err := json.Unmarshal(raw, &caller); err != nil || caller.UID == "" {
		return caller, false
	}
	return caller, true
}

// CallerFrom returns the identity set by AuthMiddleware.
func CallerFrom(c *gin.Context) (models.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return models.Caller{}, false
	}
	caller, ok := v.(models.Caller)
	return caller, ok
}

// SetCaller attaches an identity to the context.
func SetCaller(c *gin.Context, caller models.Caller) {
	c.Set(callerKey, caller)
}

func abortJSON(c *gin.Context, status int, message, code string) {
	utils.JSONError(c, status, message, code)
	c.Abort()
}
