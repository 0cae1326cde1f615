package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	providerRepo "obrafacil/database/repository/provider"
	userRepo "obrafacil/database/repository/user"
	"obrafacil/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ContextUserID is the gin context key carrying the authenticated subject id.
const ContextUserID = "userID"

// ContextRole is the gin context key carrying the authenticated subject role.
const ContextRole = "role"

// JWTAuthUserMiddleware authenticates client accounts.
func JWTAuthUserMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return requireAuth(func(id string) (string, error) {
		u, err := repo.GetByIDWithProjection(id, bson.M{"id": 1, "tokenHash": 1})
		if err != nil {
			return "", err
		}
		return u.TokenHash, nil
	})
}

// JWTAuthProviderMiddleware authenticates provider accounts.
func JWTAuthProviderMiddleware(repo providerRepo.ProviderRepository) gin.HandlerFunc {
	return requireAuth(func(id string) (string, error) {
		p, err := repo.GetByIDWithProjection(id, bson.M{"id": 1, "tokenHash": 1})
		if err != nil {
			return "", err
		}
		return p.TokenHash, nil
	})
}

// requireAuth validates the bearer token against the Redis auth cache, falling
// back to the stored token hash on a miss. On success the subject id and role
// are placed in the request context; callers never supply their own identity.
func requireAuth(lookupHash func(id string) (string, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
			return
		}

		subjectID, role, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || subjectID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + subjectID
		authCache := utils.GetAuthCacheClient()

		if cachedHash, err := authCache.Get(ctx, cacheKey).Result(); err == nil {
			if cachedHash == computedHash {
				_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
				c.Set(ContextUserID, subjectID)
				c.Set(ContextRole, role)
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
			return
		} else if err != redis.Nil {
			utils.GetLogger().Warn("auth cache lookup failed, falling back to DB", zap.Error(err))
		}

		storedHash, err := lookupHash(subjectID)
		if err != nil || storedHash == "" || storedHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
			return
		}

		_ = authCache.Set(ctx, cacheKey, computedHash, time.Hour).Err()
		c.Set(ContextUserID, subjectID)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// CallerID pulls the authenticated subject id from the gin context.
func CallerID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
