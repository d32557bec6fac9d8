package middleware

import (
	"net/http"
	"strings"

	"github.com/PresidentDoug/my-game-sync/internal/pkg"
	"github.com/PresidentDoug/my-game-sync/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const ContextUserIDKey = "user_id"

// Auth 校验 Bearer token，并和 redis 里的登录态比对（单设备）。
// 通过后滑动续期，把 user_id 塞进上下文。
func Auth() gin.HandlerFunc {
	rUser := &redis.UserRepository{}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "missing token"})
			return
		}

		claims, err := pkg.ParseAccess(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
			return
		}

		stored, err := rUser.GetUserToken(claims.UserID)
		if err != nil || stored != strings.TrimPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "session expired"})
			return
		}
		_ = rUser.ExtendUserToken(claims.UserID)

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}
