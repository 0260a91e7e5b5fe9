package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/capstone-forum/backend/pkg/redis"
	"github.com/capstone-forum/backend/pkg/response"
)

// RateLimit caps requests per client per fixed window, counted in Redis.
// Model-calling endpoints use it to bound completion-API spend. Signed-in
// clients are keyed by user id, anonymous ones by IP. Redis failures let the
// request through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := UserID(c)
		if !ok {
			client = c.ClientIP()
		}
		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), client)

		ctx := c.Request.Context()
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				logger.Warn("rate limit expire failed", zap.Error(err))
			}
		}
		if count > int64(limit) {
			response.TooManyRequests(c, "rate limit exceeded, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
