package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codementor-backend/internal/common"
)

// Limiter counts one hit against key and reports whether the window still has
// room. redisstore.Store is the production implementation.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error)
}

// RateLimit enforces a per-client fixed window on the wrapped routes. A nil
// limiter or a non-positive limit disables it; limiter errors fail open.
func RateLimit(store Limiter, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || limit <= 0 {
			c.Next()
			return
		}

		key := "ratelimit:" + c.FullPath() + ":" + c.ClientIP()
		allowed, err := store.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			log.Printf("rate limit check failed key=%s err=%v", key, err)
			c.Next()
			return
		}
		if !allowed {
			common.Fail(c, http.StatusTooManyRequests, 42900, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
