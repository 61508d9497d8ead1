package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/symposio/conference-api/internal/api/handler/v1/response"
)

// RateLimit is a fixed-window per-IP limiter backed by Redis. With a nil
// client or a non-positive limit it is a no-op, so the public endpoints keep
// working when Redis is switched off. Redis errors fail open: losing the
// limiter must not take registration down with it.
func RateLimit(client *redis.Client, perMinute int) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if client == nil || perMinute <= 0 {
			ctx.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%v:%v", ctx.FullPath(), ctx.ClientIP())

		count, err := client.Incr(ctx.Request.Context(), key).Result()
		if err != nil {
			zap.L().Warn("rate limiter unavailable", zap.Error(err))
			ctx.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx.Request.Context(), key, time.Minute)
		}

		if count > int64(perMinute) {
			response.RenderErr(ctx, response.ErrTooManyRequests(errors.New("rate limit exceeded, try again shortly")))
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
