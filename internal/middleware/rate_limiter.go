package middleware

import (
	"net/http"
	"strconv"

	"ballesteros/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewLimiter builds a per-IP limiter for rate (e.g. "300-M"). Counters live
// in Redis under prefix so every API replica shares them; with a nil client
// they are kept in process memory.
func NewLimiter(rate string, rdb *redis.Client, prefix string) (*limiter.Limiter, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}

	var store limiter.Store
	if rdb != nil {
		store, err = sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: prefix})
		if err != nil {
			return nil, err
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: prefix})
	}
	return limiter.New(store, r), nil
}

// RateLimit rejects requests over the limit with 429 and the standard
// X-RateLimit-* headers. If the store fails the request is let through.
func RateLimit(l *limiter.Limiter, mensaje string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		ctx, err := l.Get(c.Request.Context(), ip)
		if err != nil {
			log.Error().Err(err).Str("ip", ip).Msg("rate limiter: store error")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(ctx.Reset, 10))

		if ctx.Reached {
			log.Warn().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("ip", ip).
				Int64("limit", ctx.Limit).
				Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.Con(apierror.CodigoLimite, mensaje))
			return
		}
		c.Next()
	}
}
