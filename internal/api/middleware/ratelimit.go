package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/roster-hq/employee-roster/internal/api/metrics"
	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

// RateLimit takes one token per request from a bucket keyed by client IP and
// route. Limiter failures let the request through.
func RateLimit(limiter ports.RateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	if limiter == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rateKey(c)

			d, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(max(d.Remaining, 0), 10))

			if !d.Allowed {
				secs := int(math.Ceil(d.RetryAfter.Seconds()))
				h.Set("Retry-After", strconv.Itoa(max(secs, 0)))
				metrics.AccessDeniedTotal.WithLabelValues("rate_limited").Inc()
				return domain.ErrRateLimited
			}
			return next(c)
		}
	}
}

func rateKey(c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip + ":route:" + c.Request().Method + " " + c.Path()
}
