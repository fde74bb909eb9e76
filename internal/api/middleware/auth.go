package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roster-hq/employee-roster/internal/api/metrics"
	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

// IdentityKey is the echo context key holding the verified domain.Identity.
const IdentityKey = "identity"

// Auth verifies the bearer token and injects the caller identity into context.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.AccessDeniedTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrMissingToken
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				metrics.AccessDeniedTotal.WithLabelValues("invalid_token").Inc()
				return domain.ErrInvalidToken
			}

			identity, err := tokens.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				metrics.AccessDeniedTotal.WithLabelValues("invalid_token").Inc()
				return err
			}

			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Auth, or the zero identity.
func IdentityFrom(c echo.Context) domain.Identity {
	id, _ := c.Get(IdentityKey).(domain.Identity)
	return id
}
