package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/roster-hq/employee-roster/internal/api/metrics"
	"github.com/roster-hq/employee-roster/internal/core/domain"
)

// RBAC rejects callers that do not hold the required role.
func RBAC(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := domain.Authorize(IdentityFrom(c), required); err != nil {
				reason := "forbidden"
				if errors.Is(err, domain.ErrMissingToken) {
					reason = "missing_token"
				}
				metrics.AccessDeniedTotal.WithLabelValues(reason).Inc()
				return err
			}
			return next(c)
		}
	}
}
