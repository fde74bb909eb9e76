package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/roster-hq/employee-roster/internal/api/handler"
	"github.com/roster-hq/employee-roster/internal/core/domain"
)

// errorResponse is the only body shape returned for failures.
type errorResponse struct {
	Message string `json:"message"`
}

// domainStatus maps sentinel errors to a status and public message. An empty
// message means the error text itself is safe to return.
var domainStatus = []struct {
	target error
	code   int
	msg    string
}{
	{domain.ErrInvalidInput, http.StatusBadRequest, ""},
	{domain.ErrMissingToken, http.StatusUnauthorized, "missing token"},
	{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid token"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrUserExists, http.StatusConflict, "user already exists"},
	{domain.ErrRateLimited, http.StatusTooManyRequests, "rate limit exceeded"},
}

// NewHTTPErrorHandler renders every handler and middleware error as
// {"message": ...}. Unmapped errors are logged and reported as a bare 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := statusFor(err)
		if code == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func statusFor(err error) (int, string) {
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ve.Error()
	}

	for _, m := range domainStatus {
		if !errors.Is(err, m.target) {
			continue
		}
		if m.msg == "" {
			return m.code, err.Error()
		}
		return m.code, m.msg
	}

	// Router errors such as unknown route or bind failures.
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		return he.Code, fmt.Sprint(he.Message)
	}

	return http.StatusInternalServerError, "internal server error"
}
