package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
)

// CORS answers browser preflights and decorates responses for the given
// origins. An empty list allows any origin.
func CORS(origins []string) echo.MiddlewareFunc {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
		ExposedHeaders: []string{
			"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After", traceIDHeader,
		},
		MaxAge: 600,
	})
	return echo.WrapMiddleware(c.Handler)
}
