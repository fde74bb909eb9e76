package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/roster-hq/employee-roster/docs"
	"github.com/roster-hq/employee-roster/internal/api/handler"
	"github.com/roster-hq/employee-roster/internal/api/middleware"
	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

// Dependencies are the wired services the router exposes over HTTP.
type Dependencies struct {
	Log         zerolog.Logger
	AuthService ports.AuthService
	UserService ports.UserService
	Tokens      ports.TokenService
	// Limiter guards /register and /login. Nil disables rate limiting.
	Limiter ports.RateLimiter
	// Health lists the dependencies checked by /health/ready.
	Health []handler.Dependency
	// CORSOrigins lists browser origins allowed to call the API. Empty allows any.
	CORSOrigins []string
	// Registerer receives the HTTP request metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORS(deps.CORSOrigins))
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(middleware.Tracing())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "roster",
		Registerer: registerer,
	}))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	rateLimit := middleware.RateLimit(deps.Limiter, deps.Log)

	e.POST("/register", authHandler.Register, rateLimit)
	e.POST("/login", authHandler.Login, rateLimit)

	// --- Admin-only user management ---
	userHandler := handler.NewUserHandler(deps.UserService)
	users := e.Group("/users", middleware.Auth(deps.Tokens), middleware.RBAC(domain.RoleAdmin))

	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health checks (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.Health...)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
