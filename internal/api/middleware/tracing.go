package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.25.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName    = "github.com/roster-hq/employee-roster/internal/api"
	traceIDHeader = "X-Trace-Id"
)

// Tracing starts a server span per request, continuing any trace carried in
// the incoming W3C headers. Without an installed provider the spans are no-ops.
func Tracing() echo.MiddlewareFunc {
	tracer := otel.Tracer(tracerName)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))

			route := c.Path()
			if route == "" {
				route = req.URL.Path
			}

			ctx, span := tracer.Start(ctx, req.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(req.Method),
					semconv.HTTPRouteKey.String(route),
					semconv.URLPathKey.String(req.URL.Path),
				),
			)
			defer span.End()

			c.SetRequest(req.WithContext(ctx))
			if sc := span.SpanContext(); sc.HasTraceID() {
				c.Response().Header().Set(traceIDHeader, sc.TraceID().String())
			}

			err := next(c)
			if err != nil {
				// Render now so the span sees the final status code.
				c.Error(err)
				span.RecordError(err)
			}

			status := c.Response().Status
			span.SetAttributes(semconv.HTTPResponseStatusCodeKey.Int(status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(otelcodes.Error, http.StatusText(status))
			}
			return err
		}
	}
}
