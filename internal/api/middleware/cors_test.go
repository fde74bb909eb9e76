package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestCORS_Preflight(t *testing.T) {
	e := echo.New()
	e.Use(CORS([]string{"https://hr.example.com"}))
	e.GET("/users", func(c echo.Context) error {
		t.Fatalf("preflight must not reach the handler")
		return nil
	})

	req := httptest.NewRequest(http.MethodOptions, "/users", nil)
	req.Header.Set("Origin", "https://hr.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://hr.example.com" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}

func TestCORS_UnknownOrigin(t *testing.T) {
	e := echo.New()
	e.Use(CORS([]string{"https://hr.example.com"}))
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("origin must not be allowed, got %q", got)
	}
}
