package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/roster-hq/employee-roster/internal/core/domain"
)

func TestRBAC_Allows(t *testing.T) {
	c, rec := newContext("")
	c.Set(IdentityKey, domain.Identity{UserID: 1, Role: domain.RoleAdmin})

	called := false
	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	c, _ := newContext("")
	c.Set(IdentityKey, domain.Identity{UserID: 2, Role: domain.RoleEmployee})

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRBAC_WithoutIdentity(t *testing.T) {
	c, _ := newContext("")

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}
