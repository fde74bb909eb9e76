package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (int64, error)
	loginFn    func(ctx context.Context, email, password string) (string, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (int64, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const validEmployee = `{
	"email": "john@example.com",
	"password": "superPassword123",
	"firstName": "John",
	"lastName": "Smith",
	"middleName": "Tom",
	"birthDate": "2000-08-11",
	"phone": "+380663569933",
	"programmingLanguage": "Java",
	"country": "France",
	"mentorName": "Jane Doe",
	"englishLevel": "Intermediate",
	"salary": 1500
}`

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (int64, error) {
			if in.Email != "john@example.com" || in.Country != "France" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Salary == nil || *in.Salary != 1500 {
				t.Fatalf("salary not passed through: %v", in.Salary)
			}
			return 5, nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/register", validEmployee)

	if err := NewAuthHandler(stub).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["userId"] != float64(5) {
		t.Fatalf("expected userId 5, got %v", resp["userId"])
	}
	if _, ok := resp["token"]; ok {
		t.Fatalf("register must not return a token")
	}
}

func TestAuthHandler_Register_ServiceError(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (int64, error) {
			return 0, domain.ErrUserExists
		},
	}
	c, _ := newTestContext(http.MethodPost, "/register", validEmployee)

	if err := NewAuthHandler(stub).Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (int64, error) {
			t.Fatalf("should not be called")
			return 0, nil
		},
	}
	c, _ := newTestContext(http.MethodPost, "/register", "not-json")

	if err := NewAuthHandler(stub).Register(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (int64, error) {
			t.Fatalf("should not be called")
			return 0, nil
		},
	}
	body := `{"email":"not-an-email","password":"123","firstName":"A","lastName":"B","middleName":"C","birthDate":"11/08/2000","phone":"0663569933","salary":-5}`
	c, _ := newTestContext(http.MethodPost, "/register", body)

	err := NewAuthHandler(stub).Register(c)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	msg := ve.Error()
	for _, field := range []string{"email", "password", "birthDate", "phone", "salary"} {
		if !strings.Contains(msg, field) {
			t.Errorf("expected %q in message %q", field, msg)
		}
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/login", `{"email":"alice@example.com","password":"secret"}`)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	c, _ := newTestContext(http.MethodPost, "/login", `{"email":"alice@example.com","password":"bad"}`)

	if err := NewAuthHandler(stub).Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	c, _ := newTestContext(http.MethodPost, "/login", "{")

	if err := NewAuthHandler(stub).Login(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
