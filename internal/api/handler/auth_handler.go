package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roster-hq/employee-roster/internal/api/metrics"
	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account. Admin accounts require the secret word.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Failure      422   {object}  messageResponse
// @Failure      429   {object}  messageResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.InvalidInput("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:               req.Email,
		Password:            req.Password,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		MiddleName:          req.MiddleName,
		BirthDate:           req.BirthDate,
		Phone:               req.Phone,
		Role:                req.Role,
		ProgrammingLanguage: req.ProgrammingLanguage,
		Country:             req.Country,
		MentorName:          req.MentorName,
		EnglishLevel:        req.EnglishLevel,
		Salary:              req.Salary,
		SecretWord:          req.SecretWord,
	})
	if err != nil {
		return err
	}

	role := req.Role
	if role == "" {
		role = string(domain.RoleEmployee)
	}
	metrics.UsersRegisteredTotal.WithLabelValues(role).Inc()

	return c.JSON(http.StatusCreated, registerResponse{UserID: id})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      429   {object}  messageResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.InvalidInput("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrInvalidCredentials) {
			result = "invalid_credentials"
		}
		metrics.LoginsTotal.WithLabelValues(result).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}
