package ports

import (
	"context"

	"github.com/roster-hq/employee-roster/internal/core/domain"
)

// RegisterInput carries a registration request after transport validation.
type RegisterInput struct {
	Email               string
	Password            string
	FirstName           string
	LastName            string
	MiddleName          string
	BirthDate           string
	Phone               string
	Role                string
	ProgrammingLanguage string
	Country             string
	MentorName          string
	EnglishLevel        string
	Salary              *float64
	SecretWord          string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (int64, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(userID int64, role domain.Role) (string, error)
	Verify(token string) (domain.Identity, error)
}
