package handler

import "github.com/roster-hq/employee-roster/internal/core/domain"

// messageResponse is the envelope for errors and bare confirmations.
type messageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	Email               string   `json:"email"               validate:"required,email"`
	Password            string   `json:"password"            validate:"required,min=6"`
	FirstName           string   `json:"firstName"           validate:"required"`
	LastName            string   `json:"lastName"            validate:"required"`
	MiddleName          string   `json:"middleName"          validate:"required"`
	BirthDate           string   `json:"birthDate"           validate:"required,datetime=2006-01-02"`
	Phone               string   `json:"phone"               validate:"required,e164"`
	Role                string   `json:"role"                validate:"omitempty,oneof=admin employee"`
	ProgrammingLanguage string   `json:"programmingLanguage"`
	Country             string   `json:"country"`
	MentorName          string   `json:"mentorName"`
	EnglishLevel        string   `json:"englishLevel"`
	Salary              *float64 `json:"salary"              validate:"omitempty,gte=0"`
	SecretWord          string   `json:"secretWord"`
}

type registerResponse struct {
	UserID int64 `json:"userId"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type listUsersQuery struct {
	Page      int
	Limit     int
	SortKey   string
	SortOrder string
}

type listUsersResponse struct {
	Users      []*domain.User `json:"users"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"totalPages"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}

// updateUserRequest accepts any subset of profile fields. Role and id in the
// payload are ignored.
type updateUserRequest struct {
	Email               *string  `json:"email"               validate:"omitempty,email"`
	Password            *string  `json:"password"            validate:"omitempty,min=6"`
	FirstName           *string  `json:"firstName"           validate:"omitempty,min=1"`
	LastName            *string  `json:"lastName"            validate:"omitempty,min=1"`
	MiddleName          *string  `json:"middleName"          validate:"omitempty,min=1"`
	BirthDate           *string  `json:"birthDate"           validate:"omitempty,datetime=2006-01-02"`
	Phone               *string  `json:"phone"               validate:"omitempty,e164"`
	ProgrammingLanguage *string  `json:"programmingLanguage"`
	Country             *string  `json:"country"`
	MentorName          *string  `json:"mentorName"`
	EnglishLevel        *string  `json:"englishLevel"`
	Salary              *float64 `json:"salary"              validate:"omitempty,gte=0"`
}

type updateUserResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}
