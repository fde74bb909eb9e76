package ports

import (
	"context"

	"github.com/roster-hq/employee-roster/internal/core/domain"
)

// ListUsersInput carries raw listing parameters. Zero values select defaults.
type ListUsersInput struct {
	Page      int
	Limit     int
	SortKey   string
	SortOrder string
}

// ListUsersResult is the paginated envelope returned by ListUsers.
type ListUsersResult struct {
	Users      []*domain.User
	Total      int64
	TotalPages int
	Page       int
	Limit      int
}

// UpdateUserInput holds the fields supplied to an update; nil means unchanged.
type UpdateUserInput struct {
	Email               *string
	Password            *string
	FirstName           *string
	LastName            *string
	MiddleName          *string
	BirthDate           *string
	Phone               *string
	ProgrammingLanguage *string
	Country             *string
	MentorName          *string
	EnglishLevel        *string
	Salary              *float64
}

// UserService is the admin-only record management use case. Every method
// authorizes the caller before touching the store.
type UserService interface {
	ListUsers(ctx context.Context, caller domain.Identity, in ListUsersInput) (*ListUsersResult, error)
	GetUser(ctx context.Context, caller domain.Identity, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, caller domain.Identity, id int64, in UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, caller domain.Identity, id int64) error
}
