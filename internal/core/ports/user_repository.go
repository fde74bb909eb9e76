package ports

import (
	"context"
	"math"

	"github.com/roster-hq/employee-roster/internal/core/domain"
)

// ListUsersFilter is a normalized, bounded listing request.
// Page and Limit are always >= 1 by the time a repository sees them.
type ListUsersFilter struct {
	Page      int
	Limit     int
	SortKey   domain.SortField
	SortOrder domain.SortOrder
}

// Offset is the number of ordered records skipped before the page starts.
// It saturates at math.MaxInt instead of overflowing for huge pages.
func (f ListUsersFilter) Offset() int {
	if f.Page <= 1 || f.Limit <= 0 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.Limit {
		return math.MaxInt
	}
	return (f.Page - 1) * f.Limit
}

// PastEnd reports whether the page starts beyond the last of total records.
func (f ListUsersFilter) PastEnd(total int64) bool {
	return int64(f.Offset()) >= total
}

// UserRepository is the record store for user accounts.
//
// Implementations must assign monotonically increasing ids that are never
// reused, reject duplicate emails with domain.ErrUserExists, and return
// domain.ErrUserNotFound for a missing id.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update applies patch to the record atomically and returns the merged record.
	Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	// List returns one page ordered by filter.SortKey then id ASC, plus the
	// total number of records.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}
