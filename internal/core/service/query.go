package service

import (
	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// PageLimits bounds the page size of a listing.
type PageLimits struct {
	Default int
	Max     int
}

func (l PageLimits) normalized() PageLimits {
	if l.Max <= 0 {
		l.Max = MaxPageLimit
	}
	if l.Default <= 0 || l.Default > l.Max {
		l.Default = min(DefaultPageLimit, l.Max)
	}
	return l
}

// buildListFilter turns raw listing parameters into a bounded, ordered query.
// Zero page or limit selects the default; negative values, a limit above the
// maximum, an unknown sort key or sort order are rejected.
func buildListFilter(in ports.ListUsersInput, limits PageLimits) (ports.ListUsersFilter, error) {
	limits = limits.normalized()

	page := in.Page
	switch {
	case page == 0:
		page = 1
	case page < 0:
		return ports.ListUsersFilter{}, domain.InvalidInput("page must be a positive integer")
	}

	limit := in.Limit
	switch {
	case limit == 0:
		limit = limits.Default
	case limit < 0:
		return ports.ListUsersFilter{}, domain.InvalidInput("limit must be a positive integer")
	case limit > limits.Max:
		return ports.ListUsersFilter{}, domain.InvalidInput("limit must be at most %d", limits.Max)
	}

	key, err := domain.ParseSortField(in.SortKey)
	if err != nil {
		return ports.ListUsersFilter{}, err
	}
	order, err := domain.ParseSortOrder(in.SortOrder)
	if err != nil {
		return ports.ListUsersFilter{}, err
	}

	return ports.ListUsersFilter{Page: page, Limit: limit, SortKey: key, SortOrder: order}, nil
}

// totalPages is ceil(total/limit).
func totalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func newListResult(users []*domain.User, total int64, f ports.ListUsersFilter) *ports.ListUsersResult {
	if users == nil {
		users = []*domain.User{}
	}
	return &ports.ListUsersResult{
		Users:      users,
		Total:      total,
		TotalPages: totalPages(total, f.Limit),
		Page:       f.Page,
		Limit:      f.Limit,
	}
}
