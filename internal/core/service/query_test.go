package service

import (
	"errors"
	"testing"

	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

func TestBuildListFilter(t *testing.T) {
	limits := PageLimits{Default: 10, Max: 100}

	tests := []struct {
		name    string
		in      ports.ListUsersInput
		want    ports.ListUsersFilter
		wantErr error
	}{
		{
			name: "zero values select defaults",
			in:   ports.ListUsersInput{},
			want: ports.ListUsersFilter{Page: 1, Limit: 10, SortKey: domain.SortByID, SortOrder: domain.SortAsc},
		},
		{
			name: "explicit values",
			in:   ports.ListUsersInput{Page: 3, Limit: 25, SortKey: "salary", SortOrder: "desc"},
			want: ports.ListUsersFilter{Page: 3, Limit: 25, SortKey: domain.SortBySalary, SortOrder: domain.SortDesc},
		},
		{
			name: "limit at maximum",
			in:   ports.ListUsersInput{Limit: 100},
			want: ports.ListUsersFilter{Page: 1, Limit: 100, SortKey: domain.SortByID, SortOrder: domain.SortAsc},
		},
		{name: "negative page", in: ports.ListUsersInput{Page: -1}, wantErr: domain.ErrInvalidInput},
		{name: "negative limit", in: ports.ListUsersInput{Limit: -5}, wantErr: domain.ErrInvalidInput},
		{name: "limit above maximum", in: ports.ListUsersInput{Limit: 101}, wantErr: domain.ErrInvalidInput},
		{name: "unknown sort key", in: ports.ListUsersInput{SortKey: "password"}, wantErr: domain.ErrInvalidSortKey},
		{name: "unknown sort order", in: ports.ListUsersInput{SortOrder: "sideways"}, wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildListFilter(tt.in, limits)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPageLimits_Normalized(t *testing.T) {
	got := PageLimits{}.normalized()
	if got.Default != DefaultPageLimit || got.Max != MaxPageLimit {
		t.Fatalf("unexpected defaults: %+v", got)
	}

	got = PageLimits{Default: 50, Max: 20}.normalized()
	if got.Default > got.Max {
		t.Fatalf("default %d exceeds max %d", got.Default, got.Max)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{45, 3, 15},
		{46, 3, 16},
	}
	for _, c := range cases {
		if got := totalPages(c.total, c.limit); got != c.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", c.total, c.limit, got, c.want)
		}
	}
}
