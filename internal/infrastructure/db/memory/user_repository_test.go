package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

func seed(t *testing.T, repo *UserRepository, salaries ...float64) []*domain.User {
	t.Helper()
	out := make([]*domain.User, 0, len(salaries))
	for i, s := range salaries {
		u, err := repo.Create(context.Background(), &domain.User{
			Email:     fmt.Sprintf("user%d@example.com", i),
			FirstName: fmt.Sprintf("name-%d", i),
			Role:      domain.RoleEmployee,
			Salary:    s,
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		out = append(out, u)
	}
	return out
}

func TestUserRepository_Create_AssignsIncreasingIDs(t *testing.T) {
	repo := NewUserRepository()
	users := seed(t, repo, 100, 200, 300)

	for i, u := range users {
		if u.ID != int64(i+1) {
			t.Fatalf("user %d: expected id %d, got %d", i, i+1, u.ID)
		}
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	seed(t, repo, 100)

	_, err := repo.Create(context.Background(), &domain.User{Email: "user0@example.com"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	_, total, _ := repo.List(context.Background(), ports.ListUsersFilter{Page: 1, Limit: 10, SortKey: domain.SortByID})
	if total != 1 {
		t.Fatalf("expected total 1, got %d", total)
	}
}

func TestUserRepository_IDsNotReusedAfterDelete(t *testing.T) {
	repo := NewUserRepository()
	users := seed(t, repo, 100, 200)

	if err := repo.Delete(context.Background(), users[1].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	u, err := repo.Create(context.Background(), &domain.User{Email: "new@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID != 3 {
		t.Fatalf("expected id 3, got %d", u.ID)
	}
}

func TestUserRepository_Update_MergesAndReleasesOldEmail(t *testing.T) {
	repo := NewUserRepository()
	users := seed(t, repo, 100)

	email := "renamed@example.com"
	salary := 2000.0
	updated, err := repo.Update(context.Background(), users[0].ID, domain.UserPatch{Email: &email, Salary: &salary})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Email != email || updated.Salary != salary || updated.FirstName != "name-0" {
		t.Fatalf("unexpected merge result: %+v", updated)
	}

	if _, err := repo.FindByEmail(context.Background(), "user0@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("old email should be free, got %v", err)
	}
	if _, err := repo.Create(context.Background(), &domain.User{Email: "user0@example.com"}); err != nil {
		t.Fatalf("old email should be reusable: %v", err)
	}
}

func TestUserRepository_Update_EmailConflict(t *testing.T) {
	repo := NewUserRepository()
	users := seed(t, repo, 100, 200)

	taken := users[1].Email
	if _, err := repo.Update(context.Background(), users[0].ID, domain.UserPatch{Email: &taken}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	got, _ := repo.FindByID(context.Background(), users[0].ID)
	if got.Email != users[0].Email {
		t.Fatalf("record changed after failed update: %+v", got)
	}
}

func TestUserRepository_Update_Missing(t *testing.T) {
	repo := NewUserRepository()
	salary := 1.0
	if _, err := repo.Update(context.Background(), 42, domain.UserPatch{Salary: &salary}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_List_SortsWithIDTieBreak(t *testing.T) {
	repo := NewUserRepository()
	seed(t, repo, 1500, 3000, 1500, 1700, 3000)

	users, total, err := repo.List(context.Background(), ports.ListUsersFilter{
		Page: 1, Limit: 10, SortKey: domain.SortBySalary, SortOrder: domain.SortDesc,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}

	wantIDs := []int64{2, 5, 4, 1, 3}
	for i, u := range users {
		if u.ID != wantIDs[i] {
			t.Fatalf("position %d: expected id %d, got %d (salary %v)", i, wantIDs[i], u.ID, u.Salary)
		}
	}
}

func TestUserRepository_List_PageBeyondEnd(t *testing.T) {
	repo := NewUserRepository()
	seed(t, repo, 1, 2, 3)

	users, total, err := repo.List(context.Background(), ports.ListUsersFilter{Page: 5, Limit: 2, SortKey: domain.SortByID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Fatalf("expected empty non-nil page, got %v", users)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
}

func TestUserRepository_List_OverflowingPage(t *testing.T) {
	repo := NewUserRepository()
	seed(t, repo, 1, 2, 3)

	users, total, err := repo.List(context.Background(), ports.ListUsersFilter{
		Page: 92233720368547760, Limit: 100, SortKey: domain.SortByID,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if users == nil || len(users) != 0 || total != 3 {
		t.Fatalf("expected empty page with total 3, got %v (total %d)", users, total)
	}
}

func TestUserRepository_UpdateRacingDelete_NoGhostWrite(t *testing.T) {
	for round := 0; round < 50; round++ {
		repo := NewUserRepository()
		users := seed(t, repo, 100)
		id := users[0].ID

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			salary := 999.0
			_, _ = repo.Update(context.Background(), id, domain.UserPatch{Salary: &salary})
		}()
		go func() {
			defer wg.Done()
			_ = repo.Delete(context.Background(), id)
		}()
		wg.Wait()

		if _, err := repo.FindByID(context.Background(), id); !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("round %d: record resurrected after delete: %v", round, err)
		}
	}
}
