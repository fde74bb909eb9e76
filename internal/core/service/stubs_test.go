package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
	"github.com/roster-hq/employee-roster/internal/infrastructure/db/memory"
)

// countingRepo records how many times the store was touched.
type countingRepo struct {
	ports.UserRepository
	calls int
}

func newCountingRepo() *countingRepo {
	return &countingRepo{UserRepository: memory.NewUserRepository()}
}

func (r *countingRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	r.calls++
	return r.UserRepository.Create(ctx, u)
}

func (r *countingRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	r.calls++
	return r.UserRepository.FindByID(ctx, id)
}

func (r *countingRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.calls++
	return r.UserRepository.FindByEmail(ctx, email)
}

func (r *countingRepo) Update(ctx context.Context, id int64, p domain.UserPatch) (*domain.User, error) {
	r.calls++
	return r.UserRepository.Update(ctx, id, p)
}

func (r *countingRepo) Delete(ctx context.Context, id int64) error {
	r.calls++
	return r.UserRepository.Delete(ctx, id)
}

func (r *countingRepo) List(ctx context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	r.calls++
	return r.UserRepository.List(ctx, f)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.UserEvent
}

func (p *recordingPublisher) Publish(e domain.UserEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []domain.UserEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.UserEventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// seedUsers inserts employees with the given salaries directly into the store.
func seedUsers(t *testing.T, repo ports.UserRepository, salaries ...float64) {
	t.Helper()
	for i, s := range salaries {
		_, err := repo.Create(context.Background(), &domain.User{
			Email:     fmt.Sprintf("employee%d@example.com", i+1),
			FirstName: fmt.Sprintf("Employee%d", i+1),
			Role:      domain.RoleEmployee,
			Salary:    s,
		})
		if err != nil {
			t.Fatalf("seed user %d: %v", i, err)
		}
	}
}

func ptr[T any](v T) *T { return &v }

var (
	adminCaller    = domain.Identity{UserID: 1, Role: domain.RoleAdmin}
	employeeCaller = domain.Identity{UserID: 2, Role: domain.RoleEmployee}
)
