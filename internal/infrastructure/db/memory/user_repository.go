// Package memory holds mutex-guarded in-process stores. They back tests and
// STORE_DRIVER=memory deployments.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

// UserRepository implements ports.UserRepository in memory.
type UserRepository struct {
	mu      sync.RWMutex
	users   map[int64]*domain.User
	byEmail map[string]int64
	lastID  int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[int64]*domain.User),
		byEmail: make(map[string]int64),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}

	r.lastID++
	stored := *user
	stored.ID = r.lastID
	r.users[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID

	out := stored
	return &out, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *r.users[id]
	return &out, nil
}

// Update merges patch under the write lock so it cannot interleave with Delete.
func (r *UserRepository) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Email != nil && *patch.Email != current.Email {
		if _, taken := r.byEmail[*patch.Email]; taken {
			return nil, domain.ErrUserExists
		}
	}

	merged := *current
	patch.Apply(&merged)
	if merged.Email != current.Email {
		delete(r.byEmail, current.Email)
		r.byEmail[merged.Email] = id
	}
	r.users[id] = &merged

	out := merged
	return &out, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byEmail, u.Email)
	delete(r.users, id)
	return nil
}

func (r *UserRepository) List(ctx context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	all := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		all = append(all, &clone)
	}
	r.mu.RUnlock()

	slices.SortFunc(all, func(a, b *domain.User) int {
		c := f.SortKey.Compare(a, b)
		if f.SortOrder == domain.SortDesc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	total := int64(len(all))
	start := f.Offset()
	if start < 0 || f.PastEnd(total) {
		return []*domain.User{}, total, nil
	}
	end := start + min(f.Limit, len(all)-start)
	return all[start:end], total, nil
}
