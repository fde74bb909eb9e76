package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

// UserService implements the admin-only record operations.
type UserService struct {
	repo   ports.UserRepository
	limits PageLimits
	events ports.EventPublisher
	logger zerolog.Logger
	now    func() time.Time
}

func NewUserService(repo ports.UserRepository, limits PageLimits, events ports.EventPublisher, logger zerolog.Logger) *UserService {
	if events == nil {
		events = discardPublisher{}
	}
	return &UserService{
		repo:   repo,
		limits: limits.normalized(),
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// ListUsers returns one page of users ordered by the requested key, id ASC on ties.
func (s *UserService) ListUsers(ctx context.Context, caller domain.Identity, in ports.ListUsersInput) (*ports.ListUsersResult, error) {
	if err := domain.Authorize(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}

	filter, err := buildListFilter(in, s.limits)
	if err != nil {
		return nil, err
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return newListResult(users, total, filter), nil
}

func (s *UserService) GetUser(ctx context.Context, caller domain.Identity, id int64) (*domain.User, error) {
	if err := domain.Authorize(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr("get user", err)
	}
	return user, nil
}

// UpdateUser merges the supplied fields into the stored record and returns it.
func (s *UserService) UpdateUser(ctx context.Context, caller domain.Identity, id int64, in ports.UpdateUserInput) (*domain.User, error) {
	if err := domain.Authorize(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}

	patch := domain.UserPatch{
		FirstName:           in.FirstName,
		LastName:            in.LastName,
		MiddleName:          in.MiddleName,
		BirthDate:           in.BirthDate,
		Phone:               in.Phone,
		ProgrammingLanguage: in.ProgrammingLanguage,
		Country:             in.Country,
		MentorName:          in.MentorName,
		EnglishLevel:        in.EnglishLevel,
		Salary:              in.Salary,
		UpdatedAt:           s.now().UTC(),
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, domain.InvalidInput("email must not be empty")
		}
		patch.Email = &email
	}
	required := []struct {
		field string
		value *string
	}{
		{"firstName", in.FirstName},
		{"lastName", in.LastName},
		{"middleName", in.MiddleName},
		{"birthDate", in.BirthDate},
		{"phone", in.Phone},
	}
	for _, r := range required {
		if r.value != nil && strings.TrimSpace(*r.value) == "" {
			return nil, domain.InvalidInput("%s must not be empty", r.field)
		}
	}
	if in.Salary != nil && *in.Salary < 0 {
		return nil, domain.InvalidInput("salary must not be negative")
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.InvalidInput("password must not be empty")
		}
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		patch.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, wrapStoreErr("update user", err)
	}

	s.events.Publish(domain.UserEvent{
		UserID:     id,
		Type:       domain.EventUserUpdated,
		ActorID:    caller.UserID,
		OccurredAt: patch.UpdatedAt,
	})
	s.logger.Info().Int64("user_id", id).Int64("actor_id", caller.UserID).Msg("user updated")

	return updated, nil
}

// DeleteUser removes the record permanently.
func (s *UserService) DeleteUser(ctx context.Context, caller domain.Identity, id int64) error {
	if err := domain.Authorize(caller, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapStoreErr("delete user", err)
	}

	s.events.Publish(domain.UserEvent{
		UserID:     id,
		Type:       domain.EventUserDeleted,
		ActorID:    caller.UserID,
		OccurredAt: s.now().UTC(),
	})
	s.logger.Info().Int64("user_id", id).Int64("actor_id", caller.UserID).Msg("user deleted")

	return nil
}

// wrapStoreErr keeps known domain errors unwrapped for the transport layer.
func wrapStoreErr(op string, err error) error {
	if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUserExists) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
