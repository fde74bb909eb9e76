package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo       ports.UserRepository
	tokens     ports.TokenService
	secretWord string
	events     ports.EventPublisher
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAuthService wires the registration use case. secretWord gates admin
// registration; when it is empty no admin account can be registered.
func NewAuthService(
	repo ports.UserRepository,
	tokens ports.TokenService,
	secretWord string,
	events ports.EventPublisher,
	logger zerolog.Logger,
) *AuthService {
	if events == nil {
		events = discardPublisher{}
	}
	return &AuthService{
		repo:       repo,
		tokens:     tokens,
		secretWord: secretWord,
		events:     events,
		logger:     logger,
		now:        time.Now,
	}
}

// Register creates an account and returns its id. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (int64, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return 0, domain.InvalidInput("email and password are required")
	}

	role := domain.RoleEmployee
	if in.Role != "" {
		role = domain.Role(in.Role)
		if !role.Valid() {
			return 0, domain.InvalidInput("role must be one of: admin employee")
		}
	}
	if role == domain.RoleEmployee && in.Salary == nil {
		return 0, domain.InvalidInput("salary is required for employees")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return 0, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return 0, fmt.Errorf("register: %w", err)
	}

	if role == domain.RoleAdmin && !s.secretMatches(in.SecretWord) {
		s.logger.Warn().Str("email", email).Msg("admin registration rejected: bad secret word")
		return 0, domain.ErrForbidden
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return 0, fmt.Errorf("register: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		Email:               email,
		PasswordHash:        hash,
		FirstName:           in.FirstName,
		LastName:            in.LastName,
		MiddleName:          in.MiddleName,
		BirthDate:           in.BirthDate,
		Phone:               in.Phone,
		Role:                role,
		ProgrammingLanguage: in.ProgrammingLanguage,
		Country:             in.Country,
		MentorName:          in.MentorName,
		EnglishLevel:        in.EnglishLevel,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if in.Salary != nil {
		user.Salary = *in.Salary
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return 0, err
		}
		return 0, fmt.Errorf("register: %w", err)
	}

	s.events.Publish(domain.UserEvent{
		UserID:     created.ID,
		Type:       domain.EventUserRegistered,
		ActorID:    created.ID,
		OccurredAt: now,
	})
	s.logger.Info().Int64("user_id", created.ID).Str("role", string(role)).Msg("user registered")

	return created.ID, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}

	ok, err := checkPassword(user.PasswordHash, password)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if !ok {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return token, nil
}

func (s *AuthService) secretMatches(word string) bool {
	if s.secretWord == "" || word == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(word), []byte(s.secretWord)) == 1
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type discardPublisher struct{}

func (discardPublisher) Publish(domain.UserEvent) {}
