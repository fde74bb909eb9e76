package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

type eventService struct {
	repo ports.EventRepository
	log  zerolog.Logger
}

// NewEventService returns an EventService that appends events to the audit trail.
func NewEventService(repo ports.EventRepository, log zerolog.Logger) ports.EventService {
	return &eventService{repo: repo, log: log}
}

// Process persists a single audit event.
func (s *eventService) Process(ctx context.Context, event domain.UserEvent) error {
	if event.UserID <= 0 || event.Type == "" {
		return fmt.Errorf("process event: %w", domain.InvalidInput("event needs user id and type"))
	}

	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("process event: insert: %w", err)
	}

	s.log.Debug().
		Int64("user_id", event.UserID).
		Str("type", string(event.Type)).
		Int64("actor_id", event.ActorID).
		Msg("user event recorded")

	return nil
}
