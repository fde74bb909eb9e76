package memory

import (
	"context"
	"sync"

	"github.com/roster-hq/employee-roster/internal/core/domain"
)

// EventRepository keeps the audit trail in memory.
type EventRepository struct {
	mu     sync.Mutex
	events []domain.UserEvent
}

func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.UserEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

// Events returns a copy of the recorded events in insertion order.
func (r *EventRepository) Events() []domain.UserEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.UserEvent, len(r.events))
	copy(out, r.events)
	return out
}
