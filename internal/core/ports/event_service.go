package ports

import (
	"context"

	"github.com/roster-hq/employee-roster/internal/core/domain"
)

// EventPublisher accepts audit events without blocking the request path.
type EventPublisher interface {
	Publish(event domain.UserEvent)
}

// EventService processes audit events taken off the queue.
type EventService interface {
	Process(ctx context.Context, event domain.UserEvent) error
}
