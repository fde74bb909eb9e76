package ports

import (
	"context"

	"github.com/roster-hq/employee-roster/internal/core/domain"
)

// EventRepository persists the user audit trail.
type EventRepository interface {
	InsertEvent(ctx context.Context, event *domain.UserEvent) error
}
