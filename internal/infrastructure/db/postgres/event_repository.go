package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

type userEventRow struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	UserID      int64  `gorm:"not null;index"`
	Type        string `gorm:"size:16;not null"`
	ActorID     int64
	OccurredAt  time.Time `gorm:"not null"`
	ProcessedAt time.Time `gorm:"not null"`
}

func (userEventRow) TableName() string { return "user_events" }

// EventRepository appends audit events to the user_events table.
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) ports.EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.UserEvent) error {
	row := userEventRow{
		UserID:      event.UserID,
		Type:        string(event.Type),
		ActorID:     event.ActorID,
		OccurredAt:  event.OccurredAt.UTC(),
		ProcessedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert user event: %w", err)
	}
	return nil
}
