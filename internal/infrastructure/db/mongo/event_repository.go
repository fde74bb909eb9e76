package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

const collectionUserEvents = "user_events"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	db *mongo.Database
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) ports.EventRepository {
	return &EventRepository{db: db}
}

// InsertEvent appends an event to the user_events audit collection.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.UserEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"user_id":      event.UserID,
		"type":         string(event.Type),
		"occurred_at":  event.OccurredAt.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.ActorID != 0 {
		doc["actor_id"] = event.ActorID
	}

	_, err := r.db.Collection(collectionUserEvents).InsertOne(ctx, doc)
	return err
}
