package domain

import "time"

// UserEventType names a lifecycle change recorded in the audit trail.
type UserEventType string

const (
	EventUserRegistered UserEventType = "registered"
	EventUserUpdated    UserEventType = "updated"
	EventUserDeleted    UserEventType = "deleted"
)

// UserEvent is an audit entry for a change to a user record.
type UserEvent struct {
	UserID     int64         `json:"userId" bson:"user_id"`
	Type       UserEventType `json:"type" bson:"type"`
	ActorID    int64         `json:"actorId,omitempty" bson:"actor_id,omitempty"`
	OccurredAt time.Time     `json:"occurredAt" bson:"occurred_at"`
}
