package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/roster-hq/employee-roster/internal/core/domain"
)

type stubEventRepo struct {
	insertErr error
	inserted  []*domain.UserEvent
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.UserEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

func TestEventService_Process_HappyPath(t *testing.T) {
	repo := &stubEventRepo{}
	svc := NewEventService(repo, zerolog.Nop())

	err := svc.Process(context.Background(), domain.UserEvent{
		UserID:     3,
		Type:       domain.EventUserUpdated,
		ActorID:    1,
		OccurredAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].UserID != 3 {
		t.Fatalf("expected event inserted, got %+v", repo.inserted)
	}
}

func TestEventService_Process_InvalidEvent(t *testing.T) {
	repo := &stubEventRepo{}
	svc := NewEventService(repo, zerolog.Nop())

	err := svc.Process(context.Background(), domain.UserEvent{Type: domain.EventUserDeleted})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("invalid event must not be stored")
	}
}

func TestEventService_Process_InsertError(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewEventService(&stubEventRepo{insertErr: boom}, zerolog.Nop())

	err := svc.Process(context.Background(), domain.UserEvent{UserID: 1, Type: domain.EventUserRegistered})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped insert error, got %v", err)
	}
}
