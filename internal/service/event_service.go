package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"supanos/internal/model"
	"supanos/internal/repository"
)

// EventService manages events.
type EventService interface {
	ListEvents(ctx context.Context, featured *bool) ([]model.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*model.Event, error)
	CreateEvent(ctx context.Context, req EventRequest) (*model.Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*model.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type eventService struct {
	repo  repository.EventRepository
	audit AuditRecorder
}

// NewEventService creates a new event service.
func NewEventService(repo repository.EventRepository, audit AuditRecorder) EventService {
	return &eventService{repo: repo, audit: audit}
}

func (s *eventService) ListEvents(ctx context.Context, featured *bool) ([]model.Event, error) {
	return s.repo.List(ctx, featured)
}

func (s *eventService) GetEvent(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *eventService) CreateEvent(ctx context.Context, req EventRequest) (*model.Event, error) {
	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		DateTime:    req.DateTime.UTC(),
		SportType:   req.SportType,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.audit.Record(ctx, "create", "event", event.ID.String(), map[string]interface{}{"title": event.Title})
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*model.Event, error) {
	fields := req.fields()
	event, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "update", "event", id.String(), changedKeys(fields))
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, "delete", "event", id.String(), nil)
	return nil
}
