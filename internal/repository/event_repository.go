package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"supanos/internal/model"
)

// EventRepository defines persistence operations for events.
type EventRepository interface {
	List(ctx context.Context, featured *bool) ([]model.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, id uuid.UUID, fields Fields) (*model.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// List returns events in chronological order, optionally only featured ones.
func (r *eventRepository) List(ctx context.Context, featured *bool) ([]model.Event, error) {
	q := r.db.WithContext(ctx)
	if featured != nil {
		q = q.Where("is_featured = ?", *featured)
	}
	var events []model.Event
	if err := q.Order("date_time").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) Update(ctx context.Context, id uuid.UUID, fields Fields) (*model.Event, error) {
	if err := updateByID(ctx, r.db, &model.Event{}, id, fields); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &model.Event{}, id)
}
