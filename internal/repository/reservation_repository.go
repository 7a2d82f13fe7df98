package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"supanos/internal/model"
)

// ReservationFilter narrows a reservation listing.
// Date selects reservations whose dateTime falls on that UTC calendar day.
type ReservationFilter struct {
	Status *model.ReservationStatus
	Date   *time.Time
}

// ReservationRepository defines persistence operations for reservations.
type ReservationRepository interface {
	List(ctx context.Context, filter ReservationFilter) ([]model.Reservation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	Create(ctx context.Context, reservation *model.Reservation) error
	Update(ctx context.Context, id uuid.UUID, fields Fields) (*model.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository.
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// List returns reservations newest first.
func (r *reservationRepository) List(ctx context.Context, filter ReservationFilter) ([]model.Reservation, error) {
	q := r.db.WithContext(ctx)
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Date != nil {
		d := filter.Date.UTC()
		start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		q = q.Where("date_time >= ? AND date_time < ?", start, start.AddDate(0, 0, 1))
	}

	var reservations []model.Reservation
	if err := q.Order("date_time DESC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reservation).Error; err != nil {
		return nil, translate(err)
	}
	return &reservation, nil
}

func (r *reservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) Update(ctx context.Context, id uuid.UUID, fields Fields) (*model.Reservation, error) {
	if err := updateByID(ctx, r.db, &model.Reservation{}, id, fields); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &model.Reservation{}, id)
}
