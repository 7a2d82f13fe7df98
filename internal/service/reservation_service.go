package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"supanos/internal/model"
	"supanos/internal/repository"
)

// ReservationService manages table reservations.
type ReservationService interface {
	ListReservations(ctx context.Context, filter repository.ReservationFilter) ([]model.Reservation, error)
	GetReservation(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	CreateReservation(ctx context.Context, req ReservationRequest) (*model.Reservation, error)
	UpdateReservation(ctx context.Context, id uuid.UUID, req UpdateReservationRequest) (*model.Reservation, error)
	DeleteReservation(ctx context.Context, id uuid.UUID) error
}

type reservationService struct {
	repo  repository.ReservationRepository
	audit AuditRecorder
}

// NewReservationService creates a new reservation service.
func NewReservationService(repo repository.ReservationRepository, audit AuditRecorder) ReservationService {
	return &reservationService{repo: repo, audit: audit}
}

func (s *reservationService) ListReservations(ctx context.Context, filter repository.ReservationFilter) ([]model.Reservation, error) {
	return s.repo.List(ctx, filter)
}

func (s *reservationService) GetReservation(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateReservation stores a booking; status defaults to pending.
func (s *reservationService) CreateReservation(ctx context.Context, req ReservationRequest) (*model.Reservation, error) {
	reservation := &model.Reservation{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		DateTime: req.DateTime.UTC(),
		People:   req.People,
		Notes:    req.Notes,
		Status:   req.Status,
	}
	if reservation.Status == "" {
		reservation.Status = model.ReservationPending
	}
	if err := s.repo.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	s.audit.Record(ctx, "create", "reservation", reservation.ID.String(), map[string]interface{}{"people": reservation.People})
	return reservation, nil
}

func (s *reservationService) UpdateReservation(ctx context.Context, id uuid.UUID, req UpdateReservationRequest) (*model.Reservation, error) {
	fields := req.fields()
	reservation, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "update", "reservation", id.String(), changedKeys(fields))
	return reservation, nil
}

func (s *reservationService) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, "delete", "reservation", id.String(), nil)
	return nil
}
