package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "supanos/internal/errors"
	"supanos/internal/model"
	"supanos/internal/repository"
	"supanos/internal/service"
)

// ReservationHandler serves the reservation endpoints.
type ReservationHandler struct {
	svc service.ReservationService
}

// NewReservationHandler creates a new reservation handler.
func NewReservationHandler(svc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

// ListReservations godoc
// @Summary List reservations
// @Tags reservations
// @Produce json
// @Param status query string false "pending, confirmed or cancelled"
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {array} model.Reservation
// @Failure 400 {object} errors.ErrorResponse
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c echo.Context) error {
	var filter repository.ReservationFilter
	if raw := c.QueryParam("status"); raw != "" {
		status := model.ReservationStatus(raw)
		switch status {
		case model.ReservationPending, model.ReservationConfirmed, model.ReservationCancelled:
			filter.Status = &status
		default:
			return apperrors.NewHTTPError(http.StatusBadRequest, "Invalid status")
		}
	}
	if raw := c.QueryParam("date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return apperrors.NewHTTPError(http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		}
		filter.Date = &day
	}

	reservations, err := h.svc.ListReservations(c.Request().Context(), filter)
	if err != nil {
		return fail(c, "list reservations", err)
	}
	return c.JSON(http.StatusOK, reservations)
}

// GetReservation godoc
// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} model.Reservation
// @Failure 404 {object} errors.ErrorResponse
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	reservation, err := h.svc.GetReservation(c.Request().Context(), id)
	if err != nil {
		return fail(c, "get reservation", err)
	}
	return c.JSON(http.StatusOK, reservation)
}

// CreateReservation godoc
// @Summary Request a table
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservation body service.ReservationRequest true "Reservation"
// @Success 200 {object} model.Reservation
// @Failure 400 {object} errors.ErrorResponse
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req service.ReservationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	reservation, err := h.svc.CreateReservation(c.Request().Context(), req)
	if err != nil {
		return fail(c, "create reservation", err)
	}
	return c.JSON(http.StatusOK, reservation)
}

// UpdateReservation godoc
// @Summary Update reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param reservation body service.UpdateReservationRequest true "Fields to change"
// @Success 200 {object} model.Reservation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reservations/{id} [patch]
func (h *ReservationHandler) UpdateReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req service.UpdateReservationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	reservation, err := h.svc.UpdateReservation(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, "update reservation", err)
	}
	return c.JSON(http.StatusOK, reservation)
}

// DeleteReservation godoc
// @Summary Delete reservation
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} SuccessResponse
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteReservation(c.Request().Context(), id); err != nil {
		return fail(c, "delete reservation", err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
