package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"supanos/internal/service"
)

// EventHandler serves the events endpoints.
type EventHandler struct {
	svc service.EventService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// ListEvents godoc
// @Summary List events
// @Tags events
// @Produce json
// @Param featured query string false "1 or true for featured events only"
// @Success 200 {array} model.Event
// @Router /events [get]
func (h *EventHandler) ListEvents(c echo.Context) error {
	var featured *bool
	if v := c.QueryParam("featured"); v == "1" || v == "true" {
		t := true
		featured = &t
	}
	events, err := h.svc.ListEvents(c.Request().Context(), featured)
	if err != nil {
		return fail(c, "list events", err)
	}
	return c.JSON(http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} model.Event
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	event, err := h.svc.GetEvent(c.Request().Context(), id)
	if err != nil {
		return fail(c, "get event", err)
	}
	return c.JSON(http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Create event
// @Tags events
// @Accept json
// @Produce json
// @Param event body service.EventRequest true "Event"
// @Success 200 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Router /events [post]
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req service.EventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	event, err := h.svc.CreateEvent(c.Request().Context(), req)
	if err != nil {
		return fail(c, "create event", err)
	}
	return c.JSON(http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update event
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param event body service.UpdateEventRequest true "Fields to change"
// @Success 200 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id} [patch]
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req service.UpdateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	event, err := h.svc.UpdateEvent(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, "update event", err)
	}
	return c.JSON(http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} SuccessResponse
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteEvent(c.Request().Context(), id); err != nil {
		return fail(c, "delete event", err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
