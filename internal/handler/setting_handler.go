package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"supanos/internal/service"
)

// SettingHandler serves site settings.
type SettingHandler struct {
	svc service.SettingService
}

// NewSettingHandler creates a new setting handler.
func NewSettingHandler(svc service.SettingService) *SettingHandler {
	return &SettingHandler{svc: svc}
}

// ListSettings godoc
// @Summary List settings
// @Tags settings
// @Produce json
// @Success 200 {array} model.Setting
// @Router /settings [get]
func (h *SettingHandler) ListSettings(c echo.Context) error {
	settings, err := h.svc.ListSettings(c.Request().Context())
	if err != nil {
		return fail(c, "list settings", err)
	}
	return c.JSON(http.StatusOK, settings)
}

// GetSetting godoc
// @Summary Get setting by key
// @Tags settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} model.Setting
// @Failure 404 {object} errors.ErrorResponse
// @Router /settings/{key} [get]
func (h *SettingHandler) GetSetting(c echo.Context) error {
	setting, err := h.svc.GetSetting(c.Request().Context(), c.Param("key"))
	if err != nil {
		return fail(c, "get setting", err)
	}
	return c.JSON(http.StatusOK, setting)
}

// UpsertSetting godoc
// @Summary Create or replace a setting
// @Tags settings
// @Accept json
// @Produce json
// @Param setting body service.SettingRequest true "Key and JSON value"
// @Success 200 {object} model.Setting
// @Failure 400 {object} errors.ErrorResponse
// @Router /settings [post]
func (h *SettingHandler) UpsertSetting(c echo.Context) error {
	var req service.SettingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	setting, err := h.svc.UpsertSetting(c.Request().Context(), req)
	if err != nil {
		return fail(c, "upsert setting", err)
	}
	return c.JSON(http.StatusOK, setting)
}
