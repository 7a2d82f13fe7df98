package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "supanos/internal/errors"
	"supanos/internal/service"
)

// AuditHandler exposes the audit trail to admins.
type AuditHandler struct {
	svc service.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(svc service.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// ListAuditLogs godoc
// @Summary Recent audit log entries
// @Tags audit
// @Produce json
// @Param limit query int false "At most 200, default 50"
// @Success 200 {array} model.AuditLog
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}
		limit = n
	}
	entries, err := h.svc.List(c.Request().Context(), limit)
	if err != nil {
		return fail(c, "list audit logs", err)
	}
	return c.JSON(http.StatusOK, entries)
}
