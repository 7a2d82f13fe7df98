package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"supanos/internal/service"
)

// ScoreHandler serves the scoreboard.
type ScoreHandler struct {
	svc service.ScoreService
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(svc service.ScoreService) *ScoreHandler {
	return &ScoreHandler{svc: svc}
}

// GetScores godoc
// @Summary Scores for a date
// @Description Returns example data flagged integrated=false until a provider is connected.
// @Tags scores
// @Produce json
// @Param date query string false "YYYY-MM-DD, defaults to today (UTC)"
// @Success 200 {object} service.Scoreboard
// @Router /scores [get]
func (h *ScoreHandler) GetScores(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Scores(c.QueryParam("date")))
}
