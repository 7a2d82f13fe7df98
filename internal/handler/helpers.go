package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	apperrors "supanos/internal/errors"
)

// SuccessResponse is returned by delete endpoints.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// bindAndValidate decodes the JSON body into dst and runs struct validation.
// Validation failures come back as *errors.ValidationError.
func bindAndValidate(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return apperrors.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return c.Validate(dst)
}

// pathID parses the :id path parameter as a UUID.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

// fail maps err onto an HTTP error and logs anything that becomes a 5xx.
func fail(c echo.Context, op string, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.IsServerError() {
		log.Error().Err(err).
			Str("op", op).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Msg("request failed")
	}
	return httpErr
}
