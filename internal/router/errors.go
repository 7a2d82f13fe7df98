package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	apperrors "supanos/internal/errors"
)

// ErrorHandler renders every error as {"message": ...}, adding "fields" for
// validation failures.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var resp *apperrors.HTTPError
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, ok := echoErr.Message.(string)
		if !ok {
			msg = fmt.Sprint(echoErr.Message)
		}
		if echoErr.Code >= http.StatusInternalServerError {
			msg = "Internal server error"
		}
		resp = apperrors.NewHTTPError(echoErr.Code, msg)
	} else {
		resp = apperrors.MapErrorToHTTP(err)
	}

	if resp.IsServerError() {
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("uri", c.Request().RequestURI).
			Msg("unhandled error")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(resp.StatusCode)
	} else {
		err = c.JSON(resp.StatusCode, resp.ToErrorResponse())
	}
	if err != nil {
		log.Error().Err(err).Msg("write error response")
	}
}
