package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "supanos/internal/errors"
	"supanos/internal/model"
	"supanos/internal/service"
)

// UploadHandler accepts image uploads.
type UploadHandler struct {
	svc service.UploadService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(svc service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// UploadResponse carries the public URL of the stored image.
type UploadResponse struct {
	ImageURL string        `json:"imageUrl"`
	Upload   *model.Upload `json:"upload"`
}

// UploadImage godoc
// @Summary Upload an image
// @Description Multipart field "image"; jpeg, jpg, png, gif or webp up to 5 MiB.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return fail(c, "upload", apperrors.ErrNoFile)
		}
		var maxErr *http.MaxBytesError
		var bodyLimitErr *echo.HTTPError
		if errors.As(err, &maxErr) ||
			(errors.As(err, &bodyLimitErr) && bodyLimitErr.Code == http.StatusRequestEntityTooLarge) {
			return fail(c, "upload", apperrors.ErrFileTooLarge)
		}
		return apperrors.NewHTTPError(http.StatusBadRequest, "Invalid multipart body")
	}

	upload, err := h.svc.SaveImage(c.Request().Context(), file)
	if err != nil {
		return fail(c, "upload", err)
	}
	return c.JSON(http.StatusOK, UploadResponse{ImageURL: upload.URL, Upload: upload})
}
