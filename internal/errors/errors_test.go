package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not found", ErrNotFound, http.StatusNotFound, "Not found"},
		{"wrapped gorm not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), http.StatusNotFound, "Not found"},
		{"duplicate key", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), http.StatusConflict, "A record with the same unique value already exists"},
		{"unknown category", ErrCategoryNotFound, http.StatusBadRequest, "menu category not found"},
		{"foreign key", gorm.ErrForeignKeyViolated, http.StatusBadRequest, "menu category not found"},
		{"category in use", ErrCategoryInUse, http.StatusConflict, "Cannot delete a category that still has menu items"},
		{"bad login", ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"anonymous", ErrUnauthenticated, http.StatusUnauthorized, "Not authenticated"},
		{"wrong role", ErrForbidden, http.StatusForbidden, "Admin access required"},
		{"self delete", ErrSelfDelete, http.StatusBadRequest, "Cannot delete your own account"},
		{"too large", ErrFileTooLarge, http.StatusRequestEntityTooLarge, "File too large"},
		{"unexpected", errors.New("connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
		})
	}
}

func TestMapErrorToHTTP_Validation(t *testing.T) {
	err := fmt.Errorf("create item: %w", NewValidation(map[string]string{"price": "required", "name": "required"}))

	httpErr := MapErrorToHTTP(err)

	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, ErrorResponse{
		Message: "Validation failed",
		Fields:  map[string]string{"price": "required", "name": "required"},
	}, httpErr.ToErrorResponse())
	assert.Equal(t, "validation failed: name: required, price: required", NewValidation(map[string]string{"price": "required", "name": "required"}).Error())
}

func TestMapErrorToHTTP_PassesThroughHTTPError(t *testing.T) {
	original := NewHTTPError(http.StatusTeapot, "short and stout")
	assert.Same(t, original, MapErrorToHTTP(fmt.Errorf("wrap: %w", original)))
}
