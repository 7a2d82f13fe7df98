package errors

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row addressed by id or key does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique column would be duplicated.
	ErrDuplicate = errors.New("already exists")
	// ErrCategoryNotFound is returned when a menu item references an unknown category.
	ErrCategoryNotFound = errors.New("menu category not found")
	// ErrCategoryInUse is returned when deleting a category that still has items.
	ErrCategoryInUse = errors.New("menu category still has items")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrUnauthenticated is returned when a route needs a session and there is none.
	ErrUnauthenticated = errors.New("Not authenticated")
	// ErrForbidden is returned when the session role is not allowed.
	ErrForbidden = errors.New("Admin access required")
	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = errors.New("Cannot delete your own account")
	// ErrAdminExists is returned by the bootstrap route once an admin exists.
	ErrAdminExists = errors.New("Admin user already exists")
	// ErrInvalidUpload is returned for missing or non-image uploads.
	ErrInvalidUpload = errors.New("Only image files are allowed")
	// ErrNoFile is returned when the upload request carries no file.
	ErrNoFile = errors.New("No file uploaded")
	// ErrFileTooLarge is returned when an upload exceeds the size ceiling.
	ErrFileTooLarge = errors.New("File too large")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ValidationError carries per-field validation failures (field -> rule).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NewValidation creates a validation error for the given fields.
func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Fields:  e.Fields,
	}
}

// IsServerError reports whether the error maps to a 5xx response.
func (e *HTTPError) IsServerError() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// MapErrorToHTTP maps domain and store errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: "Validation failed", Fields: valErr.Fields}
	}

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, ErrDuplicate), errors.Is(err, gorm.ErrDuplicatedKey):
		return NewHTTPError(http.StatusConflict, "A record with the same unique value already exists")
	case errors.Is(err, ErrCategoryNotFound), errors.Is(err, gorm.ErrForeignKeyViolated):
		return NewHTTPError(http.StatusBadRequest, ErrCategoryNotFound.Error())
	case errors.Is(err, ErrCategoryInUse):
		return NewHTTPError(http.StatusConflict, "Cannot delete a category that still has menu items")
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error())
	case errors.Is(err, ErrSelfDelete), errors.Is(err, ErrAdminExists),
		errors.Is(err, ErrInvalidUpload), errors.Is(err, ErrNoFile):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrFileTooLarge):
		return NewHTTPError(http.StatusRequestEntityTooLarge, ErrFileTooLarge.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
