package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"supanos/internal/auth"
	apperrors "supanos/internal/errors"
	"supanos/internal/model"
	"supanos/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	signer      *auth.CookieSigner
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, signer *auth.CookieSigner) *AuthHandler {
	return &AuthHandler{authService: authService, signer: signer}
}

// SessionUser is the public view of the logged-in user.
type SessionUser struct {
	ID       uuid.UUID  `json:"id"`
	Username string     `json:"username"`
	Email    *string    `json:"email"`
	Role     model.Role `json:"role"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Message string      `json:"message"`
	User    SessionUser `json:"user"`
}

// InitAdminResponse is returned when the bootstrap admin is created.
type InitAdminResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// MeResponse describes the current session.
type MeResponse struct {
	UserID   uuid.UUID  `json:"userId"`
	UserRole model.Role `json:"userRole"`
}

// Login godoc
// @Summary Log in with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req service.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, cookie, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return fail(c, "login", err)
	}
	h.signer.SetCookie(c, cookie, h.authService.SessionTTL())

	return c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		User: SessionUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		},
	})
}

// Logout godoc
// @Summary Destroy the current session
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var sid string
	if id, ok := auth.IdentityFrom(c.Request().Context()); ok {
		sid = id.SessionID
	}
	if err := h.authService.Logout(c.Request().Context(), sid); err != nil {
		return fail(c, "logout", err)
	}
	h.signer.ClearCookie(c)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logout successful"})
}

// Me godoc
// @Summary Current session identity
// @Tags auth
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := auth.IdentityFrom(c.Request().Context())
	if !ok {
		return fail(c, "me", apperrors.ErrUnauthenticated)
	}
	return c.JSON(http.StatusOK, MeResponse{UserID: id.UserID, UserRole: id.Role})
}

// InitAdmin godoc
// @Summary Create the first admin account (admin / admin123)
// @Tags auth
// @Produce json
// @Success 200 {object} InitAdminResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /init-admin [post]
func (h *AuthHandler) InitAdmin(c echo.Context) error {
	admin, err := h.authService.BootstrapAdmin(c.Request().Context())
	if err != nil {
		return fail(c, "init admin", err)
	}
	return c.JSON(http.StatusOK, InitAdminResponse{
		Message:  "Admin user created successfully",
		Username: admin.Username,
	})
}
