package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"supanos/internal/handler"
	"supanos/internal/model"
	"supanos/internal/service"
)

const (
	pathCategories   = "/api/menu/categories"
	pathItems        = "/api/menu/items"
	pathEvents       = "/api/events"
	pathReservations = "/api/reservations"
	pathSettings     = "/api/settings"
	pathUsers        = "/api/users"
	pathAuditLogs    = "/api/audit-logs"
)

// Health calls GET /api/health.
func (c *Client) Health(ctx context.Context) (*handler.HealthResponse, error) {
	var out handler.HealthResponse
	if err := c.get(ctx, "/api/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InitAdmin creates the bootstrap admin account.
func (c *Client) InitAdmin(ctx context.Context) (*handler.InitAdminResponse, error) {
	var out handler.InitAdminResponse
	if err := c.mutate(ctx, http.MethodPost, "/api/init-admin", nil, &out, pathUsers); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login opens a session; the cookie is kept in the client's jar. Cached
// queries are dropped because visibility may differ per user.
func (c *Client) Login(ctx context.Context, username, password string) (*handler.LoginResponse, error) {
	var out handler.LoginResponse
	req := service.LoginRequest{Username: username, Password: password}
	if err := c.mutate(ctx, http.MethodPost, "/api/auth/login", req, &out); err != nil {
		return nil, err
	}
	c.cache.Clear()
	return &out, nil
}

// Logout destroys the session.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.mutate(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.cache.Clear()
	return nil
}

// Me returns the identity behind the current session. It is never cached.
func (c *Client) Me(ctx context.Context) (*handler.MeResponse, error) {
	var out handler.MeResponse
	if err := c.get(ctx, "/api/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Users

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.query(ctx, pathUsers, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var out model.User
	if err := c.query(ctx, pathUsers+"/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, req service.CreateUserRequest) (*model.User, error) {
	var out model.User
	if err := c.mutate(ctx, http.MethodPost, pathUsers, req, &out, pathUsers, pathAuditLogs); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id uuid.UUID, req service.UpdateUserRequest) (*model.User, error) {
	var out model.User
	if err := c.mutate(ctx, http.MethodPatch, pathUsers+"/"+id.String(), req, &out, pathUsers, pathAuditLogs); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, pathUsers+"/"+id.String(), nil, nil, pathUsers, pathAuditLogs)
}

// AuditLogs lists recent audit entries; limit <= 0 uses the server default.
func (c *Client) AuditLogs(ctx context.Context, limit int) ([]model.AuditLog, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var out []model.AuditLog
	if err := c.query(ctx, pathAuditLogs, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Menu

func (c *Client) Categories(ctx context.Context) ([]model.MenuCategory, error) {
	var out []model.MenuCategory
	if err := c.query(ctx, pathCategories, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, req service.CategoryRequest) (*model.MenuCategory, error) {
	var out model.MenuCategory
	if err := c.mutate(ctx, http.MethodPost, pathCategories, req, &out, pathCategories, pathAuditLogs); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory also drops cached items, which embed their category.
func (c *Client) UpdateCategory(ctx context.Context, id uuid.UUID, req service.UpdateCategoryRequest) (*model.MenuCategory, error) {
	var out model.MenuCategory
	err := c.mutate(ctx, http.MethodPatch, pathCategories+"/"+id.String(), req, &out, pathCategories, pathItems, pathAuditLogs)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, pathCategories+"/"+id.String(), nil, nil, pathCategories, pathItems, pathAuditLogs)
}

// ItemQuery filters MenuItems. Zero values are omitted.
type ItemQuery struct {
	CategoryID uuid.UUID
	Search     string
}

func (c *Client) MenuItems(ctx context.Context, q ItemQuery) ([]model.MenuItem, error) {
	params := url.Values{}
	if q.CategoryID != uuid.Nil {
		params.Set("categoryId", q.CategoryID.String())
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	var out []model.MenuItem
	if err := c.query(ctx, pathItems, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MenuItem(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	var out model.MenuItem
	if err := c.query(ctx, pathItems+"/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateMenuItem(ctx context.Context, req service.MenuItemRequest) (*model.MenuItem, error) {
	var out model.MenuItem
	if err := c.mutate(ctx, http.MethodPost, pathItems, req, &out, pathItems, pathAuditLogs); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, id uuid.UUID, req service.UpdateMenuItemRequest) (*model.MenuItem, error) {
	var out model.MenuItem
	if err := c.mutate(ctx, http.MethodPatch, pathItems+"/"+id.String(), req, &out, pathItems, pathAuditLogs); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, pathItems+"/"+id.String(), nil, nil, pathItems, pathAuditLogs)
}

// Events

func (c *Client) Events(ctx context.Context, featuredOnly bool) ([]model.Event, error) {
	params := url.Values{}
	if featuredOnly {
		params.Set("featured", "1")
	}
	var out []model.Event
	if err := c.query(ctx, pathEvents, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Event(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	var out model.Event
	if err := c.query(ctx, pathEvents+"/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateEvent(ctx context.Context, req service.EventRequest) (*model.Event, error) {
	var out model.Event
	if err := c.mutate(ctx, http.MethodPost, pathEvents, req, &out, pathEvents, pathAuditLogs); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id uuid.UUID, req service.UpdateEventRequest) (*model.Event, error) {
	var out model.Event
	if err := c.mutate(ctx, http.MethodPatch, pathEvents+"/"+id.String(), req, &out, pathEvents, pathAuditLogs); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, pathEvents+"/"+id.String(), nil, nil, pathEvents, pathAuditLogs)
}

// Reservations

// Reservations lists bookings; status and date (YYYY-MM-DD) are optional.
func (c *Client) Reservations(ctx context.Context, status, date string) ([]model.Reservation, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	if date != "" {
		params.Set("date", date)
	}
	var out []model.Reservation
	if err := c.query(ctx, pathReservations, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Reservation(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var out model.Reservation
	if err := c.query(ctx, pathReservations+"/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateReservation(ctx context.Context, req service.ReservationRequest) (*model.Reservation, error) {
	var out model.Reservation
	if err := c.mutate(ctx, http.MethodPost, pathReservations, req, &out, pathReservations, pathAuditLogs); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateReservation(ctx context.Context, id uuid.UUID, req service.UpdateReservationRequest) (*model.Reservation, error) {
	var out model.Reservation
	err := c.mutate(ctx, http.MethodPatch, pathReservations+"/"+id.String(), req, &out, pathReservations, pathAuditLogs)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, pathReservations+"/"+id.String(), nil, nil, pathReservations, pathAuditLogs)
}

// Scores returns the scoreboard for date (YYYY-MM-DD, empty for today).
func (c *Client) Scores(ctx context.Context, date string) (*service.Scoreboard, error) {
	params := url.Values{}
	if date != "" {
		params.Set("date", date)
	}
	var out service.Scoreboard
	if err := c.query(ctx, "/api/scores", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Settings

func (c *Client) Settings(ctx context.Context) ([]model.Setting, error) {
	var out []model.Setting
	if err := c.query(ctx, pathSettings, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Setting(ctx context.Context, key string) (*model.Setting, error) {
	var out model.Setting
	if err := c.query(ctx, pathSettings+"/"+url.PathEscape(key), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveSetting upserts a single key; value is encoded as JSON.
func (c *Client) SaveSetting(ctx context.Context, key string, value interface{}) (*model.Setting, error) {
	raw, err := jsonValue(value)
	if err != nil {
		return nil, fmt.Errorf("encode setting %q: %w", key, err)
	}
	var out model.Setting
	req := service.SettingRequest{Key: key, Value: raw}
	if err := c.mutate(ctx, http.MethodPost, pathSettings, req, &out, pathSettings, pathAuditLogs); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveSettings upserts each key with its own request. Keys are not applied
// atomically: on failure the keys already sent stay saved, and the returned
// slice lists them.
func (c *Client) SaveSettings(ctx context.Context, values map[string]interface{}) ([]string, error) {
	saved := make([]string, 0, len(values))
	for _, key := range sortedKeys(values) {
		if _, err := c.SaveSetting(ctx, key, values[key]); err != nil {
			return saved, fmt.Errorf("save setting %q: %w", key, err)
		}
		saved = append(saved, key)
	}
	return saved, nil
}

// UploadImage posts an image as the multipart "image" field.
func (c *Client) UploadImage(ctx context.Context, filename, contentType string, content io.Reader) (*handler.UploadResponse, error) {
	var out handler.UploadResponse
	if err := c.upload(ctx, "/api/upload", "image", filename, contentType, content, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
