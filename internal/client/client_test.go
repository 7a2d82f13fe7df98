package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supanos/internal/model"
)

func TestQueryCache_Invalidate(t *testing.T) {
	q := NewQueryCache()
	q.Store("/api/menu/items", []byte(`[]`))
	q.Store("/api/menu/items?search=wing", []byte(`[]`))
	q.Store("/api/menu/items/1", []byte(`{}`))
	q.Store("/api/menu/itemsx", []byte(`[]`))
	q.Store("/api/events", []byte(`[]`))

	q.Invalidate("/api/menu/items")

	assert.Equal(t, 2, q.Len())
	var v interface{}
	assert.True(t, q.Load("/api/menu/itemsx", &v))
	assert.True(t, q.Load("/api/events", &v))
	assert.False(t, q.Load("/api/menu/items?search=wing", &v))

	q.Clear()
	assert.Equal(t, 0, q.Len())
}

// countingServer serves a fixed events list and counts GETs.
func countingServer(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var gets int32
	e := echo.New()
	e.GET("/api/events", func(c echo.Context) error {
		atomic.AddInt32(&gets, 1)
		return c.JSON(http.StatusOK, []model.Event{{Title: "Trivia Night"}})
	})
	e.DELETE("/api/events/:id", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"success": true})
	})
	e.GET("/api/settings/:key", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"message": "Not found",
		})
	})
	e.POST("/api/settings", func(c echo.Context) error {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"message": "Validation failed",
			"fields":  map[string]string{"key": "required"},
		})
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, &gets
}

func TestClient_QueryIsCachedUntilMutation(t *testing.T) {
	srv, gets := countingServer(t)
	c, err := New(srv.URL)
	require.NoError(t, err)
	ctx := context.Background()

	events, err := c.Events(ctx, false)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Trivia Night", events[0].Title)

	_, err = c.Events(ctx, false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(gets))

	require.NoError(t, c.DeleteEvent(ctx, events[0].ID))
	_, err = c.Events(ctx, false)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(gets))
}

func TestClient_ErrorBody(t *testing.T) {
	srv, _ := countingServer(t)
	c, err := New(srv.URL)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.Setting(ctx, "hours")
	assert.Equal(t, http.StatusNotFound, StatusOf(err))

	_, err = c.SaveSetting(ctx, "", "x")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Validation failed", apiErr.Message)
	assert.Equal(t, map[string]string{"key": "required"}, apiErr.Fields)
}

func TestClient_SaveSettingsStopsAtFirstFailure(t *testing.T) {
	var posts int32
	e := echo.New()
	e.POST("/api/settings", func(c echo.Context) error {
		var body struct {
			Key   string     `json:"key"`
			Value model.JSON `json:"value"`
		}
		if err := c.Bind(&body); err != nil {
			return err
		}
		atomic.AddInt32(&posts, 1)
		if body.Key == "phone" {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
		}
		return c.JSON(http.StatusOK, model.Setting{Key: body.Key, Value: body.Value})
	})
	srv := httptest.NewServer(e)
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	saved, err := c.SaveSettings(context.Background(), map[string]interface{}{
		"address": "1 Main St",
		"hours":   map[string]string{"mon": "11-23"},
		"phone":   "555-0100",
	})

	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	assert.Equal(t, []string{"address", "hours"}, saved)
	assert.EqualValues(t, 3, atomic.LoadInt32(&posts))
}

func TestStatusOf_NonAPIError(t *testing.T) {
	assert.Equal(t, 0, StatusOf(assert.AnError))
}

func TestClient_HealthAndMeAreNotCached(t *testing.T) {
	var health, me int32
	e := echo.New()
	e.GET("/api/health", func(c echo.Context) error {
		atomic.AddInt32(&health, 1)
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/api/auth/me", func(c echo.Context) error {
		atomic.AddInt32(&me, 1)
		return c.JSON(http.StatusOK, map[string]string{"userRole": "admin"})
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		h, err := c.Health(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ok", h.Status)
		m, err := c.Me(ctx)
		require.NoError(t, err)
		assert.Equal(t, "admin", string(m.UserRole))
	}
	assert.EqualValues(t, 2, atomic.LoadInt32(&health))
	assert.EqualValues(t, 2, atomic.LoadInt32(&me))
	assert.Zero(t, c.Cache().Len())
}
