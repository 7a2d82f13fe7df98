package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supanos/internal/cache"
	apperrors "supanos/internal/errors"
	"supanos/internal/model"
	"supanos/internal/repository"
	"supanos/internal/testutil"
)

func TestCookieSigner_RoundTrip(t *testing.T) {
	signer := NewCookieSigner("secret", false)

	value, err := signer.Sign("session-1", time.Hour)
	require.NoError(t, err)

	sid, err := signer.Parse(value)
	require.NoError(t, err)
	assert.Equal(t, "session-1", sid)

	_, err = NewCookieSigner("other", false).Parse(value)
	assert.Error(t, err)

	expired, err := signer.Sign("session-2", -time.Minute)
	require.NoError(t, err)
	_, err = signer.Parse(expired)
	assert.Error(t, err)
}

func TestDBStore_Lifecycle(t *testing.T) {
	store := NewDBStore(repository.NewSessionRepository(testutil.NewDB(t)))
	ctx := context.Background()
	userID := uuid.New()

	sid, err := store.Create(ctx, SessionData{UserID: userID, Role: model.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	data, err := store.Get(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, userID, data.UserID)
	assert.Equal(t, model.RoleAdmin, data.Role)

	require.NoError(t, store.Destroy(ctx, sid))
	_, err = store.Get(ctx, sid)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestNewRedisStore_RequiresRedis(t *testing.T) {
	c, err := cache.New("")
	require.NoError(t, err)
	_, err = NewRedisStore(c)
	assert.Error(t, err)
}

func TestRedisStore_CreateFailsWhenRedisIsDown(t *testing.T) {
	c, err := cache.New("redis://127.0.0.1:1/0")
	require.NoError(t, err)
	defer c.Close()
	store, err := NewRedisStore(c)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	sid, err := store.Create(ctx, SessionData{UserID: uuid.New(), Role: model.RoleAdmin}, time.Hour)

	assert.Error(t, err)
	assert.Empty(t, sid)
}

type sessionFixture struct {
	e      *echo.Echo
	signer *CookieSigner
	store  *DBStore
	users  repository.UserRepository
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	gormDB := testutil.NewDB(t)
	f := &sessionFixture{
		e:      echo.New(),
		signer: NewCookieSigner("secret", false),
		store:  NewDBStore(repository.NewSessionRepository(gormDB)),
		users:  repository.NewUserRepository(gormDB),
	}
	g := f.e.Group("", Sessions(f.signer, f.store, f.users)...)
	g.GET("/whoami", func(c echo.Context) error {
		id, ok := IdentityFrom(c.Request().Context())
		if !ok {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.String(http.StatusOK, string(id.Role))
	})
	g.GET("/private", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireAuth())
	g.GET("/admin", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireRole(model.RoleAdmin))
	return f
}

// login creates an active user with role and a session for it.
func (f *sessionFixture) login(t *testing.T, role model.Role) *http.Cookie {
	t.Helper()
	cookie, _ := f.loginUser(t, role)
	return cookie
}

func (f *sessionFixture) loginUser(t *testing.T, role model.Role) (*http.Cookie, *model.User) {
	t.Helper()
	ctx := context.Background()
	user := &model.User{Username: uuid.NewString(), PasswordHash: "x", Role: role, IsActive: true}
	require.NoError(t, f.users.Create(ctx, user))
	sid, err := f.store.Create(ctx, SessionData{UserID: user.ID, Role: role}, time.Hour)
	require.NoError(t, err)
	value, err := f.signer.Sign(sid, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: CookieName, Value: value}, user
}

func (f *sessionFixture) do(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestSessions_ResolvesIdentity(t *testing.T) {
	f := newSessionFixture(t)

	assert.Equal(t, "anonymous", f.do("/whoami", nil).Body.String())
	assert.Equal(t, "anonymous", f.do("/whoami", &http.Cookie{Name: CookieName, Value: "garbage"}).Body.String())
	assert.Equal(t, "staff", f.do("/whoami", f.login(t, model.RoleStaff)).Body.String())
}

func TestSessions_DestroyedSessionIsAnonymous(t *testing.T) {
	f := newSessionFixture(t)
	cookie := f.login(t, model.RoleAdmin)

	sid, err := f.signer.Parse(cookie.Value)
	require.NoError(t, err)
	require.NoError(t, f.store.Destroy(context.Background(), sid))

	assert.Equal(t, "anonymous", f.do("/whoami", cookie).Body.String())
}

func TestSessions_RevokedWithUser(t *testing.T) {
	tests := []struct {
		name   string
		change func(t *testing.T, f *sessionFixture, id uuid.UUID)
	}{
		{"deleted", func(t *testing.T, f *sessionFixture, id uuid.UUID) {
			require.NoError(t, f.users.Delete(context.Background(), id))
		}},
		{"deactivated", func(t *testing.T, f *sessionFixture, id uuid.UUID) {
			_, err := f.users.Update(context.Background(), id, repository.Fields{"is_active": false})
			require.NoError(t, err)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture(t)
			cookie, user := f.loginUser(t, model.RoleAdmin)
			require.Equal(t, http.StatusOK, f.do("/admin", cookie).Code)

			tt.change(t, f, user.ID)

			assert.Equal(t, http.StatusUnauthorized, f.do("/admin", cookie).Code)
			sid, err := f.signer.Parse(cookie.Value)
			require.NoError(t, err)
			_, err = f.store.Get(context.Background(), sid)
			assert.ErrorIs(t, err, apperrors.ErrNotFound)
		})
	}
}

func TestSessions_UseCurrentRole(t *testing.T) {
	f := newSessionFixture(t)
	cookie, user := f.loginUser(t, model.RoleAdmin)

	_, err := f.users.Update(context.Background(), user.ID, repository.Fields{"role": string(model.RoleStaff)})
	require.NoError(t, err)

	assert.Equal(t, "staff", f.do("/whoami", cookie).Body.String())
	assert.Equal(t, http.StatusForbidden, f.do("/admin", cookie).Code)
}

func TestGuards(t *testing.T) {
	f := newSessionFixture(t)
	staff := f.login(t, model.RoleStaff)
	admin := f.login(t, model.RoleAdmin)

	tests := []struct {
		name   string
		path   string
		cookie *http.Cookie
		want   int
	}{
		{"private anonymous", "/private", nil, http.StatusUnauthorized},
		{"private staff", "/private", staff, http.StatusOK},
		{"admin anonymous", "/admin", nil, http.StatusUnauthorized},
		{"admin staff", "/admin", staff, http.StatusForbidden},
		{"admin admin", "/admin", admin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.do(tt.path, tt.cookie).Code)
		})
	}
}

func TestStartSweeper_RemovesExpiredSessions(t *testing.T) {
	gormDB := testutil.NewDB(t)
	store := NewDBStore(repository.NewSessionRepository(gormDB))
	_, err := store.Create(context.Background(), SessionData{UserID: uuid.New(), Role: model.RoleUser}, time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := StartSweeper(ctx, store, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		var count int64
		err := gormDB.Model(&model.Session{}).Count(&count).Error
		return err == nil && count == 0
	}, time.Second, 20*time.Millisecond)

	cancel()
	<-done
}
