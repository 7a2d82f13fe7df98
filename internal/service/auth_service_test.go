package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"supanos/internal/auth"
	apperrors "supanos/internal/errors"
	"supanos/internal/model"
)

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Login(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*testing.T, *MockUserRepository, *MockSessionStore)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "admin",
			password: "admin123",
			setupMock: func(t *testing.T, users *MockUserRepository, store *MockSessionStore) {
				users.On("FindByUsername", mock.Anything, "admin").Return(&model.User{
					ID: userID, Username: "admin", PasswordHash: hashed(t, "admin123"), Role: model.RoleAdmin, IsActive: true,
				}, nil)
				store.On("Sweep", mock.Anything).Return(int64(0), nil)
				store.On("Create", mock.Anything, auth.SessionData{UserID: userID, Role: model.RoleAdmin}, time.Hour).Return("sid-1", nil)
			},
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "whatever",
			setupMock: func(t *testing.T, users *MockUserRepository, store *MockSessionStore) {
				users.On("FindByUsername", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "admin",
			password: "nope",
			setupMock: func(t *testing.T, users *MockUserRepository, store *MockSessionStore) {
				users.On("FindByUsername", mock.Anything, "admin").Return(&model.User{
					ID: userID, Username: "admin", PasswordHash: hashed(t, "admin123"), IsActive: true,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "inactive user",
			username: "admin",
			password: "admin123",
			setupMock: func(t *testing.T, users *MockUserRepository, store *MockSessionStore) {
				users.On("FindByUsername", mock.Anything, "admin").Return(&model.User{
					ID: userID, Username: "admin", PasswordHash: hashed(t, "admin123"), IsActive: false,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			store := new(MockSessionStore)
			tt.setupMock(t, users, store)

			signer := auth.NewCookieSigner("test-secret", false)
			svc := NewAuthService(users, store, signer, time.Hour)

			user, cookie, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, cookie)
			} else {
				require.NoError(t, err)
				assert.Equal(t, userID, user.ID)
				sid, err := signer.Parse(cookie)
				require.NoError(t, err)
				assert.Equal(t, "sid-1", sid)
			}

			users.AssertExpectations(t)
			store.AssertExpectations(t)
		})
	}
}

func TestAuthService_BootstrapAdmin(t *testing.T) {
	t.Run("creates admin once", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("ExistsWithRole", mock.Anything, model.RoleAdmin).Return(false, nil)
		users.On("FindByUsername", mock.Anything, "admin").Return(nil, apperrors.ErrNotFound)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "admin" && u.Role == model.RoleAdmin &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("admin123")) == nil
		})).Return(nil)

		svc := NewAuthService(users, new(MockSessionStore), auth.NewCookieSigner("s", false), time.Hour)
		admin, err := svc.BootstrapAdmin(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "admin", admin.Username)
		require.NotNil(t, admin.Email)
		assert.Equal(t, "admin@supanos.bar", *admin.Email)
		users.AssertExpectations(t)
	})

	t.Run("refuses when an admin exists", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("ExistsWithRole", mock.Anything, model.RoleAdmin).Return(true, nil)

		svc := NewAuthService(users, new(MockSessionStore), auth.NewCookieSigner("s", false), time.Hour)
		_, err := svc.BootstrapAdmin(context.Background())

		assert.ErrorIs(t, err, apperrors.ErrAdminExists)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("refuses when the admin username is taken", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("ExistsWithRole", mock.Anything, model.RoleAdmin).Return(false, nil)
		users.On("FindByUsername", mock.Anything, "admin").Return(&model.User{Username: "admin", Role: model.RoleUser}, nil)

		svc := NewAuthService(users, new(MockSessionStore), auth.NewCookieSigner("s", false), time.Hour)
		_, err := svc.BootstrapAdmin(context.Background())

		assert.ErrorIs(t, err, apperrors.ErrAdminExists)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_LogoutIgnoresEmptySession(t *testing.T) {
	store := new(MockSessionStore)
	svc := NewAuthService(new(MockUserRepository), store, auth.NewCookieSigner("s", false), time.Hour)

	assert.NoError(t, svc.Logout(context.Background(), ""))
	store.AssertNotCalled(t, "Destroy", mock.Anything, mock.Anything)

	store.On("Destroy", mock.Anything, "sid-1").Return(nil)
	assert.NoError(t, svc.Logout(context.Background(), "sid-1"))
	store.AssertExpectations(t)
}
