package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"supanos/internal/auth"
	apperrors "supanos/internal/errors"
	"supanos/internal/model"
	"supanos/internal/repository"
)

func TestUserService_CreateUserHashesPassword(t *testing.T) {
	users := new(MockUserRepository)
	audit := new(MockAuditRecorder)
	users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
	audit.On("Record", mock.Anything, "create", "user", mock.Anything, mock.Anything).Return()

	svc := NewUserService(users, audit)
	user, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username: "staffer",
		Password: "secret1",
		Role:     model.RoleStaff,
	})

	require.NoError(t, err)
	assert.Equal(t, "staffer", user.Username)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))
	users.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestUserService_UpdateUserRehashesPassword(t *testing.T) {
	id := uuid.New()
	users := new(MockUserRepository)
	audit := new(MockAuditRecorder)
	users.On("Update", mock.Anything, id, mock.MatchedBy(func(f repository.Fields) bool {
		hash, ok := f["password"].(string)
		return ok && f["first_name"] == "Pat" &&
			bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpass")) == nil
	})).Return(&model.User{ID: id}, nil)
	audit.On("Record", mock.Anything, "update", "user", id.String(),
		map[string]interface{}{"fields": []string{"first_name"}}).Return()

	first, password := "Pat", "newpass"
	svc := NewUserService(users, audit)
	_, err := svc.UpdateUser(context.Background(), id, UpdateUserRequest{FirstName: &first, Password: &password})

	require.NoError(t, err)
	users.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestUserService_UpdateMissingUser(t *testing.T) {
	id := uuid.New()
	users := new(MockUserRepository)
	users.On("Update", mock.Anything, id, mock.Anything).Return(nil, apperrors.ErrNotFound)

	svc := NewUserService(users, new(MockAuditRecorder))
	_, err := svc.UpdateUser(context.Background(), id, UpdateUserRequest{})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	self := uuid.New()
	other := uuid.New()
	ctx := auth.WithIdentity(context.Background(), auth.Identity{UserID: self, Role: model.RoleAdmin})

	users := new(MockUserRepository)
	audit := new(MockAuditRecorder)
	users.On("Delete", mock.Anything, other).Return(nil)
	audit.On("Record", mock.Anything, "delete", "user", other.String(), nil).Return()

	svc := NewUserService(users, audit)

	assert.ErrorIs(t, svc.DeleteUser(ctx, self), apperrors.ErrSelfDelete)
	assert.NoError(t, svc.DeleteUser(ctx, other))
	users.AssertNotCalled(t, "Delete", mock.Anything, self)
	users.AssertExpectations(t)
}
