package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"supanos/internal/auth"
	"supanos/internal/model"
	"supanos/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsWithRole(ctx context.Context, role model.Role) (bool, error) {
	args := m.Called(ctx, role)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, fields repository.Fields) (*model.User, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMenuCategoryRepository is a mock implementation of MenuCategoryRepository.
type MockMenuCategoryRepository struct {
	mock.Mock
}

func (m *MockMenuCategoryRepository) List(ctx context.Context) ([]model.MenuCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuCategory), args.Error(1)
}

func (m *MockMenuCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MenuCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuCategory), args.Error(1)
}

func (m *MockMenuCategoryRepository) Create(ctx context.Context, category *model.MenuCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockMenuCategoryRepository) Update(ctx context.Context, id uuid.UUID, fields repository.Fields) (*model.MenuCategory, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuCategory), args.Error(1)
}

func (m *MockMenuCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMenuCategoryRepository) CountItems(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockMenuItemRepository is a mock implementation of MenuItemRepository.
type MockMenuItemRepository struct {
	mock.Mock
}

func (m *MockMenuItemRepository) List(ctx context.Context, filter repository.MenuItemFilter) ([]model.MenuItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) Create(ctx context.Context, item *model.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) Update(ctx context.Context, id uuid.UUID, fields repository.Fields) (*model.MenuItem, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSessionStore is a mock implementation of auth.Store.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, data auth.SessionData, ttl time.Duration) (string, error) {
	args := m.Called(ctx, data, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Get(ctx context.Context, sid string) (*auth.SessionData, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.SessionData), args.Error(1)
}

func (m *MockSessionStore) Destroy(ctx context.Context, sid string) error {
	args := m.Called(ctx, sid)
	return args.Error(0)
}

func (m *MockSessionStore) Sweep(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuditRecorder is a mock implementation of AuditRecorder.
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, action, targetType, targetID string, meta interface{}) {
	m.Called(ctx, action, targetType, targetID, meta)
}

// MockUploadRepository is a mock implementation of UploadRepository.
type MockUploadRepository struct {
	mock.Mock
}

func (m *MockUploadRepository) Create(ctx context.Context, upload *model.Upload) error {
	args := m.Called(ctx, upload)
	return args.Error(0)
}
