package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "supanos/internal/errors"
	"supanos/internal/model"
)

func TestMenuService_CreateItem(t *testing.T) {
	categoryID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockMenuCategoryRepository, *MockMenuItemRepository, *MockAuditRecorder)
		expectedError error
		wantErr       bool
	}{
		{
			name: "embeds category and defaults availability",
			setupMock: func(c *MockMenuCategoryRepository, i *MockMenuItemRepository, a *MockAuditRecorder) {
				c.On("FindByID", mock.Anything, categoryID).Return(&model.MenuCategory{ID: categoryID, Name: "Appetizers"}, nil)
				i.On("Create", mock.Anything, mock.MatchedBy(func(it *model.MenuItem) bool {
					return it.IsAvailable && it.CategoryID == categoryID
				})).Return(nil)
				a.On("Record", mock.Anything, "create", "menu_item", mock.Anything, mock.Anything).Return()
			},
		},
		{
			name: "unknown category",
			setupMock: func(c *MockMenuCategoryRepository, i *MockMenuItemRepository, a *MockAuditRecorder) {
				c.On("FindByID", mock.Anything, categoryID).Return(nil, apperrors.ErrNotFound)
			},
			expectedError: apperrors.ErrCategoryNotFound,
			wantErr:       true,
		},
		{
			name: "store failure",
			setupMock: func(c *MockMenuCategoryRepository, i *MockMenuItemRepository, a *MockAuditRecorder) {
				c.On("FindByID", mock.Anything, categoryID).Return(nil, errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories := new(MockMenuCategoryRepository)
			items := new(MockMenuItemRepository)
			audit := new(MockAuditRecorder)
			tt.setupMock(categories, items, audit)

			svc := NewMenuService(categories, items, nil, audit)
			item, err := svc.CreateItem(context.Background(), MenuItemRequest{
				CategoryID: categoryID,
				Name:       "Wings",
				Price:      decimal.RequireFromString("12.99"),
			})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, item)
				if tt.expectedError != nil {
					assert.ErrorIs(t, err, tt.expectedError)
				} else {
					assert.NotErrorIs(t, err, apperrors.ErrCategoryNotFound)
				}
			} else {
				require.NoError(t, err)
				require.NotNil(t, item.Category)
				assert.Equal(t, "Appetizers", item.Category.Name)
			}

			categories.AssertExpectations(t)
			items.AssertExpectations(t)
			audit.AssertExpectations(t)
		})
	}
}

func TestMenuService_DeleteCategory(t *testing.T) {
	id := uuid.New()

	t.Run("in use", func(t *testing.T) {
		categories := new(MockMenuCategoryRepository)
		categories.On("CountItems", mock.Anything, id).Return(int64(2), nil)

		svc := NewMenuService(categories, new(MockMenuItemRepository), nil, new(MockAuditRecorder))
		err := svc.DeleteCategory(context.Background(), id)

		assert.ErrorIs(t, err, apperrors.ErrCategoryInUse)
		categories.AssertNotCalled(t, "Delete", mock.Anything, id)
	})

	t.Run("empty", func(t *testing.T) {
		categories := new(MockMenuCategoryRepository)
		audit := new(MockAuditRecorder)
		categories.On("CountItems", mock.Anything, id).Return(int64(0), nil)
		categories.On("Delete", mock.Anything, id).Return(nil)
		audit.On("Record", mock.Anything, "delete", "menu_category", id.String(), nil).Return()

		svc := NewMenuService(categories, new(MockMenuItemRepository), nil, audit)
		assert.NoError(t, svc.DeleteCategory(context.Background(), id))
		categories.AssertExpectations(t)
	})
}

func TestMenuService_UpdateItemChecksNewCategory(t *testing.T) {
	itemID := uuid.New()
	missing := uuid.New()
	categories := new(MockMenuCategoryRepository)
	items := new(MockMenuItemRepository)
	categories.On("FindByID", mock.Anything, missing).Return(nil, apperrors.ErrNotFound)

	svc := NewMenuService(categories, items, nil, new(MockAuditRecorder))
	_, err := svc.UpdateItem(context.Background(), itemID, UpdateMenuItemRequest{CategoryID: &missing})

	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
	items.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestMenuService_ListCategoriesWithoutCache(t *testing.T) {
	categories := new(MockMenuCategoryRepository)
	categories.On("List", mock.Anything).Return([]model.MenuCategory{{Name: "Drinks"}}, nil).Twice()

	svc := NewMenuService(categories, new(MockMenuItemRepository), nil, new(MockAuditRecorder))
	for i := 0; i < 2; i++ {
		got, err := svc.ListCategories(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
	categories.AssertExpectations(t)
}
