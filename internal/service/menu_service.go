package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"supanos/internal/cache"
	apperrors "supanos/internal/errors"
	"supanos/internal/model"
	"supanos/internal/repository"
)

const (
	categoriesCacheKey = "menu:categories"
	listCacheTTL       = 5 * time.Minute
)

// MenuService manages menu categories and items.
type MenuService interface {
	ListCategories(ctx context.Context) ([]model.MenuCategory, error)
	CreateCategory(ctx context.Context, req CategoryRequest) (*model.MenuCategory, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*model.MenuCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context, filter repository.MenuItemFilter) ([]model.MenuItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)
	CreateItem(ctx context.Context, req MenuItemRequest) (*model.MenuItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req UpdateMenuItemRequest) (*model.MenuItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type menuService struct {
	categories repository.MenuCategoryRepository
	items      repository.MenuItemRepository
	cache      *cache.Client
	audit      AuditRecorder
}

// NewMenuService creates a new menu service.
func NewMenuService(
	categories repository.MenuCategoryRepository,
	items repository.MenuItemRepository,
	cache *cache.Client,
	audit AuditRecorder,
) MenuService {
	return &menuService{
		categories: categories,
		items:      items,
		cache:      cache,
		audit:      audit,
	}
}

// ListCategories serves from cache when possible.
func (s *menuService) ListCategories(ctx context.Context) ([]model.MenuCategory, error) {
	var cached []model.MenuCategory
	if s.cache.GetJSON(ctx, categoriesCacheKey, &cached) {
		return cached, nil
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, categoriesCacheKey, categories, listCacheTTL)
	return categories, nil
}

func (s *menuService) CreateCategory(ctx context.Context, req CategoryRequest) (*model.MenuCategory, error) {
	category := &model.MenuCategory{
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.invalidateCategories(ctx)
	s.audit.Record(ctx, "create", "menu_category", category.ID.String(), map[string]interface{}{"name": category.Name})
	return category, nil
}

func (s *menuService) UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*model.MenuCategory, error) {
	fields := req.fields()
	category, err := s.categories.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.invalidateCategories(ctx)
	s.audit.Record(ctx, "update", "menu_category", id.String(), changedKeys(fields))
	return category, nil
}

// DeleteCategory refuses while any item still belongs to the category.
func (s *menuService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	n, err := s.categories.CountItems(ctx, id)
	if err != nil {
		return fmt.Errorf("count items: %w", err)
	}
	if n > 0 {
		return apperrors.ErrCategoryInUse
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCategories(ctx)
	s.audit.Record(ctx, "delete", "menu_category", id.String(), nil)
	return nil
}

func (s *menuService) ListItems(ctx context.Context, filter repository.MenuItemFilter) ([]model.MenuItem, error) {
	return s.items.List(ctx, filter)
}

func (s *menuService) GetItem(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	return s.items.FindByID(ctx, id)
}

func (s *menuService) CreateItem(ctx context.Context, req MenuItemRequest) (*model.MenuItem, error) {
	category, err := s.requireCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	item := &model.MenuItem{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsAvailable: true,
		Tags:        model.StringList(req.Tags),
		SpicyLevel:  req.SpicyLevel,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}
	item.Category = category
	s.audit.Record(ctx, "create", "menu_item", item.ID.String(), map[string]interface{}{"name": item.Name})
	return item, nil
}

func (s *menuService) UpdateItem(ctx context.Context, id uuid.UUID, req UpdateMenuItemRequest) (*model.MenuItem, error) {
	if req.CategoryID != nil {
		if _, err := s.requireCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	fields := req.fields()
	item, err := s.items.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "update", "menu_item", id.String(), changedKeys(fields))
	return item, nil
}

func (s *menuService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, "delete", "menu_item", id.String(), nil)
	return nil
}

func (s *menuService) requireCategory(ctx context.Context, id uuid.UUID) (*model.MenuCategory, error) {
	category, err := s.categories.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return category, nil
}

func (s *menuService) invalidateCategories(ctx context.Context) {
	_ = s.cache.Delete(ctx, categoriesCacheKey)
}
