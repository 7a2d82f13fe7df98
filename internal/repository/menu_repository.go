package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"supanos/internal/model"
)

// MenuCategoryRepository defines persistence operations for menu categories.
type MenuCategoryRepository interface {
	List(ctx context.Context) ([]model.MenuCategory, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.MenuCategory, error)
	Create(ctx context.Context, category *model.MenuCategory) error
	Update(ctx context.Context, id uuid.UUID, fields Fields) (*model.MenuCategory, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountItems(ctx context.Context, id uuid.UUID) (int64, error)
}

type menuCategoryRepository struct {
	db *gorm.DB
}

// NewMenuCategoryRepository creates a new menu category repository.
func NewMenuCategoryRepository(db *gorm.DB) MenuCategoryRepository {
	return &menuCategoryRepository{db: db}
}

func (r *menuCategoryRepository) List(ctx context.Context) ([]model.MenuCategory, error) {
	var categories []model.MenuCategory
	err := r.db.WithContext(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).
		Order("name").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *menuCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MenuCategory, error) {
	var category model.MenuCategory
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *menuCategoryRepository) Create(ctx context.Context, category *model.MenuCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *menuCategoryRepository) Update(ctx context.Context, id uuid.UUID, fields Fields) (*model.MenuCategory, error) {
	if err := updateByID(ctx, r.db, &model.MenuCategory{}, id, fields); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *menuCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &model.MenuCategory{}, id)
}

// CountItems returns how many menu items reference the category.
func (r *menuCategoryRepository) CountItems(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("category_id = ?", id).Count(&n).Error
	return n, err
}

// MenuItemFilter narrows a menu item listing. Zero values match everything.
type MenuItemFilter struct {
	CategoryID *uuid.UUID
	Search     string
}

// MenuItemRepository defines persistence operations for menu items.
type MenuItemRepository interface {
	List(ctx context.Context, filter MenuItemFilter) ([]model.MenuItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)
	Create(ctx context.Context, item *model.MenuItem) error
	Update(ctx context.Context, id uuid.UUID, fields Fields) (*model.MenuItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type menuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository creates a new menu item repository.
func NewMenuItemRepository(db *gorm.DB) MenuItemRepository {
	return &menuItemRepository{db: db}
}

// List returns items joined with their category, ordered by name.
func (r *menuItemRepository) List(ctx context.Context, filter MenuItemFilter) ([]model.MenuItem, error) {
	q := r.db.WithContext(ctx).InnerJoins("Category")
	if filter.CategoryID != nil {
		q = q.Where("menu_items.category_id = ?", *filter.CategoryID)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		q = q.Where("LOWER(menu_items.name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var items []model.MenuItem
	if err := q.Order("menu_items.name").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.WithContext(ctx).InnerJoins("Category").Where("menu_items.id = ?", id).First(&item).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *menuItemRepository) Create(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Omit("Category").Create(item).Error
}

func (r *menuItemRepository) Update(ctx context.Context, id uuid.UUID, fields Fields) (*model.MenuItem, error) {
	if err := updateByID(ctx, r.db, &model.MenuItem{}, id, fields); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *menuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &model.MenuItem{}, id)
}
