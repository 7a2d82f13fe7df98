package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"supanos/internal/model"
)

// UserRepository defines persistence operations for back-office accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsWithRole(ctx context.Context, role model.Role) (bool, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id uuid.UUID, fields Fields) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) ExistsWithRole(ctx context.Context, role model.Role) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", role).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, fields Fields) (*model.User, error) {
	if err := updateByID(ctx, r.db, &model.User{}, id, fields); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &model.User{}, id)
}
