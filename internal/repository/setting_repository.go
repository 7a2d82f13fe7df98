package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"supanos/internal/model"
)

// SettingRepository defines persistence operations for key/value settings.
type SettingRepository interface {
	List(ctx context.Context) ([]model.Setting, error)
	FindByKey(ctx context.Context, key string) (*model.Setting, error)
	Upsert(ctx context.Context, key string, value model.JSON) (*model.Setting, error)
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository.
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) List(ctx context.Context) ([]model.Setting, error) {
	var settings []model.Setting
	err := r.db.WithContext(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Find(&settings).Error
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingRepository) FindByKey(ctx context.Context, key string) (*model.Setting, error) {
	var setting model.Setting
	if err := r.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).First(&setting).Error; err != nil {
		return nil, translate(err)
	}
	return &setting, nil
}

// Upsert inserts the setting or, when the key exists, overwrites its value.
// The stored row is read back so callers see the original id and createdAt.
func (r *settingRepository) Upsert(ctx context.Context, key string, value model.JSON) (*model.Setting, error) {
	now := time.Now().UTC()
	setting := &model.Setting{Key: key, Value: value, CreatedAt: now, UpdatedAt: now}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
	if err != nil {
		return nil, err
	}
	return r.FindByKey(ctx, key)
}
