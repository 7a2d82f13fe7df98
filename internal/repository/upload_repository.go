package repository

import (
	"context"

	"gorm.io/gorm"

	"supanos/internal/model"
)

// UploadRepository records metadata of stored images.
type UploadRepository interface {
	Create(ctx context.Context, upload *model.Upload) error
}

type uploadRepository struct {
	db *gorm.DB
}

// NewUploadRepository creates a new upload repository.
func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(ctx context.Context, upload *model.Upload) error {
	return r.db.WithContext(ctx).Create(upload).Error
}
