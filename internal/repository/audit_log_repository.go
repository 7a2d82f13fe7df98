package repository

import (
	"context"

	"gorm.io/gorm"

	"supanos/internal/model"
)

// AuditLogRepository defines audit log persistence operations.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, limit int) ([]model.AuditLog, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository.
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Omit("Actor").Create(entry).Error
}

// List returns the most recent entries first.
func (r *auditLogRepository) List(ctx context.Context, limit int) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
