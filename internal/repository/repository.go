// Package repository holds the GORM-backed stores, one per entity.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "supanos/internal/errors"
)

// Fields is a partial update keyed by column name.
type Fields map[string]interface{}

// updateByID merges fields into the row with the given id. It reports
// ErrNotFound when no row matched. An empty field set still refreshes
// updated_at on models that carry it.
func updateByID(ctx context.Context, db *gorm.DB, dst interface{}, id uuid.UUID, fields Fields) error {
	if fields == nil {
		fields = Fields{}
	}
	res := db.WithContext(ctx).Model(dst).Where("id = ?", id).Updates(map[string]interface{}(fields))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// deleteByID removes the row if present. Missing rows are not an error.
func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(model).Error
}

// translate maps GORM's not-found error onto the domain sentinel.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
