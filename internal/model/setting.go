package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Setting stores an admin-configurable value under a unique key.
type Setting struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Key       string    `json:"key" gorm:"size:191;uniqueIndex;not null"`
	Value     JSON      `json:"value" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Setting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
