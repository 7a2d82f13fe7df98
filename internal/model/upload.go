package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Upload is the metadata record of an image written to the public upload directory.
type Upload struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	FileName  string    `json:"fileName" gorm:"size:255;not null"`
	URL       string    `json:"url" gorm:"size:512;not null"`
	Mime      string    `json:"mime" gorm:"size:100;not null"`
	Size      int64     `json:"size" gorm:"not null"`
	Width     *int      `json:"width"`
	Height    *int      `json:"height"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *Upload) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
