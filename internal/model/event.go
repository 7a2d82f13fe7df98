package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SportType classifies an event shown on the events page.
type SportType string

const (
	SportNFL    SportType = "NFL"
	SportMLB    SportType = "MLB"
	SportCustom SportType = "Custom"
)

// Event is a game night or other happening at the bar.
type Event struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description *string   `json:"description" gorm:"type:text"`
	DateTime    time.Time `json:"dateTime" gorm:"not null;index"`
	SportType   SportType `json:"sportType" gorm:"type:varchar(20);not null"`
	ImageURL    *string   `json:"imageUrl" gorm:"size:512"`
	IsFeatured  bool      `json:"isFeatured" gorm:"not null;default:false;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
