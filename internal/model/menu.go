package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuCategory groups menu items, e.g. "Appetizers".
type MenuCategory struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"size:255;uniqueIndex;not null"`
	Description *string   `json:"description" gorm:"type:text"`
	Order       int       `json:"order" gorm:"column:order;not null;default:0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (c *MenuCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// MenuItem is a dish or drink on the menu.
type MenuItem struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	CategoryID  uuid.UUID       `json:"categoryId" gorm:"type:char(36);not null;index"`
	Name        string          `json:"name" gorm:"size:255;not null;index"`
	Description *string         `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL    *string         `json:"imageUrl" gorm:"size:512"`
	IsAvailable bool            `json:"isAvailable" gorm:"not null"`
	Tags        StringList      `json:"tags" gorm:"type:text"`
	SpicyLevel  *int            `json:"spicyLevel"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	// Relations
	Category *MenuCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

// BeforeCreate sets UUID before creating the record.
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
