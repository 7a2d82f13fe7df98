package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the coarse access tier of a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	RoleUser  Role = "user"
)

// User represents a back-office account.
type User struct {
	ID              uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username        string    `json:"username" gorm:"size:255;uniqueIndex;not null"`
	Email           *string   `json:"email" gorm:"size:255;uniqueIndex"`
	PasswordHash    string    `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	FirstName       *string   `json:"firstName" gorm:"size:255"`
	LastName        *string   `json:"lastName" gorm:"size:255"`
	ProfileImageURL *string   `json:"profileImageUrl" gorm:"size:512"`
	Role            Role      `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	IsActive        bool      `json:"isActive" gorm:"not null"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}
