package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog records who changed what in the back office.
// Entries are written for every mutation regardless of its outcome in the UI.
type AuditLog struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	ActorUserID *uuid.UUID `json:"actorUserId" gorm:"type:char(36);index"`
	Action      string     `json:"action" gorm:"size:100;not null"`
	TargetType  string     `json:"targetType" gorm:"size:100;not null;index"`
	TargetID    string     `json:"targetId" gorm:"size:100;not null"`
	Meta        JSON       `json:"meta"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"index"`

	// Relations
	Actor *User `json:"-" gorm:"foreignKey:ActorUserID;constraint:OnDelete:SET NULL"`
}

// BeforeCreate sets UUID before creating the record.
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
