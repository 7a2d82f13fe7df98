package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationStatus represents the status of a table reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation is a table booking request from the public site.
type Reservation struct {
	ID        uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	FullName  string            `json:"fullName" gorm:"size:255;not null"`
	Email     string            `json:"email" gorm:"size:255;not null"`
	Phone     string            `json:"phone" gorm:"size:50;not null"`
	DateTime  time.Time         `json:"dateTime" gorm:"not null;index"`
	People    int               `json:"people" gorm:"not null"`
	Notes     *string           `json:"notes" gorm:"type:text"`
	Status    ReservationStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// BeforeCreate sets UUID and the default status before creating the record.
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = ReservationPending
	}
	return nil
}
