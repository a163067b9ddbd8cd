package models

import (
	"time"

	"github.com/google/uuid"
)

// Appointment snapshots its own range; EndsAt never follows later service edits.
type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BarberID  uint `gorm:"not null;index:idx_appointment_barber_start,priority:1" json:"barber_id"`
	ServiceID uint `gorm:"not null" json:"service_id"`
	ClientID  uint `gorm:"not null;index" json:"client_id"`

	StartsAt time.Time `gorm:"not null;index:idx_appointment_barber_start,priority:2" json:"starts_at"`
	EndsAt   time.Time `gorm:"not null" json:"ends_at"`

	Status   string `gorm:"size:20;not null;default:'SCHEDULED'" json:"status"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
