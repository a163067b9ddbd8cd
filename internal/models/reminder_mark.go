package models

import (
	"time"

	"github.com/google/uuid"
)

// ReminderMark records that a reminder went out for an appointment. Rows
// expire so the table stays bounded; the primary key makes the claim atomic.
type ReminderMark struct {
	AppointmentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"appointment_id"`
	ExpiresAt     time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
}
