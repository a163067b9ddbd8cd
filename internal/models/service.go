package models

import "time"

type ServiceOffering struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name           string `gorm:"size:100;not null" json:"name"`
	DurationMin    int    `gorm:"not null" json:"duration_min"`
	BufferAfterMin int    `gorm:"not null;default:0" json:"buffer_after_min"`
	Active         bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ServiceOffering) TableName() string {
	return "services"
}

// Occupancy is the time an appointment for this service reserves on the calendar.
func (s ServiceOffering) Occupancy() time.Duration {
	buffer := s.BufferAfterMin
	if buffer < 0 {
		buffer = 0
	}
	return time.Duration(s.DurationMin+buffer) * time.Minute
}
