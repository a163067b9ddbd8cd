package models

import "time"

type TimeOff struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"not null;index:idx_time_off_barber_start,priority:1" json:"barber_id"`

	StartsAt time.Time `gorm:"not null;index:idx_time_off_barber_start,priority:2" json:"starts_at"`
	EndsAt   time.Time `gorm:"not null" json:"ends_at"`
	Reason   string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

func (TimeOff) TableName() string {
	return "time_off"
}
