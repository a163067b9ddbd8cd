package models

import "time"

// WorkingHours is one recurring weekly block; a barber may have several per weekday.
type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"not null;uniqueIndex:uk_working_hours_barber_day_start_end,priority:1" json:"barber_id"`

	// 1=Monday .. 7=Sunday
	Weekday int `gorm:"not null;uniqueIndex:uk_working_hours_barber_day_start_end,priority:2" json:"weekday"`

	StartTime string `gorm:"size:5;not null;uniqueIndex:uk_working_hours_barber_day_start_end,priority:3" json:"start_time"`
	EndTime   string `gorm:"size:5;not null;uniqueIndex:uk_working_hours_barber_day_start_end,priority:4" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
