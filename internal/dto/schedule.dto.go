package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type WorkingHoursRequest struct {
	BarberID  uint   `json:"barberId" binding:"required"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

type WorkingHoursResponse struct {
	ID        uint   `json:"id"`
	BarberID  uint   `json:"barberId"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func NewWorkingHoursResponse(wh models.WorkingHours) WorkingHoursResponse {
	return WorkingHoursResponse{
		ID:        wh.ID,
		BarberID:  wh.BarberID,
		DayOfWeek: wh.Weekday,
		StartTime: wh.StartTime,
		EndTime:   wh.EndTime,
	}
}

type TimeOffRequest struct {
	BarberID uint      `json:"barberId" binding:"required"`
	StartsAt time.Time `json:"startsAt" binding:"required"`
	EndsAt   time.Time `json:"endsAt" binding:"required"`
	Reason   string    `json:"reason" binding:"max=255"`
}

type TimeOffResponse struct {
	ID       uint      `json:"id"`
	BarberID uint      `json:"barberId"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Reason   string    `json:"reason,omitempty"`
}

func NewTimeOffResponse(t models.TimeOff, loc *time.Location) TimeOffResponse {
	return TimeOffResponse{
		ID:       t.ID,
		BarberID: t.BarberID,
		StartsAt: t.StartsAt.In(loc),
		EndsAt:   t.EndsAt.In(loc),
		Reason:   t.Reason,
	}
}
