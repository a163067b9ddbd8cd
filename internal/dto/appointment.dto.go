package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CreateAppointmentRequest struct {
	BarberID  uint      `json:"barberId" binding:"required"`
	ServiceID uint      `json:"serviceId" binding:"required"`
	ClientID  uint      `json:"clientId" binding:"required"`
	StartsAt  time.Time `json:"startsAt" binding:"required"`
	Notes     string    `json:"notes" binding:"max=255"`
}

// Absent fields are left unchanged.
type UpdateAppointmentRequest struct {
	BarberID  *uint      `json:"barberId"`
	ServiceID *uint      `json:"serviceId"`
	ClientID  *uint      `json:"clientId"`
	StartsAt  *time.Time `json:"startsAt"`
	Notes     *string    `json:"notes" binding:"omitempty,max=255"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AppointmentResponse struct {
	ID          string     `json:"id"`
	BarberID    uint       `json:"barberId"`
	ServiceID   uint       `json:"serviceId"`
	ClientID    uint       `json:"clientId"`
	StartsAt    time.Time  `json:"startsAt"`
	EndsAt      time.Time  `json:"endsAt"`
	Status      string     `json:"status"`
	IsActive    bool       `json:"isActive"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"createdAt"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// NewAppointmentResponse renders instants in loc so clients see business
// wall-clock times with their offset.
func NewAppointmentResponse(ap *models.Appointment, loc *time.Location) AppointmentResponse {
	out := AppointmentResponse{
		ID:        ap.ID.String(),
		BarberID:  ap.BarberID,
		ServiceID: ap.ServiceID,
		ClientID:  ap.ClientID,
		StartsAt:  ap.StartsAt.In(loc),
		EndsAt:    ap.EndsAt.In(loc),
		Status:    ap.Status,
		IsActive:  ap.IsActive,
		Notes:     ap.Notes,
		CreatedAt: ap.CreatedAt.In(loc),
	}
	if ap.CancelledAt != nil {
		t := ap.CancelledAt.In(loc)
		out.CancelledAt = &t
	}
	if ap.CompletedAt != nil {
		t := ap.CompletedAt.In(loc)
		out.CompletedAt = &t
	}
	return out
}

func NewAppointmentList(list []models.Appointment, loc *time.Location) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(list))
	for i := range list {
		out = append(out, NewAppointmentResponse(&list[i], loc))
	}
	return out
}

type AvailabilityResponse struct {
	BarberID  uint        `json:"barberId"`
	ServiceID uint        `json:"serviceId"`
	Date      string      `json:"date"`
	Timezone  string      `json:"timezone"`
	Slots     []time.Time `json:"slots"`
}
