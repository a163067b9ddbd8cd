package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return uc.repo.GetAppointment(ctx, id)
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists every appointment, cancelled included, that starts in
// [from, to) for the barber.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	if !to.After(from) {
		return nil, domain.Validation("to", "to must be after from")
	}
	if to.Sub(from) > 62*24*time.Hour {
		return nil, domain.Validation("to", "range must not exceed 62 days")
	}

	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}

	return uc.repo.ListAppointments(ctx, barberID, from, to)
}
