package schedule

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type TimeOffInput struct {
	BarberID uint
	StartsAt time.Time
	EndsAt   time.Time
	Reason   string
}

type TimeOff struct {
	repo Repository
}

func NewTimeOff(repo Repository) *TimeOff {
	return &TimeOff{repo: repo}
}

// Create does not touch appointments already booked inside the range; they
// stay until cancelled.
func (uc *TimeOff) Create(ctx context.Context, in TimeOffInput) (*models.TimeOff, error) {
	if in.StartsAt.IsZero() {
		return nil, domain.Validation("startsAt", "startsAt is required")
	}
	if !in.EndsAt.After(in.StartsAt) {
		return nil, domain.Validation("endsAt", "endsAt must be after startsAt")
	}

	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, err
	}

	t := &models.TimeOff{
		BarberID: in.BarberID,
		StartsAt: in.StartsAt,
		EndsAt:   in.EndsAt,
		Reason:   strings.TrimSpace(in.Reason),
	}
	if err := uc.repo.CreateTimeOff(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *TimeOff) List(ctx context.Context, barberID uint, from, to time.Time) ([]models.TimeOff, error) {
	if !from.IsZero() && !to.IsZero() && !to.After(from) {
		return nil, domain.Validation("to", "to must be after from")
	}
	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}
	return uc.repo.ListTimeOff(ctx, barberID, from, to)
}

func (uc *TimeOff) Delete(ctx context.Context, id uint) error {
	return uc.repo.DeleteTimeOff(ctx, id)
}
