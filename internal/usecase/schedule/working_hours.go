package schedule

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type Repository interface {
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)

	CreateWorkingHours(ctx context.Context, wh *models.WorkingHours) error
	ListBarberWorkingHours(ctx context.Context, barberID uint) ([]models.WorkingHours, error)
	DeleteWorkingHours(ctx context.Context, id uint) error

	CreateTimeOff(ctx context.Context, t *models.TimeOff) error
	// zero from or to means unbounded
	ListTimeOff(ctx context.Context, barberID uint, from, to time.Time) ([]models.TimeOff, error)
	DeleteTimeOff(ctx context.Context, id uint) error
}

// ======================================================
// WORKING HOURS
// ======================================================

type WorkingHoursInput struct {
	BarberID  uint
	Weekday   int
	StartTime string
	EndTime   string
}

type WorkingHours struct {
	repo Repository
}

func NewWorkingHours(repo Repository) *WorkingHours {
	return &WorkingHours{repo: repo}
}

func (uc *WorkingHours) Create(ctx context.Context, in WorkingHoursInput) (*models.WorkingHours, error) {
	if in.Weekday < 1 || in.Weekday > 7 {
		return nil, domain.Validation("dayOfWeek", "dayOfWeek must be between 1 (Monday) and 7 (Sunday)")
	}

	sh, sm, err := timezone.ParseHour(in.StartTime)
	if err != nil {
		return nil, domain.Validation("startTime", "startTime must be HH:mm")
	}
	eh, em, err := timezone.ParseHour(in.EndTime)
	if err != nil {
		return nil, domain.Validation("endTime", "endTime must be HH:mm")
	}
	if eh*60+em <= sh*60+sm {
		return nil, domain.Validation("endTime", "endTime must be after startTime")
	}

	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, err
	}

	wh := &models.WorkingHours{
		BarberID:  in.BarberID,
		Weekday:   in.Weekday,
		StartTime: canonicalHour(sh, sm),
		EndTime:   canonicalHour(eh, em),
	}
	if err := uc.repo.CreateWorkingHours(ctx, wh); err != nil {
		return nil, err
	}
	return wh, nil
}

func (uc *WorkingHours) List(ctx context.Context, barberID uint) ([]models.WorkingHours, error) {
	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}
	return uc.repo.ListBarberWorkingHours(ctx, barberID)
}

func (uc *WorkingHours) Delete(ctx context.Context, id uint) error {
	return uc.repo.DeleteWorkingHours(ctx, id)
}

func canonicalHour(h, m int) string {
	return time.Date(2000, 1, 1, h, m, 0, 0, time.UTC).Format(timezone.HourLayout)
}
