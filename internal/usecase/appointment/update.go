package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// nil fields are left untouched.
type UpdateAppointmentInput struct {
	ID        uuid.UUID
	BarberID  *uint
	ServiceID *uint
	ClientID  *uint
	StartsAt  *time.Time
	Notes     *string
}

type UpdateAppointment struct {
	repo   domain.Repository
	events Dispatcher
	clock  clock.Clock
	log    *zap.Logger
}

func NewUpdateAppointment(
	repo domain.Repository,
	events Dispatcher,
	clk clock.Clock,
	log *zap.Logger,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:   repo,
		events: events,
		clock:  clk,
		log:    log,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	var (
		result  *models.Appointment
		changed []string
	)

	err := withAppointmentLock(ctx, uc.repo, in.ID, in.BarberID, func(ctx context.Context, tx domain.Repository, ap *models.Appointment) error {

		// --------------------------------------------------
		// 1️⃣ Cancelled appointments are immutable
		// --------------------------------------------------
		if err := domain.CanEdit(domain.Status(ap.Status)); err != nil {
			return err
		}

		// --------------------------------------------------
		// 2️⃣ Working copy
		// --------------------------------------------------
		next := *ap
		occupancy := domain.Snapshot(ap)
		rangeChanged := false
		changed = changed[:0]

		if in.BarberID != nil && *in.BarberID != ap.BarberID {
			if _, err := tx.GetBarber(ctx, *in.BarberID); err != nil {
				return err
			}
			next.BarberID = *in.BarberID
			rangeChanged = true
			changed = append(changed, "barberId")
		}

		if in.ServiceID != nil && *in.ServiceID != ap.ServiceID {
			svc, err := tx.GetService(ctx, *in.ServiceID)
			if err != nil {
				return err
			}
			if svc.DurationMin <= 0 {
				return domain.Validation("serviceId", "service duration must be positive")
			}
			next.ServiceID = svc.ID
			occupancy = svc.Occupancy()
			rangeChanged = true
			changed = append(changed, "serviceId")
		}

		if in.ClientID != nil && *in.ClientID != ap.ClientID {
			if _, err := tx.GetClient(ctx, *in.ClientID); err != nil {
				return err
			}
			next.ClientID = *in.ClientID
			changed = append(changed, "clientId")
		}

		if in.StartsAt != nil && !in.StartsAt.Equal(ap.StartsAt) {
			next.StartsAt = *in.StartsAt
			rangeChanged = true
			changed = append(changed, "startsAt")
		}

		if in.Notes != nil {
			if notes := strings.TrimSpace(*in.Notes); notes != ap.Notes {
				next.Notes = notes
				changed = append(changed, "notes")
			}
		}

		if len(changed) == 0 {
			result = ap
			return nil
		}

		// --------------------------------------------------
		// 3️⃣ Re-check the range without the appointment itself
		// --------------------------------------------------
		if rangeChanged {
			next.EndsAt = next.StartsAt.Add(occupancy)
			if err := checkRange(ctx, tx, next.BarberID, next.StartsAt, next.EndsAt, next.ID); err != nil {
				return err
			}
		}

		// --------------------------------------------------
		// 4️⃣ Persist
		// --------------------------------------------------
		if err := tx.UpdateAppointment(ctx, &next); err != nil {
			return err
		}

		result = &next
		return nil
	})

	if err != nil {
		start := time.Time{}
		if in.StartsAt != nil {
			start = *in.StartsAt
		}
		barberID := uint(0)
		if in.BarberID != nil {
			barberID = *in.BarberID
		}
		return nil, translateWriteError(uc.log, err, "update", barberID, start)
	}

	if len(changed) > 0 {
		uc.log.Info("appointment updated",
			zap.String("appointment_id", result.ID.String()),
			zap.Strings("fields", changed),
		)
		uc.events.Dispatch(appointmentEvent(audit.ActionAppointmentUpdated, result, uc.clock.Now(), map[string]any{
			"changed": changed,
		}))
	}

	return result, nil
}

// withAppointmentLock loads the appointment, locks its barber (and the target
// barber when one is given) and runs fn with a copy read inside the lock. If
// a concurrent writer moved the appointment to another barber between the
// read and the lock, it retries.
func withAppointmentLock(
	ctx context.Context,
	repo domain.Repository,
	id uuid.UUID,
	targetBarber *uint,
	fn func(ctx context.Context, tx domain.Repository, ap *models.Appointment) error,
) error {

	const attempts = 3

	for i := 0; i < attempts; i++ {
		current, err := repo.GetAppointment(ctx, id)
		if err != nil {
			return err
		}

		barbers := []uint{current.BarberID}
		if targetBarber != nil {
			barbers = append(barbers, *targetBarber)
		}

		moved := false
		err = repo.WithBarberLock(ctx, barbers, func(ctx context.Context, tx domain.Repository) error {
			ap, err := tx.GetAppointment(ctx, id)
			if err != nil {
				return err
			}
			if ap.BarberID != current.BarberID {
				moved = true
				return nil
			}
			return fn(ctx, tx, ap)
		})
		if err != nil || !moved {
			return err
		}
	}

	return domain.IllegalState("concurrent_update", "appointment changed concurrently, retry")
}
