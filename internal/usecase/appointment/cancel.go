package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CancelAppointment struct {
	status *UpdateAppointmentStatus
}

func NewCancelAppointment(
	repo domain.Repository,
	events Dispatcher,
	clk clock.Clock,
	log *zap.Logger,
) *CancelAppointment {
	return &CancelAppointment{
		status: NewUpdateAppointmentStatus(repo, events, clk, log),
	}
}

// Execute cancels the appointment, freeing its range for new bookings.
// Cancelling an already cancelled appointment fails with IllegalState.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {
	return uc.status.Execute(ctx, id, domain.StatusCancelled)
}

type UpdateAppointmentStatus struct {
	repo   domain.Repository
	events Dispatcher
	clock  clock.Clock
	log    *zap.Logger
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	events Dispatcher,
	clk clock.Clock,
	log *zap.Logger,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:   repo,
		events: events,
		clock:  clk,
		log:    log,
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	id uuid.UUID,
	to domain.Status,
) (*models.Appointment, error) {

	var (
		result  *models.Appointment
		from    domain.Status
		changed bool
	)

	err := withAppointmentLock(ctx, uc.repo, id, nil, func(ctx context.Context, tx domain.Repository, ap *models.Appointment) error {
		from = domain.Status(ap.Status)

		var err error
		changed, err = domain.Transition(ap, to, uc.clock.Now())
		if err != nil {
			return err
		}

		if changed {
			if err := tx.UpdateAppointment(ctx, ap); err != nil {
				return err
			}
		}

		result = ap
		return nil
	})

	if err != nil {
		return nil, translateWriteError(uc.log, err, "status", 0, time.Time{})
	}

	if !changed {
		return result, nil
	}

	uc.log.Info("appointment status changed",
		zap.String("appointment_id", result.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	action := audit.ActionAppointmentStatusChanged
	if to == domain.StatusCancelled {
		action = audit.ActionAppointmentCancelled
	}
	uc.events.Dispatch(appointmentEvent(action, result, uc.clock.Now(), map[string]any{
		"previousStatus": string(from),
	}))

	return result, nil
}
