package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarberID  uint
	ServiceID uint
	ClientID  uint
	StartsAt  time.Time
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	events Dispatcher
	clock  clock.Clock
	log    *zap.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	events Dispatcher,
	clk clock.Clock,
	log *zap.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		events: events,
		clock:  clk,
		log:    log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.StartsAt.IsZero() {
		return nil, domain.Validation("startsAt", "startsAt is required")
	}

	var created *models.Appointment

	err := uc.repo.WithBarberLock(ctx, []uint{in.BarberID}, func(ctx context.Context, tx domain.Repository) error {

		// --------------------------------------------------
		// 1️⃣ Barber / service / client
		// --------------------------------------------------
		if _, err := tx.GetBarber(ctx, in.BarberID); err != nil {
			return err
		}
		svc, err := tx.GetService(ctx, in.ServiceID)
		if err != nil {
			return err
		}
		if _, err := tx.GetClient(ctx, in.ClientID); err != nil {
			return err
		}
		if svc.DurationMin <= 0 {
			return domain.Validation("serviceId", "service duration must be positive")
		}

		// --------------------------------------------------
		// 2️⃣ Range
		// --------------------------------------------------
		start := in.StartsAt
		end := start.Add(svc.Occupancy())

		// --------------------------------------------------
		// 3️⃣ Pre-checks (the exclusion constraint is authoritative)
		// --------------------------------------------------
		if err := checkRange(ctx, tx, in.BarberID, start, end, uuid.Nil); err != nil {
			return err
		}

		// --------------------------------------------------
		// 4️⃣ Insert
		// --------------------------------------------------
		ap := &models.Appointment{
			ID:        uuid.New(),
			BarberID:  in.BarberID,
			ServiceID: svc.ID,
			ClientID:  in.ClientID,
			StartsAt:  start,
			EndsAt:    end,
			Status:    string(domain.InitialStatus()),
			IsActive:  true,
			Notes:     strings.TrimSpace(in.Notes),
			CreatedAt: uc.clock.Now(),
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		created = ap
		return nil
	})

	if err != nil {
		return nil, translateWriteError(uc.log, err, "create", in.BarberID, in.StartsAt)
	}

	uc.log.Info("appointment created",
		zap.String("appointment_id", created.ID.String()),
		zap.Uint("barber_id", created.BarberID),
		zap.Time("starts_at", created.StartsAt),
		zap.Time("ends_at", created.EndsAt),
	)

	// --------------------------------------------------
	// 5️⃣ Fact for the notification subsystem
	// --------------------------------------------------
	uc.events.Dispatch(appointmentEvent(audit.ActionAppointmentCreated, created, uc.clock.Now(), nil))

	return created, nil
}

// checkRange runs the overlap pre-checks for [start, end) on barberID.
func checkRange(
	ctx context.Context,
	tx domain.Repository,
	barberID uint,
	start time.Time,
	end time.Time,
	excludeID uuid.UUID,
) error {

	busy, err := tx.HasActiveOverlap(ctx, barberID, start, end, excludeID)
	if err != nil {
		return fmt.Errorf("check appointment overlap: %w", err)
	}
	if busy {
		return domain.ErrSlotConflict
	}

	off, err := tx.HasTimeOffOverlap(ctx, barberID, start, end)
	if err != nil {
		return fmt.Errorf("check time off overlap: %w", err)
	}
	if off {
		return domain.ErrTimeOffConflict
	}
	return nil
}

// translateWriteError maps the storage-level overlap violation onto the same
// SlotConflict the pre-check reports and logs the outcome.
func translateWriteError(log *zap.Logger, err error, op string, barberID uint, start time.Time) error {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Uint("barber_id", barberID),
		zap.Time("starts_at", start),
	}

	switch {
	case errors.Is(err, domain.ErrOverlapViolation):
		log.Warn("booking conflict", append(fields, zap.String("caught_by", "constraint"))...)
		return domain.ErrSlotConflict
	case domain.KindOf(err) == domain.KindSlotConflict, domain.KindOf(err) == domain.KindTimeOffConflict:
		log.Warn("booking conflict", append(fields, zap.String("caught_by", "precheck"), zap.Error(err))...)
		return err
	case domain.KindOf(err) != "":
		return err
	default:
		log.Error("booking failed", append(fields, zap.Error(err))...)
		return fmt.Errorf("%s appointment: %w", op, err)
	}
}
