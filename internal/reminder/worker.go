package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// Store is backed by the same storage as appointments so the "already
// reminded" marks are shared by every instance and survive restarts.
type Store interface {
	// ListRemindable returns active SCHEDULED or CONFIRMED appointments
	// starting in [from, to).
	ListRemindable(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	GetClient(ctx context.Context, id uint) (*models.Client, error)

	// ClaimReminder reports true only for the first caller per appointment
	// until the mark expires.
	ClaimReminder(ctx context.Context, appointmentID uuid.UUID, expiresAt time.Time) (bool, error)
	PurgeExpiredReminders(ctx context.Context, now time.Time) (int64, error)
}

type Dispatcher interface {
	Dispatch(ev audit.Event)
}

type Config struct {
	Interval time.Duration
	Lead     time.Duration
	Window   time.Duration
	// Retention is how long after the appointment start a mark is kept.
	Retention time.Duration
}

type Worker struct {
	store  Store
	events Dispatcher
	clock  clock.Clock
	log    *zap.Logger
	cfg    Config
}

func NewWorker(store Store, events Dispatcher, clk clock.Clock, log *zap.Logger, cfg Config) *Worker {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.Lead <= 0 {
		cfg.Lead = time.Hour
	}
	if cfg.Window <= 0 {
		cfg.Window = 5 * time.Minute
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 2 * time.Hour
	}
	return &Worker{store: store, events: events, clock: clk, log: log, cfg: cfg}
}

// Run blocks until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	w.log.Info("reminder worker started",
		zap.Duration("interval", w.cfg.Interval),
		zap.Duration("lead", w.cfg.Lead),
	)

	for {
		if _, err := w.RunOnce(ctx); err != nil && ctx.Err() == nil {
			w.log.Error("reminder run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			w.log.Info("reminder worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce emits reminders for appointments inside the lead window and
// returns how many were sent.
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	now := w.clock.Now()
	from := now.Add(w.cfg.Lead - w.cfg.Window)
	to := now.Add(w.cfg.Lead + w.cfg.Window)

	upcoming, err := w.store.ListRemindable(ctx, from, to)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range upcoming {
		ap := &upcoming[i]

		client, err := w.store.GetClient(ctx, ap.ClientID)
		if err != nil {
			w.log.Warn("reminder skipped, client not found",
				zap.String("appointment_id", ap.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if !validators.IsEmail(client.Email) {
			w.log.Warn("reminder skipped, client has no usable email",
				zap.String("appointment_id", ap.ID.String()),
			)
			continue
		}

		ok, err := w.store.ClaimReminder(ctx, ap.ID, ap.StartsAt.Add(w.cfg.Retention))
		if err != nil {
			w.log.Error("reminder claim failed",
				zap.String("appointment_id", ap.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if !ok {
			continue
		}

		barberID := ap.BarberID
		w.events.Dispatch(audit.Event{
			Action:   audit.ActionAppointmentReminder,
			Entity:   "appointment",
			EntityID: ap.ID.String(),
			BarberID: &barberID,
			Metadata: map[string]any{
				"clientId":    client.ID,
				"clientName":  client.Name,
				"clientEmail": client.Email,
				"serviceId":   ap.ServiceID,
				"startsAt":    ap.StartsAt.UTC(),
			},
			OccurredAt: now,
		})
		sent++
	}

	purged, err := w.store.PurgeExpiredReminders(ctx, now)
	if err != nil {
		return sent, err
	}

	if sent > 0 || purged > 0 {
		w.log.Info("reminders processed",
			zap.Int("sent", sent),
			zap.Int64("purged", purged),
		)
	}
	return sent, nil
}
