package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Catalog resolves the entities an appointment points at. Missing rows are
// reported as ErrBarberNotFound, ErrServiceNotFound and ErrClientNotFound.
type Catalog interface {
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
	GetService(ctx context.Context, id uint) (*models.ServiceOffering, error)
	GetClient(ctx context.Context, id uint) (*models.Client, error)
}

// ScheduleStore holds working-hour blocks and time-off ranges.
type ScheduleStore interface {
	// weekday is 1=Monday .. 7=Sunday; blocks come back ordered by start time.
	ListWorkingHours(
		ctx context.Context,
		barberID uint,
		weekday int,
	) ([]models.WorkingHours, error)

	ListTimeOffOverlapping(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.TimeOff, error)

	HasTimeOffOverlap(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) (bool, error)
}

// BookingStore persists appointments. Create and Update must return
// ErrOverlapViolation when the storage-level constraint rejects the row.
type BookingStore interface {
	ListActiveOverlapping(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// excludeID may be uuid.Nil.
	HasActiveOverlap(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
		excludeID uuid.UUID,
	) (bool, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)
}

type Repository interface {
	Catalog
	ScheduleStore
	BookingStore

	// WithBarberLock runs fn inside one storage transaction that holds an
	// exclusive lock for each barber id. Writers for other barbers proceed
	// independently. The tx repository must be used for every call in fn.
	WithBarberLock(
		ctx context.Context,
		barberIDs []uint,
		fn func(ctx context.Context, tx Repository) error,
	) error
}
