package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"

	// created by db.Migrate
	overlapConstraint = "appointments_no_overlap"
)

type BookingGormRepository struct {
	db   *gorm.DB
	inTx bool
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

// WithBarberLock takes pg_advisory_xact_lock for every barber, in id order so
// two writers touching the same pair of barbers cannot deadlock. The locks
// are released on commit or rollback.
func (r *BookingGormRepository) WithBarberLock(
	ctx context.Context,
	barberIDs []uint,
	fn func(ctx context.Context, tx domain.Repository) error,
) error {

	ids := append([]uint(nil), barberIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last uint
		for i, id := range ids {
			if i > 0 && id == last {
				continue
			}
			last = id
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", barberLockKey(id)).Error; err != nil {
				return fmt.Errorf("lock barber %d: %w", id, err)
			}
		}
		return fn(ctx, &BookingGormRepository{db: tx, inTx: true})
	})
}

func barberLockKey(id uint) string {
	return fmt.Sprintf("barber:%d", id)
}

func (r *BookingGormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	var b models.Barber
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err, domain.ErrBarberNotFound)
	}
	return &b, nil
}

func (r *BookingGormRepository) GetService(ctx context.Context, id uint) (*models.ServiceOffering, error) {
	var svc models.ServiceOffering
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, notFound(err, domain.ErrServiceNotFound)
	}
	return &svc, nil
}

func (r *BookingGormRepository) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err, domain.ErrClientNotFound)
	}
	return &c, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveOverlapping(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND is_active AND starts_at < ? AND ends_at > ?", barberID, end, start).
		Order("starts_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *BookingGormRepository) HasActiveOverlap(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	excludeID uuid.UUID,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barber_id = ? AND is_active AND starts_at < ? AND ends_at > ?", barberID, end, start)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return mapWriteError(r.db.WithContext(ctx).Create(ap).Error)
}

func (r *BookingGormRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	res := r.db.WithContext(ctx).
		Model(ap).
		Select("*").
		Omit("id", "created_at").
		Updates(ap)
	if err := mapWriteError(res.Error); err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

// GetAppointment also locks the row when called inside WithBarberLock.
func (r *BookingGormRepository) GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	q := r.db.WithContext(ctx)
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ap models.Appointment
	if err := q.Where("id = ?", id).First(&ap).Error; err != nil {
		return nil, notFound(err, domain.ErrAppointmentNotFound)
	}
	return &ap, nil
}

func (r *BookingGormRepository) ListAppointments(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND starts_at >= ? AND starts_at < ?", barberID, from, to).
		Order("starts_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *BookingGormRepository) ListRemindable(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("is_active AND status IN ? AND starts_at >= ? AND starts_at < ?",
			[]string{string(domain.StatusScheduled), string(domain.StatusConfirmed)}, from, to).
		Order("starts_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ClaimReminder relies on the primary key: only one instance inserts the mark.
func (r *BookingGormRepository) ClaimReminder(ctx context.Context, appointmentID uuid.UUID, expiresAt time.Time) (bool, error) {
	mark := models.ReminderMark{AppointmentID: appointmentID, ExpiresAt: expiresAt}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&mark)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *BookingGormRepository) PurgeExpiredReminders(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&models.ReminderMark{})
	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Errors
// --------------------------------------------------

func notFound(err error, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation && pgErr.ConstraintName == overlapConstraint {
		return domain.ErrOverlapViolation
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
