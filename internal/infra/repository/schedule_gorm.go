package repository

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *BookingGormRepository) ListWorkingHours(
	ctx context.Context,
	barberID uint,
	weekday int,
) ([]models.WorkingHours, error) {

	var blocks []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *BookingGormRepository) ListBarberWorkingHours(ctx context.Context, barberID uint) ([]models.WorkingHours, error) {
	blocks := []models.WorkingHours{}
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("weekday ASC, start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *BookingGormRepository) CreateWorkingHours(ctx context.Context, wh *models.WorkingHours) error {
	err := r.db.WithContext(ctx).Create(wh).Error
	if isUniqueViolation(err) {
		return domain.ErrWorkingHoursExists
	}
	return err
}

func (r *BookingGormRepository) DeleteWorkingHours(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.WorkingHours{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrWorkingHoursNotFound
	}
	return nil
}

// --------------------------------------------------
// Time off
// --------------------------------------------------

func (r *BookingGormRepository) ListTimeOffOverlapping(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.TimeOff, error) {

	var list []models.TimeOff
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND starts_at < ? AND ends_at > ?", barberID, end, start).
		Order("starts_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) HasTimeOffOverlap(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TimeOff{}).
		Where("barber_id = ? AND starts_at < ? AND ends_at > ?", barberID, end, start).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) ListTimeOff(ctx context.Context, barberID uint, from, to time.Time) ([]models.TimeOff, error) {
	q := r.db.WithContext(ctx).Where("barber_id = ?", barberID)
	if !to.IsZero() {
		q = q.Where("starts_at < ?", to)
	}
	if !from.IsZero() {
		q = q.Where("ends_at > ?", from)
	}

	list := []models.TimeOff{}
	if err := q.Order("starts_at ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) CreateTimeOff(ctx context.Context, t *models.TimeOff) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *BookingGormRepository) DeleteTimeOff(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.TimeOff{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTimeOffNotFound
	}
	return nil
}
