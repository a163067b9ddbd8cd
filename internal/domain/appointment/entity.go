package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition applies a status change. It reports whether the entity changed.
// CANCELLED is the only status that clears IsActive.
func Transition(ap *models.Appointment, to Status, now time.Time) (bool, error) {
	from := Status(ap.Status)
	if err := CanTransition(from, to); err != nil {
		return false, err
	}
	if from == to {
		return false, nil
	}

	ap.Status = string(to)
	switch to {
	case StatusCancelled:
		ap.IsActive = false
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return true, nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	_, err := Transition(ap, StatusCancelled, now)
	return err
}

// Snapshot returns the occupancy the appointment reserved when it was booked.
func Snapshot(ap *models.Appointment) time.Duration {
	return ap.EndsAt.Sub(ap.StartsAt)
}
