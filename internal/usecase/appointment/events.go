package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Dispatcher accepts facts for asynchronous delivery. Implementations must
// not block and must not report downstream failures.
type Dispatcher interface {
	Dispatch(ev audit.Event)
}

func appointmentEvent(action string, ap *models.Appointment, at time.Time, extra map[string]any) audit.Event {
	barberID := ap.BarberID

	meta := map[string]any{
		"barberId":  ap.BarberID,
		"clientId":  ap.ClientID,
		"serviceId": ap.ServiceID,
		"startsAt":  ap.StartsAt.UTC(),
		"endsAt":    ap.EndsAt.UTC(),
		"status":    ap.Status,
	}
	for k, v := range extra {
		meta[k] = v
	}

	return audit.Event{
		Action:     action,
		Entity:     "appointment",
		EntityID:   ap.ID.String(),
		BarberID:   &barberID,
		Metadata:   meta,
		OccurredAt: at,
	}
}
