package appointment

import "time"

type AvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	// Date is any instant on the calendar day, interpreted in the business timezone.
	Date time.Time
}
