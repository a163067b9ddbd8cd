package appointment

import "strings"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
)

var transitions = map[Status][]Status{
	StatusScheduled: {StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow},
	StatusConfirmed: {StatusCancelled, StatusCompleted, StatusNoShow},
}

// ===============================
// Validations
// ===============================

// ParseStatus accepts any casing, e.g. "no_show".
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return s, nil
	}
	return "", Validation("status", "status must be one of SCHEDULED, CONFIRMED, CANCELLED, COMPLETED, NO_SHOW")
}

func InitialStatus() Status {
	return StatusScheduled
}

// IsTerminal reports whether no further status transition is possible.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

// CanTransition checks a status change. Setting the current status again is
// accepted for non-cancelled appointments and is a no-op for the caller.
func CanTransition(from, to Status) error {
	if from == StatusCancelled {
		return ErrCancelledImmutable
	}
	if from == to {
		return nil
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return IllegalState("invalid_transition", "cannot change status from "+string(from)+" to "+string(to))
}

// CanEdit only rejects cancelled appointments.
func CanEdit(current Status) error {
	if current == StatusCancelled {
		return ErrCancelledImmutable
	}
	return nil
}
