package appointment

import (
	"errors"
)

type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindSlotConflict    Kind = "slot_conflict"
	KindTimeOffConflict Kind = "time_off_conflict"
	KindIllegalState    Kind = "illegal_state"
	KindValidation      Kind = "validation_error"
)

// Error is an expected domain outcome. Anything else returned by a use case
// is an unexpected failure.
type Error struct {
	Kind    Kind
	Code    string
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// Is matches any domain error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrNotFound        = &Error{Kind: KindNotFound, Code: "not_found", Message: "resource not found"}
	ErrSlotConflict    = &Error{Kind: KindSlotConflict, Code: "slot_conflict", Message: "time slot already taken for this barber"}
	ErrTimeOffConflict = &Error{Kind: KindTimeOffConflict, Code: "time_off_conflict", Message: "barber is on time off during the requested period"}
	ErrIllegalState    = &Error{Kind: KindIllegalState, Code: "invalid_state", Message: "operation not allowed in the current state"}
	ErrValidation      = &Error{Kind: KindValidation, Code: "validation_error", Message: "invalid input"}

	ErrBarberNotFound       = NotFound("barber_not_found", "barber not found")
	ErrServiceNotFound      = NotFound("service_not_found", "service not found")
	ErrClientNotFound       = NotFound("client_not_found", "client not found")
	ErrAppointmentNotFound  = NotFound("appointment_not_found", "appointment not found")
	ErrWorkingHoursNotFound = NotFound("working_hours_not_found", "working hours block not found")
	ErrTimeOffNotFound      = NotFound("time_off_not_found", "time off not found")

	ErrWorkingHoursExists = &Error{Kind: KindValidation, Code: "working_hours_exists", Field: "startTime", Message: "an identical working hours block already exists"}

	ErrCancelledImmutable = IllegalState("appointment_cancelled", "cancelled appointments cannot be modified")
)

// ErrOverlapViolation is returned by stores when the storage-level exclusion
// constraint rejects a write. Use cases report it as ErrSlotConflict.
var ErrOverlapViolation = errors.New("active appointment range overlaps another for the same barber")

func NotFound(code, msg string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: msg}
}

func IllegalState(code, msg string) *Error {
	return &Error{Kind: KindIllegalState, Code: code, Message: msg}
}

func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Code: "validation_error", Field: field, Message: msg}
}

// KindOf returns the domain kind carried by err, or "" for unexpected errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
