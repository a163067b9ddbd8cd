package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Invalid reports a malformed request field.
func Invalid(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest, HTTPError{
		Code:    "validation_error",
		Message: message,
		Field:   field,
	})
}

// Status maps a domain error kind to its HTTP status. Unexpected errors map
// to 500.
func Status(err error) int {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindSlotConflict, domain.KindTimeOffConflict:
		return http.StatusConflict
	case domain.KindIllegalState, domain.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes err as a JSON error body. Unexpected errors are recorded
// on the gin context for the access log and answered with a generic message.
func FromError(c *gin.Context, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		Internal(c, "internal_error", "unexpected error")
		return
	}

	body := HTTPError{Code: string(domain.KindOf(err)), Message: err.Error()}

	var de *domain.Error
	if errors.As(err, &de) {
		body.Message = de.Message
		body.Field = de.Field
		switch de.Kind {
		case domain.KindSlotConflict:
			body.Code = "slot_conflict"
		case domain.KindTimeOffConflict:
			body.Code = "time_off_conflict"
		case domain.KindIllegalState:
			body.Code = "invalid_state"
		case domain.KindValidation:
			body.Code = "validation_error"
		default:
			body.Code = de.Code
		}
	}

	c.JSON(status, body)
}
