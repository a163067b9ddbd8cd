package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// --------------------------------------------------
// Query and path parsing
// --------------------------------------------------

// Each helper writes the 400 itself and reports false so handlers can
// return straight away.

func queryUint(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		httperr.Invalid(c, name, name+" is required")
		return 0, false
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		httperr.Invalid(c, name, name+" must be a positive integer")
		return 0, false
	}
	return uint(n), true
}

func queryDate(c *gin.Context, name string, loc *time.Location) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		httperr.Invalid(c, name, name+" is required")
		return time.Time{}, false
	}
	d, err := timezone.ParseDate(raw, loc)
	if err != nil {
		httperr.Invalid(c, name, name+" must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return d, true
}

// queryInstant accepts RFC3339 or a bare date, read as midnight in loc.
// A missing optional parameter yields the zero time.
func queryInstant(c *gin.Context, name string, loc *time.Location, required bool) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		if required {
			httperr.Invalid(c, name, name+" is required")
			return time.Time{}, false
		}
		return time.Time{}, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if d, err := timezone.ParseDate(raw, loc); err == nil {
		return d, true
	}
	httperr.Invalid(c, name, name+" must be RFC3339 or YYYY-MM-DD")
	return time.Time{}, false
}

func pathUUID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Invalid(c, "id", "id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func pathUint(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		httperr.Invalid(c, "id", "id must be a positive integer")
		return 0, false
	}
	return uint(n), true
}

func bindError(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", err.Error())
}
