package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

type ScheduleHandler struct {
	workingHours *schedule.WorkingHours
	timeOff      *schedule.TimeOff
	loc          *time.Location
}

func NewScheduleHandler(
	workingHours *schedule.WorkingHours,
	timeOff *schedule.TimeOff,
	loc *time.Location,
) *ScheduleHandler {
	return &ScheduleHandler{
		workingHours: workingHours,
		timeOff:      timeOff,
		loc:          loc,
	}
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (h *ScheduleHandler) CreateWorkingHours(c *gin.Context) {
	var req dto.WorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	wh, err := h.workingHours.Create(c.Request.Context(), schedule.WorkingHoursInput{
		BarberID:  req.BarberID,
		Weekday:   req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.NewWorkingHoursResponse(*wh))
}

func (h *ScheduleHandler) ListWorkingHours(c *gin.Context) {
	barberID, ok := queryUint(c, "barberId")
	if !ok {
		return
	}

	blocks, err := h.workingHours.List(c.Request.Context(), barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := make([]dto.WorkingHoursResponse, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, dto.NewWorkingHoursResponse(b))
	}
	httpresp.List(c, out)
}

func (h *ScheduleHandler) DeleteWorkingHours(c *gin.Context) {
	id, ok := pathUint(c)
	if !ok {
		return
	}

	if err := h.workingHours.Delete(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// --------------------------------------------------
// Time off
// --------------------------------------------------

func (h *ScheduleHandler) CreateTimeOff(c *gin.Context) {
	var req dto.TimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	t, err := h.timeOff.Create(c.Request.Context(), schedule.TimeOffInput{
		BarberID: req.BarberID,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Reason:   req.Reason,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.NewTimeOffResponse(*t, h.loc))
}

// GET /api/time-off?barberId=&from=&to=, from and to optional.
func (h *ScheduleHandler) ListTimeOff(c *gin.Context) {
	barberID, ok := queryUint(c, "barberId")
	if !ok {
		return
	}
	from, ok := queryInstant(c, "from", h.loc, false)
	if !ok {
		return
	}
	to, ok := queryInstant(c, "to", h.loc, false)
	if !ok {
		return
	}

	list, err := h.timeOff.List(c.Request.Context(), barberID, from, to)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := make([]dto.TimeOffResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.NewTimeOffResponse(t, h.loc))
	}
	httpresp.List(c, out)
}

func (h *ScheduleHandler) DeleteTimeOff(c *gin.Context) {
	id, ok := pathUint(c)
	if !ok {
		return
	}

	if err := h.timeOff.Delete(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}
