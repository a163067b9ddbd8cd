package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucappointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucappointment.CreateAppointment
	update       *ucappointment.UpdateAppointment
	cancel       *ucappointment.CancelAppointment
	updateStatus *ucappointment.UpdateAppointmentStatus
	get          *ucappointment.GetAppointment
	list         *ucappointment.ListAppointments
	availability *ucappointment.GetAvailability
	loc          *time.Location
}

func NewAppointmentHandler(
	create *ucappointment.CreateAppointment,
	update *ucappointment.UpdateAppointment,
	cancel *ucappointment.CancelAppointment,
	updateStatus *ucappointment.UpdateAppointmentStatus,
	get *ucappointment.GetAppointment,
	list *ucappointment.ListAppointments,
	availability *ucappointment.GetAvailability,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		update:       update,
		cancel:       cancel,
		updateStatus: updateStatus,
		get:          get,
		list:         list,
		availability: availability,
		loc:          loc,
	}
}

// ======================================================
// AVAILABILITY
// ======================================================

// GET /api/availability?barberId=&serviceId=&date=YYYY-MM-DD
func (h *AppointmentHandler) Availability(c *gin.Context) {
	barberID, ok := queryUint(c, "barberId")
	if !ok {
		return
	}
	serviceID, ok := queryUint(c, "serviceId")
	if !ok {
		return
	}
	date, ok := queryDate(c, "date", h.loc)
	if !ok {
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID:  barberID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.In(h.loc))
	}

	httpresp.OK(c, dto.AvailabilityResponse{
		BarberID:  barberID,
		ServiceID: serviceID,
		Date:      date.Format("2006-01-02"),
		Timezone:  h.loc.String(),
		Slots:     out,
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		ClientID:  req.ClientID,
		StartsAt:  req.StartsAt,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentResponse(ap, h.loc))
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentResponse(ap, h.loc))
}

// GET /api/appointments?barberId=&from=&to=
func (h *AppointmentHandler) List(c *gin.Context) {
	barberID, ok := queryUint(c, "barberId")
	if !ok {
		return
	}
	from, ok := queryInstant(c, "from", h.loc, true)
	if !ok {
		return
	}
	to, ok := queryInstant(c, "to", h.loc, true)
	if !ok {
		return
	}

	list, err := h.list.Execute(c.Request.Context(), barberID, from, to)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, dto.NewAppointmentList(list, h.loc))
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), ucappointment.UpdateAppointmentInput{
		ID:        id,
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		ClientID:  req.ClientID,
		StartsAt:  req.StartsAt,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentResponse(ap, h.loc))
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentResponse(ap, h.loc))
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	to, err := domain.ParseStatus(req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), id, to)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentResponse(ap, h.loc))
}
