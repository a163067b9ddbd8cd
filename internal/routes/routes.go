package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/reminder"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

// Store is satisfied by both the postgres repository and the in-memory store.
type Store interface {
	domain.Repository
	schedule.Repository
	reminder.Store
	Ping(ctx context.Context) error
}

type Deps struct {
	Store    Store
	Events   ucAppointment.Dispatcher
	Clock    clock.Clock
	Log      *zap.Logger
	Location *time.Location

	JWTSecret   string
	CORSOrigins []string

	// nil disables rate limiting
	Limiter  *middleware.RateLimiter
	FailOpen bool
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(d.Log),
		gin.Recovery(),
		middleware.CORSMiddleware(d.CORSOrigins),
	)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	createUC := ucAppointment.NewCreateAppointment(d.Store, d.Events, d.Clock, d.Log)
	updateUC := ucAppointment.NewUpdateAppointment(d.Store, d.Events, d.Clock, d.Log)
	cancelUC := ucAppointment.NewCancelAppointment(d.Store, d.Events, d.Clock, d.Log)
	statusUC := ucAppointment.NewUpdateAppointmentStatus(d.Store, d.Events, d.Clock, d.Log)
	getUC := ucAppointment.NewGetAppointment(d.Store)
	listUC := ucAppointment.NewListAppointments(d.Store)
	availabilityUC := ucAppointment.NewGetAvailability(d.Store, d.Clock, d.Location)

	workingHoursUC := schedule.NewWorkingHours(d.Store)
	timeOffUC := schedule.NewTimeOff(d.Store)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		updateUC,
		cancelUC,
		statusUC,
		getUC,
		listUC,
		availabilityUC,
		d.Location,
	)
	scheduleHandler := handlers.NewScheduleHandler(workingHoursUC, timeOffUC, d.Location)
	healthHandler := handlers.NewHealthHandler(d.Store)

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	if d.Limiter != nil {
		api.Use(d.Limiter.Middleware(d.Log, d.FailOpen))
	}

	// ======================================================
	// 🔓 READS
	// ======================================================
	api.GET("/availability", appointmentHandler.Availability)
	api.GET("/appointments", appointmentHandler.List)
	api.GET("/appointments/:id", appointmentHandler.Get)
	api.GET("/working-hours", scheduleHandler.ListWorkingHours)
	api.GET("/time-off", scheduleHandler.ListTimeOff)

	// ======================================================
	// 🔐 WRITES
	// ======================================================
	write := api.Group("")
	write.Use(middleware.AuthMiddleware(d.JWTSecret))

	write.POST("/appointments", appointmentHandler.Create)
	write.PUT("/appointments/:id", appointmentHandler.Update)
	write.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
	write.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)

	write.POST("/working-hours", scheduleHandler.CreateWorkingHours)
	write.DELETE("/working-hours/:id", scheduleHandler.DeleteWorkingHours)
	write.POST("/time-off", scheduleHandler.CreateTimeOff)
	write.DELETE("/time-off/:id", scheduleHandler.DeleteTimeOff)
}
