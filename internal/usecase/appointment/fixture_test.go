package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// monday is 2026-10-19 in Lisbon (WEST, UTC+1).
var lisbon = timezone.Location("Europe/Lisbon")

func at(hm string) time.Time {
	t, err := timezone.At(time.Date(2026, 10, 19, 12, 0, 0, 0, lisbon), hm, lisbon)
	if err != nil {
		panic(err)
	}
	return t
}

type recordingEvents struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordingEvents) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingEvents) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type fixture struct {
	store  *memory.Store
	events *recordingEvents
	clock  clock.Clock

	barber   models.Barber
	other    models.Barber
	haircut  models.ServiceOffering
	beard    models.ServiceOffering
	client   models.Client
	repoOver domain.Repository
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	s := memory.NewStore()
	f := &fixture{
		store:   s,
		events:  &recordingEvents{},
		clock:   clock.NewFixed(now),
		barber:  s.AddBarber(models.Barber{Name: "Rui", Active: true}),
		other:   s.AddBarber(models.Barber{Name: "Ana", Active: true}),
		haircut: s.AddService(models.ServiceOffering{Name: "Haircut", DurationMin: 30, Active: true}),
		beard:   s.AddService(models.ServiceOffering{Name: "Beard", DurationMin: 20, BufferAfterMin: 10, Active: true}),
		client:  s.AddClient(models.Client{Name: "Joao"}),
	}
	f.repoOver = s
	return f
}

func (f *fixture) repo() domain.Repository {
	return f.repoOver
}

func (f *fixture) addBlock(t *testing.T, barberID uint, start, end string) {
	t.Helper()
	err := f.store.CreateWorkingHours(context.Background(), &models.WorkingHours{
		BarberID:  barberID,
		Weekday:   1,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		t.Fatalf("add block: %v", err)
	}
}

func (f *fixture) addTimeOff(t *testing.T, barberID uint, start, end time.Time) {
	t.Helper()
	if err := f.store.CreateTimeOff(context.Background(), &models.TimeOff{BarberID: barberID, StartsAt: start, EndsAt: end}); err != nil {
		t.Fatalf("add time off: %v", err)
	}
}

func (f *fixture) availability() *GetAvailability {
	return NewGetAvailability(f.repo(), f.clock, lisbon)
}

func (f *fixture) create() *CreateAppointment {
	return NewCreateAppointment(f.repo(), f.events, f.clock, zap.NewNop())
}

func (f *fixture) update() *UpdateAppointment {
	return NewUpdateAppointment(f.repo(), f.events, f.clock, zap.NewNop())
}

func (f *fixture) cancel() *CancelAppointment {
	return NewCancelAppointment(f.repo(), f.events, f.clock, zap.NewNop())
}

func (f *fixture) status() *UpdateAppointmentStatus {
	return NewUpdateAppointmentStatus(f.repo(), f.events, f.clock, zap.NewNop())
}

func (f *fixture) book(t *testing.T, barberID uint, svc models.ServiceOffering, start time.Time) *models.Appointment {
	t.Helper()
	ap, err := f.create().Execute(context.Background(), CreateAppointmentInput{
		BarberID:  barberID,
		ServiceID: svc.ID,
		ClientID:  f.client.ID,
		StartsAt:  start,
	})
	if err != nil {
		t.Fatalf("book %s: %v", start.Format("15:04"), err)
	}
	return ap
}

func (f *fixture) slots(t *testing.T, barberID uint, svc models.ServiceOffering) []string {
	t.Helper()
	got, err := f.availability().Execute(context.Background(), domain.AvailabilityInput{
		BarberID:  barberID,
		ServiceID: svc.ID,
		Date:      at("00:00"),
	})
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	out := make([]string, 0, len(got))
	for _, s := range got {
		out = append(out, s.In(lisbon).Format("15:04"))
	}
	return out
}

// blindStore hides existing appointments from the pre-check and skips the
// barber lock, leaving only the store's own overlap check in the way.
type blindStore struct {
	*memory.Store
}

func (b blindStore) HasActiveOverlap(context.Context, uint, time.Time, time.Time, uuid.UUID) (bool, error) {
	return false, nil
}

func (b blindStore) WithBarberLock(ctx context.Context, _ []uint, fn func(ctx context.Context, tx domain.Repository) error) error {
	return fn(ctx, b)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
