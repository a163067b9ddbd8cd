package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Store keeps every table in process memory. Per-barber mutexes stand in for
// the advisory lock and the insert/update overlap check stands in for the
// exclusion constraint. Writes inside WithBarberLock are not rolled back when
// fn fails, so callers write last.
type Store struct {
	mu sync.RWMutex

	barbers  map[uint]models.Barber
	services map[uint]models.ServiceOffering
	clients  map[uint]models.Client

	workingHours map[uint]models.WorkingHours
	timeOff      map[uint]models.TimeOff
	appointments map[uuid.UUID]models.Appointment
	reminders    map[uuid.UUID]models.ReminderMark

	seq uint

	lockMu      sync.Mutex
	barberLocks map[uint]*sync.Mutex
}

func NewStore() *Store {
	return &Store{
		barbers:      map[uint]models.Barber{},
		services:     map[uint]models.ServiceOffering{},
		clients:      map[uint]models.Client{},
		workingHours: map[uint]models.WorkingHours{},
		timeOff:      map[uint]models.TimeOff{},
		appointments: map[uuid.UUID]models.Appointment{},
		reminders:    map[uuid.UUID]models.ReminderMark{},
		barberLocks:  map[uint]*sync.Mutex{},
	}
}

func (s *Store) nextID() uint {
	s.seq++
	return s.seq
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (s *Store) AddBarber(b models.Barber) models.Barber {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.nextID()
	}
	s.barbers[b.ID] = b
	return b
}

func (s *Store) AddService(svc models.ServiceOffering) models.ServiceOffering {
	s.mu.Lock()
	defer s.mu.Unlock()
	if svc.ID == 0 {
		svc.ID = s.nextID()
	}
	s.services[svc.ID] = svc
	return svc
}

func (s *Store) AddClient(c models.Client) models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.nextID()
	}
	s.clients[c.ID] = c
	return c
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (s *Store) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.barbers[id]
	if !ok {
		return nil, domain.ErrBarberNotFound
	}
	return &b, nil
}

func (s *Store) GetService(_ context.Context, id uint) (*models.ServiceOffering, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := s.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return &svc, nil
}

func (s *Store) GetClient(_ context.Context, id uint) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return &c, nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (s *Store) ListWorkingHours(_ context.Context, barberID uint, weekday int) ([]models.WorkingHours, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.WorkingHours
	for _, wh := range s.workingHours {
		if wh.BarberID == barberID && wh.Weekday == weekday {
			out = append(out, wh)
		}
	}
	sortBlocks(out)
	return out, nil
}

func (s *Store) ListBarberWorkingHours(_ context.Context, barberID uint) ([]models.WorkingHours, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.WorkingHours{}
	for _, wh := range s.workingHours {
		if wh.BarberID == barberID {
			out = append(out, wh)
		}
	}
	sortBlocks(out)
	return out, nil
}

func (s *Store) CreateWorkingHours(_ context.Context, wh *models.WorkingHours) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.workingHours {
		if existing.BarberID == wh.BarberID &&
			existing.Weekday == wh.Weekday &&
			existing.StartTime == wh.StartTime &&
			existing.EndTime == wh.EndTime {
			return domain.ErrWorkingHoursExists
		}
	}

	wh.ID = s.nextID()
	wh.CreatedAt = time.Now()
	wh.UpdatedAt = wh.CreatedAt
	s.workingHours[wh.ID] = *wh
	return nil
}

func (s *Store) DeleteWorkingHours(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workingHours[id]; !ok {
		return domain.ErrWorkingHoursNotFound
	}
	delete(s.workingHours, id)
	return nil
}

func sortBlocks(blocks []models.WorkingHours) {
	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].Weekday != blocks[j].Weekday {
			return blocks[i].Weekday < blocks[j].Weekday
		}
		return blocks[i].StartTime < blocks[j].StartTime
	})
}

// --------------------------------------------------
// Time off
// --------------------------------------------------

func (s *Store) ListTimeOffOverlapping(_ context.Context, barberID uint, start, end time.Time) ([]models.TimeOff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.TimeOff
	for _, to := range s.timeOff {
		if to.BarberID == barberID && to.StartsAt.Before(end) && to.EndsAt.After(start) {
			out = append(out, to)
		}
	}
	sortTimeOff(out)
	return out, nil
}

func (s *Store) HasTimeOffOverlap(ctx context.Context, barberID uint, start, end time.Time) (bool, error) {
	list, err := s.ListTimeOffOverlapping(ctx, barberID, start, end)
	return len(list) > 0, err
}

// ListTimeOff treats a zero from or to as unbounded.
func (s *Store) ListTimeOff(_ context.Context, barberID uint, from, to time.Time) ([]models.TimeOff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.TimeOff{}
	for _, t := range s.timeOff {
		if t.BarberID != barberID {
			continue
		}
		if !to.IsZero() && !t.StartsAt.Before(to) {
			continue
		}
		if !from.IsZero() && !t.EndsAt.After(from) {
			continue
		}
		out = append(out, t)
	}
	sortTimeOff(out)
	return out, nil
}

func (s *Store) CreateTimeOff(_ context.Context, t *models.TimeOff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID()
	t.CreatedAt = time.Now()
	s.timeOff[t.ID] = *t
	return nil
}

func (s *Store) DeleteTimeOff(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.timeOff[id]; !ok {
		return domain.ErrTimeOffNotFound
	}
	delete(s.timeOff, id)
	return nil
}

func sortTimeOff(list []models.TimeOff) {
	sort.Slice(list, func(i, j int) bool { return list[i].StartsAt.Before(list[j].StartsAt) })
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (s *Store) ListActiveOverlapping(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.activeOverlappingLocked(barberID, start, end, uuid.Nil)
	sortAppointments(out)
	return out, nil
}

func (s *Store) HasActiveOverlap(_ context.Context, barberID uint, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activeOverlappingLocked(barberID, start, end, excludeID)) > 0, nil
}

func (s *Store) activeOverlappingLocked(barberID uint, start, end time.Time, excludeID uuid.UUID) []models.Appointment {
	var out []models.Appointment
	for id, ap := range s.appointments {
		if id == excludeID || !ap.IsActive || ap.BarberID != barberID {
			continue
		}
		if ap.StartsAt.Before(end) && ap.EndsAt.After(start) {
			out = append(out, ap)
		}
	}
	return out
}

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	if ap.IsActive && len(s.activeOverlappingLocked(ap.BarberID, ap.StartsAt, ap.EndsAt, ap.ID)) > 0 {
		return domain.ErrOverlapViolation
	}
	if ap.CreatedAt.IsZero() {
		ap.CreatedAt = time.Now()
	}
	ap.UpdatedAt = ap.CreatedAt
	s.appointments[ap.ID] = *ap
	return nil
}

func (s *Store) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[ap.ID]; !ok {
		return domain.ErrAppointmentNotFound
	}
	if ap.IsActive && len(s.activeOverlappingLocked(ap.BarberID, ap.StartsAt, ap.EndsAt, ap.ID)) > 0 {
		return domain.ErrOverlapViolation
	}
	ap.UpdatedAt = time.Now()
	s.appointments[ap.ID] = *ap
	return nil
}

func (s *Store) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ap, ok := s.appointments[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	return &ap, nil
}

func (s *Store) ListAppointments(_ context.Context, barberID uint, from, to time.Time) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Appointment{}
	for _, ap := range s.appointments {
		if ap.BarberID == barberID && !ap.StartsAt.Before(from) && ap.StartsAt.Before(to) {
			out = append(out, ap)
		}
	}
	sortAppointments(out)
	return out, nil
}

func sortAppointments(list []models.Appointment) {
	sort.Slice(list, func(i, j int) bool { return list[i].StartsAt.Before(list[j].StartsAt) })
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (s *Store) ListRemindable(_ context.Context, from, to time.Time) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Appointment
	for _, ap := range s.appointments {
		if !ap.IsActive || ap.StartsAt.Before(from) || !ap.StartsAt.Before(to) {
			continue
		}
		switch domain.Status(ap.Status) {
		case domain.StatusScheduled, domain.StatusConfirmed:
			out = append(out, ap)
		}
	}
	sortAppointments(out)
	return out, nil
}

func (s *Store) ClaimReminder(_ context.Context, appointmentID uuid.UUID, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reminders[appointmentID]; ok {
		return false, nil
	}
	s.reminders[appointmentID] = models.ReminderMark{
		AppointmentID: appointmentID,
		ExpiresAt:     expiresAt,
		CreatedAt:     time.Now(),
	}
	return true, nil
}

func (s *Store) PurgeExpiredReminders(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, mark := range s.reminders {
		if !mark.ExpiresAt.After(now) {
			delete(s.reminders, id)
			n++
		}
	}
	return n, nil
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (s *Store) WithBarberLock(
	ctx context.Context,
	barberIDs []uint,
	fn func(ctx context.Context, tx domain.Repository) error,
) error {
	for _, id := range uniqueSorted(barberIDs) {
		l := s.barberLock(id)
		l.Lock()
		defer l.Unlock()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, s)
}

func (s *Store) barberLock(id uint) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	l, ok := s.barberLocks[id]
	if !ok {
		l = &sync.Mutex{}
		s.barberLocks[id] = l
	}
	return l
}

func (s *Store) Ping(context.Context) error { return nil }

func uniqueSorted(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	seen := map[uint]bool{}
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var _ domain.Repository = (*Store)(nil)
