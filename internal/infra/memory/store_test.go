package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var base = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

func appointmentAt(barberID uint, start time.Time, d time.Duration) *models.Appointment {
	return &models.Appointment{
		BarberID: barberID,
		StartsAt: start,
		EndsAt:   start.Add(d),
		Status:   string(domain.StatusScheduled),
		IsActive: true,
	}
}

func TestStore_CreateRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if err := s.CreateAppointment(ctx, appointmentAt(1, base, 30*time.Minute)); err != nil {
		t.Fatalf("first create: %v", err)
	}

	t.Run("overlapping range", func(t *testing.T) {
		err := s.CreateAppointment(ctx, appointmentAt(1, base.Add(15*time.Minute), 30*time.Minute))
		if !errors.Is(err, domain.ErrOverlapViolation) {
			t.Fatalf("expected overlap violation, got %v", err)
		}
	})

	t.Run("touching range", func(t *testing.T) {
		if err := s.CreateAppointment(ctx, appointmentAt(1, base.Add(30*time.Minute), 30*time.Minute)); err != nil {
			t.Fatalf("expected adjacent booking to succeed, got %v", err)
		}
	})

	t.Run("other barber", func(t *testing.T) {
		if err := s.CreateAppointment(ctx, appointmentAt(2, base, 30*time.Minute)); err != nil {
			t.Fatalf("expected other barber to be independent, got %v", err)
		}
	})
}

func TestStore_InactiveRowsDoNotBlock(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	ap := appointmentAt(1, base, 30*time.Minute)
	if err := s.CreateAppointment(ctx, ap); err != nil {
		t.Fatalf("create: %v", err)
	}

	ap.IsActive = false
	ap.Status = string(domain.StatusCancelled)
	if err := s.UpdateAppointment(ctx, ap); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	busy, err := s.HasActiveOverlap(ctx, 1, base, base.Add(30*time.Minute), uuid.Nil)
	if err != nil || busy {
		t.Fatalf("expected cancelled appointment to free the range, busy=%v err=%v", busy, err)
	}
	if err := s.CreateAppointment(ctx, appointmentAt(1, base, 30*time.Minute)); err != nil {
		t.Fatalf("expected rebooking to succeed, got %v", err)
	}
}

func TestStore_HasActiveOverlapExcludesSelf(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	ap := appointmentAt(1, base, 30*time.Minute)
	_ = s.CreateAppointment(ctx, ap)

	busy, _ := s.HasActiveOverlap(ctx, 1, base.Add(15*time.Minute), base.Add(45*time.Minute), ap.ID)
	if busy {
		t.Fatalf("expected the appointment itself to be excluded")
	}
}

func TestStore_WithBarberLockSerializesWriters(t *testing.T) {
	s := NewStore()
	var inside, maxInside int32

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.WithBarberLock(context.Background(), []uint{1}, func(ctx context.Context, tx domain.Repository) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Fatalf("expected one writer at a time, saw %d", maxInside)
	}
}

func TestStore_Reminders(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	id := uuid.New()

	ok, _ := s.ClaimReminder(ctx, id, base.Add(time.Hour))
	if !ok {
		t.Fatalf("expected first claim to succeed")
	}
	ok, _ = s.ClaimReminder(ctx, id, base.Add(time.Hour))
	if ok {
		t.Fatalf("expected second claim to fail")
	}

	n, _ := s.PurgeExpiredReminders(ctx, base.Add(2*time.Hour))
	if n != 1 {
		t.Fatalf("expected 1 purged mark, got %d", n)
	}
	ok, _ = s.ClaimReminder(ctx, id, base.Add(3*time.Hour))
	if !ok {
		t.Fatalf("expected claim after purge to succeed")
	}
}

func TestStore_WorkingHoursDuplicates(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	wh := &models.WorkingHours{BarberID: 1, Weekday: 1, StartTime: "09:00", EndTime: "12:00"}
	if err := s.CreateWorkingHours(ctx, wh); err != nil {
		t.Fatalf("create: %v", err)
	}
	dup := *wh
	if err := s.CreateWorkingHours(ctx, &dup); !errors.Is(err, domain.ErrWorkingHoursExists) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	_ = s.CreateWorkingHours(ctx, &models.WorkingHours{BarberID: 1, Weekday: 1, StartTime: "07:00", EndTime: "08:00"})
	blocks, _ := s.ListWorkingHours(ctx, 1, 1)
	if len(blocks) != 2 || blocks[0].StartTime != "07:00" {
		t.Fatalf("expected blocks ordered by start, got %+v", blocks)
	}
}
