package repository

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/db"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	url := strings.TrimSpace(os.Getenv("TEST_DATABASE_URL"))
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	gdb, err := gorm.Open(postgres.Open(url), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Skipf("database unreachable: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		gdb.Exec("TRUNCATE appointments, reminder_marks, time_off, working_hours, services, clients, barbers RESTART IDENTITY CASCADE")
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func seed(t *testing.T, gdb *gorm.DB) (models.Barber, models.ServiceOffering, models.Client) {
	t.Helper()
	suffix := uuid.NewString()[:8]

	barber := models.Barber{Name: "Rui", Email: "rui-" + suffix + "@example.com", Active: true}
	svc := models.ServiceOffering{Name: "Haircut", DurationMin: 30, Active: true}
	client := models.Client{Name: "Joao", Email: "joao@example.com"}

	for _, v := range []any{&barber, &svc, &client} {
		if err := gdb.Create(v).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return barber, svc, client
}

func TestBookingGorm_ExclusionConstraint(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewBookingGormRepository(gdb)
	ctx := context.Background()
	barber, svc, client := seed(t, gdb)

	start := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	newAp := func(offset time.Duration) *models.Appointment {
		return &models.Appointment{
			ID:        uuid.New(),
			BarberID:  barber.ID,
			ServiceID: svc.ID,
			ClientID:  client.ID,
			StartsAt:  start.Add(offset),
			EndsAt:    start.Add(offset + 30*time.Minute),
			Status:    string(domain.StatusScheduled),
			IsActive:  true,
		}
	}

	first := newAp(0)
	if err := repo.CreateAppointment(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.CreateAppointment(ctx, newAp(15*time.Minute)); !errors.Is(err, domain.ErrOverlapViolation) {
		t.Fatalf("expected overlap violation, got %v", err)
	}
	if err := repo.CreateAppointment(ctx, newAp(30*time.Minute)); err != nil {
		t.Fatalf("expected touching range to be accepted, got %v", err)
	}

	first.IsActive = false
	first.Status = string(domain.StatusCancelled)
	if err := repo.UpdateAppointment(ctx, first); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := repo.CreateAppointment(ctx, newAp(0)); err != nil {
		t.Fatalf("expected cancelled range to be reusable, got %v", err)
	}
}

func TestBookingGorm_ConcurrentWritersOneWins(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewBookingGormRepository(gdb)
	barber, svc, client := seed(t, gdb)
	start := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.WithBarberLock(context.Background(), []uint{barber.ID}, func(ctx context.Context, tx domain.Repository) error {
				busy, err := tx.HasActiveOverlap(ctx, barber.ID, start, start.Add(30*time.Minute), uuid.Nil)
				if err != nil {
					return err
				}
				if busy {
					return domain.ErrSlotConflict
				}
				return tx.CreateAppointment(ctx, &models.Appointment{
					ID: uuid.New(), BarberID: barber.ID, ServiceID: svc.ID, ClientID: client.ID,
					StartsAt: start, EndsAt: start.Add(30 * time.Minute),
					Status: string(domain.StatusScheduled), IsActive: true,
				})
			})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if success != 1 {
		t.Fatalf("expected exactly one writer to succeed, got %d", success)
	}
}

func TestBookingGorm_ClaimReminder(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewBookingGormRepository(gdb)
	ctx := context.Background()
	id := uuid.New()
	now := time.Now().UTC()

	ok, err := repo.ClaimReminder(ctx, id, now.Add(time.Hour))
	if err != nil || !ok {
		t.Fatalf("expected first claim, got ok=%v err=%v", ok, err)
	}
	ok, err = repo.ClaimReminder(ctx, id, now.Add(time.Hour))
	if err != nil || ok {
		t.Fatalf("expected second claim to be rejected, got ok=%v err=%v", ok, err)
	}

	n, err := repo.PurgeExpiredReminders(ctx, now.Add(2*time.Hour))
	if err != nil || n != 1 {
		t.Fatalf("expected one purged mark, got %d err=%v", n, err)
	}
}
