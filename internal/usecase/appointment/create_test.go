package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots occupancy and starts scheduled", func(t *testing.T) {
		f := newFixture(t, at("07:00"))
		ap := f.book(t, f.barber.ID, f.beard, at("10:00"))

		if ap.ID == uuid.Nil {
			t.Fatalf("expected generated id")
		}
		if !ap.EndsAt.Equal(at("10:30")) {
			t.Fatalf("expected end 10:30, got %s", ap.EndsAt.In(lisbon).Format("15:04"))
		}
		if ap.Status != string(domain.StatusScheduled) || !ap.IsActive {
			t.Fatalf("expected active SCHEDULED, got %s active=%v", ap.Status, ap.IsActive)
		}
		if !ap.CreatedAt.Equal(at("07:00")) {
			t.Fatalf("expected created at from clock, got %s", ap.CreatedAt)
		}
		if got := f.events.actions(); len(got) != 1 || got[0] != audit.ActionAppointmentCreated {
			t.Fatalf("expected one created event, got %v", got)
		}
	})

	t.Run("missing references", func(t *testing.T) {
		f := newFixture(t, at("07:00"))
		cases := []struct {
			name string
			in   CreateAppointmentInput
			want error
		}{
			{"barber", CreateAppointmentInput{BarberID: 999, ServiceID: f.haircut.ID, ClientID: f.client.ID, StartsAt: at("10:00")}, domain.ErrBarberNotFound},
			{"service", CreateAppointmentInput{BarberID: f.barber.ID, ServiceID: 999, ClientID: f.client.ID, StartsAt: at("10:00")}, domain.ErrServiceNotFound},
			{"client", CreateAppointmentInput{BarberID: f.barber.ID, ServiceID: f.haircut.ID, ClientID: 999, StartsAt: at("10:00")}, domain.ErrClientNotFound},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := f.create().Execute(ctx, tc.in)
				var de *domain.Error
				if !errors.As(err, &de) || de.Code != tc.want.(*domain.Error).Code {
					t.Fatalf("expected %v, got %v", tc.want, err)
				}
			})
		}
		if len(f.events.actions()) != 0 {
			t.Fatalf("expected no events for failed creates")
		}
	})

	t.Run("overlap is a slot conflict", func(t *testing.T) {
		f := newFixture(t, at("07:00"))
		f.book(t, f.barber.ID, f.haircut, at("10:00"))

		_, err := f.create().Execute(ctx, CreateAppointmentInput{
			BarberID: f.barber.ID, ServiceID: f.haircut.ID, ClientID: f.client.ID, StartsAt: at("10:15"),
		})
		if !errors.Is(err, domain.ErrSlotConflict) {
			t.Fatalf("expected slot conflict, got %v", err)
		}
	})

	t.Run("time off is reported distinctly", func(t *testing.T) {
		f := newFixture(t, at("07:00"))
		f.addTimeOff(t, f.barber.ID, at("10:00"), at("11:00"))

		_, err := f.create().Execute(ctx, CreateAppointmentInput{
			BarberID: f.barber.ID, ServiceID: f.haircut.ID, ClientID: f.client.ID, StartsAt: at("09:45"),
		})
		if !errors.Is(err, domain.ErrTimeOffConflict) {
			t.Fatalf("expected time off conflict, got %v", err)
		}
		if errors.Is(err, domain.ErrSlotConflict) {
			t.Fatalf("time off conflict must not read as slot conflict")
		}
	})

	t.Run("storage violation is translated", func(t *testing.T) {
		f := newFixture(t, at("07:00"))
		f.book(t, f.barber.ID, f.haircut, at("10:00"))
		f.repoOver = blindStore{Store: f.store}

		_, err := f.create().Execute(ctx, CreateAppointmentInput{
			BarberID: f.barber.ID, ServiceID: f.haircut.ID, ClientID: f.client.ID, StartsAt: at("10:00"),
		})
		if !errors.Is(err, domain.ErrSlotConflict) {
			t.Fatalf("expected slot conflict from the store, got %v", err)
		}
	})

	t.Run("missing start", func(t *testing.T) {
		f := newFixture(t, at("07:00"))
		_, err := f.create().Execute(ctx, CreateAppointmentInput{BarberID: f.barber.ID, ServiceID: f.haircut.ID, ClientID: f.client.ID})
		var de *domain.Error
		if !errors.As(err, &de) || de.Field != "startsAt" {
			t.Fatalf("expected validation on startsAt, got %v", err)
		}
	})
}

func TestCreateAppointment_RaceExclusivity(t *testing.T) {
	for _, mode := range []string{"locked", "constraint only"} {
		t.Run(mode, func(t *testing.T) {
			f := newFixture(t, at("07:00"))
			if mode == "constraint only" {
				f.repoOver = blindStore{Store: f.store}
			}
			uc := f.create()

			const n = 16
			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				ok        int
				conflicts int
				start     = make(chan struct{})
			)

			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					<-start
					_, err := uc.Execute(context.Background(), CreateAppointmentInput{
						BarberID:  f.barber.ID,
						ServiceID: f.haircut.ID,
						ClientID:  f.client.ID,
						// alternate between identical and partially overlapping ranges
						StartsAt: at("10:00").Add(time.Duration(i%2) * 15 * time.Minute),
					})
					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						ok++
					case errors.Is(err, domain.ErrSlotConflict):
						conflicts++
					default:
						t.Errorf("unexpected error: %v", err)
					}
				}(i)
			}
			close(start)
			wg.Wait()

			if ok != 1 || conflicts != n-1 {
				t.Fatalf("expected exactly one success, got %d successes and %d conflicts", ok, conflicts)
			}

			active, _ := f.store.ListActiveOverlapping(context.Background(), f.barber.ID, at("09:00"), at("12:00"))
			if len(active) != 1 {
				t.Fatalf("expected one active appointment, got %d", len(active))
			}
		})
	}
}
