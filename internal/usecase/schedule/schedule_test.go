package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func fieldOf(err error) string {
	var de *domain.Error
	if errors.As(err, &de) && de.Kind == domain.KindValidation {
		return de.Field
	}
	return ""
}

func TestWorkingHours_Create(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	barber := store.AddBarber(models.Barber{Name: "Rui"})
	uc := NewWorkingHours(store)

	cases := []struct {
		name      string
		in        WorkingHoursInput
		wantField string
	}{
		{"weekday zero", WorkingHoursInput{BarberID: barber.ID, Weekday: 0, StartTime: "09:00", EndTime: "12:00"}, "dayOfWeek"},
		{"weekday eight", WorkingHoursInput{BarberID: barber.ID, Weekday: 8, StartTime: "09:00", EndTime: "12:00"}, "dayOfWeek"},
		{"bad start", WorkingHoursInput{BarberID: barber.ID, Weekday: 1, StartTime: "9am", EndTime: "12:00"}, "startTime"},
		{"bad end", WorkingHoursInput{BarberID: barber.ID, Weekday: 1, StartTime: "09:00", EndTime: "25:00"}, "endTime"},
		{"end before start", WorkingHoursInput{BarberID: barber.ID, Weekday: 1, StartTime: "12:00", EndTime: "09:00"}, "endTime"},
		{"empty block", WorkingHoursInput{BarberID: barber.ID, Weekday: 1, StartTime: "09:00", EndTime: "09:00"}, "endTime"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.in)
			if got := fieldOf(err); got != tc.wantField {
				t.Fatalf("expected validation on %q, got %v", tc.wantField, err)
			}
		})
	}

	t.Run("valid blocks", func(t *testing.T) {
		if _, err := uc.Create(ctx, WorkingHoursInput{BarberID: barber.ID, Weekday: 1, StartTime: "14:00", EndTime: "18:00"}); err != nil {
			t.Fatalf("create afternoon: %v", err)
		}
		wh, err := uc.Create(ctx, WorkingHoursInput{BarberID: barber.ID, Weekday: 1, StartTime: "9:00", EndTime: "12:30"})
		if err != nil {
			t.Fatalf("create morning: %v", err)
		}
		if wh.StartTime != "09:00" {
			t.Fatalf("expected canonical HH:mm, got %q", wh.StartTime)
		}

		list, _ := uc.List(ctx, barber.ID)
		if len(list) != 2 || list[0].StartTime != "09:00" {
			t.Fatalf("expected two blocks ordered by start, got %+v", list)
		}
	})

	t.Run("duplicate block", func(t *testing.T) {
		_, err := uc.Create(ctx, WorkingHoursInput{BarberID: barber.ID, Weekday: 1, StartTime: "14:00", EndTime: "18:00"})
		if fieldOf(err) != "startTime" {
			t.Fatalf("expected duplicate to be rejected, got %v", err)
		}
	})

	t.Run("unknown barber", func(t *testing.T) {
		_, err := uc.Create(ctx, WorkingHoursInput{BarberID: 999, Weekday: 1, StartTime: "09:00", EndTime: "12:00"})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		list, _ := uc.List(ctx, barber.ID)
		if err := uc.Delete(ctx, list[0].ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := uc.Delete(ctx, list[0].ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected not found on second delete, got %v", err)
		}
	})
}

func TestTimeOff(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	barber := store.AddBarber(models.Barber{Name: "Rui"})
	uc := NewTimeOff(store)

	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	if _, err := uc.Create(ctx, TimeOffInput{BarberID: barber.ID, StartsAt: day.Add(13 * time.Hour), EndsAt: day.Add(13 * time.Hour)}); fieldOf(err) != "endsAt" {
		t.Fatalf("expected validation on endsAt, got %v", err)
	}

	first, err := uc.Create(ctx, TimeOffInput{BarberID: barber.ID, StartsAt: day.Add(13 * time.Hour), EndsAt: day.Add(17 * time.Hour), Reason: " dentist "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Reason != "dentist" {
		t.Fatalf("expected trimmed reason, got %q", first.Reason)
	}
	if _, err := uc.Create(ctx, TimeOffInput{BarberID: barber.ID, StartsAt: day.Add(48 * time.Hour), EndsAt: day.Add(72 * time.Hour)}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	t.Run("list in range", func(t *testing.T) {
		list, err := uc.List(ctx, barber.ID, day, day.Add(24*time.Hour))
		if err != nil || len(list) != 1 || list[0].ID != first.ID {
			t.Fatalf("expected only the first range, got %+v err=%v", list, err)
		}
	})

	t.Run("list unbounded", func(t *testing.T) {
		list, _ := uc.List(ctx, barber.ID, time.Time{}, time.Time{})
		if len(list) != 2 {
			t.Fatalf("expected two ranges, got %d", len(list))
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := uc.Delete(ctx, first.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := uc.Delete(ctx, first.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}
