package appointment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	clock clock.Clock
	loc   *time.Location
}

func NewGetAvailability(
	repo domain.Repository,
	clk clock.Clock,
	loc *time.Location,
) *GetAvailability {
	return &GetAvailability{repo: repo, clock: clk, loc: loc}
}

// Execute returns bookable start instants for one barber, service and day,
// ordered ascending. It reads only and takes no locks, so a returned slot may
// be taken by the time it is submitted.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]time.Time, error) {

	// --------------------------------------------------
	// 1️⃣ Occupancy
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	occupancy := svc.Occupancy()
	if svc.DurationMin <= 0 {
		return nil, domain.Validation("serviceId", "service duration must be positive")
	}

	// --------------------------------------------------
	// 2️⃣ Working blocks anchored to the date
	// --------------------------------------------------
	date := in.Date.In(uc.loc)

	blocks, err := uc.repo.ListWorkingHours(ctx, in.BarberID, timezone.ISOWeekday(date))
	if err != nil {
		return nil, fmt.Errorf("list working hours: %w", err)
	}

	windows := make([]domain.Interval, 0, len(blocks))
	for _, b := range blocks {
		start, err := timezone.At(date, b.StartTime, uc.loc)
		if err != nil {
			return nil, fmt.Errorf("working hours %d: %w", b.ID, err)
		}
		end, err := timezone.At(date, b.EndTime, uc.loc)
		if err != nil {
			return nil, fmt.Errorf("working hours %d: %w", b.ID, err)
		}
		if !end.After(start) {
			continue
		}
		windows = append(windows, domain.Interval{Start: start, End: end})
	}

	if len(windows) == 0 {
		return []time.Time{}, nil
	}

	// --------------------------------------------------
	// 3️⃣ Busy ranges for the whole day window, read once
	// --------------------------------------------------
	dayStart, dayEnd := windows[0].Start, windows[0].End
	for _, w := range windows[1:] {
		if w.Start.Before(dayStart) {
			dayStart = w.Start
		}
		if w.End.After(dayEnd) {
			dayEnd = w.End
		}
	}

	busy, err := uc.busy(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Candidates on the global grid
	// --------------------------------------------------
	now := uc.clock.Now()
	seen := map[int64]bool{}
	slots := []time.Time{}

	for _, w := range windows {
		for cand := domain.AlignUp(w.Start, domain.Step); !cand.Add(occupancy).After(w.End); cand = cand.Add(domain.Step) {
			if cand.Before(now) {
				continue
			}
			if domain.OverlapsAny(cand, cand.Add(occupancy), busy) {
				continue
			}
			// blocks are not required to be disjoint
			if key := cand.UnixNano(); !seen[key] {
				seen[key] = true
				slots = append(slots, cand)
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
	return slots, nil
}

func (uc *GetAvailability) busy(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]domain.Interval, error) {

	appointments, err := uc.repo.ListActiveOverlapping(ctx, barberID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	timeOff, err := uc.repo.ListTimeOffOverlapping(ctx, barberID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list time off: %w", err)
	}

	busy := make([]domain.Interval, 0, len(appointments)+len(timeOff))
	for _, ap := range appointments {
		busy = append(busy, domain.Interval{Start: ap.StartsAt, End: ap.EndsAt})
	}
	for _, to := range timeOff {
		busy = append(busy, domain.Interval{Start: to.StartsAt, End: to.EndsAt})
	}
	return busy, nil
}
