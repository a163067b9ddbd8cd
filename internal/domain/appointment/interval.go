package appointment

import "time"

// Step is the global grid for candidate start times.
const Step = 15 * time.Minute

type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses half-open ranges: touching intervals do not overlap.
func (i Interval) Overlaps(start, end time.Time) bool {
	return i.Start.Before(end) && i.End.After(start)
}

func OverlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// AlignUp rounds t up to the next multiple of step on the wall clock of t's
// location, so slots land on :00/:15/:30/:45 whatever the block boundary.
func AlignUp(t time.Time, step time.Duration) time.Time {
	if step <= 0 {
		return t
	}

	wall := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())

	rem := wall % step
	if rem == 0 {
		return t
	}
	return t.Add(step - rem)
}
