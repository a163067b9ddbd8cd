package timezone

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "Europe/Lisbon"

const (
	DateLayout = "2006-01-02"
	HourLayout = "15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to DefaultTimezone and finally UTC.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// ISOWeekday returns 1 for Monday through 7 for Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ParseDate parses a YYYY-MM-DD calendar date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// ParseHour validates an HH:mm wall-clock time and returns hour and minute.
func ParseHour(hm string) (int, int, error) {
	t, err := time.Parse(HourLayout, hm)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q: %w", hm, err)
	}
	return t.Hour(), t.Minute(), nil
}

// At anchors an HH:mm wall-clock time to the calendar day of date in loc.
func At(date time.Time, hm string, loc *time.Location) (time.Time, error) {
	h, m, err := ParseHour(hm)
	if err != nil {
		return time.Time{}, err
	}
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, loc), nil
}
