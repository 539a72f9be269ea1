// Package timetricks holds helpers for working with civil (calendar) dates,
// which the calculators key on independently of any clock time or zone.
package timetricks

import (
	"fmt"
	"time"
)

const (
	dayFormat = "20060102"

	// DateLayout is the layout accepted by ParseDate.
	DateLayout = "2006-01-02"
)

// CivilDate returns midnight UTC on t's calendar day in t's own location. Two
// times on the same local day map to the same CivilDate.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextDay is the civil date after date.
func NextDay(date time.Time) time.Time {
	return CivilDate(date).AddDate(0, 0, 1)
}

// ParseDate reads a yyyy-mm-dd date into a CivilDate.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q not in fmt %q: %w", s, DateLayout, err)
	}
	return t, nil
}

// UniqueDay keys t by its calendar day in its own location, as "20100402".
// It is used in cache keys.
func UniqueDay(t time.Time) string {
	return t.Format(dayFormat)
}
