package geo

import (
	"fmt"
	"time"
)

// TimeZone reports the offset from UTC in effect at an instant. It is the
// only way the rest of the module learns about local time, so any source of
// zone rules may be plugged in.
type TimeZone interface {
	// ID names the zone, eg. "America/New_York".
	ID() string
	// Offset is the UTC offset at t, including daylight saving time.
	Offset(t time.Time) time.Duration
	// IsDaylightSaving reports whether daylight saving time is in effect at t.
	IsDaylightSaving(t time.Time) bool
	// RawOffset is the standard offset of the zone in the year of t,
	// ignoring daylight saving time.
	RawOffset(t time.Time) time.Duration
}

// UTC is a TimeZone that never has an offset.
var UTC TimeZone = FixedZone("UTC", 0)

type fixedZone struct {
	id     string
	offset time.Duration
}

// FixedZone is a TimeZone with a constant offset and no daylight saving time.
func FixedZone(id string, offset time.Duration) TimeZone {
	return fixedZone{id, offset}
}

func (z fixedZone) ID() string                        { return z.id }
func (z fixedZone) Offset(time.Time) time.Duration    { return z.offset }
func (z fixedZone) IsDaylightSaving(time.Time) bool   { return false }
func (z fixedZone) RawOffset(time.Time) time.Duration { return z.offset }

type zone struct {
	loc *time.Location
}

// Zone adapts a *time.Location from the system time zone database.
func Zone(loc *time.Location) TimeZone {
	return zone{loc: loc}
}

// LoadZone loads a zone by its IANA name.
func LoadZone(name string) (TimeZone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("time zone %q: %v: %w", name, err, ErrInvalidArgument)
	}
	return Zone(loc), nil
}

func (z zone) ID() string { return z.loc.String() }

func (z zone) Offset(t time.Time) time.Duration {
	_, secs := t.In(z.loc).Zone()
	return time.Duration(secs) * time.Second
}

func (z zone) IsDaylightSaving(t time.Time) bool {
	return t.In(z.loc).IsDST()
}

// RawOffset finds the standard offset in t's year. Daylight saving time
// always moves clocks forward, so the smaller of the January and July offsets
// is the standard one in either hemisphere.
func (z zone) RawOffset(t time.Time) time.Duration {
	year := t.In(z.loc).Year()
	_, jan := time.Date(year, time.January, 1, 12, 0, 0, 0, z.loc).Zone()
	_, jul := time.Date(year, time.July, 1, 12, 0, 0, 0, z.loc).Zone()
	if jul < jan {
		jan = jul
	}
	return time.Duration(jan) * time.Second
}

// In presents t in tz. Zones without a *time.Location get a fixed zone with
// the offset in effect at t.
func In(t time.Time, tz TimeZone) time.Time {
	if z, ok := tz.(zone); ok {
		return t.In(z.loc)
	}
	offset := tz.Offset(t)
	return t.In(time.FixedZone(tz.ID(), int(offset/time.Second)))
}
