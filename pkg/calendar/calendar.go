// Package calendar turns the fractional UTC hours produced by an
// astro.Calculator into instants on a civil date at a location: sunrise,
// sunset, solar noon, twilight, and the temporal hours between them.
package calendar

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/spencer-p/zmandash/pkg/astro"
	"github.com/spencer-p/zmandash/pkg/geo"
	"github.com/spencer-p/zmandash/pkg/timetricks"
)

// solarEvent says which side of the day an instant belongs to, used to put
// the instant on the right local date.
type solarEvent int

const (
	rising solarEvent = iota
	setting
)

func (e solarEvent) String() string {
	if e == rising {
		return "sunrise"
	}
	return "sunset"
}

// Astronomical binds a location, a calculator and a civil date. All times it
// returns are presented in the location's time zone.
//
// An Astronomical is not safe for concurrent mutation; use WithDate to get an
// independent calendar for another day.
type Astronomical struct {
	loc  *geo.Location
	calc astro.Calculator
	date time.Time
}

// New creates a calendar for loc on date's calendar day. A nil calculator
// selects NOAA.
func New(loc *geo.Location, calc astro.Calculator, date time.Time) *Astronomical {
	if calc == nil {
		calc = astro.NewNOAA()
	}
	return &Astronomical{
		loc:  loc,
		calc: calc,
		date: timetricks.CivilDate(date),
	}
}

func (c *Astronomical) Location() *geo.Location      { return c.loc }
func (c *Astronomical) Calculator() astro.Calculator { return c.calc }

// Date is the civil date as midnight UTC.
func (c *Astronomical) Date() time.Time { return c.date }

// SetDate moves the calendar to another day, keeping location and calculator.
func (c *Astronomical) SetDate(date time.Time) { c.date = timetricks.CivilDate(date) }

func (c *Astronomical) SetCalculator(calc astro.Calculator) { c.calc = calc }

// WithDate returns a calendar for another day sharing c's location and
// calculator. c is unchanged.
func (c *Astronomical) WithDate(date time.Time) *Astronomical {
	return New(c.loc, c.calc, date)
}

// Sunrise is when the top of the sun appears, adjusted for the location's
// elevation.
func (c *Astronomical) Sunrise() (time.Time, error) {
	return c.event(astro.GeometricZenith, true, rising)
}

// SeaLevelSunrise is sunrise ignoring elevation. Proportional zmanim are
// based on it so they do not shift with the observer's height.
func (c *Astronomical) SeaLevelSunrise() (time.Time, error) {
	return c.event(astro.GeometricZenith, false, rising)
}

func (c *Astronomical) Sunset() (time.Time, error) {
	return c.event(astro.GeometricZenith, true, setting)
}

func (c *Astronomical) SeaLevelSunset() (time.Time, error) {
	return c.event(astro.GeometricZenith, false, setting)
}

// SunriseOffsetByDegrees is when the rising sun reaches zenith, eg. 106.1 for
// 16.1° below the horizon.
func (c *Astronomical) SunriseOffsetByDegrees(zenith float64) (time.Time, error) {
	return c.event(zenith, true, rising)
}

// SunsetOffsetByDegrees is when the setting sun reaches zenith.
func (c *Astronomical) SunsetOffsetByDegrees(zenith float64) (time.Time, error) {
	return c.event(zenith, true, setting)
}

func (c *Astronomical) BeginCivilTwilight() (time.Time, error) {
	return c.SunriseOffsetByDegrees(astro.CivilZenith)
}

func (c *Astronomical) BeginNauticalTwilight() (time.Time, error) {
	return c.SunriseOffsetByDegrees(astro.NauticalZenith)
}

func (c *Astronomical) BeginAstronomicalTwilight() (time.Time, error) {
	return c.SunriseOffsetByDegrees(astro.AstronomicalZenith)
}

func (c *Astronomical) EndCivilTwilight() (time.Time, error) {
	return c.SunsetOffsetByDegrees(astro.CivilZenith)
}

func (c *Astronomical) EndNauticalTwilight() (time.Time, error) {
	return c.SunsetOffsetByDegrees(astro.NauticalZenith)
}

func (c *Astronomical) EndAstronomicalTwilight() (time.Time, error) {
	return c.SunsetOffsetByDegrees(astro.AstronomicalZenith)
}

// UTCSunrise is the calculator's elevation adjusted result in hours.
func (c *Astronomical) UTCSunrise(zenith float64) (float64, error) {
	return c.utc(zenith, true, rising)
}

func (c *Astronomical) UTCSeaLevelSunrise(zenith float64) (float64, error) {
	return c.utc(zenith, false, rising)
}

func (c *Astronomical) UTCSunset(zenith float64) (float64, error) {
	return c.utc(zenith, true, setting)
}

func (c *Astronomical) UTCSeaLevelSunset(zenith float64) (float64, error) {
	return c.utc(zenith, false, setting)
}

// SunTransit is solar noon, halfway between sea level sunrise and sunset.
func (c *Astronomical) SunTransit() (time.Time, error) {
	return c.SunTransitBetween(c.SeaLevelSunrise, c.SeaLevelSunset)
}

// SunTransitBetween is the midpoint of the day defined by two anchors, six
// temporal hours after the first.
func (c *Astronomical) SunTransitBetween(start, end func() (time.Time, error)) (time.Time, error) {
	s, err := start()
	if err != nil {
		return time.Time{}, err
	}
	e, err := end()
	if err != nil {
		return time.Time{}, err
	}
	return s.Add(TemporalHour(s, e) * 6), nil
}

// TemporalHourOfDay is a twelfth of the time from sea level sunrise to sea
// level sunset.
func (c *Astronomical) TemporalHourOfDay() (time.Duration, error) {
	rise, err := c.SeaLevelSunrise()
	if err != nil {
		return 0, err
	}
	set, err := c.SeaLevelSunset()
	if err != nil {
		return 0, err
	}
	return TemporalHour(rise, set), nil
}

// TemporalHour is a twelfth of the time between start and end, truncated to
// the nanosecond.
func TemporalHour(start, end time.Time) time.Duration {
	return end.Sub(start) / 12
}

// TimeOffset shifts t by offset.
func TimeOffset(t time.Time, offset time.Duration) time.Time {
	return t.Add(offset)
}

// Search bounds for the solar dip, in degrees below the geometric horizon.
const (
	maxSolarDip       = 30.0
	solarDipPrecision = 0.0001
)

// SunriseSolarDipFromOffset finds how many degrees below the horizon the sun
// is the given time before sea level sunrise.
func (c *Astronomical) SunriseSolarDipFromOffset(before time.Duration) (float64, error) {
	rise, err := c.SeaLevelSunrise()
	if err != nil {
		return 0, err
	}
	target := rise.Add(-before)
	return c.solarDip(func(t time.Time) bool { return !t.After(target) }, rising)
}

// SunsetSolarDipFromOffset finds how many degrees below the horizon the sun
// is the given time after sea level sunset.
func (c *Astronomical) SunsetSolarDipFromOffset(after time.Duration) (float64, error) {
	set, err := c.SeaLevelSunset()
	if err != nil {
		return 0, err
	}
	target := set.Add(after)
	return c.solarDip(func(t time.Time) bool { return !t.Before(target) }, setting)
}

// solarDip bisects the dip until reached reports that the event at that dip is
// at or beyond the target. The sun's depression grows monotonically with
// distance from sunrise or sunset, and a dip it never reaches counts as
// beyond the target.
func (c *Astronomical) solarDip(reached func(time.Time) bool, e solarEvent) (float64, error) {
	lo, hi := 0.0, maxSolarDip
	for hi-lo > solarDipPrecision {
		mid := (lo + hi) / 2
		t, err := c.event(astro.GeometricZenith+mid, true, e)
		switch {
		case errors.Is(err, astro.ErrNoSunriseOrSunset) || (err == nil && reached(t)):
			hi = mid
		case err != nil:
			return 0, err
		default:
			lo = mid
		}
	}
	return math.Round(hi/solarDipPrecision) * solarDipPrecision, nil
}

func (c *Astronomical) utc(zenith float64, adjustForElevation bool, e solarEvent) (float64, error) {
	var (
		hours float64
		err   error
	)
	if e == rising {
		hours, err = c.calc.UTCSunrise(c.date, c.loc, zenith, adjustForElevation)
	} else {
		hours, err = c.calc.UTCSunset(c.date, c.loc, zenith, adjustForElevation)
	}
	if err != nil {
		return 0, fmt.Errorf("%s at zenith %v on %s in %s: %w",
			e, zenith, c.date.Format(timetricks.DateLayout), c.loc.Name(), err)
	}
	return hours, nil
}

func (c *Astronomical) event(zenith float64, adjustForElevation bool, e solarEvent) (time.Time, error) {
	hours, err := c.utc(zenith, adjustForElevation, e)
	if err != nil {
		return time.Time{}, err
	}
	return c.instant(hours, e), nil
}

// Local hours past which an event is taken to belong to a neighbouring day.
const (
	morningHour = 6.0
	eveningHour = 18.0
)

// instant places hours of the UTC day on the calendar's local date. The
// calculators work on the UTC day, so in zones far from Greenwich a sunrise
// can land on the next local day or a sunset on the previous one, and near
// the arctic circle a summer sunset falls after local midnight. A rising
// event after 18:00 local belongs to the day before and a setting event
// before 06:00 local to the day after.
func (c *Astronomical) instant(hours float64, e solarEvent) time.Time {
	t := c.date.Add(time.Duration(hours * float64(time.Hour))).Round(time.Millisecond)
	local := hours + c.loc.TimeZone().Offset(t).Hours()
	switch {
	case e == rising && local > eveningHour:
		t = t.Add(-24 * time.Hour)
	case e == setting && local < morningHour:
		t = t.Add(24 * time.Hour)
	}
	return geo.In(t, c.loc.TimeZone())
}
