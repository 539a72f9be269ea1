// Package zmanim derives halachic times from the anchors of an astronomical
// calendar. Every zman is a fixed function of one or two anchors: a degree
// based dawn or nightfall, a clock offset from sunrise or sunset, or a number
// of temporal hours (shaos zmaniyos) into a day running between two anchors.
//
// When an anchor does not exist on a date, as in the polar night, every zman
// depending on it returns the same astro.ErrNoSunriseOrSunset.
package zmanim

import (
	"fmt"
	"time"

	"github.com/spencer-p/zmandash/pkg/astro"
	"github.com/spencer-p/zmandash/pkg/calendar"
	"github.com/spencer-p/zmandash/pkg/geo"
	"github.com/spencer-p/zmandash/pkg/timetricks"
)

// Zeniths for the degree based zmanim, in degrees from straight up.
const (
	zenith16Point1 = astro.GeometricZenith + 16.1
	zenith8Point5  = astro.GeometricZenith + 8.5
)

// Temporal hours from the start of the day to each proportional zman.
const (
	sofZmanShmaHours  = 3.0
	sofZmanTfilaHours = 4.0
	biurChametzHours  = 5.0
	chatzosHours      = 6.0
	minchaGedolaHours = 6.5
	minchaKetanaHours = 9.5
	plagHaminchaHours = 10.75
)

// DefaultCandleLightingOffset is how long before sunset candles are lit.
const DefaultCandleLightingOffset = 18 * time.Minute

// Calendar computes the common zmanim.
type Calendar struct {
	*calendar.Astronomical
	candleLightingOffset time.Duration
}

// NewCalendar creates a Calendar for loc on date's calendar day. A nil
// calculator selects NOAA.
func NewCalendar(loc *geo.Location, calc astro.Calculator, date time.Time) *Calendar {
	return &Calendar{
		Astronomical:         calendar.New(loc, calc, date),
		candleLightingOffset: DefaultCandleLightingOffset,
	}
}

// WithDate returns a Calendar for another day with the same location,
// calculator and settings.
func (c *Calendar) WithDate(date time.Time) *Calendar {
	return &Calendar{
		Astronomical:         c.Astronomical.WithDate(date),
		candleLightingOffset: c.candleLightingOffset,
	}
}

func (c *Calendar) CandleLightingOffset() time.Duration { return c.candleLightingOffset }

// SetCandleLightingOffset changes how long before sunset CandleLighting is.
func (c *Calendar) SetCandleLightingOffset(offset time.Duration) error {
	if offset < 0 {
		return fmt.Errorf("candle lighting offset %v cannot be negative: %w", offset, geo.ErrInvalidArgument)
	}
	c.candleLightingOffset = offset
	return nil
}

// AlosHashachar is dawn, when the sun is 16.1° below the horizon.
func (c *Calendar) AlosHashachar() (time.Time, error) {
	return c.SunriseOffsetByDegrees(zenith16Point1)
}

// Alos72 is dawn 72 minutes before sea level sunrise.
func (c *Calendar) Alos72() (time.Time, error) {
	return offset(c.SeaLevelSunrise, -72*time.Minute)
}

// Chatzos is midday, the sun's transit.
func (c *Calendar) Chatzos() (time.Time, error) {
	return c.SunTransit()
}

// SolarMidnight is halfway between today's sea level sunset and tomorrow's
// sea level sunrise.
func (c *Calendar) SolarMidnight() (time.Time, error) {
	set, err := c.SeaLevelSunset()
	if err != nil {
		return time.Time{}, err
	}
	tomorrow := c.Astronomical.WithDate(timetricks.NextDay(c.Date()))
	rise, err := tomorrow.SeaLevelSunrise()
	if err != nil {
		return time.Time{}, err
	}
	return AtTemporalHours(set, rise, chatzosHours), nil
}

// Tzais is nightfall, when the sun is 8.5° below the horizon.
func (c *Calendar) Tzais() (time.Time, error) {
	return c.SunsetOffsetByDegrees(zenith8Point5)
}

// Tzais72 is nightfall 72 minutes after sea level sunset.
func (c *Calendar) Tzais72() (time.Time, error) {
	return offset(c.SeaLevelSunset, 72*time.Minute)
}

// CandleLighting is CandleLightingOffset before sea level sunset.
func (c *Calendar) CandleLighting() (time.Time, error) {
	return offset(c.SeaLevelSunset, -c.candleLightingOffset)
}

// ShaahZmanisGRA is a twelfth of the day from sea level sunrise to sea level
// sunset, according to the Vilna Gaon.
func (c *Calendar) ShaahZmanisGRA() (time.Duration, error) {
	return temporalHour(c.SeaLevelSunrise, c.SeaLevelSunset)
}

// ShaahZmanisMGA is a twelfth of the day from Alos72 to Tzais72, according to
// the Magen Avraham.
func (c *Calendar) ShaahZmanisMGA() (time.Duration, error) {
	return temporalHour(c.Alos72, c.Tzais72)
}

func (c *Calendar) SofZmanShmaGRA() (time.Time, error) {
	return proportional(c.SeaLevelSunrise, c.SeaLevelSunset, sofZmanShmaHours)
}

func (c *Calendar) SofZmanShmaMGA() (time.Time, error) {
	return proportional(c.Alos72, c.Tzais72, sofZmanShmaHours)
}

func (c *Calendar) SofZmanTfilaGRA() (time.Time, error) {
	return proportional(c.SeaLevelSunrise, c.SeaLevelSunset, sofZmanTfilaHours)
}

func (c *Calendar) SofZmanTfilaMGA() (time.Time, error) {
	return proportional(c.Alos72, c.Tzais72, sofZmanTfilaHours)
}

func (c *Calendar) MinchaGedola() (time.Time, error) {
	return proportional(c.SeaLevelSunrise, c.SeaLevelSunset, minchaGedolaHours)
}

func (c *Calendar) MinchaKetana() (time.Time, error) {
	return proportional(c.SeaLevelSunrise, c.SeaLevelSunset, minchaKetanaHours)
}

func (c *Calendar) PlagHamincha() (time.Time, error) {
	return proportional(c.SeaLevelSunrise, c.SeaLevelSunset, plagHaminchaHours)
}

// SofZmanShma is the latest time for the morning shema in a day running from
// start to end: three temporal hours in.
func SofZmanShma(start, end time.Time) time.Time {
	return AtTemporalHours(start, end, sofZmanShmaHours)
}

// SofZmanTfila is four temporal hours into the day.
func SofZmanTfila(start, end time.Time) time.Time {
	return AtTemporalHours(start, end, sofZmanTfilaHours)
}

// MinchaGedolaBetween is six and a half temporal hours into the day.
func MinchaGedolaBetween(start, end time.Time) time.Time {
	return AtTemporalHours(start, end, minchaGedolaHours)
}

// MinchaKetanaBetween is nine and a half temporal hours into the day.
func MinchaKetanaBetween(start, end time.Time) time.Time {
	return AtTemporalHours(start, end, minchaKetanaHours)
}

// PlagHaminchaBetween is ten and three quarter temporal hours into the day.
func PlagHaminchaBetween(start, end time.Time) time.Time {
	return AtTemporalHours(start, end, plagHaminchaHours)
}

// AtTemporalHours is the given number of temporal hours after start, for the
// day running from start to end.
func AtTemporalHours(start, end time.Time, hours float64) time.Time {
	return start.Add(scale(calendar.TemporalHour(start, end), hours))
}

// anchor is any method yielding an instant that may not exist on a date.
type anchor func() (time.Time, error)

func offset(a anchor, d time.Duration) (time.Time, error) {
	t, err := a()
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(d), nil
}

func temporalHour(start, end anchor) (time.Duration, error) {
	s, err := start()
	if err != nil {
		return 0, err
	}
	e, err := end()
	if err != nil {
		return 0, err
	}
	return calendar.TemporalHour(s, e), nil
}

func proportional(start, end anchor, hours float64) (time.Time, error) {
	s, err := start()
	if err != nil {
		return time.Time{}, err
	}
	e, err := end()
	if err != nil {
		return time.Time{}, err
	}
	return AtTemporalHours(s, e, hours), nil
}

func scale(d time.Duration, n float64) time.Duration {
	return time.Duration(float64(d) * n)
}
