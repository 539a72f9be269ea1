// Package astro computes the UTC time of sunrise and sunset, or of the sun
// reaching any other zenith angle, for a date and location. Two interchangeable
// algorithms are provided: NOAA's implementation of Jean Meeus' formulas and
// the simpler one published in the US Naval Observatory's Almanac for
// Computers. Results are fractional hours of the UTC day.
package astro

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spencer-p/zmandash/pkg/geo"
)

// Zenith angles in degrees from straight up.
const (
	// GeometricZenith is the center of the sun on a flat horizon.
	GeometricZenith = 90.0
	CivilZenith     = 96.0
	NauticalZenith  = 102.0
	// AstronomicalZenith is full darkness.
	AstronomicalZenith = 108.0
)

// ErrNoSunriseOrSunset is returned when the sun does not reach the requested
// zenith on a date, as in the polar day and night.
var ErrNoSunriseOrSunset = errors.New("the sun does not reach the zenith on this date")

// Calculator finds when the sun crosses a zenith. Implementations hold no
// mutable state and can be shared between goroutines.
type Calculator interface {
	// Name identifies the algorithm.
	Name() string
	// UTCSunrise returns the UTC time of day, in hours, at which the rising
	// sun reaches zenith on the date's year, month and day. If
	// adjustForElevation is set, the location's elevation lowers the
	// horizon.
	UTCSunrise(date time.Time, loc *geo.Location, zenith float64, adjustForElevation bool) (float64, error)
	// UTCSunset is UTCSunrise for the setting sun.
	UTCSunset(date time.Time, loc *geo.Location, zenith float64, adjustForElevation bool) (float64, error)
}

// Horizon describes how the visible horizon differs from the geometric one.
type Horizon struct {
	// SolarRadius is the sun's apparent radius in degrees. Sunrise is when the
	// top of the disc appears.
	SolarRadius float64
	// Refraction is the atmospheric refraction at the horizon in degrees.
	Refraction float64
	// EarthRadius is used to find the dip of the horizon from an elevated
	// observer, in kilometers.
	EarthRadius float64
}

// DefaultHorizon uses a 16' solar radius and 34' of refraction.
var DefaultHorizon = Horizon{
	SolarRadius: 16.0 / 60,
	Refraction:  34.0 / 60,
	EarthRadius: 6356.9,
}

// ElevationAdjustment is the dip of the horizon in degrees seen from an
// elevation in meters.
func (h Horizon) ElevationAdjustment(elevation float64) float64 {
	return degrees(math.Acos(h.EarthRadius / (h.EarthRadius + elevation/1000)))
}

// AdjustZenith widens the geometric zenith by the solar radius, refraction and
// the horizon dip at elevation. Any other zenith is returned unchanged: the
// degree based zmanim are defined against the geometric horizon.
func (h Horizon) AdjustZenith(zenith, elevation float64) float64 {
	if zenith != GeometricZenith {
		return zenith
	}
	return zenith + h.SolarRadius + h.Refraction + h.ElevationAdjustment(elevation)
}

// ByName returns the calculator for "noaa" or "naval" (case insensitive) with
// the default horizon. An empty name selects NOAA.
func ByName(name string) (Calculator, error) {
	switch strings.ToLower(name) {
	case "", "noaa":
		return NewNOAA(), nil
	case "naval", "navalalmanac", "suntimes":
		return NewNavalAlmanac(), nil
	}
	return nil, fmt.Errorf("unknown calculator %q: %w", name, geo.ErrInvalidArgument)
}

// Names lists the calculators accepted by ByName.
func Names() []string {
	return []string{"noaa", "naval"}
}

// event selects which crossing of the zenith is wanted.
type event int

const (
	rising event = iota
	setting
)

func (e event) String() string {
	if e == rising {
		return "sunrise"
	}
	return "sunset"
}

// normalizeHours wraps hours into [0, 24).
func normalizeHours(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
