package astro

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/spencer-p/zmandash/pkg/geo"
)

const (
	j2000          = 2451545.0
	julianCentury  = 36525.0
	minutesPerDay  = 1440.0
	minutesPerHour = 60.0
)

// NOAA implements the algorithm of the NOAA solar calculator, itself based on
// Jean Meeus' Astronomical Algorithms. It refines declination and equation of
// time at the estimated event before solving the final hour angle.
type NOAA struct {
	Horizon
}

// NewNOAA returns a NOAA calculator with the default horizon.
func NewNOAA() NOAA {
	return NOAA{Horizon: DefaultHorizon}
}

func (NOAA) Name() string { return "noaa" }

func (c NOAA) UTCSunrise(date time.Time, loc *geo.Location, zenith float64, adjustForElevation bool) (float64, error) {
	return c.utcEvent(date, loc, zenith, adjustForElevation, rising)
}

func (c NOAA) UTCSunset(date time.Time, loc *geo.Location, zenith float64, adjustForElevation bool) (float64, error) {
	return c.utcEvent(date, loc, zenith, adjustForElevation, setting)
}

func (c NOAA) utcEvent(date time.Time, loc *geo.Location, zenith float64, adjustForElevation bool, e event) (float64, error) {
	elevation := 0.0
	if adjustForElevation {
		elevation = loc.Elevation()
	}
	zenith = c.AdjustZenith(zenith, elevation)

	// The NOAA formulas take longitude as positive to the west.
	minutes, err := eventUTC(julianDay(date), loc.Latitude(), -loc.Longitude(), zenith, e)
	if err != nil {
		return 0, err
	}
	return normalizeHours(minutes / minutesPerHour), nil
}

// julianDay is the Julian day at 0h UT on the date's calendar day.
func julianDay(date time.Time) float64 {
	y, m, d := date.Date()
	return julian.CalendarGregorianToJD(y, int(m), float64(d))
}

func centuriesFromJulianDay(jd float64) float64 { return (jd - j2000) / julianCentury }
func julianDayFromCenturies(t float64) float64  { return t*julianCentury + j2000 }

// eventUTC returns the minutes after 0h UT at which the sun crosses zenith.
// Both passes estimate the event time, then recompute the equation of time and
// declination at that estimate.
func eventUTC(jd, latitude, longitude, zenith float64, e event) (float64, error) {
	t := centuriesFromJulianDay(jd)
	noon := solarNoonUTC(t, longitude)
	estimate := centuriesFromJulianDay(jd + noon/minutesPerDay)

	minutes, err := eventAt(estimate, latitude, longitude, zenith, e)
	if err != nil {
		return 0, err
	}
	refined := centuriesFromJulianDay(julianDayFromCenturies(t) + minutes/minutesPerDay)
	return eventAt(refined, latitude, longitude, zenith, e)
}

func eventAt(t, latitude, longitude, zenith float64, e event) (float64, error) {
	eqTime := equationOfTime(t)
	declination := sunDeclination(t)
	ha, err := hourAngle(latitude, declination, zenith)
	if err != nil {
		return 0, err
	}
	if e == setting {
		ha = -ha
	}
	delta := longitude - degrees(ha)
	return 720 + 4*delta - eqTime, nil
}

// solarNoonUTC returns the minutes after 0h UT of solar noon for the day of
// Julian century t.
func solarNoonUTC(t, longitude float64) float64 {
	tnoon := centuriesFromJulianDay(julianDayFromCenturies(t) + longitude/360)
	noon := 720 + 4*longitude - equationOfTime(tnoon)

	tnoon = centuriesFromJulianDay(julianDayFromCenturies(t) - 0.5 + noon/minutesPerDay)
	return 720 + 4*longitude - equationOfTime(tnoon)
}

// hourAngle is the sun's hour angle in radians when it is at zenith. For
// sunset negate the result.
func hourAngle(latitude, declination, zenith float64) (float64, error) {
	lat := radians(latitude)
	dec := radians(declination)
	x := math.Cos(radians(zenith))/(math.Cos(lat)*math.Cos(dec)) - math.Tan(lat)*math.Tan(dec)
	if math.IsNaN(x) || x < -1 || x > 1 {
		return 0, ErrNoSunriseOrSunset
	}
	return math.Acos(x), nil
}

func sunGeometricMeanLongitude(t float64) float64 {
	l0 := math.Mod(280.46646+t*(36000.76983+0.0003032*t), 360)
	if l0 < 0 {
		l0 += 360
	}
	return l0
}

func sunGeometricMeanAnomaly(t float64) float64 {
	return 357.52911 + t*(35999.05029-0.0001537*t)
}

func earthOrbitEccentricity(t float64) float64 {
	return 0.016708634 - t*(0.000042037+0.0000001267*t)
}

func sunEquationOfCenter(t float64) float64 {
	m := radians(sunGeometricMeanAnomaly(t))
	return math.Sin(m)*(1.914602-t*(0.004817+0.000014*t)) +
		math.Sin(2*m)*(0.019993-0.000101*t) +
		math.Sin(3*m)*0.000289
}

func sunTrueLongitude(t float64) float64 {
	return sunGeometricMeanLongitude(t) + sunEquationOfCenter(t)
}

func sunApparentLongitude(t float64) float64 {
	omega := 125.04 - 1934.136*t
	return sunTrueLongitude(t) - 0.00569 - 0.00478*math.Sin(radians(omega))
}

func meanObliquityOfEcliptic(t float64) float64 {
	seconds := 21.448 - t*(46.8150+t*(0.00059-t*0.001813))
	return 23 + (26+seconds/60)/60
}

func obliquityCorrection(t float64) float64 {
	omega := 125.04 - 1934.136*t
	return meanObliquityOfEcliptic(t) + 0.00256*math.Cos(radians(omega))
}

// sunDeclination in degrees.
func sunDeclination(t float64) float64 {
	e := radians(obliquityCorrection(t))
	lambda := radians(sunApparentLongitude(t))
	return degrees(math.Asin(math.Sin(e) * math.Sin(lambda)))
}

// equationOfTime is true solar time minus mean solar time, in minutes.
func equationOfTime(t float64) float64 {
	epsilon := radians(obliquityCorrection(t))
	l0 := radians(sunGeometricMeanLongitude(t))
	e := earthOrbitEccentricity(t)
	m := radians(sunGeometricMeanAnomaly(t))

	y := math.Tan(epsilon / 2)
	y *= y

	sin2l0 := math.Sin(2 * l0)
	sinm := math.Sin(m)
	cos2l0 := math.Cos(2 * l0)
	sin4l0 := math.Sin(4 * l0)
	sin2m := math.Sin(2 * m)

	eq := y*sin2l0 - 2*e*sinm + 4*e*y*sinm*cos2l0 - 0.5*y*y*sin4l0 - 1.25*e*e*sin2m
	return degrees(eq) * 4
}
