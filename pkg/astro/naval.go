package astro

import (
	"math"
	"time"

	"github.com/spencer-p/zmandash/pkg/geo"
)

const degreesPerHour = 360.0 / 24

// NavalAlmanac implements the sunrise algorithm from the Almanac for
// Computers, 1990, published by the Nautical Almanac Office of the US Naval
// Observatory. It works from the day of the year and is accurate to a minute
// or two outside the polar regions.
type NavalAlmanac struct {
	Horizon
}

// NewNavalAlmanac returns a NavalAlmanac calculator with the default horizon.
func NewNavalAlmanac() NavalAlmanac {
	return NavalAlmanac{Horizon: DefaultHorizon}
}

func (NavalAlmanac) Name() string { return "naval" }

func (c NavalAlmanac) UTCSunrise(date time.Time, loc *geo.Location, zenith float64, adjustForElevation bool) (float64, error) {
	return c.utcEvent(date, loc, zenith, adjustForElevation, rising)
}

func (c NavalAlmanac) UTCSunset(date time.Time, loc *geo.Location, zenith float64, adjustForElevation bool) (float64, error) {
	return c.utcEvent(date, loc, zenith, adjustForElevation, setting)
}

func (c NavalAlmanac) utcEvent(date time.Time, loc *geo.Location, zenith float64, adjustForElevation bool, e event) (float64, error) {
	elevation := 0.0
	if adjustForElevation {
		elevation = loc.Elevation()
	}
	zenith = c.AdjustZenith(zenith, elevation)

	hoursFromMeridian := loc.Longitude() / degreesPerHour
	days := approxTimeDays(date.YearDay(), hoursFromMeridian, e)

	meanAnomaly := 0.9856*days - 3.289
	trueLongitude := sunTrueLongitudeApprox(meanAnomaly)
	rightAscension := sunRightAscensionHours(trueLongitude)

	cosH := cosLocalHourAngle(trueLongitude, loc.Latitude(), zenith)
	if math.IsNaN(cosH) || cosH < -1 || cosH > 1 {
		return 0, ErrNoSunriseOrSunset
	}
	h := degrees(math.Acos(cosH))
	if e == rising {
		h = 360 - h
	}

	localMeanTime := h/degreesPerHour + rightAscension - 0.06571*days - 6.622
	return normalizeHours(localMeanTime - hoursFromMeridian), nil
}

// approxTimeDays is the day of the year plus the fraction of a day at which
// the event roughly happens: 6am local for sunrise and 6pm for sunset.
func approxTimeDays(dayOfYear int, hoursFromMeridian float64, e event) float64 {
	hour := 6.0
	if e == setting {
		hour = 18.0
	}
	return float64(dayOfYear) + (hour-hoursFromMeridian)/24
}

func sunTrueLongitudeApprox(meanAnomaly float64) float64 {
	m := radians(meanAnomaly)
	l := meanAnomaly + 1.916*math.Sin(m) + 0.020*math.Sin(2*m) + 282.634
	switch {
	case l >= 360:
		l -= 360
	case l < 0:
		l += 360
	}
	return l
}

// sunRightAscensionHours puts the right ascension in the same quadrant as the
// true longitude.
func sunRightAscensionHours(trueLongitude float64) float64 {
	ra := degrees(math.Atan(0.91764 * math.Tan(radians(trueLongitude))))
	lQuadrant := math.Floor(trueLongitude/90) * 90
	raQuadrant := math.Floor(ra/90) * 90
	return (ra + lQuadrant - raQuadrant) / degreesPerHour
}

func cosLocalHourAngle(trueLongitude, latitude, zenith float64) float64 {
	sinDec := 0.39782 * math.Sin(radians(trueLongitude))
	cosDec := math.Cos(math.Asin(sinDec))
	lat := radians(latitude)
	return (math.Cos(radians(zenith)) - sinDec*math.Sin(lat)) / (cosDec * math.Cos(lat))
}
