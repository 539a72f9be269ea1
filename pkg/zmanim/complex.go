package zmanim

import (
	"time"

	"github.com/spencer-p/zmandash/pkg/astro"
	"github.com/spencer-p/zmandash/pkg/geo"
)

// Zeniths used by the less common opinions.
const (
	zenith1Point583 = astro.GeometricZenith + 1.583
	zenith3Point7   = astro.GeometricZenith + 3.7
	zenith3Point8   = astro.GeometricZenith + 3.8
	zenith5Point95  = astro.GeometricZenith + 5.95
	zenith6         = astro.GeometricZenith + 6
	zenith7Point083 = astro.GeometricZenith + 7.083
	zenith9Point5   = astro.GeometricZenith + 9.5
	zenith10Point2  = astro.GeometricZenith + 10.2
	zenith11        = astro.GeometricZenith + 11
	zenith11Point5  = astro.GeometricZenith + 11.5
	zenith13Point24 = astro.GeometricZenith + 13.24
	zenith16Point9  = astro.GeometricZenith + 16.9
	zenith18        = astro.GeometricZenith + 18
	zenith19Point8  = astro.GeometricZenith + 19.8
	zenith26        = astro.GeometricZenith + 26
)

// Fractions of a GRA temporal hour used by the zmaniyos offsets: 72 minutes
// on an equinox day is 1.2 hours, and so on.
const (
	zmanis72  = 1.2
	zmanis90  = 1.5
	zmanis96  = 1.6
	zmanis120 = 2.0
)

// ComplexCalendar adds the zmanim of many other opinions to Calendar.
type ComplexCalendar struct {
	*Calendar
}

// NewComplexCalendar creates a ComplexCalendar for loc on date's calendar day.
// A nil calculator selects NOAA.
func NewComplexCalendar(loc *geo.Location, calc astro.Calculator, date time.Time) *ComplexCalendar {
	return &ComplexCalendar{NewCalendar(loc, calc, date)}
}

// WithDate returns a ComplexCalendar for another day with the same location,
// calculator and settings.
func (c *ComplexCalendar) WithDate(date time.Time) *ComplexCalendar {
	return &ComplexCalendar{c.Calendar.WithDate(date)}
}

// zmanisOffset moves an anchor by a number of GRA temporal hours; negative
// hours are before it.
func (c *ComplexCalendar) zmanisOffset(a anchor, hours float64) (time.Time, error) {
	sz, err := c.ShaahZmanisGRA()
	if err != nil {
		return time.Time{}, err
	}
	return offset(a, scale(sz, hours))
}

// Shaos zmaniyos

func (c *ComplexCalendar) ShaahZmanis16Point1Degrees() (time.Duration, error) {
	return temporalHour(c.AlosHashachar, c.Tzais16Point1Degrees)
}

func (c *ComplexCalendar) ShaahZmanis18Degrees() (time.Duration, error) {
	return temporalHour(c.Alos18Degrees, c.Tzais18Degrees)
}

func (c *ComplexCalendar) ShaahZmanis19Point8Degrees() (time.Duration, error) {
	return temporalHour(c.Alos19Point8Degrees, c.Tzais19Point8Degrees)
}

func (c *ComplexCalendar) ShaahZmanis26Degrees() (time.Duration, error) {
	return temporalHour(c.Alos26Degrees, c.Tzais26Degrees)
}

func (c *ComplexCalendar) ShaahZmanis60Minutes() (time.Duration, error) {
	return temporalHour(c.Alos60, c.Tzais60)
}

func (c *ComplexCalendar) ShaahZmanis72Minutes() (time.Duration, error) {
	return c.ShaahZmanisMGA()
}

func (c *ComplexCalendar) ShaahZmanis72MinutesZmanis() (time.Duration, error) {
	return temporalHour(c.Alos72Zmanis, c.Tzais72Zmanis)
}

func (c *ComplexCalendar) ShaahZmanis90Minutes() (time.Duration, error) {
	return temporalHour(c.Alos90, c.Tzais90)
}

func (c *ComplexCalendar) ShaahZmanis90MinutesZmanis() (time.Duration, error) {
	return temporalHour(c.Alos90Zmanis, c.Tzais90Zmanis)
}

func (c *ComplexCalendar) ShaahZmanis96Minutes() (time.Duration, error) {
	return temporalHour(c.Alos96, c.Tzais96)
}

func (c *ComplexCalendar) ShaahZmanis96MinutesZmanis() (time.Duration, error) {
	return temporalHour(c.Alos96Zmanis, c.Tzais96Zmanis)
}

func (c *ComplexCalendar) ShaahZmanis120Minutes() (time.Duration, error) {
	return temporalHour(c.Alos120, c.Tzais120)
}

func (c *ComplexCalendar) ShaahZmanis120MinutesZmanis() (time.Duration, error) {
	return temporalHour(c.Alos120Zmanis, c.Tzais120Zmanis)
}

// ShaahZmanisBaalHatanya runs from sunrise to sunset as the Baal HaTanya
// defines them, with the sun 1.583° below the horizon.
func (c *ComplexCalendar) ShaahZmanisBaalHatanya() (time.Duration, error) {
	return temporalHour(c.SunriseBaalHatanya, c.SunsetBaalHatanya)
}

// SunriseBaalHatanya is netz amiti, when the sun's center is 1.583° below the
// horizon.
func (c *ComplexCalendar) SunriseBaalHatanya() (time.Time, error) {
	return c.SunriseOffsetByDegrees(zenith1Point583)
}

func (c *ComplexCalendar) SunsetBaalHatanya() (time.Time, error) {
	return c.SunsetOffsetByDegrees(zenith1Point583)
}

// Alos

func (c *ComplexCalendar) Alos60() (time.Time, error) {
	return offset(c.SeaLevelSunrise, -60*time.Minute)
}

func (c *ComplexCalendar) Alos72Zmanis() (time.Time, error) {
	return c.zmanisOffset(c.SeaLevelSunrise, -zmanis72)
}

func (c *ComplexCalendar) Alos90() (time.Time, error) {
	return offset(c.SeaLevelSunrise, -90*time.Minute)
}

func (c *ComplexCalendar) Alos90Zmanis() (time.Time, error) {
	return c.zmanisOffset(c.SeaLevelSunrise, -zmanis90)
}

func (c *ComplexCalendar) Alos96() (time.Time, error) {
	return offset(c.SeaLevelSunrise, -96*time.Minute)
}

func (c *ComplexCalendar) Alos96Zmanis() (time.Time, error) {
	return c.zmanisOffset(c.SeaLevelSunrise, -zmanis96)
}

func (c *ComplexCalendar) Alos120() (time.Time, error) {
	return offset(c.SeaLevelSunrise, -120*time.Minute)
}

func (c *ComplexCalendar) Alos120Zmanis() (time.Time, error) {
	return c.zmanisOffset(c.SeaLevelSunrise, -zmanis120)
}

func (c *ComplexCalendar) Alos16Point1Degrees() (time.Time, error) {
	return c.AlosHashachar()
}

func (c *ComplexCalendar) Alos18Degrees() (time.Time, error) {
	return c.SunriseOffsetByDegrees(zenith18)
}

func (c *ComplexCalendar) Alos19Point8Degrees() (time.Time, error) {
	return c.SunriseOffsetByDegrees(zenith19Point8)
}

func (c *ComplexCalendar) Alos26Degrees() (time.Time, error) {
	return c.SunriseOffsetByDegrees(zenith26)
}

func (c *ComplexCalendar) AlosBaalHatanya() (time.Time, error) {
	return c.SunriseOffsetByDegrees(zenith16Point9)
}

// Misheyakir

func (c *ComplexCalendar) Misheyakir9Point5Degrees() (time.Time, error) {
	return c.SunriseOffsetByDegrees(zenith9Point5)
}

func (c *ComplexCalendar) Misheyakir10Point2Degrees() (time.Time, error) {
	return c.SunriseOffsetByDegrees(zenith10Point2)
}

func (c *ComplexCalendar) Misheyakir11Degrees() (time.Time, error) {
	return c.SunriseOffsetByDegrees(zenith11)
}

func (c *ComplexCalendar) Misheyakir11Point5Degrees() (time.Time, error) {
	return c.SunriseOffsetByDegrees(zenith11Point5)
}

// Sof zman shma

func (c *ComplexCalendar) SofZmanShmaMGA16Point1Degrees() (time.Time, error) {
	return proportional(c.AlosHashachar, c.Tzais16Point1Degrees, sofZmanShmaHours)
}

func (c *ComplexCalendar) SofZmanShmaMGA18Degrees() (time.Time, error) {
	return proportional(c.Alos18Degrees, c.Tzais18Degrees, sofZmanShmaHours)
}

func (c *ComplexCalendar) SofZmanShmaMGA19Point8Degrees() (time.Time, error) {
	return proportional(c.Alos19Point8Degrees, c.Tzais19Point8Degrees, sofZmanShmaHours)
}

func (c *ComplexCalendar) SofZmanShmaMGA72Minutes() (time.Time, error) {
	return c.SofZmanShmaMGA()
}

func (c *ComplexCalendar) SofZmanShmaMGA72MinutesZmanis() (time.Time, error) {
	return proportional(c.Alos72Zmanis, c.Tzais72Zmanis, sofZmanShmaHours)
}

func (c *ComplexCalendar) SofZmanShmaMGA90Minutes() (time.Time, error) {
	return proportional(c.Alos90, c.Tzais90, sofZmanShmaHours)
}

func (c *ComplexCalendar) SofZmanShmaMGA90MinutesZmanis() (time.Time, error) {
	return proportional(c.Alos90Zmanis, c.Tzais90Zmanis, sofZmanShmaHours)
}

func (c *ComplexCalendar) SofZmanShmaMGA96Minutes() (time.Time, error) {
	return proportional(c.Alos96, c.Tzais96, sofZmanShmaHours)
}

func (c *ComplexCalendar) SofZmanShmaMGA96MinutesZmanis() (time.Time, error) {
	return proportional(c.Alos96Zmanis, c.Tzais96Zmanis, sofZmanShmaHours)
}

func (c *ComplexCalendar) SofZmanShmaMGA120Minutes() (time.Time, error) {
	return proportional(c.Alos120, c.Tzais120, sofZmanShmaHours)
}

func (c *ComplexCalendar) SofZmanShma3HoursBeforeChatzos() (time.Time, error) {
	return offset(c.Chatzos, -3*time.Hour)
}

func (c *ComplexCalendar) SofZmanShmaAlos16Point1ToSunset() (time.Time, error) {
	return proportional(c.AlosHashachar, c.SeaLevelSunset, sofZmanShmaHours)
}

func (c *ComplexCalendar) SofZmanShmaBaalHatanya() (time.Time, error) {
	return proportional(c.SunriseBaalHatanya, c.SunsetBaalHatanya, sofZmanShmaHours)
}

// SofZmanShmaFixedLocal is three hours before FixedLocalChatzos.
func (c *ComplexCalendar) SofZmanShmaFixedLocal() (time.Time, error) {
	return c.FixedLocalChatzos().Add(-3 * time.Hour), nil
}

// Sof zman tfila

func (c *ComplexCalendar) SofZmanTfilaMGA16Point1Degrees() (time.Time, error) {
	return proportional(c.AlosHashachar, c.Tzais16Point1Degrees, sofZmanTfilaHours)
}

func (c *ComplexCalendar) SofZmanTfilaMGA18Degrees() (time.Time, error) {
	return proportional(c.Alos18Degrees, c.Tzais18Degrees, sofZmanTfilaHours)
}

func (c *ComplexCalendar) SofZmanTfilaMGA19Point8Degrees() (time.Time, error) {
	return proportional(c.Alos19Point8Degrees, c.Tzais19Point8Degrees, sofZmanTfilaHours)
}

func (c *ComplexCalendar) SofZmanTfilaMGA72Minutes() (time.Time, error) {
	return c.SofZmanTfilaMGA()
}

func (c *ComplexCalendar) SofZmanTfilaMGA72MinutesZmanis() (time.Time, error) {
	return proportional(c.Alos72Zmanis, c.Tzais72Zmanis, sofZmanTfilaHours)
}

func (c *ComplexCalendar) SofZmanTfilaMGA90Minutes() (time.Time, error) {
	return proportional(c.Alos90, c.Tzais90, sofZmanTfilaHours)
}

func (c *ComplexCalendar) SofZmanTfilaMGA90MinutesZmanis() (time.Time, error) {
	return proportional(c.Alos90Zmanis, c.Tzais90Zmanis, sofZmanTfilaHours)
}

func (c *ComplexCalendar) SofZmanTfilaMGA96Minutes() (time.Time, error) {
	return proportional(c.Alos96, c.Tzais96, sofZmanTfilaHours)
}

func (c *ComplexCalendar) SofZmanTfilaMGA96MinutesZmanis() (time.Time, error) {
	return proportional(c.Alos96Zmanis, c.Tzais96Zmanis, sofZmanTfilaHours)
}

func (c *ComplexCalendar) SofZmanTfilaMGA120Minutes() (time.Time, error) {
	return proportional(c.Alos120, c.Tzais120, sofZmanTfilaHours)
}

func (c *ComplexCalendar) SofZmanTfila2HoursBeforeChatzos() (time.Time, error) {
	return offset(c.Chatzos, -2*time.Hour)
}

func (c *ComplexCalendar) SofZmanTfilaBaalHatanya() (time.Time, error) {
	return proportional(c.SunriseBaalHatanya, c.SunsetBaalHatanya, sofZmanTfilaHours)
}

func (c *ComplexCalendar) SofZmanTfilaFixedLocal() (time.Time, error) {
	return c.FixedLocalChatzos().Add(-2 * time.Hour), nil
}

// Erev Pesach

func (c *ComplexCalendar) SofZmanAchilasChametzGRA() (time.Time, error) {
	return c.SofZmanTfilaGRA()
}

func (c *ComplexCalendar) SofZmanAchilasChametzMGA72Minutes() (time.Time, error) {
	return c.SofZmanTfilaMGA()
}

func (c *ComplexCalendar) SofZmanAchilasChametzMGA16Point1Degrees() (time.Time, error) {
	return c.SofZmanTfilaMGA16Point1Degrees()
}

func (c *ComplexCalendar) SofZmanBiurChametzGRA() (time.Time, error) {
	return proportional(c.SeaLevelSunrise, c.SeaLevelSunset, biurChametzHours)
}

func (c *ComplexCalendar) SofZmanBiurChametzMGA72Minutes() (time.Time, error) {
	return proportional(c.Alos72, c.Tzais72, biurChametzHours)
}

func (c *ComplexCalendar) SofZmanBiurChametzMGA16Point1Degrees() (time.Time, error) {
	return proportional(c.AlosHashachar, c.Tzais16Point1Degrees, biurChametzHours)
}

// Mincha

// MinchaGedola30Minutes is half an hour after chatzos.
func (c *ComplexCalendar) MinchaGedola30Minutes() (time.Time, error) {
	return offset(c.Chatzos, 30*time.Minute)
}

func (c *ComplexCalendar) MinchaGedola72Minutes() (time.Time, error) {
	return proportional(c.Alos72, c.Tzais72, minchaGedolaHours)
}

func (c *ComplexCalendar) MinchaGedola16Point1Degrees() (time.Time, error) {
	return proportional(c.AlosHashachar, c.Tzais16Point1Degrees, minchaGedolaHours)
}

// MinchaGedolaGreaterThan30 is the later of MinchaGedola and
// MinchaGedola30Minutes. In winter half a temporal hour is less than thirty
// minutes.
func (c *ComplexCalendar) MinchaGedolaGreaterThan30() (time.Time, error) {
	return later(c.MinchaGedola30Minutes, c.MinchaGedola)
}

func (c *ComplexCalendar) MinchaGedolaBaalHatanya() (time.Time, error) {
	return proportional(c.SunriseBaalHatanya, c.SunsetBaalHatanya, minchaGedolaHours)
}

func (c *ComplexCalendar) MinchaGedolaBaalHatanyaGreaterThan30() (time.Time, error) {
	return later(c.MinchaGedola30Minutes, c.MinchaGedolaBaalHatanya)
}

func (c *ComplexCalendar) MinchaKetana16Point1Degrees() (time.Time, error) {
	return proportional(c.AlosHashachar, c.Tzais16Point1Degrees, minchaKetanaHours)
}

func (c *ComplexCalendar) MinchaKetana72Minutes() (time.Time, error) {
	return proportional(c.Alos72, c.Tzais72, minchaKetanaHours)
}

func (c *ComplexCalendar) MinchaKetanaBaalHatanya() (time.Time, error) {
	return proportional(c.SunriseBaalHatanya, c.SunsetBaalHatanya, minchaKetanaHours)
}

// Plag hamincha

func (c *ComplexCalendar) PlagHamincha60Minutes() (time.Time, error) {
	return proportional(c.Alos60, c.Tzais60, plagHaminchaHours)
}

func (c *ComplexCalendar) PlagHamincha72Minutes() (time.Time, error) {
	return proportional(c.Alos72, c.Tzais72, plagHaminchaHours)
}

func (c *ComplexCalendar) PlagHamincha72MinutesZmanis() (time.Time, error) {
	return proportional(c.Alos72Zmanis, c.Tzais72Zmanis, plagHaminchaHours)
}

func (c *ComplexCalendar) PlagHamincha90Minutes() (time.Time, error) {
	return proportional(c.Alos90, c.Tzais90, plagHaminchaHours)
}

func (c *ComplexCalendar) PlagHamincha90MinutesZmanis() (time.Time, error) {
	return proportional(c.Alos90Zmanis, c.Tzais90Zmanis, plagHaminchaHours)
}

func (c *ComplexCalendar) PlagHamincha96Minutes() (time.Time, error) {
	return proportional(c.Alos96, c.Tzais96, plagHaminchaHours)
}

func (c *ComplexCalendar) PlagHamincha96MinutesZmanis() (time.Time, error) {
	return proportional(c.Alos96Zmanis, c.Tzais96Zmanis, plagHaminchaHours)
}

func (c *ComplexCalendar) PlagHamincha120Minutes() (time.Time, error) {
	return proportional(c.Alos120, c.Tzais120, plagHaminchaHours)
}

func (c *ComplexCalendar) PlagHamincha120MinutesZmanis() (time.Time, error) {
	return proportional(c.Alos120Zmanis, c.Tzais120Zmanis, plagHaminchaHours)
}

func (c *ComplexCalendar) PlagHamincha16Point1Degrees() (time.Time, error) {
	return proportional(c.AlosHashachar, c.Tzais16Point1Degrees, plagHaminchaHours)
}

func (c *ComplexCalendar) PlagHamincha18Degrees() (time.Time, error) {
	return proportional(c.Alos18Degrees, c.Tzais18Degrees, plagHaminchaHours)
}

func (c *ComplexCalendar) PlagHamincha19Point8Degrees() (time.Time, error) {
	return proportional(c.Alos19Point8Degrees, c.Tzais19Point8Degrees, plagHaminchaHours)
}

func (c *ComplexCalendar) PlagHamincha26Degrees() (time.Time, error) {
	return proportional(c.Alos26Degrees, c.Tzais26Degrees, plagHaminchaHours)
}

func (c *ComplexCalendar) PlagHaminchaBaalHatanya() (time.Time, error) {
	return proportional(c.SunriseBaalHatanya, c.SunsetBaalHatanya, plagHaminchaHours)
}

// Bain hashmashos

func (c *ComplexCalendar) BainHashmashosRT13Point24Degrees() (time.Time, error) {
	return c.SunsetOffsetByDegrees(zenith13Point24)
}

func (c *ComplexCalendar) BainHashmashosRT58Point5Minutes() (time.Time, error) {
	return offset(c.Sunset, 58*time.Minute+30*time.Second)
}

func (c *ComplexCalendar) BainHashmashosRT13Point5MinutesBefore7Point083Degrees() (time.Time, error) {
	return offset(c.tzaisGeonim7Point083, -(13*time.Minute + 30*time.Second))
}

// BainHashmashosRT2Stars is sunset plus 5/18 of the time from Alos19Point8Degrees
// to sunrise.
func (c *ComplexCalendar) BainHashmashosRT2Stars() (time.Time, error) {
	alos, err := c.Alos19Point8Degrees()
	if err != nil {
		return time.Time{}, err
	}
	rise, err := c.Sunrise()
	if err != nil {
		return time.Time{}, err
	}
	return offset(c.Sunset, scale(rise.Sub(alos), 5.0/18))
}

func (c *ComplexCalendar) BainHashmashosYereim18Minutes() (time.Time, error) {
	return offset(c.Sunset, -18*time.Minute)
}

func (c *ComplexCalendar) BainHashmashosYereim16Point875Minutes() (time.Time, error) {
	return offset(c.Sunset, -(16*time.Minute + 52500*time.Millisecond))
}

func (c *ComplexCalendar) BainHashmashosYereim13Point5Minutes() (time.Time, error) {
	return offset(c.Sunset, -(13*time.Minute + 30*time.Second))
}

// Tzais

func (c *ComplexCalendar) Tzais16Point1Degrees() (time.Time, error) {
	return c.SunsetOffsetByDegrees(zenith16Point1)
}

func (c *ComplexCalendar) Tzais18Degrees() (time.Time, error) {
	return c.SunsetOffsetByDegrees(zenith18)
}

func (c *ComplexCalendar) Tzais19Point8Degrees() (time.Time, error) {
	return c.SunsetOffsetByDegrees(zenith19Point8)
}

func (c *ComplexCalendar) Tzais26Degrees() (time.Time, error) {
	return c.SunsetOffsetByDegrees(zenith26)
}

func (c *ComplexCalendar) Tzais50() (time.Time, error) {
	return offset(c.SeaLevelSunset, 50*time.Minute)
}

func (c *ComplexCalendar) Tzais60() (time.Time, error) {
	return offset(c.SeaLevelSunset, 60*time.Minute)
}

func (c *ComplexCalendar) Tzais72Zmanis() (time.Time, error) {
	return c.zmanisOffset(c.SeaLevelSunset, zmanis72)
}

func (c *ComplexCalendar) Tzais90() (time.Time, error) {
	return offset(c.SeaLevelSunset, 90*time.Minute)
}

func (c *ComplexCalendar) Tzais90Zmanis() (time.Time, error) {
	return c.zmanisOffset(c.SeaLevelSunset, zmanis90)
}

func (c *ComplexCalendar) Tzais96() (time.Time, error) {
	return offset(c.SeaLevelSunset, 96*time.Minute)
}

func (c *ComplexCalendar) Tzais96Zmanis() (time.Time, error) {
	return c.zmanisOffset(c.SeaLevelSunset, zmanis96)
}

func (c *ComplexCalendar) Tzais120() (time.Time, error) {
	return offset(c.SeaLevelSunset, 120*time.Minute)
}

func (c *ComplexCalendar) Tzais120Zmanis() (time.Time, error) {
	return c.zmanisOffset(c.SeaLevelSunset, zmanis120)
}

func (c *ComplexCalendar) TzaisGeonim3Point7Degrees() (time.Time, error) {
	return c.SunsetOffsetByDegrees(zenith3Point7)
}

func (c *ComplexCalendar) TzaisGeonim3Point8Degrees() (time.Time, error) {
	return c.SunsetOffsetByDegrees(zenith3Point8)
}

func (c *ComplexCalendar) TzaisGeonim5Point95Degrees() (time.Time, error) {
	return c.SunsetOffsetByDegrees(zenith5Point95)
}

func (c *ComplexCalendar) TzaisGeonim7Point083Degrees() (time.Time, error) {
	return c.tzaisGeonim7Point083()
}

func (c *ComplexCalendar) tzaisGeonim7Point083() (time.Time, error) {
	return c.SunsetOffsetByDegrees(zenith7Point083)
}

func (c *ComplexCalendar) TzaisGeonim8Point5Degrees() (time.Time, error) {
	return c.Tzais()
}

// TzaisRabbeinuTam is 72 fixed minutes after sea level sunset.
func (c *ComplexCalendar) TzaisRabbeinuTam() (time.Time, error) {
	return c.Tzais72()
}

func (c *ComplexCalendar) TzaisBaalHatanya() (time.Time, error) {
	return c.SunsetOffsetByDegrees(zenith6)
}

// FixedLocalChatzos is noon in local mean time: 12:00 standard time in the
// location's zone corrected by its LocalMeanTimeOffset. It exists on every
// date.
func (c *ComplexCalendar) FixedLocalChatzos() time.Time {
	loc := c.Location()
	midday := c.Date().Add(12 * time.Hour)
	noon := midday.Add(-loc.TimeZone().RawOffset(midday) - loc.LocalMeanTimeOffsetOn(midday))
	return geo.In(noon, loc.TimeZone())
}

// later returns the later of two anchors, failing if either does.
func later(a, b anchor) (time.Time, error) {
	ta, err := a()
	if err != nil {
		return time.Time{}, err
	}
	tb, err := b()
	if err != nil {
		return time.Time{}, err
	}
	if ta.After(tb) {
		return ta, nil
	}
	return tb, nil
}
