package zmanim

import (
	"fmt"
	"time"
)

// Func computes an instant from a calendar.
type Func func(*ComplexCalendar) (time.Time, error)

// DurationFunc computes a duration, such as a shaah zmanis, from a calendar.
type DurationFunc func(*ComplexCalendar) (time.Duration, error)

// Entry is a named zman. Exactly one of Time and Duration is set.
type Entry struct {
	Name     string
	Time     Func
	Duration DurationFunc
}

// Compute evaluates the entry for c.
func (e Entry) Compute(c *ComplexCalendar) (Zman, error) {
	z := Zman{Label: e.Name}
	var err error
	if e.Duration != nil {
		z.Duration, err = e.Duration(c)
	} else {
		z.Time, err = e.Time(c)
	}
	if err != nil {
		return Zman{}, fmt.Errorf("%s: %w", e.Name, err)
	}
	return z, nil
}

func instant(name string, f Func) Entry { return Entry{Name: name, Time: f} }
func duration(name string, f DurationFunc) Entry { return Entry{Name: name, Duration: f} }
func always(f func(*ComplexCalendar) time.Time) Func {
	return func(c *ComplexCalendar) (time.Time, error) { return f(c), nil }
}

var registry = []Entry{
	instant("AlosHashachar", (*ComplexCalendar).AlosHashachar),
	instant("Alos72", (*ComplexCalendar).Alos72),
	instant("Alos60", (*ComplexCalendar).Alos60),
	instant("Alos72Zmanis", (*ComplexCalendar).Alos72Zmanis),
	instant("Alos90", (*ComplexCalendar).Alos90),
	instant("Alos90Zmanis", (*ComplexCalendar).Alos90Zmanis),
	instant("Alos96", (*ComplexCalendar).Alos96),
	instant("Alos96Zmanis", (*ComplexCalendar).Alos96Zmanis),
	instant("Alos120", (*ComplexCalendar).Alos120),
	instant("Alos120Zmanis", (*ComplexCalendar).Alos120Zmanis),
	instant("Alos16Point1Degrees", (*ComplexCalendar).Alos16Point1Degrees),
	instant("Alos18Degrees", (*ComplexCalendar).Alos18Degrees),
	instant("Alos19Point8Degrees", (*ComplexCalendar).Alos19Point8Degrees),
	instant("Alos26Degrees", (*ComplexCalendar).Alos26Degrees),
	instant("AlosBaalHatanya", (*ComplexCalendar).AlosBaalHatanya),
	instant("BeginAstronomicalTwilight", (*ComplexCalendar).BeginAstronomicalTwilight),
	instant("BeginNauticalTwilight", (*ComplexCalendar).BeginNauticalTwilight),
	instant("BeginCivilTwilight", (*ComplexCalendar).BeginCivilTwilight),
	instant("Misheyakir9Point5Degrees", (*ComplexCalendar).Misheyakir9Point5Degrees),
	instant("Misheyakir10Point2Degrees", (*ComplexCalendar).Misheyakir10Point2Degrees),
	instant("Misheyakir11Degrees", (*ComplexCalendar).Misheyakir11Degrees),
	instant("Misheyakir11Point5Degrees", (*ComplexCalendar).Misheyakir11Point5Degrees),
	instant("Sunrise", (*ComplexCalendar).Sunrise),
	instant("SeaLevelSunrise", (*ComplexCalendar).SeaLevelSunrise),
	instant("SunriseBaalHatanya", (*ComplexCalendar).SunriseBaalHatanya),

	instant("SofZmanShmaGRA", (*ComplexCalendar).SofZmanShmaGRA),
	instant("SofZmanShmaMGA", (*ComplexCalendar).SofZmanShmaMGA),
	instant("SofZmanShmaMGA16Point1Degrees", (*ComplexCalendar).SofZmanShmaMGA16Point1Degrees),
	instant("SofZmanShmaMGA18Degrees", (*ComplexCalendar).SofZmanShmaMGA18Degrees),
	instant("SofZmanShmaMGA19Point8Degrees", (*ComplexCalendar).SofZmanShmaMGA19Point8Degrees),
	instant("SofZmanShmaMGA72Minutes", (*ComplexCalendar).SofZmanShmaMGA72Minutes),
	instant("SofZmanShmaMGA72MinutesZmanis", (*ComplexCalendar).SofZmanShmaMGA72MinutesZmanis),
	instant("SofZmanShmaMGA90Minutes", (*ComplexCalendar).SofZmanShmaMGA90Minutes),
	instant("SofZmanShmaMGA90MinutesZmanis", (*ComplexCalendar).SofZmanShmaMGA90MinutesZmanis),
	instant("SofZmanShmaMGA96Minutes", (*ComplexCalendar).SofZmanShmaMGA96Minutes),
	instant("SofZmanShmaMGA96MinutesZmanis", (*ComplexCalendar).SofZmanShmaMGA96MinutesZmanis),
	instant("SofZmanShmaMGA120Minutes", (*ComplexCalendar).SofZmanShmaMGA120Minutes),
	instant("SofZmanShma3HoursBeforeChatzos", (*ComplexCalendar).SofZmanShma3HoursBeforeChatzos),
	instant("SofZmanShmaAlos16Point1ToSunset", (*ComplexCalendar).SofZmanShmaAlos16Point1ToSunset),
	instant("SofZmanShmaBaalHatanya", (*ComplexCalendar).SofZmanShmaBaalHatanya),
	instant("SofZmanShmaFixedLocal", (*ComplexCalendar).SofZmanShmaFixedLocal),

	instant("SofZmanTfilaGRA", (*ComplexCalendar).SofZmanTfilaGRA),
	instant("SofZmanTfilaMGA", (*ComplexCalendar).SofZmanTfilaMGA),
	instant("SofZmanTfilaMGA16Point1Degrees", (*ComplexCalendar).SofZmanTfilaMGA16Point1Degrees),
	instant("SofZmanTfilaMGA18Degrees", (*ComplexCalendar).SofZmanTfilaMGA18Degrees),
	instant("SofZmanTfilaMGA19Point8Degrees", (*ComplexCalendar).SofZmanTfilaMGA19Point8Degrees),
	instant("SofZmanTfilaMGA72Minutes", (*ComplexCalendar).SofZmanTfilaMGA72Minutes),
	instant("SofZmanTfilaMGA72MinutesZmanis", (*ComplexCalendar).SofZmanTfilaMGA72MinutesZmanis),
	instant("SofZmanTfilaMGA90Minutes", (*ComplexCalendar).SofZmanTfilaMGA90Minutes),
	instant("SofZmanTfilaMGA90MinutesZmanis", (*ComplexCalendar).SofZmanTfilaMGA90MinutesZmanis),
	instant("SofZmanTfilaMGA96Minutes", (*ComplexCalendar).SofZmanTfilaMGA96Minutes),
	instant("SofZmanTfilaMGA96MinutesZmanis", (*ComplexCalendar).SofZmanTfilaMGA96MinutesZmanis),
	instant("SofZmanTfilaMGA120Minutes", (*ComplexCalendar).SofZmanTfilaMGA120Minutes),
	instant("SofZmanTfila2HoursBeforeChatzos", (*ComplexCalendar).SofZmanTfila2HoursBeforeChatzos),
	instant("SofZmanTfilaBaalHatanya", (*ComplexCalendar).SofZmanTfilaBaalHatanya),
	instant("SofZmanTfilaFixedLocal", (*ComplexCalendar).SofZmanTfilaFixedLocal),

	instant("SofZmanAchilasChametzGRA", (*ComplexCalendar).SofZmanAchilasChametzGRA),
	instant("SofZmanAchilasChametzMGA72Minutes", (*ComplexCalendar).SofZmanAchilasChametzMGA72Minutes),
	instant("SofZmanAchilasChametzMGA16Point1Degrees", (*ComplexCalendar).SofZmanAchilasChametzMGA16Point1Degrees),
	instant("SofZmanBiurChametzGRA", (*ComplexCalendar).SofZmanBiurChametzGRA),
	instant("SofZmanBiurChametzMGA72Minutes", (*ComplexCalendar).SofZmanBiurChametzMGA72Minutes),
	instant("SofZmanBiurChametzMGA16Point1Degrees", (*ComplexCalendar).SofZmanBiurChametzMGA16Point1Degrees),

	instant("Chatzos", (*ComplexCalendar).Chatzos),
	instant("FixedLocalChatzos", always((*ComplexCalendar).FixedLocalChatzos)),
	instant("MinchaGedola", (*ComplexCalendar).MinchaGedola),
	instant("MinchaGedola30Minutes", (*ComplexCalendar).MinchaGedola30Minutes),
	instant("MinchaGedola72Minutes", (*ComplexCalendar).MinchaGedola72Minutes),
	instant("MinchaGedola16Point1Degrees", (*ComplexCalendar).MinchaGedola16Point1Degrees),
	instant("MinchaGedolaGreaterThan30", (*ComplexCalendar).MinchaGedolaGreaterThan30),
	instant("MinchaGedolaBaalHatanya", (*ComplexCalendar).MinchaGedolaBaalHatanya),
	instant("MinchaGedolaBaalHatanyaGreaterThan30", (*ComplexCalendar).MinchaGedolaBaalHatanyaGreaterThan30),
	instant("MinchaKetana", (*ComplexCalendar).MinchaKetana),
	instant("MinchaKetana16Point1Degrees", (*ComplexCalendar).MinchaKetana16Point1Degrees),
	instant("MinchaKetana72Minutes", (*ComplexCalendar).MinchaKetana72Minutes),
	instant("MinchaKetanaBaalHatanya", (*ComplexCalendar).MinchaKetanaBaalHatanya),

	instant("PlagHamincha", (*ComplexCalendar).PlagHamincha),
	instant("PlagHamincha60Minutes", (*ComplexCalendar).PlagHamincha60Minutes),
	instant("PlagHamincha72Minutes", (*ComplexCalendar).PlagHamincha72Minutes),
	instant("PlagHamincha72MinutesZmanis", (*ComplexCalendar).PlagHamincha72MinutesZmanis),
	instant("PlagHamincha90Minutes", (*ComplexCalendar).PlagHamincha90Minutes),
	instant("PlagHamincha90MinutesZmanis", (*ComplexCalendar).PlagHamincha90MinutesZmanis),
	instant("PlagHamincha96Minutes", (*ComplexCalendar).PlagHamincha96Minutes),
	instant("PlagHamincha96MinutesZmanis", (*ComplexCalendar).PlagHamincha96MinutesZmanis),
	instant("PlagHamincha120Minutes", (*ComplexCalendar).PlagHamincha120Minutes),
	instant("PlagHamincha120MinutesZmanis", (*ComplexCalendar).PlagHamincha120MinutesZmanis),
	instant("PlagHamincha16Point1Degrees", (*ComplexCalendar).PlagHamincha16Point1Degrees),
	instant("PlagHamincha18Degrees", (*ComplexCalendar).PlagHamincha18Degrees),
	instant("PlagHamincha19Point8Degrees", (*ComplexCalendar).PlagHamincha19Point8Degrees),
	instant("PlagHamincha26Degrees", (*ComplexCalendar).PlagHamincha26Degrees),
	instant("PlagHaminchaBaalHatanya", (*ComplexCalendar).PlagHaminchaBaalHatanya),

	instant("CandleLighting", (*ComplexCalendar).CandleLighting),
	instant("BainHashmashosYereim18Minutes", (*ComplexCalendar).BainHashmashosYereim18Minutes),
	instant("BainHashmashosYereim16Point875Minutes", (*ComplexCalendar).BainHashmashosYereim16Point875Minutes),
	instant("BainHashmashosYereim13Point5Minutes", (*ComplexCalendar).BainHashmashosYereim13Point5Minutes),
	instant("SunsetBaalHatanya", (*ComplexCalendar).SunsetBaalHatanya),
	instant("Sunset", (*ComplexCalendar).Sunset),
	instant("SeaLevelSunset", (*ComplexCalendar).SeaLevelSunset),
	instant("EndCivilTwilight", (*ComplexCalendar).EndCivilTwilight),
	instant("TzaisGeonim3Point7Degrees", (*ComplexCalendar).TzaisGeonim3Point7Degrees),
	instant("TzaisGeonim3Point8Degrees", (*ComplexCalendar).TzaisGeonim3Point8Degrees),
	instant("TzaisGeonim5Point95Degrees", (*ComplexCalendar).TzaisGeonim5Point95Degrees),
	instant("TzaisBaalHatanya", (*ComplexCalendar).TzaisBaalHatanya),
	instant("TzaisGeonim7Point083Degrees", (*ComplexCalendar).TzaisGeonim7Point083Degrees),
	instant("Tzais", (*ComplexCalendar).Tzais),
	instant("TzaisGeonim8Point5Degrees", (*ComplexCalendar).TzaisGeonim8Point5Degrees),
	instant("BainHashmashosRT13Point5MinutesBefore7Point083Degrees", (*ComplexCalendar).BainHashmashosRT13Point5MinutesBefore7Point083Degrees),
	instant("BainHashmashosRT13Point24Degrees", (*ComplexCalendar).BainHashmashosRT13Point24Degrees),
	instant("BainHashmashosRT58Point5Minutes", (*ComplexCalendar).BainHashmashosRT58Point5Minutes),
	instant("BainHashmashosRT2Stars", (*ComplexCalendar).BainHashmashosRT2Stars),
	instant("Tzais50", (*ComplexCalendar).Tzais50),
	instant("Tzais60", (*ComplexCalendar).Tzais60),
	instant("Tzais72", (*ComplexCalendar).Tzais72),
	instant("TzaisRabbeinuTam", (*ComplexCalendar).TzaisRabbeinuTam),
	instant("Tzais72Zmanis", (*ComplexCalendar).Tzais72Zmanis),
	instant("Tzais90", (*ComplexCalendar).Tzais90),
	instant("Tzais90Zmanis", (*ComplexCalendar).Tzais90Zmanis),
	instant("Tzais96", (*ComplexCalendar).Tzais96),
	instant("Tzais96Zmanis", (*ComplexCalendar).Tzais96Zmanis),
	instant("Tzais120", (*ComplexCalendar).Tzais120),
	instant("Tzais120Zmanis", (*ComplexCalendar).Tzais120Zmanis),
	instant("EndNauticalTwilight", (*ComplexCalendar).EndNauticalTwilight),
	instant("Tzais16Point1Degrees", (*ComplexCalendar).Tzais16Point1Degrees),
	instant("Tzais18Degrees", (*ComplexCalendar).Tzais18Degrees),
	instant("EndAstronomicalTwilight", (*ComplexCalendar).EndAstronomicalTwilight),
	instant("Tzais19Point8Degrees", (*ComplexCalendar).Tzais19Point8Degrees),
	instant("Tzais26Degrees", (*ComplexCalendar).Tzais26Degrees),
	instant("SolarMidnight", (*ComplexCalendar).SolarMidnight),

	duration("ShaahZmanisGRA", (*ComplexCalendar).ShaahZmanisGRA),
	duration("ShaahZmanisMGA", (*ComplexCalendar).ShaahZmanisMGA),
	duration("ShaahZmanis16Point1Degrees", (*ComplexCalendar).ShaahZmanis16Point1Degrees),
	duration("ShaahZmanis18Degrees", (*ComplexCalendar).ShaahZmanis18Degrees),
	duration("ShaahZmanis19Point8Degrees", (*ComplexCalendar).ShaahZmanis19Point8Degrees),
	duration("ShaahZmanis26Degrees", (*ComplexCalendar).ShaahZmanis26Degrees),
	duration("ShaahZmanis60Minutes", (*ComplexCalendar).ShaahZmanis60Minutes),
	duration("ShaahZmanis72Minutes", (*ComplexCalendar).ShaahZmanis72Minutes),
	duration("ShaahZmanis72MinutesZmanis", (*ComplexCalendar).ShaahZmanis72MinutesZmanis),
	duration("ShaahZmanis90Minutes", (*ComplexCalendar).ShaahZmanis90Minutes),
	duration("ShaahZmanis90MinutesZmanis", (*ComplexCalendar).ShaahZmanis90MinutesZmanis),
	duration("ShaahZmanis96Minutes", (*ComplexCalendar).ShaahZmanis96Minutes),
	duration("ShaahZmanis96MinutesZmanis", (*ComplexCalendar).ShaahZmanis96MinutesZmanis),
	duration("ShaahZmanis120Minutes", (*ComplexCalendar).ShaahZmanis120Minutes),
	duration("ShaahZmanis120MinutesZmanis", (*ComplexCalendar).ShaahZmanis120MinutesZmanis),
	duration("ShaahZmanisBaalHatanya", (*ComplexCalendar).ShaahZmanisBaalHatanya),
	duration("TemporalHourOfDay", (*ComplexCalendar).TemporalHourOfDay),
}

var byName = func() map[string]Entry {
	m := make(map[string]Entry, len(registry))
	for _, e := range registry {
		if _, ok := m[e.Name]; ok {
			panic("zmanim: duplicate registry name " + e.Name)
		}
		m[e.Name] = e
	}
	return m
}()

// Registry lists every named zman, roughly in the order of the day. The slice
// is a copy and may be modified.
func Registry() []Entry {
	return append([]Entry(nil), registry...)
}

// Lookup finds a registry entry by name.
func Lookup(name string) (Entry, bool) {
	e, ok := byName[name]
	return e, ok
}

// ComputeAll evaluates every registry entry for c. Entries that fail are left
// out of the result and reported by name in the error map, which is nil when
// everything succeeded.
func ComputeAll(c *ComplexCalendar) ([]Zman, map[string]error) {
	var (
		out  = make([]Zman, 0, len(registry))
		errs map[string]error
	)
	for _, e := range registry {
		z, err := e.Compute(c)
		if err != nil {
			if errs == nil {
				errs = make(map[string]error)
			}
			errs[e.Name] = err
			continue
		}
		out = append(out, z)
	}
	return out, errs
}
