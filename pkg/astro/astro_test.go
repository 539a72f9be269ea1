package astro

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	gosunrise "github.com/nathan-osman/go-sunrise"
	"github.com/stretchr/testify/assert"

	"github.com/spencer-p/zmandash/pkg/geo"
)

const hourTolerance = 1e-5 // hours, about 36ms

func location(t *testing.T, lat, lon, elevation float64) *geo.Location {
	t.Helper()
	l, err := geo.New(fmt.Sprintf("%v,%v", lat, lon), lat, lon, elevation, geo.UTC)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNOAA(t *testing.T) {
	lakewood := func(t *testing.T) *geo.Location { return location(t, 40.09596, -74.22213, 0) }
	jerusalem := func(t *testing.T) *geo.Location { return location(t, 31.778, 35.2354, 800) }

	table := []struct {
		name     string
		loc      func(*testing.T) *geo.Location
		date     time.Time
		zenith   float64
		elevated bool
		sunset   bool
		want     float64
	}{
		{"lakewood sunrise", lakewood, day(2010, 4, 2), GeometricZenith, true, false, 10.654856122977092},
		{"lakewood sunset", lakewood, day(2010, 4, 2), GeometricZenith, true, true, 23.370311973850406},
		{"lakewood civil dawn", lakewood, day(2010, 4, 2), CivilZenith, true, false, 10.198810494703908},
		{"lakewood nautical dawn", lakewood, day(2010, 4, 2), NauticalZenith, true, false, 9.65943817820393},
		{"lakewood astronomical dawn", lakewood, day(2010, 4, 2), AstronomicalZenith, true, false, 9.103167668586396},
		{"lakewood civil dusk", lakewood, day(2010, 4, 2), CivilZenith, true, true, 23.827578718804205},
		{"lakewood astronomical dusk wraps past midnight", lakewood, day(2010, 4, 2), AstronomicalZenith, true, true, 0.9274426093138928},
		{"jerusalem elevated sunrise", jerusalem, day(2020, 6, 21), GeometricZenith, true, false, 2.4873229159479147},
		{"jerusalem sea level sunrise", jerusalem, day(2020, 6, 21), GeometricZenith, false, false, 2.5686881015201157},
		{"jerusalem elevated sunset", jerusalem, day(2020, 6, 21), GeometricZenith, true, true, 16.877438113209795},
		{"elevation ignored off the geometric zenith", jerusalem, day(2020, 6, 21), 106.1, true, false, 1.1067415874378206},
		{"sydney sunrise is the previous UTC day", func(t *testing.T) *geo.Location { return location(t, -33.8688, 151.2093, 0) }, day(2021, 1, 15), GeometricZenith, false, false, 18.995117702769207},
		{"honolulu sunset is the next UTC day", func(t *testing.T) *geo.Location { return location(t, 21.3069, -157.8583, 0) }, day(2021, 1, 15), GeometricZenith, false, true, 4.179407690602758},
	}

	calc := NewNOAA()
	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			fn := calc.UTCSunrise
			if tc.sunset {
				fn = calc.UTCSunset
			}
			got, err := fn(tc.date, tc.loc(t), tc.zenith, tc.elevated)
			if err != nil {
				t.Fatalf("unexpected: %v", err)
			}
			assert.InDelta(t, tc.want, got, hourTolerance)
		})
	}
}

func TestNavalAlmanac(t *testing.T) {
	loc := location(t, 40.09596, -74.22213, 0)
	calc := NewNavalAlmanac()

	rise, err := calc.UTCSunrise(day(2010, 4, 2), loc, GeometricZenith, false)
	if err != nil {
		t.Fatal(err)
	}
	set, err := calc.UTCSunset(day(2010, 4, 2), loc, GeometricZenith, false)
	if err != nil {
		t.Fatal(err)
	}
	assert.InDelta(t, 10.661620192359315, rise, hourTolerance)
	assert.InDelta(t, 23.367697430534857, set, hourTolerance)
}

// hoursApart is the shortest distance between two times of day in hours.
func hoursApart(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, 24-d)
}

func TestCalculatorsAgree(t *testing.T) {
	noaa, naval := NewNOAA(), NewNavalAlmanac()
	dates := []time.Time{
		day(2010, 1, 1), day(2010, 3, 20), day(2010, 4, 2), day(2010, 6, 21),
		day(2010, 8, 15), day(2010, 9, 22), day(2010, 11, 5), day(2010, 12, 21),
	}
	for lat := -60.0; lat <= 60; lat += 5 {
		for _, lon := range []float64{-179, -122, -74, 0, 35, 139, 178} {
			loc := location(t, lat, lon, 0)
			for _, date := range dates {
				a, errA := noaa.UTCSunrise(date, loc, GeometricZenith, false)
				b, errB := naval.UTCSunrise(date, loc, GeometricZenith, false)
				if errA != nil || errB != nil {
					t.Fatalf("%v on %s: %v / %v", loc, date.Format("2006-01-02"), errA, errB)
				}
				if d := hoursApart(a, b); d > 2.0/60 {
					t.Errorf("sunrise at %v on %s: noaa %v naval %v", loc, date.Format("2006-01-02"), a, b)
				}

				a, _ = noaa.UTCSunset(date, loc, GeometricZenith, false)
				b, _ = naval.UTCSunset(date, loc, GeometricZenith, false)
				if d := hoursApart(a, b); d > 2.0/60 {
					t.Errorf("sunset at %v on %s: noaa %v naval %v", loc, date.Format("2006-01-02"), a, b)
				}
			}
		}
	}
}

func TestAgreesWithGoSunrise(t *testing.T) {
	table := []struct {
		lat, lon float64
		date     time.Time
	}{
		{40.09596, -74.22213, day(2010, 4, 2)},
		{37.3229978, -122.0321823, day(2024, 1, 1)},
		{51.4772, 0, day(2022, 6, 21)},
		{-33.8688, 151.2093, day(2021, 1, 15)},
	}
	calc := NewNOAA()
	for _, tc := range table {
		t.Run(fmt.Sprintf("%v,%v", tc.lat, tc.lon), func(t *testing.T) {
			loc := location(t, tc.lat, tc.lon, 0)
			wantRise, wantSet := gosunrise.SunriseSunset(tc.lat, tc.lon, tc.date.Year(), tc.date.Month(), tc.date.Day())

			rise, err := calc.UTCSunrise(tc.date, loc, GeometricZenith, false)
			if err != nil {
				t.Fatal(err)
			}
			set, err := calc.UTCSunset(tc.date, loc, GeometricZenith, false)
			if err != nil {
				t.Fatal(err)
			}
			if d := hoursApart(rise, hoursOfDay(wantRise)); d > 2.0/60 {
				t.Errorf("sunrise %v, go-sunrise %v", rise, wantRise)
			}
			if d := hoursApart(set, hoursOfDay(wantSet)); d > 2.0/60 {
				t.Errorf("sunset %v, go-sunrise %v", set, wantSet)
			}
		})
	}
}

func hoursOfDay(t time.Time) float64 {
	t = t.UTC()
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

func TestNoSunriseOrSunset(t *testing.T) {
	polar := location(t, 78, 15, 0)
	for _, c := range []Calculator{NewNOAA(), NewNavalAlmanac()} {
		t.Run(c.Name(), func(t *testing.T) {
			for _, date := range []time.Time{day(2010, 12, 21), day(2010, 6, 21)} {
				if _, err := c.UTCSunrise(date, polar, GeometricZenith, true); !errors.Is(err, ErrNoSunriseOrSunset) {
					t.Errorf("sunrise on %s: got %v", date.Format("2006-01-02"), err)
				}
				if _, err := c.UTCSunset(date, polar, GeometricZenith, true); !errors.Is(err, ErrNoSunriseOrSunset) {
					t.Errorf("sunset on %s: got %v", date.Format("2006-01-02"), err)
				}
			}
		})
	}
}

func TestAdjustZenith(t *testing.T) {
	h := DefaultHorizon
	assert.InDelta(t, 90+50.0/60, h.AdjustZenith(GeometricZenith, 0), 1e-12)
	assert.InDelta(t, 90+50.0/60+1.0162170479236172, h.AdjustZenith(GeometricZenith, 1000), 1e-9)
	assert.Equal(t, 106.1, h.AdjustZenith(106.1, 1000))
	assert.Equal(t, 0.0, h.ElevationAdjustment(0))

	h.Refraction = 0
	assert.InDelta(t, 90+16.0/60, h.AdjustZenith(GeometricZenith, 0), 1e-12)
}

func TestByName(t *testing.T) {
	for _, name := range append(Names(), "", "NOAA") {
		c, err := ByName(name)
		if err != nil {
			t.Errorf("ByName(%q): %v", name, err)
			continue
		}
		if name != "" && c.Name() != name && c.Name() != "noaa" {
			t.Errorf("ByName(%q) gave %q", name, c.Name())
		}
	}
	if _, err := ByName("hebrew"); err == nil {
		t.Errorf("expected an error for an unknown calculator")
	}
}
