package zmanim

import (
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/zmandash/pkg/astro"
	"github.com/spencer-p/zmandash/pkg/geo"
)

var apr2 = time.Date(2010, time.April, 2, 0, 0, 0, 0, time.UTC)

func lakewood(t testing.TB) *geo.Location {
	t.Helper()
	tz, err := geo.LoadZone("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	loc, err := geo.New("Lakewood, NJ", 40.09596, -74.22213, 0, tz)
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

func polar(t testing.TB) *geo.Location {
	t.Helper()
	loc, err := geo.New("Longyearbyen", 78.2232, 15.6267, 0, geo.FixedZone("CET", time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

func must(t *testing.T, f func() (time.Time, error)) time.Time {
	t.Helper()
	at, err := f()
	if err != nil {
		t.Fatal(err)
	}
	return at
}

func ExampleCalendar() {
	tz, _ := geo.LoadZone("America/New_York")
	loc, _ := geo.New("Lakewood, NJ", 40.09596, -74.22213, 0, tz)
	cal := NewCalendar(loc, astro.NewNOAA(), time.Date(2010, time.April, 2, 0, 0, 0, 0, time.UTC))

	for _, f := range []func() (time.Time, error){
		cal.AlosHashachar,
		cal.SofZmanShmaGRA,
		cal.MinchaGedola,
		cal.CandleLighting,
		cal.Tzais,
	} {
		at, _ := f()
		fmt.Println(at.Format("15:04:05"))
	}
	// Output:
	// 05:16:54
	// 09:50:01
	// 13:32:32
	// 19:04:13
	// 20:03:05
}

func TestCalendar(t *testing.T) {
	cal := NewCalendar(lakewood(t), nil, apr2)

	table := []struct {
		name string
		fn   func() (time.Time, error)
		want string
	}{
		{"AlosHashachar", cal.AlosHashachar, "05:16:54"},
		{"Alos72", cal.Alos72, "05:27:17"},
		{"SofZmanShmaGRA", cal.SofZmanShmaGRA, "09:50:01"},
		{"SofZmanTfilaGRA", cal.SofZmanTfilaGRA, "10:53:36"},
		{"Chatzos", cal.Chatzos, "13:00:45"},
		{"MinchaGedola", cal.MinchaGedola, "13:32:32"},
		{"MinchaKetana", cal.MinchaKetana, "16:43:16"},
		{"PlagHamincha", cal.PlagHamincha, "18:02:44"},
		{"CandleLighting", cal.CandleLighting, "19:04:13"},
		{"Tzais", cal.Tzais, "20:03:05"},
		{"Tzais72", cal.Tzais72, "20:34:13"},
		{"SolarMidnight", cal.SolarMidnight, "00:59:57"},
	}
	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got := must(t, tc.fn).Format("15:04:05")
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want,+got): %s", diff)
			}
		})
	}
}

func TestShaahZmanis(t *testing.T) {
	cal := NewCalendar(lakewood(t), nil, apr2)

	gra, err := cal.ShaahZmanisGRA()
	if err != nil {
		t.Fatal(err)
	}
	mga, err := cal.ShaahZmanisMGA()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := gra.Round(time.Second), time.Hour+3*time.Minute+35*time.Second; got != want {
		t.Errorf("GRA hour %v, want %v", got, want)
	}
	// The MGA day is 144 minutes longer, so its hour is 12 minutes longer.
	if got := mga - gra; got < 12*time.Minute-time.Millisecond || got > 12*time.Minute+time.Millisecond {
		t.Errorf("MGA hour exceeds GRA hour by %v", got)
	}

	rise := must(t, cal.SeaLevelSunrise)
	shma := must(t, cal.SofZmanShmaGRA)
	if want := rise.Add(3 * gra); !shma.Equal(want) {
		t.Errorf("SofZmanShmaGRA %v, want sunrise + 3 hours = %v", shma, want)
	}
	set := must(t, cal.SeaLevelSunset)
	if got := SofZmanShma(rise, set); !got.Equal(shma) {
		t.Errorf("SofZmanShma(rise, set) = %v, want %v", got, shma)
	}
	if got := PlagHaminchaBetween(rise, set); !got.Equal(must(t, cal.PlagHamincha)) {
		t.Errorf("PlagHaminchaBetween(rise, set) = %v", got)
	}
}

func TestProportionalOrder(t *testing.T) {
	cal := NewCalendar(lakewood(t), nil, apr2)
	start := must(t, cal.Alos72)
	end := must(t, cal.Tzais72)

	got := []time.Time{
		start,
		SofZmanShma(start, end),
		SofZmanTfila(start, end),
		MinchaGedolaBetween(start, end),
		MinchaKetanaBetween(start, end),
		PlagHaminchaBetween(start, end),
		end,
	}
	if !slices.IsSortedFunc(got, time.Time.Compare) {
		t.Errorf("proportional zmanim out of order: %v", got)
	}
}

func TestMidsummerNearArcticCircle(t *testing.T) {
	tz, err := geo.LoadZone("Atlantic/Reykjavik")
	if err != nil {
		t.Fatal(err)
	}
	loc, err := geo.New("Reykjavik", 64.1466, -21.9426, 0, tz)
	if err != nil {
		t.Fatal(err)
	}
	cal := NewCalendar(loc, nil, time.Date(2021, time.June, 18, 0, 0, 0, 0, time.UTC))

	shaah, err := cal.ShaahZmanisGRA()
	if err != nil {
		t.Fatal(err)
	}
	if shaah < 105*time.Minute || shaah > 106*time.Minute {
		t.Errorf("ShaahZmanisGRA %v, want about 1h45m", shaah)
	}

	chatzos := must(t, cal.Chatzos)
	if got, want := chatzos.Format("2006-01-02 15"), "2021-06-18 13"; got != want {
		t.Errorf("Chatzos at %v, want the hour %s", chatzos, want)
	}

	got := []time.Time{
		must(t, cal.SeaLevelSunrise),
		must(t, cal.SofZmanShmaGRA),
		must(t, cal.SofZmanTfilaGRA),
		chatzos,
		must(t, cal.MinchaGedola),
		must(t, cal.MinchaKetana),
		must(t, cal.PlagHamincha),
		must(t, cal.SeaLevelSunset),
	}
	if !slices.IsSortedFunc(got, time.Time.Compare) {
		t.Errorf("zmanim out of order: %v", got)
	}
}

func TestCandleLighting(t *testing.T) {
	cal := NewCalendar(lakewood(t), nil, apr2)
	at18 := must(t, cal.CandleLighting)

	if err := cal.SetCandleLightingOffset(20 * time.Minute); err != nil {
		t.Fatal(err)
	}
	at20 := must(t, cal.CandleLighting)
	if got := at18.Sub(at20); got != 2*time.Minute {
		t.Errorf("18 and 20 minute candle lighting differ by %v", got)
	}

	if err := cal.SetCandleLightingOffset(-time.Minute); !errors.Is(err, geo.ErrInvalidArgument) {
		t.Errorf("negative offset: got %v", err)
	}
	if got := cal.CandleLightingOffset(); got != 20*time.Minute {
		t.Errorf("rejected offset changed the setting to %v", got)
	}
	if got := cal.WithDate(apr2.AddDate(0, 0, 7)).CandleLightingOffset(); got != 20*time.Minute {
		t.Errorf("WithDate dropped the offset: %v", got)
	}
}

func TestSolarMidnight(t *testing.T) {
	cal := NewCalendar(lakewood(t), nil, apr2)
	midnight := must(t, cal.SolarMidnight)
	set := must(t, cal.SeaLevelSunset)
	rise := must(t, cal.WithDate(apr2.AddDate(0, 0, 1)).SeaLevelSunrise)

	if !set.Before(midnight) || !midnight.Before(rise) {
		t.Errorf("midnight %v not between sunset %v and sunrise %v", midnight, set, rise)
	}
	if d := midnight.Sub(set) - rise.Sub(midnight); d < -time.Millisecond || d > time.Millisecond {
		t.Errorf("midnight off center by %v", d)
	}
	if !cal.Date().Equal(apr2) {
		t.Errorf("SolarMidnight moved the calendar to %v", cal.Date())
	}
}

func TestPolarNight(t *testing.T) {
	cal := NewCalendar(polar(t), nil, time.Date(2010, time.December, 21, 0, 0, 0, 0, time.UTC))

	for name, f := range map[string]func() (time.Time, error){
		"Alos72":         cal.Alos72,
		"SofZmanShmaGRA": cal.SofZmanShmaGRA,
		"SofZmanShmaMGA": cal.SofZmanShmaMGA,
		"Chatzos":        cal.Chatzos,
		"PlagHamincha":   cal.PlagHamincha,
		"CandleLighting": cal.CandleLighting,
		"SolarMidnight":  cal.SolarMidnight,
	} {
		if _, err := f(); !errors.Is(err, astro.ErrNoSunriseOrSunset) {
			t.Errorf("%s: got %v", name, err)
		}
	}
	if _, err := cal.ShaahZmanisGRA(); !errors.Is(err, astro.ErrNoSunriseOrSunset) {
		t.Errorf("ShaahZmanisGRA: got %v", err)
	}
}

func TestCalculators(t *testing.T) {
	noaa := NewCalendar(lakewood(t), astro.NewNOAA(), apr2)
	naval := NewCalendar(lakewood(t), astro.NewNavalAlmanac(), apr2)

	for name, pair := range map[string][2]func() (time.Time, error){
		"SofZmanShmaGRA": {noaa.SofZmanShmaGRA, naval.SofZmanShmaGRA},
		"MinchaKetana":   {noaa.MinchaKetana, naval.MinchaKetana},
		"Tzais":          {noaa.Tzais, naval.Tzais},
	} {
		a := must(t, pair[0])
		b := must(t, pair[1])
		if d := a.Sub(b).Abs(); d > time.Minute {
			t.Errorf("%s: noaa %v naval %v", name, a, b)
		}
	}
}
