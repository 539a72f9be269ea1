package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/spencer-p/zmandash/pkg/astro"
	"github.com/spencer-p/zmandash/pkg/geo"
	"github.com/spencer-p/zmandash/pkg/timetricks"
	"github.com/spencer-p/zmandash/pkg/zmanim"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Flags for the `day` command.
type DayCommand struct {
	Location  string   `short:"l" long:"location" description:"a location named in the config file" value-name:"<NAME>"`
	Latitude  *float64 `long:"lat" description:"latitude in degrees, north positive" value-name:"<DEG>"`
	Longitude *float64 `long:"lon" description:"longitude in degrees, east positive" value-name:"<DEG>"`
	Elevation *float64 `long:"elev" description:"elevation in meters" value-name:"<M>"`
	TimeZone  string   `long:"tz" description:"IANA time zone of --lat/--lon" default:"UTC" value-name:"<ZONE>"`

	Date       string `short:"d" long:"date" description:"the day, today if omitted" value-name:"yyyy-mm-dd"`
	Calculator string `long:"calc" description:"solar calculator" choice:"noaa" choice:"naval"`
	Candles    *int   `long:"candles" description:"candle lighting, in minutes before sunset" value-name:"<MIN>"`
	Only       string `long:"only" description:"comma separated zmanim to print" value-name:"<NAME>,..."`

	Sort string `short:"s" long:"sort" description:"order of the output" choice:"time" choice:"label" choice:"duration"`
	JSON bool   `long:"json" description:"print JSON"`
}

// Execute runs the day command.
func (command *DayCommand) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	loc, err := command.location(cfg)
	if err != nil {
		return err
	}

	date := timetricks.CivilDate(geo.In(time.Now(), loc.TimeZone()))
	if command.Date != "" {
		if date, err = timetricks.ParseDate(command.Date); err != nil {
			return err
		}
	}

	name := command.Calculator
	if name == "" {
		name = cfg.Calculator
	}
	calc, err := astro.ByName(name)
	if err != nil {
		return err
	}

	cal := zmanim.NewComplexCalendar(loc, calc, date)
	candles := cfg.CandleLightingMinutes
	if command.Candles != nil {
		candles = command.Candles
	}
	if candles != nil {
		if err := cal.SetCandleLightingOffset(time.Duration(*candles) * time.Minute); err != nil {
			return err
		}
	}

	zs, errs, err := command.compute(cal)
	if err != nil {
		return err
	}
	order, err := zmanim.Comparison(command.Sort)
	if err != nil {
		return err
	}
	if order != nil {
		slices.SortStableFunc(zs, order)
	}
	log.Debug().
		Str("location", loc.String()).
		Str("calculator", calc.Name()).
		Int("computed", len(zs)).
		Int("missing", len(errs)).
		Msg("Computed zmanim")

	rows := zmanim.Rows(zs, errs)
	if command.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Fprintf(out, "%s on %s (%s)\n", loc.Name(), date.Format(timetricks.DateLayout), calc.Name())
	for _, row := range rows {
		fmt.Fprintln(out, row.String())
	}
	return nil
}

// compute evaluates the requested zmanim, or all of them. Zmanim that do not
// occur on the date are returned by name; any other failure is an error.
func (command *DayCommand) compute(cal *zmanim.ComplexCalendar) ([]zmanim.Zman, map[string]error, error) {
	var (
		zs   []zmanim.Zman
		errs map[string]error
	)
	if command.Only == "" {
		zs, errs = zmanim.ComputeAll(cal)
	} else {
		errs = make(map[string]error)
		for _, name := range strings.Split(command.Only, ",") {
			name = strings.TrimSpace(name)
			e, ok := zmanim.Lookup(name)
			if !ok {
				return nil, nil, fmt.Errorf("unknown zman %q: %w", name, geo.ErrInvalidArgument)
			}
			z, err := e.Compute(cal)
			if err != nil {
				errs[name] = err
				continue
			}
			zs = append(zs, z)
		}
	}
	for name, err := range errs {
		if !errors.Is(err, astro.ErrNoSunriseOrSunset) {
			return nil, nil, err
		}
		log.Debug().Err(err).Str("zman", name).Msg("Does not occur")
	}
	return zs, errs, nil
}

func (command *DayCommand) location(cfg Config) (*geo.Location, error) {
	if command.Location != "" {
		if command.Latitude != nil || command.Longitude != nil {
			return nil, fmt.Errorf("--location and --lat/--lon are exclusive: %w", geo.ErrInvalidArgument)
		}
		loc, err := cfg.Location(command.Location)
		if err != nil {
			return nil, err
		}
		if command.Elevation != nil {
			if err := loc.SetElevation(*command.Elevation); err != nil {
				return nil, err
			}
		}
		return loc, nil
	}
	if command.Latitude == nil || command.Longitude == nil {
		return nil, fmt.Errorf("need --location or both --lat and --lon: %w", geo.ErrInvalidArgument)
	}
	tz, err := geo.LoadZone(command.TimeZone)
	if err != nil {
		return nil, err
	}
	var elevation float64
	if command.Elevation != nil {
		elevation = *command.Elevation
	}
	name := fmt.Sprintf("%v,%v", *command.Latitude, *command.Longitude)
	return geo.New(name, *command.Latitude, *command.Longitude, elevation, tz)
}

// Flags for the `distance` command. Each place is either "lat,lon" or a
// location named in the config file.
type DistanceCommand struct {
	From string `short:"f" long:"from" description:"starting place" value-name:"<LAT,LON|NAME>" required:"true"`
	To   string `short:"t" long:"to" description:"destination" value-name:"<LAT,LON|NAME>" required:"true"`
	JSON bool   `long:"json" description:"print JSON"`
}

type distanceResult struct {
	GeodesicMeters float64 `json:"geodesic_meters"`
	InitialBearing float64 `json:"initial_bearing"`
	FinalBearing   float64 `json:"final_bearing"`
	Converged      bool    `json:"converged"`
	RhumbMeters    float64 `json:"rhumb_meters"`
	RhumbBearing   float64 `json:"rhumb_bearing"`
}

// Execute runs the distance command.
func (command *DistanceCommand) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	from, err := place(cfg, command.From)
	if err != nil {
		return err
	}
	to, err := place(cfg, command.To)
	if err != nil {
		return err
	}

	inv := geo.Vincenty(from, to)
	if !inv.Converged {
		log.Warn().Int("iterations", inv.Iterations).Msg("Vincenty did not converge, the result is an estimate")
	}
	res := distanceResult{
		GeodesicMeters: inv.Distance,
		InitialBearing: inv.InitialBearing,
		FinalBearing:   inv.FinalBearing,
		Converged:      inv.Converged,
		RhumbMeters:    geo.RhumbLineDistance(from, to),
		RhumbBearing:   geo.RhumbLineBearing(from, to),
	}
	if command.JSON {
		return json.NewEncoder(out).Encode(res)
	}
	fmt.Fprintf(out, "%s to %s\n", from.Name(), to.Name())
	fmt.Fprintf(out, "geodesic:   %.3f km, bearing %.4f° arriving %.4f°\n",
		res.GeodesicMeters/1000, res.InitialBearing, res.FinalBearing)
	fmt.Fprintf(out, "rhumb line: %.3f km, bearing %.4f°\n", res.RhumbMeters/1000, res.RhumbBearing)
	return nil
}

// place resolves "lat,lon" or a configured location name.
func place(cfg Config, s string) (*geo.Location, error) {
	lat, lon, ok := strings.Cut(s, ",")
	if !ok {
		return cfg.Location(s)
	}
	latF, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return nil, fmt.Errorf("latitude %q: %w", lat, geo.ErrInvalidArgument)
	}
	lonF, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return nil, fmt.Errorf("longitude %q: %w", lon, geo.ErrInvalidArgument)
	}
	return geo.New(s, latF, lonF, 0, geo.UTC)
}

type VersionCommand struct{}

// Execute prints the version.
func (command *VersionCommand) Execute(args []string) error {
	fmt.Fprintf(out, "zmanim %s (calculators: %s)\n", version, strings.Join(astro.Names(), ", "))
	return nil
}
