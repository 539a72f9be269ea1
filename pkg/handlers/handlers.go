package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/spencer-p/zmandash/pkg/astro"
	"github.com/spencer-p/zmandash/pkg/cache"
	"github.com/spencer-p/zmandash/pkg/geo"
	"github.com/spencer-p/zmandash/pkg/metrics"
	"github.com/spencer-p/zmandash/pkg/timetricks"
	"github.com/spencer-p/zmandash/pkg/zmanim"
)

// Config tunes the handlers.
type Config struct {
	// CacheTTL is how long a rendered response is served from memory.
	CacheTTL time.Duration
	// DefaultCalculator is used when a request names none.
	DefaultCalculator string
}

func Register(r *mux.Router, cfg Config) {
	r.Handle("/", makeIndexHandler())
	r.Handle("/api/v1/zmanim", makeServeZmanim(cfg)).Methods(http.MethodGet)
	r.Handle("/api/v1/distance", makeServeDistance()).Methods(http.MethodGet)
}

// response is a rendered body kept in the cache.
type response struct {
	contentType string
	calculator  string
	rows        int
	body        []byte
}

// purgeEvery is how many stores go by between sweeps of expired responses.
const purgeEvery = 256

// responseCache holds rendered responses. Get only evicts the keys it is
// asked for, so every purgeEvery stores the whole cache is swept.
type responseCache struct {
	*cache.Timed[response]
	stores atomic.Int64
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{Timed: cache.NewTimed[response](ttl)}
}

func (c *responseCache) store(key string, r response) {
	c.Set(key, r)
	if c.stores.Add(1)%purgeEvery == 0 {
		remaining := c.Purge()
		log.Debug().Int("remaining", remaining).Msg("Purged expired responses")
	}
}

// now is the clock that dateless queries resolve today's date against.
var now = time.Now

func makeServeZmanim(cfg Config) http.Handler {
	timeCache := newResponseCache(cfg.CacheTTL)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q, err := parseZmanimQuery(r, cfg.DefaultCalculator)
		if err != nil {
			metrics.ObserveComputations("unknown", metrics.OutcomeBadQuery, 1)
			badRequest(w, err)
			return
		}

		// cache based on method, URL and the resolved day, since a query
		// without a date means today in the query's zone
		key := fmt.Sprintf("%s %s %s", r.Method, r.URL, timetricks.UniqueDay(q.date))

		// serve cache version from memory if possible
		if cached, ok := timeCache.Get(key); ok {
			metrics.ObserveComputations(cached.calculator, metrics.OutcomeCached, cached.rows)
			w.Header().Add("Content-Type", cached.contentType)
			w.WriteHeader(http.StatusOK)
			w.Write(cached.body)
			return
		}

		day, err := computeDay(q)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "Failed to compute zmanim: %v", err)
			log.Error().Err(err).Str("location", q.loc.String()).Msg("Failed to compute zmanim")
			return
		}

		// duplicate the http response onto a buffer for the cache
		var toCache bytes.Buffer
		mw := io.MultiWriter(w, &toCache)

		contentType := "text/plain"
		if q.format == "json" {
			contentType = "application/json"
		}
		w.Header().Add("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		if q.format == "json" {
			if err := json.NewEncoder(mw).Encode(day); err != nil {
				log.Error().Err(err).Msg("Failed to encode JSON result")
			}
		} else {
			day.writeText(mw)
		}

		timeCache.store(key, response{contentType, day.Calculator, len(day.Zmanim), toCache.Bytes()})
	})
}

type zmanimQuery struct {
	loc     *geo.Location
	date    time.Time
	calc    astro.Calculator
	candles time.Duration
	order   func(a, b zmanim.Zman) int
	format  string
}

func parseZmanimQuery(r *http.Request, defaultCalculator string) (zmanimQuery, error) {
	var q zmanimQuery

	lat, err := floatValue(r, "lat", nil)
	if err != nil {
		return q, err
	}
	lon, err := floatValue(r, "lon", nil)
	if err != nil {
		return q, err
	}
	zero := 0.0
	elev, err := floatValue(r, "elev", &zero)
	if err != nil {
		return q, err
	}

	tz := geo.UTC
	if name := r.FormValue("tz"); name != "" {
		if tz, err = geo.LoadZone(name); err != nil {
			return q, err
		}
	}

	name := r.FormValue("name")
	if name == "" {
		name = fmt.Sprintf("%v,%v", lat, lon)
	}
	if q.loc, err = geo.New(name, lat, lon, elev, tz); err != nil {
		return q, err
	}

	q.date = timetricks.CivilDate(geo.In(now(), tz))
	if s := r.FormValue("date"); s != "" {
		if q.date, err = timetricks.ParseDate(s); err != nil {
			return q, fmt.Errorf("%v: %w", err, geo.ErrInvalidArgument)
		}
	}

	calc := r.FormValue("calc")
	if calc == "" {
		calc = defaultCalculator
	}
	if q.calc, err = astro.ByName(calc); err != nil {
		return q, err
	}

	q.candles = zmanim.DefaultCandleLightingOffset
	if s := r.FormValue("candles"); s != "" {
		minutes, err := strconv.Atoi(s)
		if err != nil || minutes < 0 {
			return q, fmt.Errorf("candles %q is not a number of minutes: %w", s, geo.ErrInvalidArgument)
		}
		q.candles = time.Duration(minutes) * time.Minute
	}

	if q.order, err = zmanim.Comparison(r.FormValue("sort")); err != nil {
		return q, err
	}

	q.format = r.FormValue("o")
	return q, nil
}

// floatValue parses a query value. A nil def makes the value required.
func floatValue(r *http.Request, key string, def *float64) (float64, error) {
	s := r.FormValue(key)
	if s == "" {
		if def == nil {
			return 0, fmt.Errorf("missing %q: %w", key, geo.ErrInvalidArgument)
		}
		return *def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a number: %w", key, s, geo.ErrInvalidArgument)
	}
	return f, nil
}

// zmanimDay is the rendered result of one query.
type zmanimDay struct {
	Location   locationJSON `json:"location"`
	Date       string       `json:"date"`
	Calculator string       `json:"calculator"`
	Zmanim     []zmanim.Row `json:"zmanim"`
}

type locationJSON struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
	TimeZone  string  `json:"time_zone"`
}

func computeDay(q zmanimQuery) (zmanimDay, error) {
	cal := zmanim.NewComplexCalendar(q.loc, q.calc, q.date)
	if err := cal.SetCandleLightingOffset(q.candles); err != nil {
		return zmanimDay{}, err
	}

	zs, errs := zmanim.ComputeAll(cal)
	if q.order != nil {
		slices.SortStableFunc(zs, q.order)
	}

	day := zmanimDay{
		Location: locationJSON{
			Name:      q.loc.Name(),
			Latitude:  q.loc.Latitude(),
			Longitude: q.loc.Longitude(),
			Elevation: q.loc.Elevation(),
			TimeZone:  q.loc.TimeZone().ID(),
		},
		Date:       q.date.Format(timetricks.DateLayout),
		Calculator: q.calc.Name(),
	}
	for _, err := range errs {
		if !errors.Is(err, astro.ErrNoSunriseOrSunset) {
			metrics.ObserveComputations(q.calc.Name(), metrics.OutcomeException, 1)
			return zmanimDay{}, err
		}
	}
	day.Zmanim = zmanim.Rows(zs, errs)

	metrics.ObserveComputations(q.calc.Name(), metrics.OutcomeOK, len(zs))
	metrics.ObserveComputations(q.calc.Name(), metrics.OutcomeNoEvent, len(errs))
	if len(errs) > 0 {
		log.Debug().
			Str("location", q.loc.String()).
			Str("date", day.Date).
			Int("missing", len(errs)).
			Msg("Some zmanim do not occur")
	}
	return day, nil
}

func (d zmanimDay) writeText(w io.Writer) {
	fmt.Fprintf(w, "%s on %s (%s)\n", d.Location.Name, d.Date, d.Calculator)
	for _, z := range d.Zmanim {
		if z.Err != nil {
			fmt.Fprintf(w, "%s: none (%v)\n", z.Label, errors.Unwrap(z.Err))
			continue
		}
		fmt.Fprintf(w, "%s\n", z.String())
	}
}

func makeServeDistance() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		from, err := pointValue(r, "from")
		if err != nil {
			badRequest(w, err)
			return
		}
		to, err := pointValue(r, "to")
		if err != nil {
			badRequest(w, err)
			return
		}

		result := newDistance(from, to)
		if r.FormValue("o") == "json" {
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if err := json.NewEncoder(w).Encode(result); err != nil {
				log.Error().Err(err).Msg("Failed to encode JSON result")
			}
			return
		}
		w.Header().Add("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, result.String())
	})
}

// pointValue parses "lat,lon".
func pointValue(r *http.Request, key string) (*geo.Location, error) {
	s := r.FormValue(key)
	lat, lon, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("%s %q is not lat,lon: %w", key, s, geo.ErrInvalidArgument)
	}
	latF, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return nil, fmt.Errorf("%s latitude %q: %w", key, lat, geo.ErrInvalidArgument)
	}
	lonF, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return nil, fmt.Errorf("%s longitude %q: %w", key, lon, geo.ErrInvalidArgument)
	}
	return geo.New(key, latF, lonF, 0, geo.UTC)
}

// Distance holds the geodesic and rhumb line answers between two points.
type Distance struct {
	Geodesic struct {
		Meters         float64 `json:"meters"`
		InitialBearing float64 `json:"initial_bearing"`
		FinalBearing   float64 `json:"final_bearing"`
		Iterations     int     `json:"iterations"`
		Converged      bool    `json:"converged"`
	} `json:"geodesic"`
	Rhumb struct {
		Meters  float64 `json:"meters"`
		Bearing float64 `json:"bearing"`
	} `json:"rhumb"`
}

func newDistance(from, to *geo.Location) Distance {
	var d Distance
	inv := geo.Vincenty(from, to)
	d.Geodesic.Meters = inv.Distance
	d.Geodesic.InitialBearing = inv.InitialBearing
	d.Geodesic.FinalBearing = inv.FinalBearing
	d.Geodesic.Iterations = inv.Iterations
	d.Geodesic.Converged = inv.Converged
	d.Rhumb.Meters = geo.RhumbLineDistance(from, to)
	d.Rhumb.Bearing = geo.RhumbLineBearing(from, to)
	return d
}

func (d Distance) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "geodesic: %.3f m, initial bearing %.5f°, final bearing %.5f°",
		d.Geodesic.Meters, d.Geodesic.InitialBearing, d.Geodesic.FinalBearing)
	if !d.Geodesic.Converged {
		fmt.Fprintf(&b, " (did not converge after %d iterations)", d.Geodesic.Iterations)
	}
	fmt.Fprintf(&b, "\nrhumb line: %.3f m, bearing %.5f°\n", d.Rhumb.Meters, d.Rhumb.Bearing)
	return b.String()
}

func badRequest(w http.ResponseWriter, err error) {
	log.Warn().Err(err).Msg("Bad request")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, "Bad request: %v", err)
}

func makeIndexHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "text/plain")
		fmt.Fprintf(w, "zmandash\n\nGET /api/v1/zmanim?lat=&lon=&elev=&tz=&date=&calc=&candles=&sort=&o=json\nGET /api/v1/distance?from=lat,lon&to=lat,lon&o=json\n")
	})
}
