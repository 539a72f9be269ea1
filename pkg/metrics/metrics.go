package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes of a zmanim computation. Every outcome counts zmanim, so a
// cached response adds one per row it holds.
const (
	OutcomeOK        = "ok"
	OutcomeNoEvent   = "no_event"
	OutcomeCached    = "cached"
	OutcomeBadQuery  = "bad_query"
	OutcomeException = "error"
)

var (
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "request_latency",
			Subsystem: "zmandash",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		},
		[]string{"verb", "path", "code"},
	)

	computations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zmanim_computations_total",
			Help: "Zmanim computed, by calculator and outcome.",
		},
		[]string{"calculator", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		requestLatency,
		computations,
	)
}

func ObserveRequestLatency(verb, path, code string, latency float64) {
	requestLatency.With(prometheus.Labels{
		"code": code,
		"verb": verb,
		"path": path,
	}).Observe(latency)
}

// ObserveComputations counts n zmanim computed by calculator with the given
// outcome.
func ObserveComputations(calculator, outcome string, n int) {
	computations.With(prometheus.Labels{
		"calculator": calculator,
		"outcome":    outcome,
	}).Add(float64(n))
}

// Handler serves the registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

func LatencyHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		verb := r.Method
		path := ""
		if r.URL != nil {
			path = r.URL.Path
		}
		rec := &statusRecorder{ResponseWriter: w}

		// Defer metric observing. Any panics in next are reported as 500 errors
		// and then re-thrown.
		defer func() {
			if err := recover(); err != nil {
				ObserveRequestLatency(verb, path, "500", time.Since(t).Seconds())
				panic(err)
			}
			ObserveRequestLatency(verb, path, rec.code(), time.Since(t).Seconds())
		}()

		next.ServeHTTP(rec, r)
	})
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) code() string {
	if s.status == 0 {
		// Unset, will be set to 200 by stdlib.
		return "200"
	}
	return strconv.Itoa(s.status)
}
