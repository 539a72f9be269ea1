package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/spencer-p/zmandash/pkg/astro"
	"github.com/spencer-p/zmandash/pkg/handlers"
	"github.com/spencer-p/zmandash/pkg/metrics"
)

type Config struct {
	Port   string `default:"8080"`
	Prefix string `default:"/"`

	// cache for slightly less than one day so daily clients don't see stale
	// data
	CacheTTL          time.Duration `default:"23h" split_words:"true"`
	DefaultCalculator string        `default:"noaa" split_words:"true"`
	LogLevel          string        `default:"info" split_words:"true"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var env Config
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal().Err(err).Msg("Bad environment")
	}
	level, err := zerolog.ParseLevel(env.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("Bad LOG_LEVEL")
	}
	zerolog.SetGlobalLevel(level)
	if _, err := astro.ByName(env.DefaultCalculator); err != nil {
		log.Fatal().Err(err).Msg("Bad DEFAULT_CALCULATOR")
	}

	r := mux.NewRouter().StrictSlash(true)
	r.Use(logRequests, metrics.LatencyHandler)
	s := r.PathPrefix(env.Prefix).Subrouter()

	handlers.Register(s, handlers.Config{
		CacheTTL:          env.CacheTTL,
		DefaultCalculator: env.DefaultCalculator,
	})
	s.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Handler:      r,
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	log.Info().
		Str("addr", srv.Addr).
		Str("prefix", env.Prefix).
		Str("calculator", env.DefaultCalculator).
		Dur("cache_ttl", env.CacheTTL).
		Msg("Listening and serving")
	log.Fatal().Err(srv.ListenAndServe()).Msg("Server stopped")
}
