package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// logRequests logs each request once it has been served.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		next.ServeHTTP(w, r)
		log.Info().
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Str("remote", r.RemoteAddr).
			Dur("latency", time.Since(t)).
			Msg("Served request")
	})
}
