package main

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// startHealthCheckServer exposes liveness and readiness probes for the
// worker process.
func startHealthCheckServer() {
	http.HandleFunc("/health", healthCheckHandler)
	http.HandleFunc("/ready", readyCheckHandler)

	log.Info().Msg("worker health server on :9999")
	if err := http.ListenAndServe(":9999", nil); err != nil {
		log.Warn().Err(err).Msg("health server failed")
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"UP","service":"pressroom-worker"}`))
}

func readyCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"READY"}`))
}
