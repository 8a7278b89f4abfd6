package rest

import (
	"log/slog"
	"net/http"
)

// Ping answers liveness probes with "pong".
func Ping(logger *slog.Logger) http.HandlerFunc {
	log := logger.With("component", "rest", "method", "Ping")

	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("pong")); err != nil {
			log.Error("failed to write pong", "error", err)
		}
	}
}
