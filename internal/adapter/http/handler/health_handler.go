package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger checks that a backend is reachable.
type Pinger func(ctx context.Context) error

// HealthHandler handles health check requests.
type HealthHandler struct {
	backend string
	ping    Pinger
}

// NewHealthHandler creates a new HealthHandler. A nil ping reports the
// backend as always ready (in-memory and file stores).
func NewHealthHandler(backend string, ping Pinger) *HealthHandler {
	return &HealthHandler{
		backend: backend,
		ping:    ping,
	}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the balance store is reachable.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := h.ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, h.backend+" unhealthy", err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		h.backend: "ok",
	})
}
