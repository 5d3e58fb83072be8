package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/demobank/demobank/internal/storage"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	blobs storage.Store
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(blobs storage.Store) *HealthHandler {
	return &HealthHandler{blobs: blobs}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the blob store is reachable.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.blobs.Ping(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, "blob store unhealthy", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"storage": "ok",
	})
}
