package api

import (
	"net/http"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	ready func() bool
}

// NewHealthHandler creates a health handler. ready reports whether the
// service's dependencies are wired and able to serve chat traffic.
func NewHealthHandler(ready func() bool) *HealthHandler {
	return &HealthHandler{ready: ready}
}

// RegisterRoutes registers health routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.liveness)
	mux.HandleFunc("GET /ready", h.readiness)
}

// liveness returns 200 OK if the process is alive.
func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readiness returns 200 OK once the chat pipeline is wired.
func (h *HealthHandler) readiness(w http.ResponseWriter, _ *http.Request) {
	if h.ready == nil || !h.ready() {
		http.Error(w, "chat pipeline not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
