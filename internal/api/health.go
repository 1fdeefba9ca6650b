// Package api provides the HTTP handlers for the virtual-office API
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/harshala334/virtual-office/internal/repository"
)

// healthStatus is the body of both probe endpoints
type healthStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthLiveHandler answers liveness probes. The process being able to
// serve the request is the whole check.
func HealthLiveHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(healthStatus{Status: "UP"})
}

// HealthReadyHandler answers readiness probes by reading the room snapshot
// from the storage backend. A Redis outage turns the instance not-ready
// instead of letting requests fail deeper in the stack.
type HealthReadyHandler struct {
	repo repository.Repository
}

// NewHealthReadyHandler creates a readiness handler over the repository
func NewHealthReadyHandler(repo repository.Repository) *HealthReadyHandler {
	return &HealthReadyHandler{repo: repo}
}

// ServeHTTP handles GET /health/ready
func (h *HealthReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if _, err := h.repo.LoadRooms(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(healthStatus{Status: "DOWN", Error: err.Error()})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(healthStatus{Status: "UP"})
}
