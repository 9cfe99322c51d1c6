package handler

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nextgen-care/clinic-service/internal/core/domain"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
)

type HealthHandler struct {
	store       ports.RecordStore
	redisClient *redis.Client
	startTime   time.Time
	version     string
}

func NewHealthHandler(store ports.RecordStore, redisClient *redis.Client) *HealthHandler {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "unknown"
	}
	return &HealthHandler{
		store:       store,
		redisClient: redisClient,
		startTime:   time.Now(),
		version:     version,
	}
}

// HealthResponse follows Kubernetes/OpenShift health check conventions
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health is a simple liveness check - just confirms the process is running
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    map[string]Check{"process": {Status: "UP"}},
	}
	writeJSON(w, http.StatusOK, response)
}

// Ready checks if the service can serve traffic (readiness probe)
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]Check)
	status := "UP"
	httpStatus := http.StatusOK

	storeCheck := h.checkStore()
	checks["store"] = storeCheck
	if storeCheck.Status != "UP" {
		status = "DOWN"
		httpStatus = http.StatusServiceUnavailable
	}

	sessionCheck := h.checkSessions()
	checks["sessions"] = sessionCheck
	if sessionCheck.Status != "UP" {
		status = "DOWN"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": status,
		"checks": checks,
	})
}

// Live is an alias for Health - simple liveness check
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}

// checkStore probes the record store with a read on a key that never exists;
// NotFound means the backend answered.
func (h *HealthHandler) checkStore() Check {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := h.store.Get(ctx, ports.Doctors, "healthcheck-probe")
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return Check{Status: "DOWN", Message: "Cannot reach record store"}
	}
	return Check{Status: "UP"}
}

func (h *HealthHandler) checkSessions() Check {
	if h.redisClient == nil {
		return Check{Status: "UP", Message: "Session store runs in-process"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		return Check{Status: "DOWN", Message: "Cannot connect to Redis"}
	}
	return Check{Status: "UP"}
}
