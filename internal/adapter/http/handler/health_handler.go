package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// AccountCounter reports how many accounts the registry holds.
type AccountCounter interface {
	Len() int
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	accounts    AccountCounter
	redisClient *redis.Client
}

// NewHealthHandler creates a new HealthHandler. redisClient may be nil.
func NewHealthHandler(accounts AccountCounter, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		accounts:    accounts,
		redisClient: redisClient,
	}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the service is ready to accept traffic.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{"status": "ready", "redis": "disabled"}

	if h.accounts != nil {
		status["accounts"] = h.accounts.Len()
	}

	if h.redisClient != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unhealthy", err.Error())
			return
		}
		status["redis"] = "ok"
	}

	writeJSON(w, http.StatusOK, status)
}
