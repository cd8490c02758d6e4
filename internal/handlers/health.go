package handlers

import (
	"context"
	"net/http"
	"time"

	"COFOUNDER-SPHERE_BACK-END/internal/dto"
	"COFOUNDER-SPHERE_BACK-END/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

const serviceName = "cofounder-sphere-backend"

// HealthHandler answers the health endpoints for this backend
type HealthHandler struct {
	db      *pgxpool.Pool
	started time.Time
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

// HealthCheck reports basic process health without touching the database
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Details: map[string]any{"service": serviceName},
	})
}

// LivenessCheck reports process liveness and uptime
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status: "alive",
		Details: map[string]any{
			"service":   serviceName,
			"uptime_ms": time.Since(h.started).Milliseconds(),
		},
	})
}

// ReadinessCheck reports whether the backend can serve traffic, which
// requires a reachable database
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		utils.WriteJSONResponse(w, http.StatusServiceUnavailable, dto.HealthResponse{
			Status: "degraded",
			Details: map[string]any{
				"service": serviceName,
				"db":      err.Error(),
			},
		})
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status: "ready",
		Details: map[string]any{
			"service":    serviceName,
			"db":         "ok",
			"db_ping_ms": time.Since(start).Milliseconds(),
		},
	})
}
