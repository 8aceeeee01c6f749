package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quantumtix/quantumticket/internal/response"
	"github.com/redis/go-redis/v9"
)

// HealthHandler serves liveness and readiness probes. The ledger itself is
// in-process and always live; readiness covers the optional backends.
type HealthHandler struct {
	pool    *pgxpool.Pool
	rdb     redis.UniversalClient
	version string
}

// NewHealthHandler creates a HealthHandler. pool and rdb may be nil when the
// corresponding backend is not configured.
func NewHealthHandler(pool *pgxpool.Pool, rdb redis.UniversalClient, version string) *HealthHandler {
	return &HealthHandler{pool: pool, rdb: rdb, version: version}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(gin.H{
		"status":  "ok",
		"version": h.version,
	}))
}

// Ready handles GET /health/ready. It pings each configured backend with a
// short deadline so a hung dependency cannot wedge the probe.
func (h *HealthHandler) Ready(c *gin.Context) {
	checkCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if h.pool != nil {
		if err := h.pool.Ping(checkCtx); err != nil {
			checks["postgres"] = "unreachable"
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	}
	if h.rdb != nil {
		if err := h.rdb.Ping(checkCtx).Err(); err != nil {
			checks["redis"] = "unreachable"
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.ErrorWithDetails(
			response.ErrCodeServiceUnavailable, "One or more backends are unreachable", checks))
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "ready", "checks": checks}))
}
