// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockpile/internal/core/tenant"
	"stockpile/internal/infrastructure/storage/postgres"
)

// HealthHandler provides health check endpoints.
// The control-plane database holds accounts; tenant databases are
// opened on demand, so readiness only checks the control plane.
type HealthHandler struct {
	controlPool   *pgxpool.Pool
	tenantManager *tenant.Manager
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(controlPool *pgxpool.Pool, tenantManager *tenant.Manager) *HealthHandler {
	return &HealthHandler{
		controlPool:   controlPool,
		tenantManager: tenantManager,
	}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe (is the service ready to accept traffic?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.controlPool.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{
				"control_database": "unhealthy: " + err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"control_database": "healthy",
		},
	})
}

// Info returns application information with tenant pool stats.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	controlStats := postgres.GetPoolStats(h.controlPool)
	tenantStats := h.tenantManager.Stats()

	c.JSON(http.StatusOK, gin.H{
		"app":     "stockpile",
		"version": "0.1.0",
		"control_database": map[string]any{
			"total_conns":    controlStats.TotalConns,
			"acquired_conns": controlStats.AcquiredConns,
			"idle_conns":     controlStats.IdleConns,
		},
		"tenants": map[string]any{
			"active_pools":   tenantStats.TotalPools,
			"total_conns":    tenantStats.TotalConns,
			"idle_conns":     tenantStats.IdleConns,
			"acquired_conns": tenantStats.AcquiredConns,
		},
	})
}

// TenantsStats returns detailed statistics for all tenant pools.
// GET /health/tenants
func (h *HealthHandler) TenantsStats(c *gin.Context) {
	stats := h.tenantManager.Stats()

	tenantDetails := make([]gin.H, 0, len(stats.Tenants))
	for _, t := range stats.Tenants {
		tenantDetails = append(tenantDetails, gin.H{
			"user_id":        t.UserID,
			"db_name":        t.DBName,
			"total_conns":    t.TotalConns,
			"idle_conns":     t.IdleConns,
			"acquired_conns": t.AcquiredConns,
			"active_refs":    t.ActiveRefs,
			"last_used":      t.LastUsed,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total_pools": stats.TotalPools,
		"total_conns": stats.TotalConns,
		"tenants":     tenantDetails,
	})
}
