package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/tripweave/tripweave-backend/logger"
)

// HealthHandler reports liveness and readiness.
type HealthHandler struct {
	pool    *pgxpool.Pool
	rdb     *redis.Client
	version string
}

func NewHealthHandler(pool *pgxpool.Pool, rdb *redis.Client, version string) *HealthHandler {
	return &HealthHandler{pool: pool, rdb: rdb, version: version}
}

// Liveness handles GET /health/liveness. It only proves the process is up.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "up", "version": h.version})
}

// Readiness handles GET /health/readiness. It pings both backing stores.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	log := logger.GetLogger()
	components := gin.H{}
	healthy := true

	if err := h.pool.Ping(ctx); err != nil {
		log.Warnw("Readiness check failed for postgres", "error", err)
		components["database"] = "down"
		healthy = false
	} else {
		components["database"] = "up"
	}

	if err := h.rdb.Ping(ctx).Err(); err != nil {
		log.Warnw("Readiness check failed for redis", "error", err)
		components["redis"] = "down"
		healthy = false
	} else {
		components["redis"] = "up"
	}

	status := http.StatusOK
	overall := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	c.JSON(status, gin.H{"status": overall, "components": components, "version": h.version})
}
