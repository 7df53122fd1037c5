package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: Basic liveness probe (always returns 200 OK).
//   - /readyz: Readiness probe (ingestion finished and, for postgres, the
//     database is reachable).
type HealthHandler struct {
	ready  func() bool  // Reports whether ingestion has finished
	dbPing func() error // Checks database connectivity; nil for the memory store
}

// NewHealthHandler constructs a HealthHandler. Either function may be nil.
func NewHealthHandler(ready func() bool, dbPing func() error) *HealthHandler {
	return &HealthHandler{ready: ready, dbPing: dbPing}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: 200 when ready, 503 while loading or when the database is not reachable.
func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.liveness)
	r.GET("/readyz", h.readiness)
}

// liveness godoc
// @Summary      Liveness probe
// @Description  Always returns OK if the service is running
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (h *HealthHandler) liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readiness godoc
// @Summary      Readiness probe
// @Description  Returns ready once prices are loaded and the store is reachable
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /readyz [get]
func (h *HealthHandler) readiness(c *gin.Context) {
	if h.ready != nil && !h.ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
		return
	}
	if h.dbPing != nil && h.dbPing() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
