package handler

import (
	"net/http"
	"time"

	"github.com/erp/ledger/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger checks a backing dependency
type Pinger interface {
	Ping() error
}

// HealthHandler reports liveness of the service and its database
type HealthHandler struct {
	db  Pinger
	now func() time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, now: time.Now}
}

// Health godoc
// @Summary      Health check
// @Description  Report whether the service and its database are reachable
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	now := h.now().Format(time.RFC3339)
	if err := h.db.Ping(); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"time":     now,
			"database": "error",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"time":     now,
		"database": "ok",
	})
}
