package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/branchstock/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether the store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SystemHandler serves liveness endpoints
type SystemHandler struct {
	db      Pinger
	now     func() time.Time
	timeout time.Duration
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db, now: time.Now, timeout: 2 * time.Second}
}

// Health godoc
// @ID           health
// @Summary      Health check
// @Description  Reports 200 when the database answers and 503 otherwise
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	status, dbState, code := "healthy", "ok", http.StatusOK
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		status, dbState, code = "unhealthy", "error", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":   status,
		"time":     h.now().Format(time.RFC3339),
		"database": dbState,
	})
}
