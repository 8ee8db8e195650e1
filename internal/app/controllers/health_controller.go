package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unitrack/internal/app/models/dto"
)

// Pinger reports whether the record store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController serves the liveness endpoint
type HealthController struct {
	db Pinger
}

// NewHealthController creates a new HealthController
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Health reports service and database status
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse} "Service healthy"
// @Failure 503 {object} dto.APIResponse{data=dto.HealthResponse} "Database unreachable"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := dto.HealthResponse{Status: "ok", Database: "up"}, http.StatusOK
	if err := c.db.Ping(pingCtx); err != nil {
		status, code = dto.HealthResponse{Status: "degraded", Database: "down"}, http.StatusServiceUnavailable
	}

	ctx.JSON(code, dto.APIResponse{
		Data:      status,
		Timestamp: time.Now(),
	})
}
