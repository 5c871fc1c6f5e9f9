package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"callsight/internal/config"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	cfg *config.GeminiConfig
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg *config.GeminiConfig) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "model": h.cfg.Model})
}
