package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/urmzd/dirigera/pkg/api/types"
)

const healthTimeout = 3 * time.Second

// StatusSource reports the hub's status record.
type StatusSource interface {
	Status(ctx context.Context) (map[string]any, error)
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	hub StatusSource
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(hub StatusSource) *HealthHandler {
	return &HealthHandler{hub: hub}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the health of the bridge and whether the hub answers
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Hub reachable"
// @Failure      503  {object}  types.HealthResponse  "Hub unreachable"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	resp := types.HealthResponse{Status: "healthy", Hub: "reachable", Timestamp: time.Now()}
	status := http.StatusOK
	if _, err := h.hub.Status(ctx); err != nil {
		log.Debug().Err(err).Msg("hub status check failed")
		resp.Status, resp.Hub = "degraded", "unreachable"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
