package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filesmanager-backend/service"
)

// AppHandler serves liveness, readiness and usage statistics.
type AppHandler struct {
	app *service.AppService
}

// NewAppHandler creates a new app handler
func NewAppHandler(app *service.AppService) *AppHandler {
	return &AppHandler{app: app}
}

// Health handles GET /health. Liveness only; it never touches the stores.
func (h *AppHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetStatus handles GET /status, reporting reachability of Redis and the
// database.
func (h *AppHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.Status(c.Request.Context()))
}

// GetStats handles GET /stats
func (h *AppHandler) GetStats(c *gin.Context) {
	stats, err := h.app.Stats(c.Request.Context())
	if err != nil {
		mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
