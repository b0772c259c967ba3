package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hungrylist/internal/shared/biztime"
	"hungrylist/internal/shared/version"
)

type HealthHandler struct {
	clock biztime.Clock
}

func NewHealthHandler(clock biztime.Clock) *HealthHandler {
	return &HealthHandler{clock: clock}
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Healthz handles GET /healthz. It needs no session.
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: h.clock.Now().UTC(),
		Version:   version.String(),
	})
}
