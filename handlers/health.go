package handlers

import (
	"net/http"

	"spacebook/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness with the last snapshot of the health monitor.
type HealthHandler struct {
	Status func() utils.HealthStatus
}

func (h *HealthHandler) Health(c *gin.Context) {
	snapshot := h.Status()

	healthy := snapshot.Mongo
	for _, ok := range snapshot.Redis {
		healthy = healthy && ok
	}

	status, state := http.StatusOK, "ok"
	if !snapshot.CheckedAt.IsZero() && !healthy {
		status, state = http.StatusServiceUnavailable, "degraded"
	}
	c.JSON(status, gin.H{"status": state, "message": "Hi, I'm spacebook", "checks": snapshot})
}
