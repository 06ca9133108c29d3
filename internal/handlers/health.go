package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	redis *redis.Client
}

func NewHealthHandler(redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{redis: redisClient}
}

// HealthCheck returns the health status of the service
// @Summary Health check
// @Description Returns the health status of the admin BFF service
// @Tags health
// @Produce json
// @Success 200 {object} object{status=string,timestamp=string,service=string}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "admin-bff-service",
		"version":   "1.0.0",
	})
}

// ReadinessCheck returns the readiness status of the service. Redis is the
// only stateful dependency; when unreachable the session store degrades, so
// readiness reports it.
// @Summary Readiness check
// @Description Returns the readiness status of the admin BFF service
// @Tags health
// @Produce json
// @Success 200 {object} object{status=string,timestamp=string,service=string}
// @Router /ready [get]
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	redisStatus := "not_configured"
	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "unreachable"
		} else {
			redisStatus = "ok"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "admin-bff-service",
		"version":   "1.0.0",
		"redis":     redisStatus,
	})
}
