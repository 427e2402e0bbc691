package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// HealthHandler handles health and readiness endpoints
type HealthHandler struct {
	redisClient *redis.Client
	logger      *logrus.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(redisClient *redis.Client, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		redisClient: redisClient,
		logger:      logger,
	}
}

// GetHealth reports liveness
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "lineup-valuation",
		"timestamp": time.Now(),
	})
}

// GetReady reports readiness, including the cache backend
func (h *HealthHandler) GetReady(c *gin.Context) {
	checks := map[string]string{}
	status := http.StatusOK

	if h.redisClient != nil {
		if err := h.redisClient.Ping(c.Request.Context()).Err(); err != nil {
			checks["redis"] = "unavailable"
			status = http.StatusServiceUnavailable
		} else {
			checks["redis"] = "ok"
		}
	}

	c.JSON(status, gin.H{
		"status":    map[bool]string{true: "ready", false: "not_ready"}[status == http.StatusOK],
		"checks":    checks,
		"timestamp": time.Now(),
	})
}
