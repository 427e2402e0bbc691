package handlers

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/derekschultz/lol-dfs-optimizer/internal/types"
	"github.com/derekschultz/lol-dfs-optimizer/internal/valuation"
	"github.com/derekschultz/lol-dfs-optimizer/pkg/cache"
	"github.com/derekschultz/lol-dfs-optimizer/pkg/config"
	"github.com/derekschultz/lol-dfs-optimizer/pkg/logger"
)

// ValuationRequest is the payload for lineup valuation endpoints.
type ValuationRequest struct {
	Lineup     types.Lineup          `json:"lineup"`
	Contest    types.Contest         `json:"contest"`
	Historical *types.HistoricalData `json:"historical,omitempty"`
}

// ValuationHandler handles lineup valuation endpoints
type ValuationHandler struct {
	engine *valuation.Engine
	cache  *cache.ValuationCacheService
	config *config.Config
	logger *logrus.Logger
}

// NewValuationHandler creates a new valuation handler
func NewValuationHandler(engine *valuation.Engine, cacheService *cache.ValuationCacheService, cfg *config.Config, logger *logrus.Logger) *ValuationHandler {
	return &ValuationHandler{
		engine: engine,
		cache:  cacheService,
		config: cfg,
		logger: logger,
	}
}

// ValueLineup runs the full valuation pipeline for one lineup
func (h *ValuationHandler) ValueLineup(c *gin.Context) {
	var req ValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Invalid request format",
			Code:  "INVALID_REQUEST",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}
	if len(req.Lineup.AllPlayers()) == 0 {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Lineup has no players with projections",
			Code:  "EMPTY_LINEUP",
		})
		return
	}

	cacheKey := requestCacheKey(req)
	if h.cache != nil {
		if cached, err := h.cache.GetValuation(c.Request.Context(), cacheKey); err == nil && cached != nil {
			h.logger.WithField("cache_key", cacheKey).Debug("Returning cached valuation")
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	result := h.engine.Value(req.Lineup, req.Contest, req.Historical)
	logger.WithValuationContext(req.Lineup.ID, string(result.ContestType)).Debug("Returning fresh valuation")

	if h.cache != nil {
		ttl := time.Duration(h.config.CacheTTLSeconds) * time.Second
		if err := h.cache.SetValuation(c.Request.Context(), cacheKey, &result, ttl); err != nil {
			h.logger.WithError(err).Warn("Failed to cache valuation")
		}
	}

	c.JSON(http.StatusOK, result)
}

// NexusScore returns the display rating for one lineup
func (h *ValuationHandler) NexusScore(c *gin.Context) {
	var req ValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Invalid request format",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"nexus_score": h.engine.NexusScore(req.Lineup),
	})
}

// CacheStatus reports valuation cache statistics
func (h *ValuationHandler) CacheStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.cache.GetStatus(c.Request.Context()))
}

// FlushCache clears all cached valuations
func (h *ValuationHandler) FlushCache(c *gin.Context) {
	if err := h.cache.FlushValuationCache(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error: "Failed to flush valuation cache",
			Code:  "CACHE_FLUSH_FAILED",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "flushed"})
}

func requestCacheKey(req ValuationRequest) string {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Sprintf("lineup:%s", req.Lineup.ID)
	}
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
