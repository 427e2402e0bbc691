package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/derekschultz/lol-dfs-optimizer/internal/optimizer"
	"github.com/derekschultz/lol-dfs-optimizer/internal/types"
	"github.com/derekschultz/lol-dfs-optimizer/internal/valuation"
	"github.com/derekschultz/lol-dfs-optimizer/internal/websocket"
	"github.com/derekschultz/lol-dfs-optimizer/pkg/cache"
	"github.com/derekschultz/lol-dfs-optimizer/pkg/config"
	"github.com/derekschultz/lol-dfs-optimizer/pkg/logger"
)

// OptimizationRequest is the payload for lineup generation.
type OptimizationRequest struct {
	PlayerPool []types.Player        `json:"player_pool"`
	Contest    types.Contest         `json:"contest"`
	Historical *types.HistoricalData `json:"historical,omitempty"`
	Config     optimizer.Config      `json:"config"`
}

// OptimizationResponse wraps an optimizer result with its run ID.
type OptimizationResponse struct {
	RunID  string            `json:"run_id"`
	Result *optimizer.Result `json:"result"`
}

// OptimizationHandler handles lineup generation endpoints
type OptimizationHandler struct {
	engine *valuation.Engine
	wsHub  *websocket.Hub
	cache  *cache.ValuationCacheService
	config *config.Config
	logger *logrus.Logger
}

// NewOptimizationHandler creates a new optimization handler
func NewOptimizationHandler(engine *valuation.Engine, wsHub *websocket.Hub, cacheService *cache.ValuationCacheService, cfg *config.Config, logger *logrus.Logger) *OptimizationHandler {
	return &OptimizationHandler{
		engine: engine,
		wsHub:  wsHub,
		cache:  cacheService,
		config: cfg,
		logger: logger,
	}
}

// OptimizeLineups generates a lineup portfolio for the given player pool
func (h *OptimizationHandler) OptimizeLineups(c *gin.Context) {
	var req OptimizationRequest
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
	if len(req.PlayerPool) == 0 {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Player pool is empty",
			Code:  "EMPTY_POOL",
		})
		return
	}

	// Server-side limits win over whatever the client asked for.
	if req.Config.NumLineups <= 0 || req.Config.NumLineups > h.config.MaxLineups {
		req.Config.NumLineups = h.config.MaxLineups
	}
	if req.Config.SalaryCap <= 0 {
		req.Config.SalaryCap = h.config.SalaryCap
	}
	if req.Config.Candidates <= 0 {
		req.Config.Candidates = h.config.OptimizerCandidates
	}
	if req.Config.Workers <= 0 {
		req.Config.Workers = h.config.OptimizerWorkers
	}
	if req.Config.Exposure.MaxPlayerExposure <= 0 {
		req.Config.Exposure.MaxPlayerExposure = float64(h.config.MaxPlayerExposurePct)
	}

	runID := uuid.NewString()
	progress := make(chan types.ProgressUpdate, 100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			h.wsHub.BroadcastToRun(runID, update)
		}
	}()

	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.OptimizationTimeout)*time.Second)
	defer cancel()

	worker := optimizer.NewWorker(h.engine, req.Config)
	result, err := worker.Optimize(ctx, req.PlayerPool, req.Contest, req.Historical, progress)
	close(progress)
	<-done

	if err != nil {
		logger.WithOptimizationID(runID).WithError(err).Error("Optimization failed")
		c.JSON(http.StatusUnprocessableEntity, types.ErrorResponse{
			Error: err.Error(),
			Code:  "OPTIMIZATION_FAILED",
		})
		return
	}

	if h.cache != nil {
		ttl := time.Duration(h.config.CacheTTLSeconds) * time.Second
		if err := h.cache.SetOptimizationResult(c.Request.Context(), runID, result, ttl); err != nil {
			logger.WithOptimizationID(runID).WithError(err).Warn("Failed to cache optimization result")
		}
	}

	c.JSON(http.StatusOK, OptimizationResponse{RunID: runID, Result: result})
}

// GetOptimizationResult returns a previously completed run by its ID
func (h *OptimizationHandler) GetOptimizationResult(c *gin.Context) {
	runID := c.Param("run_id")

	result, err := h.cache.GetOptimizationResult(c.Request.Context(), runID)
	if err != nil {
		h.logger.WithField("run_id", runID).Debug("Optimization run cache miss")
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error: "Optimization run not found or expired",
			Code:  "RUN_NOT_FOUND",
		})
		return
	}

	c.JSON(http.StatusOK, OptimizationResponse{RunID: runID, Result: result})
}
