package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/derekschultz/lol-dfs-optimizer/internal/api/handlers"
	"github.com/derekschultz/lol-dfs-optimizer/internal/api/middleware"
	"github.com/derekschultz/lol-dfs-optimizer/internal/valuation"
	"github.com/derekschultz/lol-dfs-optimizer/internal/websocket"
	"github.com/derekschultz/lol-dfs-optimizer/pkg/cache"
	"github.com/derekschultz/lol-dfs-optimizer/pkg/config"
	"github.com/derekschultz/lol-dfs-optimizer/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	logger.WithService("lineup-valuation").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
	}).Info("Starting Lineup Valuation Service")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to Redis for the valuation cache
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.WithService("lineup-valuation").Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithService("lineup-valuation").Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	cacheService := cache.NewValuationCacheService(redisClient, structuredLogger)

	// Valuation engine with production constants
	engine := valuation.NewEngine(valuation.DefaultConfig())

	// WebSocket hub for optimizer progress updates
	wsHub := websocket.NewHub(structuredLogger)
	go wsHub.Run()

	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	router.Use(middleware.CORS(cfg.CorsOrigins))

	valuationHandler := handlers.NewValuationHandler(engine, cacheService, cfg, structuredLogger)
	optimizationHandler := handlers.NewOptimizationHandler(engine, wsHub, cacheService, cfg, structuredLogger)
	healthHandler := handlers.NewHealthHandler(redisClient, structuredLogger)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/lineups/value", valuationHandler.ValueLineup)
		apiV1.POST("/lineups/nexus", valuationHandler.NexusScore)
		apiV1.POST("/optimize", optimizationHandler.OptimizeLineups)
		apiV1.GET("/optimize/:run_id", optimizationHandler.GetOptimizationResult)
		apiV1.GET("/cache/status", valuationHandler.CacheStatus)
		apiV1.DELETE("/cache/valuations", valuationHandler.FlushCache)
	}

	// WebSocket endpoint for progress updates
	router.GET("/ws/optimization-progress/:run_id", wsHub.HandleWebSocket)

	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.WithService("lineup-valuation").WithField("port", cfg.Port).Info("Lineup valuation service started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("lineup-valuation").Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("lineup-valuation").Info("Shutting down lineup valuation service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithService("lineup-valuation").Fatalf("Lineup valuation service forced to shutdown: %v", err)
	}

	logger.WithService("lineup-valuation").Info("Lineup valuation service exited")
}
