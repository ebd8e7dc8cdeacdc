package api

import (
	"net/http"

	"wheel-backtest/internal/api/handlers"
	"wheel-backtest/internal/api/middleware"
	"wheel-backtest/internal/config"
	"wheel-backtest/internal/data"
	"wheel-backtest/internal/logger"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes. cache may be nil to disable series
// memoization.
func NewRouter(cfg *config.Config, log *logger.Logger, cache *data.SeriesCache) *gin.Engine {
	router := gin.New()

	router.Use(middleware.CORS(cfg.API.CORSOrigins))
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler(log))

	seriesHandler := handlers.NewSeriesHandler(log, cache)
	backtestHandler := handlers.NewBacktestHandler(log, cache, cfg.Wheel)
	paramsHandler := handlers.NewParametersHandler(cfg.Wheel)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/series/weekly", seriesHandler.Weekly)

		api.POST("/backtest", backtestHandler.RunBacktest)
		api.POST("/backtest/sweep", backtestHandler.Sweep)

		api.GET("/parameters", paramsHandler.ListParameters)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})

	return router
}
