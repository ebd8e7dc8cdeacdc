package handlers

import (
	"net/http"

	"wheel-backtest/internal/api/models"
	"wheel-backtest/internal/data"
	"wheel-backtest/internal/logger"
	"wheel-backtest/internal/model"
	"wheel-backtest/internal/series"

	"github.com/gin-gonic/gin"
)

// SeriesHandler handles weekly aggregation requests
type SeriesHandler struct {
	log   *logger.Logger
	cache *data.SeriesCache
}

// NewSeriesHandler creates a new series handler. cache may be nil.
func NewSeriesHandler(log *logger.Logger, cache *data.SeriesCache) *SeriesHandler {
	return &SeriesHandler{log: log, cache: cache}
}

// Weekly handles POST /api/v1/series/weekly
func (h *SeriesHandler) Weekly(c *gin.Context) {
	var req models.SeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if req.IncludeDaily {
		daily, weekly, err := series.FromRows(req.Rows)
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, models.SeriesResponse{Daily: daily, Weekly: weekly})
		return
	}

	weekly, err := weeklyFromRows(c, h.log, h.cache, req.Rows)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.SeriesResponse{Weekly: weekly})
}

// weeklyFromRows builds the newest-first weekly series, consulting cache first.
func weeklyFromRows(c *gin.Context, log *logger.Logger, cache *data.SeriesCache, rows []model.PriceRow) ([]model.WeeklyObservation, error) {
	key := data.CacheKey(rows)
	if weeks, ok := cache.Get(key); ok {
		log.DebugContext(c.Request.Context(), "weekly series cache hit", logger.IntField("weeks", len(weeks)))
		return weeks, nil
	}
	_, weeks, err := series.FromRows(rows)
	if err != nil {
		return nil, err
	}
	cache.Set(key, weeks)
	log.DebugContext(c.Request.Context(), "weekly series built",
		logger.IntField("rows", len(rows)),
		logger.IntField("weeks", len(weeks)))
	return weeks, nil
}
