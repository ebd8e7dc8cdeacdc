package handlers

import (
	"errors"
	"net/http"

	"wheel-backtest/internal/analysis"
	"wheel-backtest/internal/api/models"
	"wheel-backtest/internal/backtest"
	"wheel-backtest/internal/config"
	"wheel-backtest/internal/data"
	"wheel-backtest/internal/logger"
	"wheel-backtest/internal/model"

	"github.com/gin-gonic/gin"
)

// sweepLimit bounds concurrent runs of one sweep request.
const sweepLimit = 4

// BacktestHandler handles backtest-related requests
type BacktestHandler struct {
	log      *logger.Logger
	cache    *data.SeriesCache
	defaults config.WheelConfig
}

// NewBacktestHandler creates a new backtest handler. Request params that are
// zero fall back to defaults.
func NewBacktestHandler(log *logger.Logger, cache *data.SeriesCache, defaults config.WheelConfig) *BacktestHandler {
	return &BacktestHandler{log: log, cache: cache, defaults: defaults}
}

// RunBacktest handles POST /api/v1/backtest
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if (len(req.Rows) > 0) == (len(req.Weekly) > 0) {
		badRequest(c, errors.New("exactly one of rows or weekly is required"))
		return
	}

	horizon, err := model.ParseHorizon(req.Horizon)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	weeks := req.Weekly
	if len(req.Rows) > 0 {
		weeks, err = weeklyFromRows(c, h.log, h.cache, req.Rows)
		if err != nil {
			writeError(c, h.log, err)
			return
		}
	}
	weeks = horizon.Apply(weeks)

	params := config.MergeWheel(h.defaults, req.Params.ToWheelConfig()).ToModelParams()
	res, err := backtest.RunWheel(weeks, params)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	summary := analysis.Summarize(res)
	h.log.InfoContext(c.Request.Context(), "backtest complete",
		logger.StringField("params", params.String()),
		logger.StringField("horizon", string(horizon)),
		logger.IntField("weeks", summary.Weeks),
		logger.FloatField("final_value", summary.FinalValue))

	resp := models.BacktestResponse{
		Params:  params,
		Horizon: horizon,
		Summary: summary,
	}
	if !req.Options.OmitSteps {
		resp.Steps = res.Steps
	}
	c.JSON(http.StatusOK, resp)
}

// Sweep handles POST /api/v1/backtest/sweep
func (h *BacktestHandler) Sweep(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	horizon, err := model.ParseHorizon(req.Horizon)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	weeks, err := weeklyFromRows(c, h.log, h.cache, req.Rows)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	weeks = horizon.Apply(weeks)

	base := config.MergeWheel(h.defaults, req.Base.ToWheelConfig())
	names := make([]string, len(req.Variations))
	params := make([]model.WheelParams, len(req.Variations))
	for i, v := range req.Variations {
		names[i] = v.Name
		params[i] = config.MergeWheel(base, v.Params.ToWheelConfig()).ToModelParams()
	}

	runs, err := backtest.Sweep(c.Request.Context(), weeks, params, sweepLimit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	ranked := analysis.RankByFinalValue(names, runs)
	resp := models.SweepResponse{Rankings: make([]models.Ranking, len(ranked))}
	for i, r := range ranked {
		resp.Rankings[i] = models.Ranking{
			Rank:    i + 1,
			Name:    r.Name,
			Params:  r.Params,
			Summary: r.Summary,
		}
	}
	h.log.InfoContext(c.Request.Context(), "sweep complete",
		logger.IntField("variations", len(ranked)),
		logger.StringField("best", resp.Rankings[0].Name))
	c.JSON(http.StatusOK, resp)
}
