package handlers

import (
	"net/http"

	"wheel-backtest/internal/api/models"
	"wheel-backtest/internal/config"
	"wheel-backtest/internal/model"

	"github.com/gin-gonic/gin"
)

// ParametersHandler describes the knobs a backtest accepts.
type ParametersHandler struct {
	defaults model.WheelParams
}

func NewParametersHandler(defaults config.WheelConfig) *ParametersHandler {
	return &ParametersHandler{defaults: defaults.ToModelParams()}
}

// ListParameters handles GET /api/v1/parameters
func (h *ParametersHandler) ListParameters(c *gin.Context) {
	horizons := make([]string, len(model.Horizons))
	for i, hz := range model.Horizons {
		horizons[i] = string(hz)
	}

	params := []models.ParameterInfo{
		{
			Name:        "initial_capital",
			Type:        "float",
			Description: "Starting cash; the first week buys as many (fractional) shares as it covers",
			Default:     h.defaults.InitialCapital,
		},
		{
			Name:        "call_premium_pct",
			Type:        "float",
			Description: "Covered-call premium per week as a fraction of the share price (0.01 == 1%)",
			Default:     h.defaults.CallPremiumPct,
		},
		{
			Name:        "put_premium_pct",
			Type:        "float",
			Description: "Cash-secured put premium per week as a fraction of the share price",
			Default:     h.defaults.PutPremiumPct,
		},
		{
			Name:        "horizon",
			Type:        "string",
			Description: "Most recent window to simulate: 3M, 6M, 1Y, 2Y, 3Y or ALL",
			Default:     string(model.HorizonAll),
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"parameters":         params,
		"horizons":           horizons,
		"call_strike_factor": model.CallStrikeFactor,
		"put_strike_factor":  model.PutStrikeFactor,
	})
}
