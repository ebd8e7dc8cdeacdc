package models

import (
	"wheel-backtest/internal/config"
	"wheel-backtest/internal/model"
)

// SeriesRequest is the body of POST /api/v1/series/weekly.
type SeriesRequest struct {
	Rows []model.PriceRow `json:"rows" binding:"required"`
	// IncludeDaily also returns the normalized daily series.
	IncludeDaily bool `json:"include_daily,omitempty"`
}

// BacktestRequest is the body of POST /api/v1/backtest.
// Exactly one of Rows (raw daily prices) or Weekly (an already aggregated,
// newest-first series) must be supplied.
type BacktestRequest struct {
	Rows    []model.PriceRow          `json:"rows,omitempty"`
	Weekly  []model.WeeklyObservation `json:"weekly,omitempty"`
	Params  ParamsConfig              `json:"params,omitempty"`
	Horizon string                    `json:"horizon,omitempty" binding:"omitempty,oneof=3M 6M 1Y 2Y 3Y ALL"`
	Options BacktestOptions           `json:"options,omitempty"`
}

// ParamsConfig carries engine parameters. Omitted fields fall back to the
// configured defaults; an explicit 0 premium is honored.
// Percentages are decimal fractions (0.01 == 1%).
type ParamsConfig struct {
	InitialCapital *float64 `json:"initial_capital,omitempty" binding:"omitempty,gt=0"`
	CallPremiumPct *float64 `json:"call_premium_pct,omitempty" binding:"omitempty,gte=0"`
	PutPremiumPct  *float64 `json:"put_premium_pct,omitempty" binding:"omitempty,gte=0"`
}

// BacktestOptions contains optional backtest parameters
type BacktestOptions struct {
	// OmitSteps drops the per-week ledger from the response.
	OmitSteps bool `json:"omit_steps,omitempty"`
}

// SweepRequest runs several parameter variations over the same series.
type SweepRequest struct {
	Rows       []model.PriceRow `json:"rows" binding:"required"`
	Horizon    string           `json:"horizon,omitempty" binding:"omitempty,oneof=3M 6M 1Y 2Y 3Y ALL"`
	Base       ParamsConfig     `json:"base,omitempty"`
	Variations []Variation      `json:"variations" binding:"required,min=1,dive"`
}

// Variation defines a variation to test
type Variation struct {
	Name   string       `json:"name" binding:"required"`
	Params ParamsConfig `json:"params"`
}

// ToWheelConfig converts the request params for merging with configured
// defaults.
func (p ParamsConfig) ToWheelConfig() config.WheelConfig {
	return config.WheelConfig{
		InitialCapital: p.InitialCapital,
		CallPremiumPct: p.CallPremiumPct,
		PutPremiumPct:  p.PutPremiumPct,
	}
}
