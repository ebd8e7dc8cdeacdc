package models

import (
	"wheel-backtest/internal/analysis"
	"wheel-backtest/internal/backtest"
	"wheel-backtest/internal/model"
)

type SeriesResponse struct {
	Daily  []model.DailyObservation  `json:"daily,omitempty"`
	Weekly []model.WeeklyObservation `json:"weekly"`
}

// BacktestResponse represents the response from a backtest run
type BacktestResponse struct {
	Params  model.WheelParams `json:"params"`
	Horizon model.Horizon     `json:"horizon"`
	Summary analysis.Summary  `json:"summary"`
	Steps   []backtest.Step   `json:"steps,omitempty"`
}

type SweepResponse struct {
	Rankings []Ranking `json:"rankings"`
}

// Ranking is one variation's summary, best final value first.
type Ranking struct {
	Rank    int               `json:"rank"`
	Name    string            `json:"name"`
	Params  model.WheelParams `json:"params"`
	Summary analysis.Summary  `json:"summary"`
}

// ParameterInfo describes an engine parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
