package model

import "fmt"

// Engine defaults. Percent-valued parameters are decimal fractions (0.01 == 1%).
const (
	DefaultInitialCapital = 10000.0
	DefaultCallPremiumPct = 0.01
	DefaultPutPremiumPct  = 0.05

	// CallStrikeFactor places the covered call 5% out of the money.
	CallStrikeFactor = 1.05
	// PutStrikeFactor places the cash-secured put at the money.
	PutStrikeFactor = 1.00
)

// WheelParams are the inputs of one wheel simulation.
// The engine does not bound-check them: callers keep InitialCapital > 0 and
// both premiums >= 0.
type WheelParams struct {
	InitialCapital float64 `json:"initial_capital"`
	CallPremiumPct float64 `json:"call_premium_pct"`
	PutPremiumPct  float64 `json:"put_premium_pct"`
}

// DefaultWheelParams returns the parameter set the backtest runs with when
// nothing is configured.
func DefaultWheelParams() WheelParams {
	return WheelParams{
		InitialCapital: DefaultInitialCapital,
		CallPremiumPct: DefaultCallPremiumPct,
		PutPremiumPct:  DefaultPutPremiumPct,
	}
}

func (p WheelParams) String() string {
	return fmt.Sprintf("capital=%.2f call=%.4f put=%.4f", p.InitialCapital, p.CallPremiumPct, p.PutPremiumPct)
}

// Horizon limits a backtest to the most recent N weeks.
type Horizon string

const (
	Horizon3M  Horizon = "3M"
	Horizon6M  Horizon = "6M"
	Horizon1Y  Horizon = "1Y"
	Horizon2Y  Horizon = "2Y"
	Horizon3Y  Horizon = "3Y"
	HorizonAll Horizon = "ALL"
)

// Horizons lists the recognized horizons, shortest first.
var Horizons = []Horizon{Horizon3M, Horizon6M, Horizon1Y, Horizon2Y, Horizon3Y, HorizonAll}

// ParseHorizon accepts one of the recognized horizon labels. Empty means ALL.
func ParseHorizon(s string) (Horizon, error) {
	if s == "" {
		return HorizonAll, nil
	}
	for _, h := range Horizons {
		if string(h) == s {
			return h, nil
		}
	}
	return "", &ValidationError{Row: -1, Field: "horizon", Value: s, Reason: "must be one of 3M, 6M, 1Y, 2Y, 3Y, ALL"}
}

// Weeks returns the number of weeks covered, or 0 for ALL.
func (h Horizon) Weeks() int {
	switch h {
	case Horizon3M:
		return 13
	case Horizon6M:
		return 26
	case Horizon1Y:
		return 52
	case Horizon2Y:
		return 104
	case Horizon3Y:
		return 156
	default:
		return 0
	}
}

// Apply keeps the newest Weeks() entries of a newest-first weekly series.
func (h Horizon) Apply(weeks []WeeklyObservation) []WeeklyObservation {
	n := h.Weeks()
	if n == 0 || n >= len(weeks) {
		return weeks
	}
	return weeks[:n]
}
