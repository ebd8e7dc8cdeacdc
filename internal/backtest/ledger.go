package backtest

import "wheel-backtest/internal/model"

// Step is one row of per-week output.
// This is the primary artifact for "what happened" in a backtest.
type Step struct {
	Index int `json:"index"`

	WeekDate       string   `json:"week_date"`
	ClosePrice     float64  `json:"close_price"`
	NextClosePrice *float64 `json:"next_close_price"`

	// EnteringState is the position going into the week; PositionState is the
	// position after this week's option resolved.
	EnteringState model.PositionState `json:"entering_state"`
	PositionState model.PositionState `json:"position_state"`

	Action             model.OptionAction `json:"action"`
	ActionLabel        string             `json:"action_label"`
	Outcome            model.Outcome      `json:"outcome"`
	OutcomeDescription string             `json:"outcome_description"`

	CashBalance float64 `json:"cash_balance"`
	SharesHeld  float64 `json:"shares_held"`
	TotalValue  float64 `json:"total_value"`

	BuyAndHoldValue float64  `json:"buy_and_hold_value"`
	StockReturnPct  *float64 `json:"stock_return_pct"`
	WeeklyReturnPct float64  `json:"weekly_return_pct"`
}

type Result struct {
	Strategy string
	Params   model.WheelParams
	// Steps are newest first.
	Steps           []Step
	BenchmarkShares float64
}

// Latest returns the newest step, or false for an empty run.
func (r *Result) Latest() (Step, bool) {
	if r == nil || len(r.Steps) == 0 {
		return Step{}, false
	}
	return r.Steps[0], true
}
