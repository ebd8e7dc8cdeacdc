package analysis

import (
	"wheel-backtest/internal/backtest"
	"wheel-backtest/internal/model"
)

// Summary compares the wheel against buy-and-hold over one run.
// Returns are percentages relative to the initial capital.
type Summary struct {
	Weeks     int    `json:"weeks"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	InitialCapital  float64 `json:"initial_capital"`
	FinalValue      float64 `json:"final_value"`
	BuyAndHoldValue float64 `json:"buy_and_hold_value"`

	StrategyReturnPct   float64 `json:"strategy_return_pct"`
	BuyAndHoldReturnPct float64 `json:"buy_and_hold_return_pct"`
	ExcessReturnPct     float64 `json:"excess_return_pct"`
	MaxDrawdownPct      float64 `json:"max_drawdown_pct"`

	CurrentState model.PositionState `json:"current_state"`

	CallsSold        int     `json:"calls_sold"`
	PutsSold         int     `json:"puts_sold"`
	CallsAssigned    int     `json:"calls_assigned"`
	PutsAssigned     int     `json:"puts_assigned"`
	PremiumCollected float64 `json:"premium_collected"`
}

// Summarize walks a run's steps oldest to newest.
func Summarize(res *backtest.Result) Summary {
	s := Summary{}
	if res == nil {
		return s
	}
	s.InitialCapital = res.Params.InitialCapital
	if len(res.Steps) == 0 {
		return s
	}

	newest := res.Steps[0]
	oldest := res.Steps[len(res.Steps)-1]
	s.Weeks = len(res.Steps)
	s.StartDate = oldest.WeekDate
	s.EndDate = newest.WeekDate
	s.FinalValue = newest.TotalValue
	s.BuyAndHoldValue = newest.BuyAndHoldValue
	s.CurrentState = newest.PositionState

	if s.InitialCapital != 0 {
		s.StrategyReturnPct = (s.FinalValue - s.InitialCapital) / s.InitialCapital * 100
		s.BuyAndHoldReturnPct = (s.BuyAndHoldValue - s.InitialCapital) / s.InitialCapital * 100
		s.ExcessReturnPct = s.StrategyReturnPct - s.BuyAndHoldReturnPct
	}

	peak := s.InitialCapital
	for i := len(res.Steps) - 1; i >= 0; i-- {
		st := res.Steps[i]
		switch st.Action.Kind {
		case model.SellCall:
			s.CallsSold++
			if st.Outcome == model.OutcomeAssigned {
				s.CallsAssigned++
			}
		case model.SellPut:
			s.PutsSold++
			if st.Outcome == model.OutcomeAssigned {
				s.PutsAssigned++
			}
		}
		s.PremiumCollected += st.Action.Premium

		if st.TotalValue > peak {
			peak = st.TotalValue
		}
		if peak > 0 {
			if dd := (peak - st.TotalValue) / peak * 100; dd > s.MaxDrawdownPct {
				s.MaxDrawdownPct = dd
			}
		}
	}
	return s
}
