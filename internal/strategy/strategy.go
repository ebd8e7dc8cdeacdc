package strategy

import "wheel-backtest/internal/model"

// Ledger is the running account of one simulation. It is threaded through the
// run by value and never shared between runs.
type Ledger struct {
	Cash   float64
	Shares float64
	State  model.PositionState
}

// Context is everything a strategy sees for one week.
// Next is nil for the final week.
type Context struct {
	Index  int
	Week   model.WeeklyObservation
	Next   *model.WeeklyObservation
	Ledger Ledger
}

// Decision is the result of one week: the option written, how it resolved and
// the ledger after settlement.
type Decision struct {
	Action  model.OptionAction
	Outcome model.Outcome
	Ledger  Ledger
}

type Strategy interface {
	Name() string
	Decide(ctx Context) (Decision, error)
}
