package backtest

import (
	"fmt"
	"math"

	"wheel-backtest/internal/model"
	"wheel-backtest/internal/strategy"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run simulates strat over a newest-first weekly series and returns the steps
// newest first. The first week buys initialCapital worth of shares; that share
// count is also held unchanged by the buy-and-hold benchmark.
func (e *Engine) Run(weeks []model.WeeklyObservation, initialCapital float64, strat strategy.Strategy) (*Result, error) {
	if strat == nil {
		return nil, fmt.Errorf("strategy is nil")
	}
	res := &Result{Strategy: strat.Name(), Steps: []Step{}}
	if len(weeks) == 0 {
		return res, nil
	}

	chrono := make([]model.WeeklyObservation, len(weeks))
	copy(chrono, weeks)
	reverse(chrono)

	seedPrice := chrono[0].WeekEndPrice
	if !(seedPrice > 0) || math.IsInf(seedPrice, 0) {
		return nil, &model.DomainError{
			Op:     "seed position",
			Reason: fmt.Sprintf("invalid price %v for week %s", seedPrice, chrono[0].WeekEndDate),
		}
	}

	ledger := strategy.Ledger{
		Shares: initialCapital / seedPrice,
		State:  model.HoldingStock,
	}
	benchmarkShares := ledger.Shares
	prevTotal := initialCapital

	steps := make([]Step, 0, len(chrono))
	for i, week := range chrono {
		var next *model.WeeklyObservation
		if i < len(chrono)-1 {
			next = &chrono[i+1]
		}

		dec, err := strat.Decide(strategy.Context{
			Index:  i,
			Week:   week,
			Next:   next,
			Ledger: ledger,
		})
		if err != nil {
			return nil, fmt.Errorf("week %d decide: %w", i, err)
		}

		price := week.WeekEndPrice
		total := dec.Ledger.Cash + dec.Ledger.Shares*price
		if prevTotal == 0 {
			return nil, &model.DomainError{
				Op:     fmt.Sprintf("week %s", week.WeekEndDate),
				Reason: "previous portfolio value is zero",
			}
		}

		step := Step{
			Index: i,

			WeekDate:   week.WeekEndDate,
			ClosePrice: price,

			EnteringState: ledger.State,
			PositionState: dec.Ledger.State,

			Action:             dec.Action,
			ActionLabel:        dec.Action.Label(),
			Outcome:            dec.Outcome,
			OutcomeDescription: model.DescribeOutcome(dec.Action.Kind, dec.Outcome),

			CashBalance: dec.Ledger.Cash,
			SharesHeld:  dec.Ledger.Shares,
			TotalValue:  total,

			BuyAndHoldValue: benchmarkShares * price,
			StockReturnPct:  week.ChangeVsPrevWeek,
			WeeklyReturnPct: (total - prevTotal) / prevTotal * 100,
		}
		if next != nil {
			np := next.WeekEndPrice
			step.NextClosePrice = &np
		}
		steps = append(steps, step)

		ledger = dec.Ledger
		prevTotal = total
	}

	reverse(steps)
	res.Steps = steps
	res.BenchmarkShares = benchmarkShares
	return res, nil
}

// RunWheel runs the wheel strategy with params.
func RunWheel(weeks []model.WeeklyObservation, params model.WheelParams) (*Result, error) {
	res, err := New().Run(weeks, params.InitialCapital, strategy.NewWheel(params))
	if err != nil {
		return nil, err
	}
	res.Params = params
	return res, nil
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
