package analysis

import (
	"sort"

	"wheel-backtest/internal/backtest"
	"wheel-backtest/internal/model"
)

type RankedRun struct {
	Name   string
	Params model.WheelParams
	Summary
}

// RankByFinalValue summarizes each named run and sorts descending by final
// strategy value. Ties keep the input order.
func RankByFinalValue(names []string, runs []*backtest.Result) []RankedRun {
	out := make([]RankedRun, 0, len(runs))
	for i, r := range runs {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		rr := RankedRun{Name: name, Summary: Summarize(r)}
		if r != nil {
			rr.Params = r.Params
		}
		out = append(out, rr)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalValue > out[j].FinalValue
	})
	return out
}
