package main

import (
	"fmt"

	"wheel-backtest/internal/analysis"
	"wheel-backtest/internal/backtest"
	"wheel-backtest/internal/config"
	"wheel-backtest/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newSweepCmd(a *app) *cobra.Command {
	var (
		horizon string
		calls   []float64
		puts    []float64
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Rank every call/put premium combination by final value",
		RunE: func(cmd *cobra.Command, args []string) error {
			if horizon == "" {
				horizon = a.cfg.Horizon
			}
			h, err := model.ParseHorizon(horizon)
			if err != nil {
				return err
			}
			defaults := a.cfg.Wheel.ToModelParams()
			if len(calls) == 0 {
				calls = []float64{defaults.CallPremiumPct}
			}
			if len(puts) == 0 {
				puts = []float64{defaults.PutPremiumPct}
			}

			_, weeks, err := a.loadWeekly(cmd.Context())
			if err != nil {
				return err
			}
			weeks = h.Apply(weeks)

			var (
				names  []string
				params []model.WheelParams
			)
			for _, c := range calls {
				for _, p := range puts {
					wc := config.MergeWheel(a.cfg.Wheel, config.WheelConfig{CallPremiumPct: config.Float(c), PutPremiumPct: config.Float(p)})
					if err := wc.Validate(); err != nil {
						return err
					}
					names = append(names, fmt.Sprintf("call=%s put=%s", decimal.NewFromFloat(c).String(), decimal.NewFromFloat(p).String()))
					params = append(params, wc.ToModelParams())
				}
			}

			runs, err := backtest.Sweep(cmd.Context(), weeks, params, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-4s %-24s %-14s %-10s %-10s %-10s\n", "rank", "variation", "final", "return", "vs b&h", "drawdown")
			for i, r := range analysis.RankByFinalValue(names, runs) {
				fmt.Fprintf(out, "%-4d %-24s %-14s %-10s %-10s %-10s\n",
					i+1, r.Name, money(r.FinalValue), pct(r.StrategyReturnPct), pct(r.ExcessReturnPct), pct(r.MaxDrawdownPct))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&horizon, "horizon", "", "3M, 6M, 1Y, 2Y, 3Y or ALL (default from config)")
	cmd.Flags().Float64SliceVar(&calls, "call", nil, "Call premium fractions, comma separated")
	cmd.Flags().Float64SliceVar(&puts, "put", nil, "Put premium fractions, comma separated")
	cmd.Flags().IntVar(&limit, "limit", 4, "Maximum concurrent runs (0 = unlimited)")
	return cmd
}
