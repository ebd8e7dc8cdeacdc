package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"wheel-backtest/internal/analysis"
	"wheel-backtest/internal/backtest"
	"wheel-backtest/internal/config"
	"wheel-backtest/internal/logger"
	"wheel-backtest/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newBacktestCmd(a *app) *cobra.Command {
	var (
		horizon string
		outPath string
		steps   int
		capital float64
		call    float64
		put     float64
	)
	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Run the wheel over the weekly series and compare with buy-and-hold",
		RunE: func(cmd *cobra.Command, args []string) error {
			if horizon == "" {
				horizon = a.cfg.Horizon
			}
			h, err := model.ParseHorizon(horizon)
			if err != nil {
				return err
			}
			_, weeks, err := a.loadWeekly(cmd.Context())
			if err != nil {
				return err
			}
			weeks = h.Apply(weeks)

			var override config.WheelConfig
			if cmd.Flags().Changed("capital") {
				override.InitialCapital = &capital
			}
			if cmd.Flags().Changed("call") {
				override.CallPremiumPct = &call
			}
			if cmd.Flags().Changed("put") {
				override.PutPremiumPct = &put
			}
			if err := override.Validate(); err != nil {
				return err
			}
			p := config.MergeWheel(a.cfg.Wheel, override).ToModelParams()
			res, err := backtest.RunWheel(weeks, p)
			if err != nil {
				return err
			}
			a.log.Info("backtest complete",
				logger.StringField("params", p.String()),
				logger.StringField("horizon", string(h)),
				logger.IntField("weeks", len(res.Steps)))

			if outPath != "" {
				if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
					return err
				}
				if err := backtest.WriteLedgerCSV(outPath, res.Steps); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(res.Steps), outPath)
			}
			printSteps(cmd.OutOrStdout(), res.Steps, steps)
			printSummary(cmd.OutOrStdout(), h, analysis.Summarize(res))
			return nil
		},
	}
	cmd.Flags().StringVar(&horizon, "horizon", "", "3M, 6M, 1Y, 2Y, 3Y or ALL (default from config)")
	cmd.Flags().StringVar(&outPath, "out", "", "Optional ledger CSV path")
	cmd.Flags().IntVar(&steps, "steps", 0, "Print the N most recent weeks")
	cmd.Flags().Float64Var(&capital, "capital", 0, "Initial capital (default from config)")
	cmd.Flags().Float64Var(&call, "call", 0, "Call premium as a fraction of price (default from config)")
	cmd.Flags().Float64Var(&put, "put", 0, "Put premium as a fraction of price (default from config)")
	return cmd
}

func money(v float64) string { return "$" + decimal.NewFromFloat(v).StringFixed(2) }

func pct(v float64) string { return decimal.NewFromFloat(v).StringFixed(2) + "%" }

func printSummary(w io.Writer, h model.Horizon, s analysis.Summary) {
	if s.Weeks == 0 {
		fmt.Fprintln(w, "No weeks to simulate")
		return
	}
	fmt.Fprintf(w, "Horizon %s: %d weeks %s..%s\n", h, s.Weeks, s.StartDate, s.EndDate)
	fmt.Fprintf(w, "Wheel        %-14s %s\n", money(s.FinalValue), pct(s.StrategyReturnPct))
	fmt.Fprintf(w, "Buy & hold   %-14s %s\n", money(s.BuyAndHoldValue), pct(s.BuyAndHoldReturnPct))
	fmt.Fprintf(w, "Excess       %s\n", pct(s.ExcessReturnPct))
	fmt.Fprintf(w, "Max drawdown %s\n", pct(s.MaxDrawdownPct))
	fmt.Fprintf(w, "Calls sold %d (assigned %d), puts sold %d (assigned %d), premium %s\n",
		s.CallsSold, s.CallsAssigned, s.PutsSold, s.PutsAssigned, money(s.PremiumCollected))
	fmt.Fprintf(w, "Current state %s\n", s.CurrentState)
}

// printSteps prints the n newest steps oldest first.
func printSteps(w io.Writer, steps []backtest.Step, n int) {
	if n <= 0 {
		return
	}
	n = min(n, len(steps))
	for i := n - 1; i >= 0; i-- {
		s := steps[i]
		fmt.Fprintf(w, "%s close=%9.2f  %-13s  %-30s  %-26s  total=%12s  b&h=%12s\n",
			s.WeekDate,
			s.ClosePrice,
			string(s.EnteringState),
			s.ActionLabel,
			s.OutcomeDescription,
			money(s.TotalValue),
			money(s.BuyAndHoldValue),
		)
	}
	fmt.Fprintln(w)
}
