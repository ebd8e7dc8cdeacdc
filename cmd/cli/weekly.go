package main

import (
	"fmt"
	"os"
	"path/filepath"

	"wheel-backtest/internal/series"

	"github.com/spf13/cobra"
)

func newWeeklyCmd(a *app) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Aggregate daily prices into the newest-first weekly series",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, weeks, err := a.loadWeekly(cmd.Context())
			if err != nil {
				return err
			}
			if outPath == "" {
				return series.EncodeWeeklyCSV(cmd.OutOrStdout(), weeks)
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			if err := series.WriteWeeklyCSV(outPath, weeks); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d weeks to %s\n", len(weeks), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "Output CSV path (default stdout)")
	return cmd
}
