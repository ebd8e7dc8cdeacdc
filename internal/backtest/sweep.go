package backtest

import (
	"context"
	"fmt"

	"wheel-backtest/internal/model"

	"golang.org/x/sync/errgroup"
)

// Sweep runs one independent wheel backtest per parameter set over the same
// weekly series. Runs share nothing but the read-only input, so they execute
// concurrently; at most limit run at once (limit <= 0 means no limit).
// Results are returned in the order of params.
func Sweep(ctx context.Context, weeks []model.WeeklyObservation, params []model.WheelParams, limit int) ([]*Result, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	out := make([]*Result, len(params))
	for i, p := range params {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := RunWheel(weeks, p)
			if err != nil {
				return fmt.Errorf("variation %d (%s): %w", i, p, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
