package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wheel-backtest/internal/config"
	"wheel-backtest/internal/data"
	"wheel-backtest/internal/logger"
	"wheel-backtest/internal/model"
	"wheel-backtest/internal/series"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	dataPath   string
	dataURL    string
	logLevel   string
}

// app is what every subcommand needs after the root's PersistentPreRunE.
type app struct {
	cfg *config.Config
	log *logger.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	root := &cobra.Command{
		Use:          "wheel",
		Short:        "Backtest the weekly options wheel against buy-and-hold",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML config")
	root.PersistentFlags().StringVar(&opts.dataPath, "data", "", "Daily price file (.csv or .json); overrides data.path")
	root.PersistentFlags().StringVar(&opts.dataURL, "url", "", "URL serving daily price CSV; overrides data.url")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(newWeeklyCmd(a), newBacktestCmd(a), newSweepCmd(a))
	return root
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.configPath != "" {
		c, err := config.LoadUnchecked(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	} else {
		cfg = &config.Config{}
	}

	if opts.dataPath != "" {
		cfg.Data.Path = opts.dataPath
		cfg.Data.URL = ""
	}
	if opts.dataURL != "" {
		cfg.Data.URL = opts.dataURL
	}
	cfg.ApplyDefaults()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadWeekly reads the configured source and returns the newest-first weekly
// series.
func (a *app) loadWeekly(ctx context.Context) ([]model.DailyObservation, []model.WeeklyObservation, error) {
	src := a.cfg.Data.ToSource()
	rows, err := data.Load(ctx, src, a.log)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", src, err)
	}
	daily, weekly, err := series.FromRows(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("build series from %s: %w", src, err)
	}
	a.log.Info("series loaded",
		logger.StringField("source", src.String()),
		logger.IntField("days", len(daily)),
		logger.IntField("weeks", len(weekly)))
	return daily, weekly, nil
}
