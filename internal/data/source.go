package data

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"wheel-backtest/internal/logger"
	"wheel-backtest/internal/model"
)

// Source locates a daily price series.
type Source struct {
	Path    string
	URL     string
	Timeout time.Duration
}

func (s Source) String() string {
	if s.URL != "" {
		return s.URL
	}
	return s.Path
}

// Load reads raw (date, price) rows from the source. A URL is fetched as CSV;
// a path is read as JSON when it ends in .json and as CSV otherwise.
func Load(ctx context.Context, src Source, log *logger.Logger) ([]model.PriceRow, error) {
	switch {
	case src.URL != "":
		return NewRemoteSource(src.Timeout, log).Fetch(ctx, src.URL)
	case src.Path == "":
		return nil, fmt.Errorf("no price source configured")
	case strings.EqualFold(filepath.Ext(src.Path), ".json"):
		return LoadJSON(src.Path)
	default:
		return LoadCSV(src.Path, log)
	}
}
