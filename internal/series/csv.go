package series

import (
	"encoding/csv"
	"io"
	"os"

	"wheel-backtest/internal/model"

	"github.com/shopspring/decimal"
)

// WriteWeeklyCSV writes the weekly series (newest first) to path.
func WriteWeeklyCSV(path string, weeks []model.WeeklyObservation) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeWeeklyCSV(f, weeks)
}

func EncodeWeeklyCSV(out io.Writer, weeks []model.WeeklyObservation) error {
	w := csv.NewWriter(out)

	header := []string{
		"week_key",
		"week_end_date",
		"week_end_price",
		"prev_trading_day_price",
		"change_vs_prev_trading_day_pct",
		"prev_2_trading_days_price",
		"change_vs_prev_2_trading_days_pct",
		"prev_week_price",
		"change_vs_prev_week_pct",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, wk := range weeks {
		row := []string{
			wk.WeekKey,
			wk.WeekEndDate,
			fmtFloat(wk.WeekEndPrice),
			fmtOpt(wk.PrevTradingDayPrice),
			fmtOpt(wk.ChangeVsPrevTradingDay),
			fmtOpt(wk.Prev2TradingDaysPrice),
			fmtOpt(wk.ChangeVsPrev2TradingDays),
			fmtOpt(wk.PrevWeekPrice),
			fmtOpt(wk.ChangeVsPrevWeek),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(6)
}

// absent values are written as empty cells
func fmtOpt(x *float64) string {
	if x == nil {
		return ""
	}
	return fmtFloat(*x)
}
