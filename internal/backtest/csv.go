package backtest

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

func WriteLedgerCSV(path string, steps []Step) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeLedgerCSV(f, steps)
}

// EncodeLedgerCSV writes steps in the order given (newest first as returned by Run).
func EncodeLedgerCSV(out io.Writer, steps []Step) error {
	w := csv.NewWriter(out)

	header := []string{
		"index",
		"week_date",
		"close_price",
		"next_close_price",
		"entering_state",
		"position_state",
		"action",
		"strike",
		"premium",
		"outcome",
		"outcome_description",
		"cash_balance",
		"shares_held",
		"total_value",
		"buy_and_hold_value",
		"stock_return_pct",
		"weekly_return_pct",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range steps {
		row := []string{
			strconv.Itoa(s.Index),
			s.WeekDate,
			fmtFloat(s.ClosePrice),
			fmtOpt(s.NextClosePrice),
			string(s.EnteringState),
			string(s.PositionState),
			string(s.Action.Kind),
			fmtFloat(s.Action.Strike),
			fmtFloat(s.Action.Premium),
			string(s.Outcome),
			s.OutcomeDescription,
			fmtFloat(s.CashBalance),
			fmtFloat(s.SharesHeld),
			fmtFloat(s.TotalValue),
			fmtFloat(s.BuyAndHoldValue),
			fmtOpt(s.StockReturnPct),
			fmtFloat(s.WeeklyReturnPct),
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

func fmtOpt(x *float64) string {
	if x == nil {
		return ""
	}
	return fmtFloat(*x)
}
