package model

// DateLayout is the fixed-width calendar date format used for every date in
// the series. Ordering dates as strings is only valid because of this width.
const DateLayout = "2006-01-02"

// PriceRow is one raw (date, price) pair as handed over by a price source.
//
// Example:
//
//	{"date": "2024-01-05", "price": 187.21}
type PriceRow struct {
	Date  string  `json:"date" yaml:"date"`
	Price float64 `json:"price" yaml:"price"`
}

// DailyObservation is a normalized trading day.
// SequenceIndex is the 0-based rank in ascending date order; ChangePct is nil
// for the first observation.
type DailyObservation struct {
	Date          string   `json:"date"`
	Price         float64  `json:"price"`
	SequenceIndex int      `json:"sequence_index"`
	ChangePct     *float64 `json:"change_pct"`
}

// WeeklyObservation is one calendar week, anchored to its Friday.
//
// The three comparisons have different lookup scopes:
//   - ChangeVsPrevTradingDay / ChangeVsPrev2TradingDays look back through the
//     global daily sequence and may reach into an earlier week.
//   - ChangeVsPrevWeek compares against the previous week's WeekEndPrice.
type WeeklyObservation struct {
	WeekKey      string  `json:"week_key"`
	WeekEndDate  string  `json:"week_end_date"`
	WeekEndPrice float64 `json:"week_end_price"`

	ChangeVsPrevTradingDay   *float64 `json:"change_vs_prev_trading_day"`
	ChangeVsPrev2TradingDays *float64 `json:"change_vs_prev_2_trading_days"`
	ChangeVsPrevWeek         *float64 `json:"change_vs_prev_week"`

	PrevTradingDayPrice   *float64 `json:"prev_trading_day_price"`
	Prev2TradingDaysPrice *float64 `json:"prev_2_trading_days_price"`
	PrevWeekPrice         *float64 `json:"prev_week_price"`
}
