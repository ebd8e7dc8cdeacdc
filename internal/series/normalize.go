package series

import (
	"math"
	"sort"
	"time"

	"wheel-backtest/internal/model"
)

// Normalize orders raw rows by date and derives the day-over-day change.
//
// Rows are expected to be well-formed already; anything that is not (blank or
// non-ISO date, non-positive or non-finite price) is rejected with a
// *model.ValidationError rather than skipped. Duplicate dates are kept.
func Normalize(rows []model.PriceRow) ([]model.DailyObservation, error) {
	sorted := make([]model.PriceRow, len(rows))
	copy(sorted, rows)
	for i, r := range sorted {
		if err := validateRow(r); err != nil {
			err.Row = i
			return nil, err
		}
	}

	// Price breaks ties between duplicate dates so any permutation of the
	// input produces the same sequence.
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].Price < sorted[j].Price
	})

	out := make([]model.DailyObservation, len(sorted))
	for i, r := range sorted {
		d := model.DailyObservation{
			Date:          r.Date,
			Price:         r.Price,
			SequenceIndex: i,
		}
		if i > 0 {
			d.ChangePct = calcPct(r.Price, &sorted[i-1].Price)
		}
		out[i] = d
	}
	return out, nil
}

func validateRow(r model.PriceRow) *model.ValidationError {
	if r.Date == "" {
		return &model.ValidationError{Field: "date", Value: r.Date, Reason: "date is required"}
	}
	if len(r.Date) != len(model.DateLayout) {
		return &model.ValidationError{Field: "date", Value: r.Date, Reason: "must be YYYY-MM-DD"}
	}
	if _, err := time.Parse(model.DateLayout, r.Date); err != nil {
		return &model.ValidationError{Field: "date", Value: r.Date, Reason: "must be YYYY-MM-DD"}
	}
	if math.IsNaN(r.Price) || math.IsInf(r.Price, 0) {
		return &model.ValidationError{Field: "price", Value: r.Price, Reason: "must be a finite number"}
	}
	if r.Price <= 0 {
		return &model.ValidationError{Field: "price", Value: r.Price, Reason: "must be > 0"}
	}
	return nil
}

// calcPct is (current - past) / past * 100, or nil when there is no past value.
func calcPct(current float64, past *float64) *float64 {
	if past == nil {
		return nil
	}
	v := (current - *past) / *past * 100
	return &v
}
