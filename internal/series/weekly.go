package series

import (
	"fmt"
	"sort"
	"time"

	"wheel-backtest/internal/model"
)

// WeekAnchor returns the Friday a date is grouped under.
//
// The anchor is date + (Friday - weekday): Monday..Friday move forward to that
// week's Friday, Saturday moves back one day to the preceding Friday, and
// Sunday (weekday 0) moves forward five days.
func WeekAnchor(date string) (string, error) {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return "", &model.ValidationError{Row: -1, Field: "date", Value: date, Reason: "must be YYYY-MM-DD"}
	}
	diff := int(time.Friday) - int(t.Weekday())
	return t.AddDate(0, 0, diff).Format(model.DateLayout), nil
}

// Aggregate reduces an ascending daily series (as produced by Normalize) to one
// observation per week anchor, newest week first.
func Aggregate(daily []model.DailyObservation) ([]model.WeeklyObservation, error) {
	lastByAnchor := make(map[string]int)
	for i, d := range daily {
		if d.SequenceIndex != i {
			return nil, &model.ValidationError{Row: i, Field: "sequence_index", Value: d.SequenceIndex, Reason: "daily series must be normalized"}
		}
		if i > 0 && d.Date < daily[i-1].Date {
			return nil, &model.ValidationError{Row: i, Field: "date", Value: d.Date, Reason: "daily series must ascend by date"}
		}
		anchor, err := WeekAnchor(d.Date)
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", i, err)
		}
		if prev, ok := lastByAnchor[anchor]; !ok || i > prev {
			lastByAnchor[anchor] = i
		}
	}

	anchors := make([]string, 0, len(lastByAnchor))
	for a := range lastByAnchor {
		anchors = append(anchors, a)
	}
	sort.Strings(anchors)

	weeks := make([]model.WeeklyObservation, 0, len(anchors))
	for i, anchor := range anchors {
		last := daily[lastByAnchor[anchor]]
		idx := last.SequenceIndex

		w := model.WeeklyObservation{
			WeekKey:      anchor,
			WeekEndDate:  last.Date,
			WeekEndPrice: last.Price,
		}
		if idx >= 1 {
			p := daily[idx-1].Price
			w.PrevTradingDayPrice = &p
		}
		if idx >= 2 {
			p := daily[idx-2].Price
			w.Prev2TradingDaysPrice = &p
		}
		if i > 0 {
			p := weeks[i-1].WeekEndPrice
			w.PrevWeekPrice = &p
		}
		w.ChangeVsPrevTradingDay = calcPct(last.Price, w.PrevTradingDayPrice)
		w.ChangeVsPrev2TradingDays = calcPct(last.Price, w.Prev2TradingDaysPrice)
		w.ChangeVsPrevWeek = calcPct(last.Price, w.PrevWeekPrice)

		weeks = append(weeks, w)
	}

	reverse(weeks)
	return weeks, nil
}

// FromRows runs Normalize then Aggregate.
func FromRows(rows []model.PriceRow) ([]model.DailyObservation, []model.WeeklyObservation, error) {
	daily, err := Normalize(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("normalize: %w", err)
	}
	weekly, err := Aggregate(daily)
	if err != nil {
		return nil, nil, fmt.Errorf("aggregate: %w", err)
	}
	return daily, weekly, nil
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
