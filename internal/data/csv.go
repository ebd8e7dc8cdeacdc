package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"wheel-backtest/internal/logger"
	"wheel-backtest/internal/model"
)

// ParseCSV reads "date,price" rows. The first record is a header and is
// skipped. Rows with a blank date or a price that is not a positive number
// are dropped; extra columns are ignored.
func ParseCSV(r io.Reader, log *logger.Logger) ([]model.PriceRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []model.PriceRow
	line := 0
	dropped := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++
		if line == 1 {
			continue
		}
		row, ok := parseRecord(rec)
		if !ok {
			dropped++
			if log != nil {
				log.Debug("dropping malformed price row", logger.IntField("line", line), logger.StringField("record", strings.Join(rec, ",")))
			}
			continue
		}
		rows = append(rows, row)
	}
	if dropped > 0 && log != nil {
		log.Info("dropped malformed price rows", logger.IntField("dropped", dropped), logger.IntField("kept", len(rows)))
	}
	return rows, nil
}

func parseRecord(rec []string) (model.PriceRow, bool) {
	if len(rec) < 2 {
		return model.PriceRow{}, false
	}
	date := strings.TrimSpace(rec[0])
	price, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
	if date == "" || err != nil || !(price > 0) || math.IsInf(price, 0) {
		return model.PriceRow{}, false
	}
	return model.PriceRow{Date: date, Price: price}, true
}

func LoadCSV(path string, log *logger.Logger) ([]model.PriceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseCSV(f, log)
}
