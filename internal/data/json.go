package data

import (
	"encoding/json"
	"os"

	"wheel-backtest/internal/model"
)

// LoadJSON reads a JSON array of {"date", "price"} objects.
func LoadJSON(path string) ([]model.PriceRow, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []model.PriceRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
