package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wheel-backtest/internal/logger"
	"wheel-backtest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "Date,Close\r\n" +
	"2024-01-02,100.5\r\n" +
	"\r\n" +
	"2024-01-03, 101.25 ,extra\r\n" +
	",99\r\n" +
	"2024-01-04,n/a\r\n" +
	"2024-01-05,-3\r\n" +
	"2024-01-08\r\n" +
	"2024-01-09,102\r\n"

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sampleCSV), logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, []model.PriceRow{
		{Date: "2024-01-02", Price: 100.5},
		{Date: "2024-01-03", Price: 101.25},
		{Date: "2024-01-09", Price: 102},
	}, rows)
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("date,price\n"), nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseCSV_BadQuoting(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("date,price\n\"2024-01-02,1\n"), nil)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "prices.csv")
	jsonPath := filepath.Join(dir, "prices.JSON")
	require.NoError(t, os.WriteFile(csvPath, []byte("date,price\n2024-01-05,10\n"), 0o644))
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"date":"2024-01-05","price":11}]`), 0o644))

	ctx := context.Background()

	rows, err := Load(ctx, Source{Path: csvPath}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, []model.PriceRow{{Date: "2024-01-05", Price: 10}}, rows)

	rows, err = Load(ctx, Source{Path: jsonPath}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, []model.PriceRow{{Date: "2024-01-05", Price: 11}}, rows)

	_, err = Load(ctx, Source{}, logger.Nop())
	assert.Error(t, err)

	_, err = Load(ctx, Source{Path: filepath.Join(dir, "missing.csv")}, logger.Nop())
	assert.Error(t, err)
}

func TestRemoteSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/prices.csv":
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte("date,price\n2024-01-05,42\n2024-01-12,43.5\n"))
		default:
			http.Error(w, "no such series", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	rows, err := Load(ctx, Source{URL: srv.URL + "/prices.csv", Timeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, []model.PriceRow{
		{Date: "2024-01-05", Price: 42},
		{Date: "2024-01-12", Price: 43.5},
	}, rows)

	_, err = NewRemoteSource(time.Second, logger.Nop()).Fetch(ctx, srv.URL+"/missing.csv")
	require.Error(t, err)
	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusNotFound, re.StatusCode)
	assert.Contains(t, re.Message, "no such series")
}

func TestSeriesCache(t *testing.T) {
	c := NewSeriesCache(time.Minute)
	weeks := []model.WeeklyObservation{{WeekKey: "2024-01-05", WeekEndDate: "2024-01-05", WeekEndPrice: 1}}

	key := CacheKey([]model.PriceRow{{Date: "2024-01-05", Price: 1}})
	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Set(key, weeks)
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, weeks, got)
	assert.Equal(t, 1, c.Len())

	var nilCache *SeriesCache
	nilCache.Set(key, weeks)
	_, ok = nilCache.Get(key)
	assert.False(t, ok)
}

func TestSeriesCache_Expires(t *testing.T) {
	c := NewSeriesCache(20 * time.Millisecond)
	c.Set("k", []model.WeeklyObservation{})
	time.Sleep(50 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCacheKey(t *testing.T) {
	a := []model.PriceRow{{Date: "2024-01-05", Price: 1}, {Date: "2024-01-12", Price: 2}}
	b := []model.PriceRow{{Date: "2024-01-05", Price: 1}, {Date: "2024-01-12", Price: 2.0000001}}

	assert.Equal(t, CacheKey(a), CacheKey(a))
	assert.NotEqual(t, CacheKey(a), CacheKey(b))
	assert.Len(t, CacheKey(nil), 64)
}
