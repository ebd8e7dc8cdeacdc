package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wheel-backtest/internal/api/models"
	"wheel-backtest/internal/config"
	"wheel-backtest/internal/data"
	"wheel-backtest/internal/logger"
	"wheel-backtest/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *data.SeriesCache) {
	t.Helper()
	cache := data.NewSeriesCache(time.Minute)
	return NewRouter(config.Default(), logger.Nop(), cache), cache
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func fridays(closes ...float64) []model.PriceRow {
	start := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	rows := make([]model.PriceRow, len(closes))
	for i, p := range closes {
		rows[i] = model.PriceRow{Date: start.AddDate(0, 0, 7*i).Format(model.DateLayout), Price: p}
	}
	return rows
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestNotFound(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSeriesWeekly(t *testing.T) {
	r, cache := newTestRouter(t)
	rows := []model.PriceRow{
		{Date: "2024-01-19", Price: 121},
		{Date: "2024-01-01", Price: 100},
		{Date: "2024-01-02", Price: 102},
		{Date: "2024-01-05", Price: 104},
		{Date: "2024-01-10", Price: 110},
		{Date: "2024-01-18", Price: 99},
	}

	w := do(t, r, http.MethodPost, "/api/v1/series/weekly", models.SeriesRequest{Rows: rows})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.SeriesResponse](t, w)
	assert.Empty(t, resp.Daily)
	require.Len(t, resp.Weekly, 3)
	assert.Equal(t, "2024-01-19", resp.Weekly[0].WeekKey)
	assert.Equal(t, 121.0, resp.Weekly[0].WeekEndPrice)
	assert.Equal(t, "2024-01-12", resp.Weekly[1].WeekKey)
	assert.Equal(t, "2024-01-10", resp.Weekly[1].WeekEndDate)
	assert.Nil(t, resp.Weekly[2].ChangeVsPrevWeek)
	assert.Equal(t, 1, cache.Len())

	w = do(t, r, http.MethodPost, "/api/v1/series/weekly", models.SeriesRequest{Rows: rows, IncludeDaily: true})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[models.SeriesResponse](t, w)
	assert.Len(t, resp.Daily, 6)
	assert.Equal(t, "2024-01-01", resp.Daily[0].Date)
}

func TestSeriesWeekly_InvalidRow(t *testing.T) {
	r, _ := newTestRouter(t)
	rows := []model.PriceRow{
		{Date: "2024-01-01", Price: 100},
		{Date: "2024-01-02", Price: -3},
	}
	w := do(t, r, http.MethodPost, "/api/v1/series/weekly", models.SeriesRequest{Rows: rows})
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode[models.ErrorResponse](t, w)
	assert.Equal(t, "INVALID_SERIES", resp.Error.Code)
	assert.Equal(t, "price", resp.Error.Details["field"])
	assert.EqualValues(t, 1, resp.Error.Details["row"])
}

func TestSeriesWeekly_MissingRows(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/v1/series/weekly", map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestRunBacktest(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/backtest", models.BacktestRequest{Rows: fridays(100, 106, 100)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.BacktestResponse](t, w)
	assert.Equal(t, model.DefaultWheelParams(), resp.Params)
	assert.Equal(t, model.HorizonAll, resp.Horizon)
	assert.Equal(t, 3, resp.Summary.Weeks)
	assert.InDelta(t, 10605.0, resp.Summary.FinalValue, 1e-9)
	require.Len(t, resp.Steps, 3)
	assert.Equal(t, "2024-01-19", resp.Steps[0].WeekDate)
	assert.Equal(t, model.OutcomePending, resp.Steps[0].Outcome)
}

func TestRunBacktest_ParamsAndOptions(t *testing.T) {
	r, _ := newTestRouter(t)

	req := models.BacktestRequest{
		Rows:    fridays(100, 106, 100),
		Params:  models.ParamsConfig{InitialCapital: config.Float(5000)},
		Options: models.BacktestOptions{OmitSteps: true},
	}
	w := do(t, r, http.MethodPost, "/api/v1/backtest", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.BacktestResponse](t, w)
	assert.Equal(t, 5000.0, resp.Params.InitialCapital)
	assert.Equal(t, model.DefaultCallPremiumPct, resp.Params.CallPremiumPct)
	assert.Empty(t, resp.Steps)
	assert.Equal(t, 3, resp.Summary.Weeks)
}

func TestRunBacktest_ZeroPremium(t *testing.T) {
	r, _ := newTestRouter(t)

	body := `{"rows":[{"date":"2024-01-05","price":100},{"date":"2024-01-12","price":103}],` +
		`"params":{"call_premium_pct":0,"put_premium_pct":0}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/backtest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.BacktestResponse](t, w)
	assert.Equal(t, model.WheelParams{InitialCapital: model.DefaultInitialCapital}, resp.Params)
	require.Len(t, resp.Steps, 2)
	for _, s := range resp.Steps {
		assert.Zero(t, s.Action.Premium)
	}
	assert.Zero(t, resp.Summary.PremiumCollected)
}

func TestRunBacktest_ZeroCapitalRejected(t *testing.T) {
	r, _ := newTestRouter(t)
	req := models.BacktestRequest{Rows: fridays(100), Params: models.ParamsConfig{InitialCapital: config.Float(0)}}
	w := do(t, r, http.MethodPost, "/api/v1/backtest", req)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestRunBacktest_Horizon(t *testing.T) {
	r, _ := newTestRouter(t)
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	w := do(t, r, http.MethodPost, "/api/v1/backtest", models.BacktestRequest{Rows: fridays(closes...), Horizon: "3M"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.BacktestResponse](t, w)
	assert.Equal(t, model.Horizon3M, resp.Horizon)
	assert.Equal(t, 13, resp.Summary.Weeks)
	assert.Len(t, resp.Steps, 13)
}

func TestRunBacktest_Weekly(t *testing.T) {
	r, _ := newTestRouter(t)
	weekly := []model.WeeklyObservation{
		{WeekKey: "2024-01-12", WeekEndDate: "2024-01-12", WeekEndPrice: 103},
		{WeekKey: "2024-01-05", WeekEndDate: "2024-01-05", WeekEndPrice: 100},
	}
	w := do(t, r, http.MethodPost, "/api/v1/backtest", models.BacktestRequest{Weekly: weekly})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.BacktestResponse](t, w)
	assert.Equal(t, "2024-01-05", resp.Summary.StartDate)
	assert.Equal(t, "2024-01-12", resp.Summary.EndDate)
}

func TestRunBacktest_Errors(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name   string
		body   interface{}
		status int
		code   string
	}{
		{
			name:   "neither rows nor weekly",
			body:   models.BacktestRequest{},
			status: http.StatusBadRequest,
			code:   "INVALID_REQUEST",
		},
		{
			name: "both rows and weekly",
			body: models.BacktestRequest{
				Rows:   fridays(100),
				Weekly: []model.WeeklyObservation{{WeekKey: "2024-01-05", WeekEndDate: "2024-01-05", WeekEndPrice: 100}},
			},
			status: http.StatusBadRequest,
			code:   "INVALID_REQUEST",
		},
		{
			name:   "unknown horizon",
			body:   models.BacktestRequest{Rows: fridays(100), Horizon: "5Y"},
			status: http.StatusBadRequest,
			code:   "INVALID_REQUEST",
		},
		{
			name:   "negative premium",
			body:   models.BacktestRequest{Rows: fridays(100), Params: models.ParamsConfig{CallPremiumPct: config.Float(-0.01)}},
			status: http.StatusBadRequest,
			code:   "INVALID_REQUEST",
		},
		{
			name:   "bad date",
			body:   models.BacktestRequest{Rows: []model.PriceRow{{Date: "2024-13-01", Price: 100}}},
			status: http.StatusBadRequest,
			code:   "INVALID_SERIES",
		},
		{
			name:   "zero weekly price",
			body:   models.BacktestRequest{Weekly: []model.WeeklyObservation{{WeekKey: "2024-01-05", WeekEndDate: "2024-01-05", WeekEndPrice: 0}}},
			status: http.StatusUnprocessableEntity,
			code:   "DOMAIN_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/v1/backtest", tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode[models.ErrorResponse](t, w).Error.Code)
		})
	}
}

func TestSweep(t *testing.T) {
	r, _ := newTestRouter(t)
	req := models.SweepRequest{
		Rows: fridays(100, 106, 100, 98, 104),
		Variations: []models.Variation{
			{Name: "lean", Params: models.ParamsConfig{CallPremiumPct: config.Float(0.001), PutPremiumPct: config.Float(0.001)}},
			{Name: "rich", Params: models.ParamsConfig{CallPremiumPct: config.Float(0.03), PutPremiumPct: config.Float(0.08)}},
			{Name: "default"},
		},
	}

	w := do(t, r, http.MethodPost, "/api/v1/backtest/sweep", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.SweepResponse](t, w)
	require.Len(t, resp.Rankings, 3)
	assert.Equal(t, "rich", resp.Rankings[0].Name)
	assert.Equal(t, 1, resp.Rankings[0].Rank)
	assert.Equal(t, "lean", resp.Rankings[2].Name)
	assert.Equal(t, model.DefaultWheelParams(), resp.Rankings[1].Params)
	for i := 1; i < len(resp.Rankings); i++ {
		assert.GreaterOrEqual(t, resp.Rankings[i-1].Summary.FinalValue, resp.Rankings[i].Summary.FinalValue)
	}
}

func TestSweep_ZeroPremiumVariation(t *testing.T) {
	r, _ := newTestRouter(t)
	req := models.SweepRequest{
		Rows: fridays(100, 103, 101),
		Variations: []models.Variation{
			{Name: "no-premium", Params: models.ParamsConfig{CallPremiumPct: config.Float(0), PutPremiumPct: config.Float(0)}},
			{Name: "default"},
		},
	}

	w := do(t, r, http.MethodPost, "/api/v1/backtest/sweep", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.SweepResponse](t, w)
	require.Len(t, resp.Rankings, 2)
	assert.Equal(t, "default", resp.Rankings[0].Name)
	assert.Equal(t, "no-premium", resp.Rankings[1].Name)
	assert.Equal(t, model.WheelParams{InitialCapital: model.DefaultInitialCapital}, resp.Rankings[1].Params)
	assert.Zero(t, resp.Rankings[1].Summary.PremiumCollected)
}

func TestSweep_RequiresVariations(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/v1/backtest/sweep", models.SweepRequest{Rows: fridays(100, 101)})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestListParameters(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/v1/parameters", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Parameters []models.ParameterInfo `json:"parameters"`
		Horizons   []string               `json:"horizons"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Parameters, 4)
	assert.Equal(t, "initial_capital", resp.Parameters[0].Name)
	assert.Equal(t, model.DefaultInitialCapital, resp.Parameters[0].Default)
	assert.Equal(t, []string{"3M", "6M", "1Y", "2Y", "3Y", "ALL"}, resp.Horizons)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/backtest", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
