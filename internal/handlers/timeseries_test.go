package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleTimeSeries_Success(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT(.|\n)*FROM campaign_daily_rollup(.|\n)*GROUP BY r\.report_date`).
		WithArgs(30).
		WillReturnRows(sqlmock.NewRows(
			[]string{"report_date", "spend", "revenue", "impressions", "clicks"},
		).
			AddRow("2025-10-01", 120.0, 360.0, 4000, 90).
			AddRow("2025-10-02", 140.0, 280.0, 4200, 85))

	app := newTestApp(http.MethodGet, "/api/timeseries", HandleTimeSeries)

	req := httptest.NewRequest(http.MethodGet, "/api/timeseries", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var points []TimeSeriesPoint
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&points))
	require.Len(t, points, 2)
	assert.Equal(t, "2025-10-01", points[0].Date)
	assert.Equal(t, 120.0, points[0].Spend)
	assert.Equal(t, uint64(4200), points[1].Impressions)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleTimeSeries_FilterArgs(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT(.|\n)*r\.platform = \$2(.|\n)*r\.campaign_id = \$3`).
		WithArgs(90, "Google Ads", "CAMP003").
		WillReturnRows(sqlmock.NewRows(
			[]string{"report_date", "spend", "revenue", "impressions", "clicks"},
		))

	app := newTestApp(http.MethodGet, "/api/timeseries", HandleTimeSeries)

	req := httptest.NewRequest(http.MethodGet, "/api/timeseries?days=90&platform=Google+Ads&campaign=CAMP003", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var points []TimeSeriesPoint
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&points))
	assert.Empty(t, points)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleTimeSeries_DaysClamped(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT(.|\n)*FROM campaign_daily_rollup`).
		WithArgs(365).
		WillReturnRows(sqlmock.NewRows(
			[]string{"report_date", "spend", "revenue", "impressions", "clicks"},
		))

	app := newTestApp(http.MethodGet, "/api/timeseries", HandleTimeSeries)

	req := httptest.NewRequest(http.MethodGet, "/api/timeseries?days=5000", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleTimeSeries_QueryError(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT(.|\n)*FROM campaign_daily_rollup`).
		WithArgs(30).
		WillReturnError(assert.AnError)

	app := newTestApp(http.MethodGet, "/api/timeseries", HandleTimeSeries)

	req := httptest.NewRequest(http.MethodGet, "/api/timeseries", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}
