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

func TestHandleOverview_Success(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT(.|\n)*FROM campaign_daily_rollup`).
		WithArgs(30).
		WillReturnRows(sqlmock.NewRows(
			[]string{"spend", "revenue", "impressions", "clicks", "conversions"},
		).AddRow(4000.0, 12000.0, 200000, 4000, 160))

	app := newTestApp(http.MethodGet, "/api/overview", HandleOverview)

	req := httptest.NewRequest(http.MethodGet, "/api/overview", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stats OverviewStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 4000.0, stats.TotalSpend)
	assert.Equal(t, 12000.0, stats.TotalRevenue)
	assert.InDelta(t, 3.0, stats.ROAS, 1e-9)
	assert.InDelta(t, 25.0, stats.CPA, 1e-9)
	assert.InDelta(t, 0.02, stats.CTR, 1e-9)
	assert.Equal(t, 30, stats.PeriodDays)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleOverview_WithFilters(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT(.|\n)*FROM campaign_daily_rollup`).
		WithArgs(7, "Meta", "TOF").
		WillReturnRows(sqlmock.NewRows(
			[]string{"spend", "revenue", "impressions", "clicks", "conversions"},
		).AddRow(0.0, 0.0, 0, 0, 0))

	app := newTestApp(http.MethodGet, "/api/overview", HandleOverview)

	req := httptest.NewRequest(http.MethodGet, "/api/overview?days=7&platform=Meta&funnel_stage=TOF", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Empty window: derived metrics stay zero rather than NaN
	var stats OverviewStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Zero(t, stats.ROAS)
	assert.Zero(t, stats.CPA)
	assert.Zero(t, stats.CTR)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleOverview_QueryError(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT(.|\n)*FROM campaign_daily_rollup`).
		WithArgs(30).
		WillReturnError(assert.AnError)

	app := newTestApp(http.MethodGet, "/api/overview", HandleOverview)

	req := httptest.NewRequest(http.MethodGet, "/api/overview", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}
