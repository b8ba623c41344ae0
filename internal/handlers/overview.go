package handlers

import (
	"github.com/gofiber/fiber/v3"

	"github.com/midas-analytics/midas/internal/database"
)

// HandleOverview returns account-wide totals and derived metrics over the
// requested window.
func HandleOverview(c fiber.Ctx) error {
	days := queryDays(c)
	filterClause, filterArgs := buildFilterClause(c, []interface{}{days})

	query := `
		SELECT
			COALESCE(SUM(r.spend), 0),
			COALESCE(SUM(r.revenue), 0),
			COALESCE(SUM(r.impressions), 0),
			COALESCE(SUM(r.clicks), 0),
			COALESCE(SUM(r.conversions), 0)
		FROM campaign_daily_rollup r
		WHERE r.report_date >= CURRENT_DATE - $1::int` + filterClause

	stats := OverviewStats{PeriodDays: days}
	err := database.DB.QueryRow(query, filterArgs...).Scan(
		&stats.TotalSpend,
		&stats.TotalRevenue,
		&stats.Impressions,
		&stats.Clicks,
		&stats.Conversions,
	)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to query overview",
		})
	}

	if stats.TotalSpend > 0 {
		stats.ROAS = stats.TotalRevenue / stats.TotalSpend
	}
	if stats.Conversions > 0 {
		stats.CPA = stats.TotalSpend / float64(stats.Conversions)
	}
	if stats.Impressions > 0 {
		stats.CTR = float64(stats.Clicks) / float64(stats.Impressions)
	}

	return c.JSON(stats)
}
