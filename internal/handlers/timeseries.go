package handlers

import (
	"github.com/gofiber/fiber/v3"

	"github.com/midas-analytics/midas/internal/database"
)

// HandleTimeSeries returns daily delivery totals for charts
func HandleTimeSeries(c fiber.Ctx) error {
	days := queryDays(c)
	filterClause, filterArgs := buildFilterClause(c, []interface{}{days})

	query := `
		SELECT
			r.report_date::text,
			COALESCE(SUM(r.spend), 0),
			COALESCE(SUM(r.revenue), 0),
			COALESCE(SUM(r.impressions), 0),
			COALESCE(SUM(r.clicks), 0)
		FROM campaign_daily_rollup r
		WHERE r.report_date >= CURRENT_DATE - $1::int` + filterClause + `
		GROUP BY r.report_date
		ORDER BY r.report_date ASC`

	rows, err := database.DB.Query(query, filterArgs...)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to query time series",
		})
	}
	defer func() { _ = rows.Close() }()

	points := make([]TimeSeriesPoint, 0)
	for rows.Next() {
		var p TimeSeriesPoint
		if err := rows.Scan(&p.Date, &p.Spend, &p.Revenue, &p.Impressions, &p.Clicks); err != nil {
			continue
		}
		points = append(points, p)
	}

	return c.JSON(points)
}
