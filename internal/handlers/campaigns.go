package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/midas-analytics/midas/internal/database"
)

// HandleCampaigns returns paginated per-campaign aggregates with derived
// metrics over the requested window.
func HandleCampaigns(c fiber.Ctx) error {
	days := queryDays(c)
	params := ParsePaginationParamsWithValidation(c, "campaigns")

	filterClause, filterArgs := buildFilterClause(c, []interface{}{days})

	var total int64
	countQuery := `
		SELECT COUNT(DISTINCT r.campaign_id)
		FROM campaign_daily_rollup r
		WHERE r.report_date >= CURRENT_DATE - $1::int` + filterClause
	if err := database.DB.QueryRow(countQuery, filterArgs...).Scan(&total); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to count campaigns",
		})
	}

	// SortBy is validated against the allow-list, never raw user input.
	query := fmt.Sprintf(`
		SELECT
			r.campaign_id,
			r.campaign_name,
			r.platform,
			r.funnel_stage,
			COALESCE(SUM(r.spend), 0) AS spend,
			COALESCE(SUM(r.revenue), 0) AS revenue,
			COALESCE(SUM(r.impressions), 0) AS impressions,
			COALESCE(SUM(r.clicks), 0) AS clicks,
			COALESCE(SUM(r.conversions), 0) AS conversions
		FROM campaign_daily_rollup r
		WHERE r.report_date >= CURRENT_DATE - $1::int%s
		GROUP BY r.campaign_id, r.campaign_name, r.platform, r.funnel_stage
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		filterClause, params.SortBy, params.SortOrder,
		len(filterArgs)+1, len(filterArgs)+2)

	args := append(filterArgs, params.Per, params.Offset)
	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to query campaigns",
		})
	}
	defer func() { _ = rows.Close() }()

	campaigns := make([]CampaignSummary, 0)
	for rows.Next() {
		var cs CampaignSummary
		if err := rows.Scan(
			&cs.CampaignID, &cs.CampaignName, &cs.Platform, &cs.FunnelStage,
			&cs.Spend, &cs.Revenue, &cs.Impressions, &cs.Clicks, &cs.Conversions,
		); err != nil {
			continue
		}

		if cs.Spend > 0 {
			cs.ROAS = cs.Revenue / cs.Spend
		}
		if cs.Conversions > 0 {
			cs.CPA = cs.Spend / float64(cs.Conversions)
		}
		if cs.Impressions > 0 {
			cs.CTR = float64(cs.Clicks) / float64(cs.Impressions)
		}

		campaigns = append(campaigns, cs)
	}

	return c.JSON(NewPaginatedResponse(campaigns, params, total))
}
