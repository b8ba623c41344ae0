package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/midas-analytics/midas/internal/database"
)

var nowFunc = time.Now

// Pacing status thresholds: within 5% of the time-proportional target
// counts as on track.
const (
	pacingUnderThreshold = 95.0
	pacingOverThreshold  = 105.0
)

// HandleBudgetPacing compares each campaign budget window against actual
// spend and reports whether the campaign is on track.
func HandleBudgetPacing(c fiber.Ctx) error {
	query := `
		SELECT
			b.campaign_id,
			cp.campaign_name,
			b.start_date::text,
			b.end_date::text,
			b.total_budget,
			COALESCE((
				SELECT SUM(r.spend)
				FROM campaign_daily_rollup r
				WHERE r.campaign_id = b.campaign_id
				  AND r.report_date BETWEEN b.start_date AND b.end_date
			), 0) AS spent
		FROM campaign_budgets b
		JOIN campaigns cp ON b.campaign_id = cp.campaign_id
		ORDER BY b.start_date DESC, b.campaign_id`

	rows, err := database.DB.Query(query)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to query budgets",
		})
	}
	defer func() { _ = rows.Close() }()

	statuses := make([]PacingStatus, 0)
	for rows.Next() {
		var ps PacingStatus
		if err := rows.Scan(&ps.CampaignID, &ps.CampaignName, &ps.StartDate, &ps.EndDate, &ps.TotalBudget, &ps.Spent); err != nil {
			continue
		}

		start, err := time.Parse("2006-01-02", ps.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse("2006-01-02", ps.EndDate)
		if err != nil {
			continue
		}

		ps.PacingPct, ps.DailyRequired = pace(ps.TotalBudget, ps.Spent, start, end, nowFunc())
		ps.Status = pacingStatus(ps.PacingPct)

		statuses = append(statuses, ps)
	}

	return c.JSON(statuses)
}

// pace returns spend as a percentage of the time-proportional target and
// the daily spend needed over the remaining days to land on budget.
func pace(budget, spent float64, start, end, now time.Time) (pacingPct, dailyRequired float64) {
	totalDays := end.Sub(start).Hours()/24 + 1
	if totalDays <= 0 || budget <= 0 {
		return 0, 0
	}

	elapsedDays := now.Sub(start).Hours()/24 + 1
	if elapsedDays < 1 {
		elapsedDays = 1
	}
	if elapsedDays > totalDays {
		elapsedDays = totalDays
	}

	target := budget * elapsedDays / totalDays
	pacingPct = spent / target * 100

	remainingDays := totalDays - elapsedDays
	if remainingDays >= 1 {
		remaining := budget - spent
		if remaining < 0 {
			remaining = 0
		}
		dailyRequired = remaining / remainingDays
	}

	return pacingPct, dailyRequired
}

func pacingStatus(pacingPct float64) string {
	switch {
	case pacingPct < pacingUnderThreshold:
		return "Underspending"
	case pacingPct > pacingOverThreshold:
		return "Overspending"
	default:
		return "On Track"
	}
}
