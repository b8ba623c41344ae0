package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// buildFilterClause creates SQL WHERE conditions and args from query params.
// Columns reference the campaign_daily_rollup alias r.
func buildFilterClause(c fiber.Ctx, baseArgs []interface{}) (string, []interface{}) {
	var conditions []string
	args := baseArgs

	addFilter := func(columnName, value string) {
		if value != "" {
			argNum := len(args) + 1
			conditions = append(conditions, fmt.Sprintf("%s = $%d", columnName, argNum))
			args = append(args, value)
		}
	}

	addFilter("r.platform", c.Query("platform"))
	addFilter("r.campaign_id", c.Query("campaign"))
	addFilter("r.funnel_stage", c.Query("funnel_stage"))

	clause := ""
	if len(conditions) > 0 {
		clause = " AND " + strings.Join(conditions, " AND ")
	}

	return clause, args
}

// queryDays reads the days query parameter, clamped to the retention window.
func queryDays(c fiber.Ctx) int {
	days := fiber.Query[int](c, "days", 30)
	if days < 1 {
		days = 1
	}
	if days > 365 {
		days = 365
	}
	return days
}
