package handlers

import (
	"github.com/gofiber/fiber/v3"

	"github.com/midas-analytics/midas/internal/database"
)

// HandleSegments returns the customer segment rollup: per-segment customer
// counts with average lifetime value, order value, and order frequency.
func HandleSegments(c fiber.Ctx) error {
	query := `
		SELECT
			segment,
			COUNT(*) AS customers,
			AVG(ltv) AS avg_lifetime_value,
			AVG(aov) AS avg_order_value,
			AVG(orders) AS avg_orders
		FROM (
			SELECT
				segment,
				customer_id,
				SUM(order_value) AS ltv,
				AVG(order_value) AS aov,
				COUNT(*) AS orders
			FROM sales
			GROUP BY segment, customer_id
		) per_customer
		GROUP BY segment
		ORDER BY avg_lifetime_value DESC`

	rows, err := database.DB.Query(query)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to query segments",
		})
	}
	defer func() { _ = rows.Close() }()

	segments := make([]SegmentSummary, 0)
	for rows.Next() {
		var s SegmentSummary
		if err := rows.Scan(&s.Segment, &s.Customers, &s.AvgLifetimeValue, &s.AvgOrderValue, &s.AvgOrders); err != nil {
			continue
		}
		segments = append(segments, s)
	}

	return c.JSON(segments)
}
