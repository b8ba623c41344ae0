package handlers

import (
	"errors"
	"math"

	"github.com/gofiber/fiber/v3"

	"github.com/midas-analytics/midas/internal/database"
	"github.com/midas-analytics/midas/internal/stats"
)

// HandleListTests returns the registered A/B tests with variant counts
func HandleListTests(c fiber.Ctx) error {
	query := `
		SELECT
			t.test_id,
			t.test_name,
			t.description,
			t.metric,
			t.start_date::text,
			t.end_date::text,
			COUNT(a.ad_id) AS variants
		FROM ab_tests t
		LEFT JOIN ads a ON a.test_id = t.test_id
		GROUP BY t.test_id, t.test_name, t.description, t.metric, t.start_date, t.end_date
		ORDER BY t.start_date DESC, t.test_id`

	rows, err := database.DB.Query(query)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to query tests",
		})
	}
	defer func() { _ = rows.Close() }()

	tests := make([]ABTestSummary, 0)
	for rows.Next() {
		var t ABTestSummary
		if err := rows.Scan(&t.TestID, &t.TestName, &t.Description, &t.Metric, &t.StartDate, &t.EndDate, &t.Variants); err != nil {
			continue
		}
		tests = append(tests, t)
	}

	return c.JSON(tests)
}

// loadTestVariants aggregates daily performance per ad for one test.
// Ads are ordered by ad_id, and the first ad is the control by convention.
func loadTestVariants(testID string) ([]VariantResult, error) {
	query := `
		SELECT
			a.ad_id,
			a.ad_name,
			COALESCE(SUM(dp.impressions), 0),
			COALESCE(SUM(dp.clicks), 0),
			COALESCE(SUM(dp.conversions), 0),
			COALESCE(SUM(dp.spend), 0),
			COALESCE(SUM(dp.revenue), 0)
		FROM ads a
		LEFT JOIN daily_performance dp ON dp.ad_id = a.ad_id
		WHERE a.test_id = $1
		GROUP BY a.ad_id, a.ad_name
		ORDER BY a.ad_id`

	rows, err := database.DB.Query(query, testID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	variants := make([]VariantResult, 0)
	for rows.Next() {
		var v VariantResult
		if err := rows.Scan(
			&v.AdID, &v.AdName,
			&v.Observation.Impressions, &v.Observation.Clicks, &v.Observation.Conversions,
			&v.Observation.Cost, &v.Observation.Revenue,
		); err != nil {
			return nil, err
		}

		v.CTR = v.Observation.MetricValue(stats.MetricCTR)
		v.CVR = v.Observation.MetricValue(stats.MetricCVR)
		v.ROAS = v.Observation.MetricValue(stats.MetricROAS)

		variants = append(variants, v)
	}

	return variants, rows.Err()
}

// HandleTestResults runs the significance engine over a stored test,
// comparing every challenger against the control on the chosen proportion
// metric (ctr or cvr).
func HandleTestResults(c fiber.Ctx) error {
	testID := c.Params("test_id")

	metric, err := stats.ParseMetric(c.Query("metric"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid metric",
		})
	}
	if metric == stats.MetricROAS {
		return c.Status(400).JSON(fiber.Map{
			"error": "ROAS is not a proportion metric; use the winner endpoint",
		})
	}

	variants, err := loadTestVariants(testID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to query test variants",
		})
	}
	if len(variants) == 0 {
		return c.Status(404).JSON(fiber.Map{
			"error": "Test not found",
		})
	}
	if len(variants) < 2 {
		return c.Status(422).JSON(fiber.Map{
			"error": "Test needs at least two variants",
		})
	}

	control := variants[0]
	challengers := variants[1:]

	for i := range challengers {
		result, err := stats.Compare(control.Observation, challengers[i].Observation, metric)
		if err != nil {
			if errors.Is(err, stats.ErrInvalidInput) {
				return c.Status(422).JSON(fiber.Map{
					"error": "Insufficient data for significance test",
				})
			}
			return c.Status(500).JSON(fiber.Map{
				"error": "Significance computation failed",
			})
		}
		challengers[i].Significance = &result
		challengers[i].Significant = result.Significant()
	}

	return c.JSON(TestResultsResponse{
		TestID:   testID,
		Metric:   string(metric),
		Control:  control,
		Variants: challengers,
	})
}

// HandleTestWinner picks the best-performing variant of a test on the
// chosen metric. Ties keep the control, which is listed first.
func HandleTestWinner(c fiber.Ctx) error {
	testID := c.Params("test_id")

	metric, err := stats.ParseMetric(c.Query("metric"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid metric",
		})
	}

	variants, err := loadTestVariants(testID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to query test variants",
		})
	}
	if len(variants) == 0 {
		return c.Status(404).JSON(fiber.Map{
			"error": "Test not found",
		})
	}

	entries := make([]stats.Variant, len(variants))
	for i, v := range variants {
		entries[i] = stats.Variant{Label: v.AdName, Observation: v.Observation}
	}

	winner, err := stats.PickWinner(entries, metric)
	if err != nil {
		return c.Status(422).JSON(fiber.Map{
			"error": "Winner could not be determined",
		})
	}

	resp := WinnerResponse{TestID: testID, Metric: string(metric), Winner: winner}
	for _, v := range variants {
		if v.AdName == winner {
			resp.AdID = v.AdID
			break
		}
	}

	return c.JSON(resp)
}

// HandlePlan computes the required sample size for a planned test
func HandlePlan(c fiber.Ctx) error {
	var req PlanRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Alpha == 0 {
		req.Alpha = stats.DefaultAlpha
	}
	if req.Power == 0 {
		req.Power = stats.DefaultPower
	}

	perVariant, err := stats.RequiredSampleSize(req.BaselineRate, req.MDE, req.Alpha, req.Power)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp := PlanResponse{
		PerVariant: perVariant,
		Total:      perVariant * 2,
	}
	if req.DailyTraffic > 0 {
		resp.DurationDays = uint64(math.Ceil(float64(resp.Total) / float64(req.DailyTraffic)))
	}

	return c.JSON(resp)
}
