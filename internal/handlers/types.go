package handlers

import "github.com/midas-analytics/midas/internal/stats"

// OverviewStats holds account-wide totals for the dashboard header
type OverviewStats struct {
	TotalSpend   float64 `json:"total_spend"`
	TotalRevenue float64 `json:"total_revenue"`
	Impressions  uint64  `json:"impressions"`
	Clicks       uint64  `json:"clicks"`
	Conversions  uint64  `json:"conversions"`
	ROAS         float64 `json:"roas"`
	CPA          float64 `json:"cpa"`
	CTR          float64 `json:"ctr"`
	PeriodDays   int     `json:"period_days"`
}

// CampaignSummary is one row of the per-campaign report
type CampaignSummary struct {
	CampaignID   string  `json:"campaign_id"`
	CampaignName string  `json:"campaign_name"`
	Platform     string  `json:"platform"`
	FunnelStage  string  `json:"funnel_stage"`
	Spend        float64 `json:"spend"`
	Revenue      float64 `json:"revenue"`
	Impressions  uint64  `json:"impressions"`
	Clicks       uint64  `json:"clicks"`
	Conversions  uint64  `json:"conversions"`
	ROAS         float64 `json:"roas"`
	CPA          float64 `json:"cpa"`
	CTR          float64 `json:"ctr"`
}

// TimeSeriesPoint represents one day of aggregated delivery
type TimeSeriesPoint struct {
	Date        string  `json:"date"`
	Spend       float64 `json:"spend"`
	Revenue     float64 `json:"revenue"`
	Impressions uint64  `json:"impressions"`
	Clicks      uint64  `json:"clicks"`
}

// PacingStatus reports budget consumption for one campaign budget window
type PacingStatus struct {
	CampaignID    string  `json:"campaign_id"`
	CampaignName  string  `json:"campaign_name"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	TotalBudget   float64 `json:"total_budget"`
	Spent         float64 `json:"spent"`
	PacingPct     float64 `json:"pacing_pct"`
	Status        string  `json:"status"`
	DailyRequired float64 `json:"daily_required"`
}

// SegmentSummary is one customer segment rollup row
type SegmentSummary struct {
	Segment          string  `json:"segment"`
	Customers        int     `json:"customers"`
	AvgLifetimeValue float64 `json:"avg_lifetime_value"`
	AvgOrderValue    float64 `json:"avg_order_value"`
	AvgOrders        float64 `json:"avg_orders"`
}

// ABTestSummary describes one registered test
type ABTestSummary struct {
	TestID      string `json:"test_id"`
	TestName    string `json:"test_name"`
	Description string `json:"description"`
	Metric      string `json:"metric"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Variants    int    `json:"variants"`
}

// VariantResult pairs a test arm with its aggregates and, for challenger
// arms, the significance comparison against the control
type VariantResult struct {
	AdID         string                    `json:"ad_id"`
	AdName       string                    `json:"ad_name"`
	Observation  stats.VariantObservation  `json:"observation"`
	CTR          float64                   `json:"ctr"`
	CVR          float64                   `json:"cvr"`
	ROAS         float64                   `json:"roas"`
	Significance *stats.SignificanceResult `json:"significance,omitempty"`
	Significant  bool                      `json:"significant"`
}

// TestResultsResponse is the full significance report for one test
type TestResultsResponse struct {
	TestID   string          `json:"test_id"`
	Metric   string          `json:"metric"`
	Control  VariantResult   `json:"control"`
	Variants []VariantResult `json:"variants"`
}

// WinnerResponse names the winning variant for a completed test
type WinnerResponse struct {
	TestID string `json:"test_id"`
	Metric string `json:"metric"`
	Winner string `json:"winner"`
	AdID   string `json:"ad_id"`
}

// PlanRequest is the payload for the sample size planner
type PlanRequest struct {
	BaselineRate float64 `json:"baseline_rate"`
	MDE          float64 `json:"mde"`
	Alpha        float64 `json:"alpha"`
	Power        float64 `json:"power"`
	DailyTraffic uint64  `json:"daily_traffic"`
}

// PlanResponse is the planner result
type PlanResponse struct {
	PerVariant   uint64 `json:"per_variant"`
	Total        uint64 `json:"total"`
	DurationDays uint64 `json:"duration_days,omitempty"`
}
