package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/midas-analytics/midas/internal/database"
	"github.com/midas-analytics/midas/internal/test"
)

func demoFixture() *seedFile {
	return &seedFile{
		Campaigns: []seedCampaign{
			{CampaignID: "CAMP001", CampaignName: "Sofa Launch Q4", Platform: "Meta", Objective: "Conversions", FunnelStage: "TOF"},
		},
		AdSets: []seedAdSet{
			{AdSetID: "ADSET01", AdSetName: "Broad 25-54", CampaignID: "CAMP001"},
		},
		ABTests: []seedABTest{
			{TestID: "TEST01", TestName: "Blue vs Green Background", Metric: "ctr", StartDate: "2025-10-01", EndDate: "2025-10-31"},
		},
		Ads: []seedAd{
			{AdID: "META_AD05_A", AdName: "A/B Test Ad - Blue BG", AdSetID: "ADSET01", AdType: "image", TestID: "TEST01"},
			{AdID: "META_AD05_B", AdName: "A/B Test Ad - Green BG", AdSetID: "ADSET01", AdType: "image", TestID: "TEST01"},
		},
		Budgets: []seedBudget{
			{CampaignID: "CAMP001", StartDate: "2025-10-01", EndDate: "2025-10-31", TotalBudget: 5000},
		},
		Performance: []seedPerformance{
			{ReportDate: "2025-10-02", AdID: "META_AD05_A", Spend: 120.50, Impressions: 7800, Clicks: 156, Conversions: 12, Revenue: 640},
		},
	}
}

func TestSeedFixtureYAML(t *testing.T) {
	doc := `
campaigns:
  - campaign_id: CAMP001
    campaign_name: Sofa Launch Q4
    platform: Meta
    funnel_stage: TOF
ads:
  - ad_id: META_AD05_A
    ad_name: A/B Test Ad - Blue BG
    ad_set_id: ADSET01
    test_id: TEST01
performance:
  - report_date: "2025-10-02"
    ad_id: META_AD05_A
    spend: 120.50
    impressions: 7800
    clicks: 156
`
	var fixture seedFile
	require.NoError(t, yaml.Unmarshal([]byte(doc), &fixture))

	require.Len(t, fixture.Campaigns, 1)
	assert.Equal(t, "Sofa Launch Q4", fixture.Campaigns[0].CampaignName)
	require.Len(t, fixture.Ads, 1)
	assert.Equal(t, "TEST01", fixture.Ads[0].TestID)
	require.Len(t, fixture.Performance, 1)
	assert.Equal(t, uint64(7800), fixture.Performance[0].Impressions)
	assert.InDelta(t, 120.50, fixture.Performance[0].Spend, 1e-9)
}

func TestApplySeedPopulatesTables(t *testing.T) {
	testDB := test.NewTestDB(t)
	defer func() { _ = testDB.Close() }()

	originalDB := database.DB
	database.DB = testDB.DB
	t.Cleanup(func() {
		database.DB = originalDB
	})

	ctx := context.Background()
	fixture := demoFixture()

	require.NoError(t, applySeed(fixture))

	var campaigns, ads, budgets, rows int
	require.NoError(t, testDB.QueryRow(ctx, "SELECT COUNT(*) FROM campaigns").Scan(&campaigns))
	require.NoError(t, testDB.QueryRow(ctx, "SELECT COUNT(*) FROM ads").Scan(&ads))
	require.NoError(t, testDB.QueryRow(ctx, "SELECT COUNT(*) FROM campaign_budgets").Scan(&budgets))
	require.NoError(t, testDB.QueryRow(ctx, "SELECT COUNT(*) FROM daily_performance").Scan(&rows))

	assert.Equal(t, 1, campaigns)
	assert.Equal(t, 2, ads)
	assert.Equal(t, 1, budgets)
	assert.Equal(t, 1, rows)

	// Seeding again must not duplicate hierarchy rows
	fixture2 := demoFixture()
	fixture2.Budgets = nil
	fixture2.Sales = nil
	require.NoError(t, applySeed(fixture2))

	require.NoError(t, testDB.QueryRow(ctx, "SELECT COUNT(*) FROM campaigns").Scan(&campaigns))
	assert.Equal(t, 1, campaigns)

	// The rollup view picks up the seeded delivery after a refresh
	require.NoError(t, testDB.Exec(ctx, "REFRESH MATERIALIZED VIEW campaign_daily_rollup"))

	var spend float64
	require.NoError(t, testDB.QueryRow(ctx,
		"SELECT spend FROM campaign_daily_rollup WHERE campaign_id = 'CAMP001' AND report_date = '2025-10-02'",
	).Scan(&spend))
	assert.InDelta(t, 120.50, spend, 1e-9)
}

func TestPasswordFunctionsRoundTrip(t *testing.T) {
	testDB := test.NewTestDB(t)
	defer func() { _ = testDB.Close() }()

	ctx := context.Background()

	var hash string
	require.NoError(t, testDB.QueryRow(ctx, "SELECT hash_password('s3cret-pass')").Scan(&hash))
	assert.NotEqual(t, "s3cret-pass", hash)

	var ok bool
	require.NoError(t, testDB.QueryRow(ctx, "SELECT verify_password('s3cret-pass', $1)", hash).Scan(&ok))
	assert.True(t, ok)

	require.NoError(t, testDB.QueryRow(ctx, "SELECT verify_password('wrong', $1)", hash).Scan(&ok))
	assert.False(t, ok)
}
