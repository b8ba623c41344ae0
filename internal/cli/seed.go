package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/midas-analytics/midas/internal/database"
)

// seedFile mirrors the YAML fixture layout: the ad account hierarchy plus
// budgets, tests, and optional daily delivery rows.
type seedFile struct {
	Campaigns   []seedCampaign    `yaml:"campaigns"`
	AdSets      []seedAdSet       `yaml:"ad_sets"`
	ABTests     []seedABTest      `yaml:"ab_tests"`
	Ads         []seedAd          `yaml:"ads"`
	Budgets     []seedBudget      `yaml:"budgets"`
	Performance []seedPerformance `yaml:"performance"`
	Sales       []seedSale        `yaml:"sales"`
}

type seedCampaign struct {
	CampaignID   string `yaml:"campaign_id"`
	CampaignName string `yaml:"campaign_name"`
	Platform     string `yaml:"platform"`
	Objective    string `yaml:"objective"`
	FunnelStage  string `yaml:"funnel_stage"`
}

type seedAdSet struct {
	AdSetID    string `yaml:"ad_set_id"`
	AdSetName  string `yaml:"ad_set_name"`
	CampaignID string `yaml:"campaign_id"`
}

type seedABTest struct {
	TestID      string `yaml:"test_id"`
	TestName    string `yaml:"test_name"`
	Description string `yaml:"description"`
	Metric      string `yaml:"metric"`
	StartDate   string `yaml:"start_date"`
	EndDate     string `yaml:"end_date"`
}

type seedAd struct {
	AdID     string `yaml:"ad_id"`
	AdName   string `yaml:"ad_name"`
	AdSetID  string `yaml:"ad_set_id"`
	AdType   string `yaml:"ad_type"`
	Headline string `yaml:"headline"`
	TestID   string `yaml:"test_id"`
}

type seedBudget struct {
	CampaignID  string  `yaml:"campaign_id"`
	StartDate   string  `yaml:"start_date"`
	EndDate     string  `yaml:"end_date"`
	TotalBudget float64 `yaml:"total_budget"`
}

type seedPerformance struct {
	ReportDate  string  `yaml:"report_date"`
	AdID        string  `yaml:"ad_id"`
	Spend       float64 `yaml:"spend"`
	Impressions uint64  `yaml:"impressions"`
	Clicks      uint64  `yaml:"clicks"`
	Conversions uint64  `yaml:"conversions"`
	Revenue     float64 `yaml:"revenue"`
}

type seedSale struct {
	CustomerID string  `yaml:"customer_id"`
	Segment    string  `yaml:"segment"`
	OrderValue float64 `yaml:"order_value"`
	OrderDate  string  `yaml:"order_date"`
}

var seedCmd = &cobra.Command{
	Use:   "seed <fixture.yaml>",
	Short: "Load fixture data from a YAML file",
	Long: `Load campaigns, ad sets, ads, budgets, A/B tests, and performance
rows from a YAML fixture into the database.

Existing rows with the same primary key are left untouched, so seeding is
safe to repeat.

Example:
  midas seed fixtures/demo.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read fixture: %w", err)
		}

		var fixture seedFile
		if err := yaml.Unmarshal(raw, &fixture); err != nil {
			return fmt.Errorf("failed to parse fixture: %w", err)
		}

		if err := database.Connect(); err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer func() { _ = database.Close() }()

		if err := applySeed(&fixture); err != nil {
			return err
		}

		fmt.Printf("✓ Seeded %d campaigns, %d ad sets, %d ads, %d tests, %d budgets, %d performance rows, %d sales\n",
			len(fixture.Campaigns), len(fixture.AdSets), len(fixture.Ads),
			len(fixture.ABTests), len(fixture.Budgets), len(fixture.Performance), len(fixture.Sales))
		return nil
	},
}

// applySeed inserts fixture rows in dependency order inside one transaction.
func applySeed(fixture *seedFile) error {
	tx, err := database.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range fixture.Campaigns {
		_, err := tx.Exec(`
			INSERT INTO campaigns (campaign_id, campaign_name, platform, objective, funnel_stage)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (campaign_id) DO NOTHING`,
			c.CampaignID, c.CampaignName, c.Platform, c.Objective, c.FunnelStage)
		if err != nil {
			return fmt.Errorf("failed to seed campaign %s: %w", c.CampaignID, err)
		}
	}

	for _, s := range fixture.AdSets {
		_, err := tx.Exec(`
			INSERT INTO ad_sets (ad_set_id, ad_set_name, campaign_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (ad_set_id) DO NOTHING`,
			s.AdSetID, s.AdSetName, s.CampaignID)
		if err != nil {
			return fmt.Errorf("failed to seed ad set %s: %w", s.AdSetID, err)
		}
	}

	for _, t := range fixture.ABTests {
		_, err := tx.Exec(`
			INSERT INTO ab_tests (test_id, test_name, description, metric, start_date, end_date)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (test_id) DO NOTHING`,
			t.TestID, t.TestName, t.Description, t.Metric, t.StartDate, t.EndDate)
		if err != nil {
			return fmt.Errorf("failed to seed test %s: %w", t.TestID, err)
		}
	}

	for _, a := range fixture.Ads {
		_, err := tx.Exec(`
			INSERT INTO ads (ad_id, ad_name, ad_set_id, ad_type, headline, test_id)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
			ON CONFLICT (ad_id) DO NOTHING`,
			a.AdID, a.AdName, a.AdSetID, a.AdType, a.Headline, a.TestID)
		if err != nil {
			return fmt.Errorf("failed to seed ad %s: %w", a.AdID, err)
		}
	}

	for _, b := range fixture.Budgets {
		_, err := tx.Exec(`
			INSERT INTO campaign_budgets (campaign_id, start_date, end_date, total_budget)
			VALUES ($1, $2, $3, $4)`,
			b.CampaignID, b.StartDate, b.EndDate, b.TotalBudget)
		if err != nil {
			return fmt.Errorf("failed to seed budget for %s: %w", b.CampaignID, err)
		}
	}

	for _, p := range fixture.Performance {
		_, err := tx.Exec(`
			INSERT INTO daily_performance (report_date, ad_id, spend, impressions, clicks, conversions, revenue)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (report_date, ad_id) DO NOTHING`,
			p.ReportDate, p.AdID, p.Spend, p.Impressions, p.Clicks, p.Conversions, p.Revenue)
		if err != nil {
			return fmt.Errorf("failed to seed performance for %s on %s: %w", p.AdID, p.ReportDate, err)
		}
	}

	for _, s := range fixture.Sales {
		_, err := tx.Exec(`
			INSERT INTO sales (customer_id, segment, order_value, order_date)
			VALUES ($1, $2, $3, $4)`,
			s.CustomerID, s.Segment, s.OrderValue, s.OrderDate)
		if err != nil {
			return fmt.Errorf("failed to seed sale for %s: %w", s.CustomerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

func init() {
	RootCmd.AddCommand(seedCmd)
}
