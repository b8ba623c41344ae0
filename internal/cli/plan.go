package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/midas-analytics/midas/internal/config"
	"github.com/midas-analytics/midas/internal/stats"
)

var (
	planBaseline float64
	planMDE      float64
	planAlpha    float64
	planPower    float64
	planTraffic  uint64
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan an A/B test sample size",
	Long: `Compute the required sample size for a two-variant test.

Given a baseline conversion rate and the minimum relative lift worth
detecting, plan reports how many subjects each variant needs before the
significance test has the requested statistical power.

Example:
  midas plan --baseline 0.02 --mde 0.20 --traffic 1500`,
	RunE: func(cmd *cobra.Command, args []string) error {
		alpha := planAlpha
		power := planPower
		if !cmd.Flags().Changed("alpha") || !cmd.Flags().Changed("power") {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("alpha") {
				alpha = cfg.DefaultAlpha
			}
			if !cmd.Flags().Changed("power") {
				power = cfg.DefaultPower
			}
		}

		perVariant, err := stats.RequiredSampleSize(planBaseline, planMDE, alpha, power)
		if err != nil {
			return err
		}

		total := perVariant * 2
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Baseline rate:      %.4f\n", planBaseline)
		fmt.Fprintf(out, "Detectable lift:    %.1f%%\n", planMDE*100)
		fmt.Fprintf(out, "Significance level: %.3f\n", alpha)
		fmt.Fprintf(out, "Power:              %.2f\n", power)
		fmt.Fprintf(out, "\nPer variant: %d\n", perVariant)
		fmt.Fprintf(out, "Total:       %d\n", total)

		if planTraffic > 0 {
			days := uint64(math.Ceil(float64(total) / float64(planTraffic)))
			fmt.Fprintf(out, "Duration:    %d days at %d subjects/day\n", days, planTraffic)
		}

		return nil
	},
}

func init() {
	planCmd.Flags().Float64Var(&planBaseline, "baseline", 0, "Baseline conversion rate, e.g. 0.02")
	planCmd.Flags().Float64Var(&planMDE, "mde", 0, "Minimum detectable relative effect, e.g. 0.20 for +20%")
	planCmd.Flags().Float64Var(&planAlpha, "alpha", stats.DefaultAlpha, "Significance level")
	planCmd.Flags().Float64Var(&planPower, "power", stats.DefaultPower, "Statistical power")
	planCmd.Flags().Uint64Var(&planTraffic, "traffic", 0, "Expected subjects per day across both variants")
	_ = planCmd.MarkFlagRequired("baseline")
	_ = planCmd.MarkFlagRequired("mde")

	RootCmd.AddCommand(planCmd)
}
