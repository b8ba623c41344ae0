// Package stats implements the two-proportion significance engine behind
// the A/B testing reports: z-test comparisons, lift and confidence,
// required sample size planning, and deterministic winner selection.
//
// Every function is pure. Callers aggregate impressions/clicks/conversions
// over their chosen date window and pass the totals in; nothing here reads
// the database or holds state, so calls are safe to run concurrently.
package stats

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned for inputs the engine cannot compute on:
// zero denominators, out-of-range rates, or observations that violate
// the clicks <= impressions / conversions <= clicks invariants.
var ErrInvalidInput = errors.New("invalid input")

// Metric identifies which derived metric a comparison or winner pick uses.
type Metric string

const (
	MetricCTR  Metric = "ctr"  // clicks / impressions
	MetricCVR  Metric = "cvr"  // conversions / clicks
	MetricROAS Metric = "roas" // revenue / cost
)

// ParseMetric normalizes a user-supplied metric name.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricCTR, MetricCVR, MetricROAS:
		return Metric(s), nil
	case "":
		return MetricCTR, nil
	}
	return "", fmt.Errorf("%w: unknown metric %q", ErrInvalidInput, s)
}

// VariantObservation holds the aggregated counts for one test arm.
type VariantObservation struct {
	Impressions uint64  `json:"impressions"`
	Clicks      uint64  `json:"clicks"`
	Conversions uint64  `json:"conversions"`
	Cost        float64 `json:"cost"`
	Revenue     float64 `json:"revenue"`
}

// Validate checks the funnel invariants. Counts are unsigned so negative
// values cannot occur, but cost and revenue can.
func (o VariantObservation) Validate() error {
	if o.Clicks > o.Impressions {
		return fmt.Errorf("%w: clicks (%d) exceed impressions (%d)", ErrInvalidInput, o.Clicks, o.Impressions)
	}
	if o.Conversions > o.Clicks {
		return fmt.Errorf("%w: conversions (%d) exceed clicks (%d)", ErrInvalidInput, o.Conversions, o.Clicks)
	}
	if o.Cost < 0 || o.Revenue < 0 {
		return fmt.Errorf("%w: cost and revenue must be non-negative", ErrInvalidInput)
	}
	return nil
}

// MetricValue returns the observation's value for the given metric.
// A zero denominator yields 0, matching how the reports treat campaigns
// with no delivery.
func (o VariantObservation) MetricValue(m Metric) float64 {
	switch m {
	case MetricCTR:
		if o.Impressions == 0 {
			return 0
		}
		return float64(o.Clicks) / float64(o.Impressions)
	case MetricCVR:
		if o.Clicks == 0 {
			return 0
		}
		return float64(o.Conversions) / float64(o.Clicks)
	case MetricROAS:
		if o.Cost == 0 {
			return 0
		}
		return o.Revenue / o.Cost
	}
	return 0
}

// proportionPair selects the numerator/denominator event pair that defines
// the tested proportion for a metric. ROAS is not a binomial proportion and
// cannot be z-tested.
func (o VariantObservation) proportionPair(m Metric) (num, den uint64, err error) {
	switch m {
	case MetricCTR:
		return o.Clicks, o.Impressions, nil
	case MetricCVR:
		return o.Conversions, o.Clicks, nil
	}
	return 0, 0, fmt.Errorf("%w: metric %q is not a proportion", ErrInvalidInput, m)
}

// SignificanceResult is the outcome of a two-proportion z-test.
//
// LiftPct is the relative change of the variant rate versus control,
// (p2-p1)/p1*100. When the control rate is exactly zero and the variant
// rate is not, LiftPct is +Inf; callers must render that case themselves
// rather than expect a finite number.
type SignificanceResult struct {
	ZScore        float64 `json:"z_score"`
	PValue        float64 `json:"p_value"`
	LiftPct       float64 `json:"lift_pct"`
	ConfidencePct float64 `json:"confidence_pct"`
}

// Significant reports whether the result clears the conventional p < 0.05 bar.
func (r SignificanceResult) Significant() bool {
	return r.PValue < 0.05
}
