package stats

import "fmt"

// Variant pairs a display label with its aggregated observation.
type Variant struct {
	Label       string             `json:"label"`
	Observation VariantObservation `json:"observation"`
}

// PickWinner returns the label of the variant with the greatest metric
// value. Ties go to the earliest-listed variant: the comparison is
// strictly-greater on purpose, so a later variant never displaces an
// equal earlier one. With the control conventionally listed first, an
// inconclusive test keeps the control as winner.
func PickWinner(variants []Variant, metric Metric) (string, error) {
	if len(variants) == 0 {
		return "", fmt.Errorf("%w: no variants", ErrInvalidInput)
	}
	if _, err := ParseMetric(string(metric)); err != nil {
		return "", err
	}
	for _, v := range variants {
		if err := v.Observation.Validate(); err != nil {
			return "", fmt.Errorf("variant %q: %w", v.Label, err)
		}
	}

	winner := variants[0]
	best := winner.Observation.MetricValue(metric)
	for _, v := range variants[1:] {
		if value := v.Observation.MetricValue(metric); value > best {
			winner = v
			best = value
		}
	}
	return winner.Label, nil
}
