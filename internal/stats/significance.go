package stats

import (
	"fmt"
	"math"
)

// CompareProportions runs a pooled two-proportion z-test between a control
// and a variant arm, each given as successes over trials.
//
// The sign convention follows the reports: a positive z-score means the
// variant rate beats the control rate. Swapping the arguments negates the
// z-score and flips the sign of LiftPct, but not its magnitude, since lift
// is always relative to whichever arm is passed as control.
func CompareProportions(controlNum, controlDen, variantNum, variantDen uint64) (SignificanceResult, error) {
	if controlDen == 0 {
		return SignificanceResult{}, fmt.Errorf("%w: control denominator is zero", ErrInvalidInput)
	}
	if variantDen == 0 {
		return SignificanceResult{}, fmt.Errorf("%w: variant denominator is zero", ErrInvalidInput)
	}
	if controlNum > controlDen {
		return SignificanceResult{}, fmt.Errorf("%w: control successes exceed trials", ErrInvalidInput)
	}
	if variantNum > variantDen {
		return SignificanceResult{}, fmt.Errorf("%w: variant successes exceed trials", ErrInvalidInput)
	}

	p1 := float64(controlNum) / float64(controlDen)
	p2 := float64(variantNum) / float64(variantDen)

	pPool := float64(controlNum+variantNum) / float64(controlDen+variantDen)
	se := math.Sqrt(pPool * (1 - pPool) * (1/float64(controlDen) + 1/float64(variantDen)))

	// Both rates zero (or both 100%): the pooled variance collapses and the
	// z statistic would be 0/0. There is no evidence of a difference, so
	// report the degenerate "no signal" result instead of NaN.
	if se == 0 {
		return SignificanceResult{ZScore: 0, PValue: 1, LiftPct: 0, ConfidencePct: 0}, nil
	}

	z := (p2 - p1) / se

	// Equal rates carry no signal. Report an exact p of 1 instead of
	// running z=0 through the CDF approximation, whose coefficients
	// round to 0.999999999 there.
	if z == 0 {
		return SignificanceResult{ZScore: 0, PValue: 1, LiftPct: 0, ConfidencePct: 0}, nil
	}

	pValue := 2 * (1 - normalCDF(math.Abs(z)))

	lift := math.Inf(1)
	switch {
	case p1 > 0:
		lift = (p2 - p1) / p1 * 100
	case p2 == 0:
		lift = 0
	}

	return SignificanceResult{
		ZScore:        z,
		PValue:        pValue,
		LiftPct:       lift,
		ConfidencePct: (1 - pValue) * 100,
	}, nil
}

// Compare validates both observations and z-tests the proportion pair
// selected by metric (CTR or CVR).
func Compare(control, variant VariantObservation, metric Metric) (SignificanceResult, error) {
	if err := control.Validate(); err != nil {
		return SignificanceResult{}, fmt.Errorf("control: %w", err)
	}
	if err := variant.Validate(); err != nil {
		return SignificanceResult{}, fmt.Errorf("variant: %w", err)
	}

	cNum, cDen, err := control.proportionPair(metric)
	if err != nil {
		return SignificanceResult{}, err
	}
	vNum, vDen, err := variant.proportionPair(metric)
	if err != nil {
		return SignificanceResult{}, err
	}

	return CompareProportions(cNum, cDen, vNum, vDen)
}
