package stats

import (
	"fmt"
	"math"
)

// Default planner parameters, matching the conventional 95% significance
// and 80% power setup the test planner ships with.
const (
	DefaultAlpha = 0.05
	DefaultPower = 0.8
)

// RequiredSampleSize returns the minimum number of subjects needed per
// variant for a two-arm test to detect a relative effect of mde over
// baselineRate at the given significance level and power. Total test
// size is twice the returned value.
func RequiredSampleSize(baselineRate, mde, alpha, power float64) (uint64, error) {
	if baselineRate <= 0 || baselineRate >= 1 {
		return 0, fmt.Errorf("%w: baseline rate %v must be in (0, 1)", ErrInvalidInput, baselineRate)
	}
	if mde <= 0 {
		return 0, fmt.Errorf("%w: minimum detectable effect %v must be positive", ErrInvalidInput, mde)
	}
	if alpha <= 0 || alpha >= 1 {
		return 0, fmt.Errorf("%w: alpha %v must be in (0, 1)", ErrInvalidInput, alpha)
	}
	if power <= 0 || power >= 1 {
		return 0, fmt.Errorf("%w: power %v must be in (0, 1)", ErrInvalidInput, power)
	}

	zAlpha := normalQuantile(1 - alpha/2)
	zBeta := normalQuantile(power)

	p1 := baselineRate
	p2 := baselineRate * (1 + mde)
	if p2 >= 1 {
		return 0, fmt.Errorf("%w: baseline %v with effect %v implies a rate >= 1", ErrInvalidInput, baselineRate, mde)
	}

	n := math.Pow(
		(zAlpha*math.Sqrt(2*p1*(1-p1))+zBeta*math.Sqrt(p1*(1-p1)+p2*(1-p2)))/(p2-p1),
		2,
	)

	return uint64(math.Ceil(n)), nil
}
