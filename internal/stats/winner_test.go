package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickWinner_HighestMetricWins(t *testing.T) {
	variants := []Variant{
		{Label: "Control", Observation: VariantObservation{Impressions: 7800, Clicks: 156}},
		{Label: "Variant A", Observation: VariantObservation{Impressions: 7620, Clicks: 189}},
	}

	winner, err := PickWinner(variants, MetricCTR)
	require.NoError(t, err)
	assert.Equal(t, "Variant A", winner)
}

func TestPickWinner_TieGoesToEarliestListed(t *testing.T) {
	// Identical CTR on both arms: the first listed variant must win the
	// tie every time, never the later one.
	variants := []Variant{
		{Label: "Control", Observation: VariantObservation{Impressions: 1000, Clicks: 20}},
		{Label: "Variant A", Observation: VariantObservation{Impressions: 2000, Clicks: 40}},
	}

	for range 10 {
		winner, err := PickWinner(variants, MetricCTR)
		require.NoError(t, err)
		assert.Equal(t, "Control", winner)
	}
}

func TestPickWinner_ROAS(t *testing.T) {
	variants := []Variant{
		{Label: "Control", Observation: VariantObservation{Impressions: 100, Clicks: 10, Conversions: 2, Cost: 980.50, Revenue: 3240}},
		{Label: "Variant A", Observation: VariantObservation{Impressions: 100, Clicks: 10, Conversions: 3, Cost: 975.20, Revenue: 4860}},
	}

	winner, err := PickWinner(variants, MetricROAS)
	require.NoError(t, err)
	assert.Equal(t, "Variant A", winner)
}

func TestPickWinner_SingleVariant(t *testing.T) {
	winner, err := PickWinner([]Variant{
		{Label: "Only", Observation: VariantObservation{Impressions: 10, Clicks: 1}},
	}, MetricCTR)
	require.NoError(t, err)
	assert.Equal(t, "Only", winner)
}

func TestPickWinner_Errors(t *testing.T) {
	_, err := PickWinner(nil, MetricCTR)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = PickWinner([]Variant{
		{Label: "Bad", Observation: VariantObservation{Impressions: 10, Clicks: 20}},
	}, MetricCTR)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = PickWinner([]Variant{
		{Label: "Control", Observation: VariantObservation{Impressions: 10, Clicks: 2}},
	}, Metric("cpm"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
