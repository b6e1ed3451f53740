package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capsight/internal/caprate"
	"capsight/internal/confidence"
	"capsight/internal/loan"
	"capsight/internal/salescomp"
)

func fptr(v float64) *float64 { return &v }
func bptr(v bool) *bool       { return &v }

// salesWith builds a non-empty comparable summary with a preset
// blended value estimate.
func salesWith(blended float64) *salescomp.Summary {
	return &salescomp.Summary{
		Comps:          make([]salescomp.Comparable, 3),
		ValueEstimates: salescomp.ValueEstimates{Blended: fptr(blended)},
	}
}

func confAt(level string) confidence.Score {
	return confidence.Score{Active: level != confidence.LevelUnknown, Level: level}
}

func TestAggregateStrongDeal(t *testing.T) {
	meets := bptr(true)
	got := Aggregate(Inputs{
		CapRate:       &caprate.Result{FinalRate: 0.065},
		Loan:          &loan.Result{MeetsMinDSCR: meets},
		PurchasePrice: fptr(300000),
		CashOnCash:    fptr(0.08),
		Sales:         salesWith(360000),
		Confidence:    confAt(confidence.LevelHigh),
	})

	// Components 5, 4, 4, 4 average to 4.25; +0.10 for high confidence.
	assert.Equal(t, DecisionBuy, got.Decision)
	assert.Equal(t, 4.25, got.BaseScore)
	assert.Equal(t, 0.10, got.ConfidenceAdjustment)
	assert.Equal(t, 4.35, got.FinalScore)

	require.NotNil(t, got.Components.SalesComparison.Score)
	assert.Equal(t, 5, *got.Components.SalesComparison.Score)
	assert.Equal(t, "strong_buy", got.Components.SalesComparison.Rating)
	require.NotNil(t, got.Components.SalesComparison.PctDiff)
	assert.Equal(t, 0.2, *got.Components.SalesComparison.PctDiff)
}

func TestAggregateModerateDealWatches(t *testing.T) {
	got := Aggregate(Inputs{
		CapRate:       &caprate.Result{FinalRate: 0.055},
		Loan:          &loan.Result{MeetsMinDSCR: bptr(true)},
		PurchasePrice: fptr(300000),
		CashOnCash:    fptr(0.05),
		Sales:         salesWith(330000),
		Confidence:    confAt(confidence.LevelMedium),
	})

	// Components 4, 3, 4, 3 average to 3.5; medium confidence adds nothing.
	assert.Equal(t, DecisionWatch, got.Decision)
	assert.Equal(t, 3.5, got.FinalScore)
	assert.Equal(t, 0.0, got.ConfidenceAdjustment)
}

func TestAggregateWeakDealPasses(t *testing.T) {
	got := Aggregate(Inputs{
		CapRate:       &caprate.Result{FinalRate: 0.045},
		Loan:          &loan.Result{MeetsMinDSCR: bptr(false)},
		PurchasePrice: fptr(300000),
		CashOnCash:    fptr(0.01),
		Sales:         salesWith(240000),
		Confidence:    confAt(confidence.LevelLow),
	})

	// Components 1, 2, 1, 1 average to 1.25; -0.20 for low confidence.
	assert.Equal(t, DecisionPass, got.Decision)
	assert.Equal(t, 1.25, got.BaseScore)
	assert.Equal(t, 1.05, got.FinalScore)
}

func TestAggregateExcludesAbsentComponents(t *testing.T) {
	got := Aggregate(Inputs{
		CapRate:    &caprate.Result{FinalRate: 0.07},
		Loan:       &loan.Result{}, // sizing skipped, no DSCR verdict
		Confidence: confAt(confidence.LevelUnknown),
	})

	assert.Equal(t, 4.0, got.BaseScore)
	assert.Equal(t, 4.0, got.FinalScore)
	assert.Equal(t, DecisionWatch, got.Decision)

	assert.False(t, got.Components.SalesComparison.Active)
	assert.Nil(t, got.Components.SalesComparison.Score)
	assert.Nil(t, got.Components.DSCR)
	assert.Nil(t, got.Components.CashOnCash)
}

func TestAggregateInsufficientData(t *testing.T) {
	got := Aggregate(Inputs{})

	assert.Equal(t, DecisionInsufficientData, got.Decision)
	assert.Equal(t, 0.0, got.BaseScore)
	assert.Equal(t, 0.0, got.FinalScore)
	assert.Equal(t, "unknown", got.Components.SalesComparison.Rating)
}

func TestConfidenceAdjustments(t *testing.T) {
	tests := []struct {
		level string
		adj   float64
		final float64
	}{
		{confidence.LevelHigh, 0.10, 4.1},
		{confidence.LevelMedium, 0.0, 4.0},
		{confidence.LevelLow, -0.20, 3.8},
		{confidence.LevelUnknown, 0.0, 4.0},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			got := Aggregate(Inputs{
				CapRate:    &caprate.Result{FinalRate: 0.07},
				Confidence: confAt(tt.level),
			})
			assert.Equal(t, tt.adj, got.ConfidenceAdjustment)
			assert.Equal(t, tt.final, got.FinalScore)
		})
	}
}

func TestSalesSignalBands(t *testing.T) {
	tests := []struct {
		blended float64
		score   int
		rating  string
	}{
		{360000, 5, "strong_buy"}, // +20%
		{330000, 4, "buy"},        // +10%
		{300000, 3, "neutral"},
		{285000, 3, "neutral"}, // -5% boundary
		{270000, 2, "weak"},
		{255000, 2, "weak"}, // -15% boundary
		{240000, 1, "pass"},
	}

	for _, tt := range tests {
		t.Run(tt.rating, func(t *testing.T) {
			got := salesSignal(salesWith(tt.blended), fptr(300000))
			require.NotNil(t, got.Score)
			assert.Equal(t, tt.score, *got.Score)
			assert.Equal(t, tt.rating, got.Rating)
		})
	}
}

func TestSalesSignalInactiveCases(t *testing.T) {
	empty := salesSignal(&salescomp.Summary{}, fptr(300000))
	assert.False(t, empty.Active)
	assert.Equal(t, "unknown", empty.Rating)

	noPrice := salesSignal(salesWith(300000), nil)
	assert.False(t, noPrice.Active)
	assert.NotEmpty(t, noPrice.Details)

	noBlended := &salescomp.Summary{Comps: make([]salescomp.Comparable, 2)}
	assert.False(t, salesSignal(noBlended, fptr(300000)).Active)
}

func TestCapRateScoreBands(t *testing.T) {
	tests := []struct {
		rate  float64
		score int
	}{
		{0.060, 4},
		{0.059, 3},
		{0.050, 3},
		{0.049, 2},
	}

	for _, tt := range tests {
		got := capRateScore(&caprate.Result{FinalRate: tt.rate})
		require.NotNil(t, got)
		assert.Equal(t, tt.score, *got, "rate %.3f", tt.rate)
	}

	assert.Nil(t, capRateScore(nil))
}

func TestCashOnCashScoreBands(t *testing.T) {
	tests := []struct {
		coc   float64
		score int
	}{
		{0.070, 4},
		{0.050, 3},
		{0.030, 2},
		{0.029, 1},
	}

	for _, tt := range tests {
		got := cashOnCashScore(&tt.coc)
		require.NotNil(t, got)
		assert.Equal(t, tt.score, *got, "coc %.3f", tt.coc)
	}

	assert.Nil(t, cashOnCashScore(nil))
}

func TestDecideBoundaries(t *testing.T) {
	assert.Equal(t, DecisionBuy, decide(4.2))
	assert.Equal(t, DecisionWatch, decide(4.199999))
	assert.Equal(t, DecisionWatch, decide(3.2))
	assert.Equal(t, DecisionPass, decide(3.199999))
	assert.Equal(t, DecisionPass, decide(0))
}
