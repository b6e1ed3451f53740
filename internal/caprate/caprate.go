// Package caprate selects a capitalization rate from a static grid of
// archetype x submarket-tier base rates, adjusted for jurisdiction risk
// and rent control.
package caprate

import (
	"math"
	"strings"

	"capsight/internal/models"
)

// Result is the selected rate and its composition. Adjustments are
// decimal rate deltas (0.0020 = +20 bps); final_rate = base_rate +
// risk_adjustment_bps + rent_control_adjustment_bps, rounded to four
// decimals.
type Result struct {
	Archetype             string   `json:"archetype"`
	Tier                  string   `json:"tier"`
	RiskScore             *float64 `json:"risk_score"`
	IsRentControlled      bool     `json:"is_rent_controlled"`
	BaseRate              float64  `json:"base_rate"`
	RiskAdjustment        float64  `json:"risk_adjustment_bps"`
	RentControlAdjustment float64  `json:"rent_control_adjustment_bps"`
	FinalRate             float64  `json:"final_rate"`
}

// Selector resolves cap rates against an immutable grid injected at
// construction.
type Selector struct {
	grid map[string]map[string]float64
}

// NewSelector builds a Selector over the given archetype->tier->rate
// grid. The grid is not copied; callers must not mutate it afterwards.
func NewSelector(grid map[string]map[string]float64) *Selector {
	return &Selector{grid: grid}
}

// Select resolves the final cap rate for an archetype and submarket
// tier. Unrecognized archetypes fall back to "5+", unrecognized tiers
// to "stable". A nil risk score contributes no adjustment.
func (s *Selector) Select(archetype, tier string, riskScore *float64, rentControlled bool) Result {
	archetype = strings.ToLower(strings.TrimSpace(archetype))
	tier = strings.ToLower(strings.TrimSpace(tier))

	row, ok := s.grid[archetype]
	if !ok {
		archetype = models.ArchetypeLargeMulti
		row = s.grid[archetype]
	}
	base, ok := row[tier]
	if !ok {
		tier = models.TierStable
		base = row[tier]
	}

	riskAdj := riskAdjustment(riskScore)
	rcAdj := rentControlAdjustment(base, rentControlled)

	return Result{
		Archetype:             archetype,
		Tier:                  tier,
		RiskScore:             riskScore,
		IsRentControlled:      rentControlled,
		BaseRate:              base,
		RiskAdjustment:        riskAdj,
		RentControlAdjustment: rcAdj,
		FinalRate:             round4(base + riskAdj + rcAdj),
	}
}

// riskAdjustment bands a 0-100 risk score into a rate delta. Scores
// outside the range are clamped before banding.
func riskAdjustment(score *float64) float64 {
	if score == nil {
		return 0
	}
	rs := math.Max(0, math.Min(100, *score))

	switch {
	case rs < 20:
		return -0.0010
	case rs < 40:
		return -0.0005
	case rs < 60:
		return 0
	case rs < 80:
		return 0.0020
	default:
		return 0.0075
	}
}

// rentControlAdjustment returns the regulated-asset premium, tiered on
// the base rate.
func rentControlAdjustment(base float64, rentControlled bool) float64 {
	if !rentControlled {
		return 0
	}
	switch {
	case base <= 0.04:
		return 0.0030
	case base <= 0.05:
		return 0.0040
	default:
		return 0.0050
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
