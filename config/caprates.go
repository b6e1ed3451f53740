package config

import "capsight/internal/models"

// defaultCapRateGrid holds the published base cap rates by archetype
// and submarket tier. Values are decimal rates; land trades on a
// residual basis and carries the lowest band.
var defaultCapRateGrid = map[string]map[string]float64{
	models.ArchetypeSFR: {
		models.TierPrime:        0.035,
		models.TierCore:         0.040,
		models.TierStable:       0.0425,
		models.TierTransitional: 0.045,
		models.TierDistressed:   0.050,
	},
	models.ArchetypeSmallMulti: {
		models.TierPrime:        0.0375,
		models.TierCore:         0.0425,
		models.TierStable:       0.045,
		models.TierTransitional: 0.0475,
		models.TierDistressed:   0.0525,
	},
	models.ArchetypeLargeMulti: {
		models.TierPrime:        0.040,
		models.TierCore:         0.045,
		models.TierStable:       0.0475,
		models.TierTransitional: 0.050,
		models.TierDistressed:   0.055,
	},
	models.ArchetypeMixedUse: {
		models.TierPrime:        0.0425,
		models.TierCore:         0.0475,
		models.TierStable:       0.050,
		models.TierTransitional: 0.0525,
		models.TierDistressed:   0.0575,
	},
	models.ArchetypeRetail: {
		models.TierPrime:        0.045,
		models.TierCore:         0.050,
		models.TierStable:       0.0525,
		models.TierTransitional: 0.055,
		models.TierDistressed:   0.060,
	},
	models.ArchetypeOffice: {
		models.TierPrime:        0.050,
		models.TierCore:         0.055,
		models.TierStable:       0.060,
		models.TierTransitional: 0.065,
		models.TierDistressed:   0.070,
	},
	models.ArchetypeIndustrial: {
		models.TierPrime:        0.040,
		models.TierCore:         0.045,
		models.TierStable:       0.0475,
		models.TierTransitional: 0.050,
		models.TierDistressed:   0.055,
	},
	models.ArchetypeLand: {
		models.TierPrime:        0.020,
		models.TierCore:         0.025,
		models.TierStable:       0.030,
		models.TierTransitional: 0.035,
		models.TierDistressed:   0.040,
	},
}

// CapRateGrid returns a copy of the built-in cap rate grid. Callers may
// freely hand the copy to a selector or merge overrides into it without
// affecting the defaults.
func CapRateGrid() map[string]map[string]float64 {
	grid := make(map[string]map[string]float64, len(defaultCapRateGrid))
	for archetype, row := range defaultCapRateGrid {
		tiers := make(map[string]float64, len(row))
		for tier, rate := range row {
			tiers[tier] = rate
		}
		grid[archetype] = tiers
	}
	return grid
}

// GridArchetypes returns the archetype tags present in the built-in
// grid.
func GridArchetypes() []string {
	names := make([]string, 0, len(defaultCapRateGrid))
	for archetype := range defaultCapRateGrid {
		names = append(names, archetype)
	}
	return names
}
