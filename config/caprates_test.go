package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capsight/internal/models"
)

var allTiers = []string{
	models.TierPrime,
	models.TierCore,
	models.TierStable,
	models.TierTransitional,
	models.TierDistressed,
}

func TestCapRateGrid_Complete(t *testing.T) {
	grid := CapRateGrid()

	archetypes := []string{
		models.ArchetypeSFR,
		models.ArchetypeSmallMulti,
		models.ArchetypeLargeMulti,
		models.ArchetypeMixedUse,
		models.ArchetypeRetail,
		models.ArchetypeOffice,
		models.ArchetypeIndustrial,
		models.ArchetypeLand,
	}

	assert.Len(t, grid, len(archetypes))
	for _, archetype := range archetypes {
		row, ok := grid[archetype]
		require.True(t, ok, "missing archetype %s", archetype)
		require.Len(t, row, len(allTiers))
		for _, tier := range allTiers {
			rate, ok := row[tier]
			require.True(t, ok, "missing tier %s for %s", tier, archetype)
			assert.Greater(t, rate, 0.0)
			assert.Less(t, rate, 0.10)
		}
	}
}

func TestCapRateGrid_TiersOrdered(t *testing.T) {
	// Weaker submarkets demand higher yields: rates must be
	// non-decreasing from prime to distressed in every row.
	grid := CapRateGrid()

	for archetype, row := range grid {
		prev := 0.0
		for _, tier := range allTiers {
			assert.GreaterOrEqual(t, row[tier], prev, "%s/%s", archetype, tier)
			prev = row[tier]
		}
	}
}

func TestCapRateGrid_ReturnsCopy(t *testing.T) {
	grid := CapRateGrid()
	grid[models.ArchetypeSFR][models.TierStable] = 0.09
	delete(grid, models.ArchetypeLand)

	fresh := CapRateGrid()
	assert.Equal(t, 0.0425, fresh[models.ArchetypeSFR][models.TierStable])
	assert.Contains(t, fresh, models.ArchetypeLand)
}

func TestGridArchetypes(t *testing.T) {
	names := GridArchetypes()
	assert.Len(t, names, 8)
	assert.Contains(t, names, models.ArchetypeLargeMulti)
}
