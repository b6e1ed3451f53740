package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capsight/internal/models"
)

func writeGridFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cap_rates.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCapRateGrid_MergesOverrides(t *testing.T) {
	path := writeGridFile(t, `{
		"sfr": {"stable": 0.048},
		"self_storage": {"stable": 0.055}
	}`)

	grid, err := LoadCapRateGrid(path)
	require.NoError(t, err)

	// Overridden cell
	assert.Equal(t, 0.048, grid[models.ArchetypeSFR][models.TierStable])
	// Untouched cells survive
	assert.Equal(t, 0.035, grid[models.ArchetypeSFR][models.TierPrime])
	assert.Equal(t, 0.0475, grid[models.ArchetypeLargeMulti][models.TierStable])
	// New archetype added
	assert.Equal(t, 0.055, grid["self_storage"][models.TierStable])

	// Defaults untouched
	assert.Equal(t, 0.0425, CapRateGrid()[models.ArchetypeSFR][models.TierStable])
}

func TestLoadCapRateGrid_RejectsNonPositiveRates(t *testing.T) {
	path := writeGridFile(t, `{"sfr": {"stable": 0}}`)

	_, err := LoadCapRateGrid(path)
	assert.Error(t, err)
}

func TestLoadCapRateGrid_MissingFile(t *testing.T) {
	_, err := LoadCapRateGrid(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadCapRateGrid_MalformedJSON(t *testing.T) {
	path := writeGridFile(t, `{"sfr": `)

	_, err := LoadCapRateGrid(path)
	assert.Error(t, err)
}
