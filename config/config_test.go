package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5250", cfg.Server.Port)

	assert.Equal(t, 0.0675, cfg.Financing.InterestRate)
	assert.Equal(t, 30, cfg.Financing.AmortYears)
	assert.Equal(t, 1.20, cfg.Financing.MinDSCR)
	assert.Equal(t, 0.75, cfg.Financing.MaxLTV)

	assert.Equal(t, 0.05, cfg.Income.VacancyRate)
	assert.Equal(t, 0.35, cfg.Income.OpexRatio)
	assert.Equal(t, 0.10, cfg.Income.DownsideRentDrop)

	assert.Equal(t, 2.0, cfg.Comps.MaxDistanceMiles)
	assert.Equal(t, 0.5, cfg.Comps.MinAreaRatio)
	assert.Equal(t, 1.5, cfg.Comps.MaxAreaRatio)
	assert.Equal(t, 6, cfg.Comps.TargetCount)

	assert.Equal(t, 4, cfg.Batch.WorkerCount)
	assert.Empty(t, cfg.CapRateGridPath)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FINANCING_MIN_DSCR", "1.35")
	t.Setenv("COMPS_TARGET_COUNT", "8")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 1.35, cfg.Financing.MinDSCR)
	assert.Equal(t, 8, cfg.Comps.TargetCount)
}
