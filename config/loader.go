package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadCapRateGrid returns the built-in grid with entries from the given
// JSON file merged over it. The file maps archetype -> tier -> rate and
// may override existing cells or add new archetypes; it never removes
// defaults. The merged grid is a fresh copy, loaded once at startup and
// treated as immutable afterwards.
func LoadCapRateGrid(path string) (map[string]map[string]float64, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %v", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cap rate grid file: %v", err)
	}

	var overrides map[string]map[string]float64
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse cap rate grid file: %v", err)
	}

	grid := CapRateGrid()
	for archetype, row := range overrides {
		if _, ok := grid[archetype]; !ok {
			grid[archetype] = make(map[string]float64, len(row))
		}
		for tier, rate := range row {
			if rate <= 0 {
				return nil, fmt.Errorf("invalid cap rate %v for %s/%s", rate, archetype, tier)
			}
			grid[archetype][tier] = rate
		}
	}

	return grid, nil
}
