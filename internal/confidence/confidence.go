// Package confidence rates how much trust the comparable-sales result
// deserves, based on comp depth, proximity, and price dispersion.
package confidence

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"capsight/internal/salescomp"
)

// Confidence levels. Unknown means the comparable analysis produced
// nothing to rate.
const (
	LevelHigh    = "high"
	LevelMedium  = "medium"
	LevelLow     = "low"
	LevelUnknown = "unknown"
)

// Factors carries the observations behind a confidence score.
type Factors struct {
	CompCount          int      `json:"comp_count"`
	AvgDistanceMiles   *float64 `json:"avg_distance_miles"`
	MedianPricePerArea *float64 `json:"median_price_per_area"`
	LowPricePerArea    *float64 `json:"low_price_per_area"`
	HighPricePerArea   *float64 `json:"high_price_per_area"`
	SpreadPct          *float64 `json:"spread_pct"`
	Reason             string   `json:"reason,omitempty"`
}

// Score is the market-confidence rating for one comparable set.
type Score struct {
	Active  bool     `json:"active"`
	Score   *float64 `json:"score"`
	Level   string   `json:"level"`
	Factors Factors  `json:"factors"`
}

// Rate scores the quality of a comparable set on a 1-5 scale: a base
// from comp count, adjusted for mean comp distance and for the
// price-per-area spread. An empty set rates as inactive/unknown.
func Rate(summary *salescomp.Summary) Score {
	if summary.CompCount() == 0 {
		return Score{
			Level:   LevelUnknown,
			Factors: Factors{Reason: "no usable comparable sales"},
		}
	}

	count := summary.CompCount()
	base := countScore(count)

	factors := Factors{
		CompCount:          count,
		MedianPricePerArea: summary.AreaStats.Median,
		LowPricePerArea:    summary.AreaStats.Low,
		HighPricePerArea:   summary.AreaStats.High,
	}

	distanceAdj := 0.0
	if avg := meanDistance(summary.Comps); avg != nil {
		distanceAdj = distanceAdjustment(*avg)
		rounded := round3(*avg)
		factors.AvgDistanceMiles = &rounded
	}

	spreadAdj := 0.0
	if spread := areaSpread(summary.AreaStats); spread != nil {
		spreadAdj = spreadAdjustment(*spread)
		rounded := round4(*spread)
		factors.SpreadPct = &rounded
	}

	score := math.Max(1, math.Min(5, base+distanceAdj+spreadAdj))

	level := LevelLow
	switch {
	case score >= 4.25:
		level = LevelHigh
	case score >= 2.75:
		level = LevelMedium
	}

	rounded := round2(score)
	return Score{Active: true, Score: &rounded, Level: level, Factors: factors}
}

func countScore(count int) float64 {
	switch {
	case count >= 8:
		return 5.0
	case count >= 5:
		return 4.0
	case count >= 3:
		return 3.0
	case count >= 2:
		return 2.0
	default:
		return 1.0
	}
}

func meanDistance(comps []salescomp.Comparable) *float64 {
	distances := make([]float64, 0, len(comps))
	for _, c := range comps {
		if c.DistanceMiles != nil {
			distances = append(distances, *c.DistanceMiles)
		}
	}
	if len(distances) == 0 {
		return nil
	}
	avg := stat.Mean(distances, nil)
	return &avg
}

func distanceAdjustment(avgMiles float64) float64 {
	switch {
	case avgMiles <= 0.25:
		return 0.5
	case avgMiles <= 0.50:
		return 0.25
	case avgMiles <= 1.0:
		return 0.0
	case avgMiles <= 2.0:
		return -0.25
	default:
		return -0.5
	}
}

// areaSpread returns (high-low)/median of the price-per-area stats,
// or nil when the stats are undefined.
func areaSpread(stats salescomp.Stats) *float64 {
	if stats.Median == nil || stats.Low == nil || stats.High == nil || *stats.Median <= 0 {
		return nil
	}
	spread := (*stats.High - *stats.Low) / *stats.Median
	return &spread
}

func spreadAdjustment(spread float64) float64 {
	switch {
	case spread <= 0.15:
		return 0.5
	case spread <= 0.30:
		return 0.0
	default:
		return -0.5
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
