// Package rentcomp aggregates rental comps from mixed sources into
// rent statistics and a recommended market rent for the subject.
package rentcomp

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"capsight/internal/models"
)

// Recommendation methods, ordered by preference. The rent-per-area
// suffix marks an estimate refined against the subject's area.
const (
	MethodExactBedMatch   = "exact_bed_match"
	MethodPlusMinusOneBed = "plus_minus_one_bed"
	MethodOverallOnly     = "overall_only"
	MethodFallbackOverall = "fallback_overall"

	rentPerAreaSuffix = "_with_rent_per_area_adjustment"
)

// Subject is the unit the rent recommendation targets.
type Subject struct {
	Beds  *float64 `json:"beds"`
	Baths *float64 `json:"baths"`
	Area  *float64 `json:"area"`
}

// Stats summarize one group of comp rents.
type Stats struct {
	Count      int      `json:"count"`
	RentMin    *float64 `json:"rent_min"`
	RentMax    *float64 `json:"rent_max"`
	RentAvg    *float64 `json:"rent_avg"`
	RentMedian *float64 `json:"rent_median"`
}

// OverallStats add the mean rent-per-area across comps that carry both
// rent and area.
type OverallStats struct {
	Stats
	RentPerAreaAvg *float64 `json:"rent_per_area_avg"`
}

// BedroomStats are the rent stats for one bedroom count.
type BedroomStats struct {
	Beds float64 `json:"beds"`
	Stats
}

// Recommendation is the suggested subject rent and how it was derived.
type Recommendation struct {
	Method            string   `json:"method"`
	RentEstimate      *float64 `json:"rent_estimate"`
	BedBasedEstimate  *float64 `json:"bed_based_estimate"`
	AreaBasedEstimate *float64 `json:"area_based_estimate"`
}

// Summary is the aggregate view handed to the income model.
type Summary struct {
	Subject        Subject        `json:"subject"`
	Overall        OverallStats   `json:"overall_stats"`
	ByBedroom      []BedroomStats `json:"by_bedroom"`
	Recommendation Recommendation `json:"recommended_rent"`
	CompCount      int            `json:"comp_count"`
}

// Aggregate computes rent statistics over the comps and recommends a
// subject rent: exact bedroom matches first, then within one bedroom,
// then the overall average, refined by rent-per-area when the subject
// area is known.
func Aggregate(subject Subject, comps []models.RentComp) Summary {
	valid := withRent(comps)

	return Summary{
		Subject:        subject,
		Overall:        overallStats(valid, comps),
		ByBedroom:      bedroomStats(valid),
		Recommendation: recommend(subject, valid, comps),
		CompCount:      len(valid),
	}
}

// withRent keeps comps that carry a rent value.
func withRent(comps []models.RentComp) []models.RentComp {
	kept := make([]models.RentComp, 0, len(comps))
	for _, c := range comps {
		if c.Rent != nil {
			kept = append(kept, c)
		}
	}
	return kept
}

func rents(comps []models.RentComp) []float64 {
	values := make([]float64, 0, len(comps))
	for _, c := range comps {
		if c.Rent != nil {
			values = append(values, *c.Rent)
		}
	}
	return values
}

// rentPerArea collects rent/area ratios across comps with a positive
// rent and area.
func rentPerArea(comps []models.RentComp) []float64 {
	values := make([]float64, 0, len(comps))
	for _, c := range comps {
		if c.Rent != nil && *c.Rent > 0 && c.Area != nil && *c.Area > 0 {
			values = append(values, *c.Rent / *c.Area)
		}
	}
	return values
}

func groupStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	min := sorted[0]
	max := sorted[len(sorted)-1]
	avg := round2(stat.Mean(sorted, nil))
	med := round2(median(sorted))

	return Stats{
		Count:      len(values),
		RentMin:    &min,
		RentMax:    &max,
		RentAvg:    &avg,
		RentMedian: &med,
	}
}

func overallStats(valid, all []models.RentComp) OverallStats {
	overall := OverallStats{Stats: groupStats(rents(valid))}
	if rps := rentPerArea(all); len(rps) > 0 {
		avg := round4(stat.Mean(rps, nil))
		overall.RentPerAreaAvg = &avg
	}
	return overall
}

func bedroomStats(valid []models.RentComp) []BedroomStats {
	grouped := make(map[float64][]float64)
	for _, c := range valid {
		if c.Beds == nil {
			continue
		}
		grouped[*c.Beds] = append(grouped[*c.Beds], *c.Rent)
	}

	beds := make([]float64, 0, len(grouped))
	for b := range grouped {
		beds = append(beds, b)
	}
	sort.Float64s(beds)

	result := make([]BedroomStats, 0, len(beds))
	for _, b := range beds {
		result = append(result, BedroomStats{Beds: b, Stats: groupStats(grouped[b])})
	}
	return result
}

func recommend(subject Subject, valid, all []models.RentComp) Recommendation {
	if subject.Beds == nil {
		return Recommendation{
			Method:       MethodOverallOnly,
			RentEstimate: groupStats(rents(valid)).RentAvg,
		}
	}

	var exact, close []float64
	for _, c := range valid {
		if c.Beds == nil {
			continue
		}
		if *c.Beds == *subject.Beds {
			exact = append(exact, *c.Rent)
		}
		if math.Abs(*c.Beds-*subject.Beds) <= 1 {
			close = append(close, *c.Rent)
		}
	}

	var (
		base   float64
		method string
	)
	switch {
	case len(exact) > 0:
		base = round2(stat.Mean(exact, nil))
		method = MethodExactBedMatch
	case len(close) > 0:
		base = round2(stat.Mean(close, nil))
		method = MethodPlusMinusOneBed
	default:
		return Recommendation{
			Method:       MethodFallbackOverall,
			RentEstimate: groupStats(rents(valid)).RentAvg,
		}
	}

	if subject.Area != nil && *subject.Area > 0 {
		if rps := rentPerArea(all); len(rps) > 0 {
			areaBased := round2(stat.Mean(rps, nil) * *subject.Area)
			combined := round2((base + areaBased) / 2)
			return Recommendation{
				Method:            method + rentPerAreaSuffix,
				RentEstimate:      &combined,
				BedBasedEstimate:  &base,
				AreaBasedEstimate: &areaBased,
			}
		}
	}

	return Recommendation{
		Method:           method,
		RentEstimate:     &base,
		BedBasedEstimate: &base,
	}
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
