// Package salescomp filters, scores, and blends comparable sales into
// a subject value estimate with percentile-banded statistics.
package salescomp

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"gonum.org/v1/gonum/stat"

	"capsight/internal/models"
)

const metersPerMile = 1609.344

// Similarity penalty weights. Scores start at 100 and are clamped to
// [0,100] after all penalties.
const (
	bedPenalty       = 5.0
	bathPenalty      = 4.0
	areaRatioPenalty = 30.0
	unitPenalty      = 3.0
	archetypePenalty = 10.0
	milePenalty      = 2.0
	maxPenaltyMiles  = 5.0
)

// Tunables control filtering and trimming. Zero-valued fields fall back
// to the defaults.
type Tunables struct {
	MaxDistanceMiles float64
	MinAreaRatio     float64
	MaxAreaRatio     float64
	TargetCompCount  int
}

// DefaultTunables returns a 2 mile radius, a [0.5, 1.5] area band, and
// a target set of 6 comps.
func DefaultTunables() Tunables {
	return Tunables{
		MaxDistanceMiles: 2.0,
		MinAreaRatio:     0.5,
		MaxAreaRatio:     1.5,
		TargetCompCount:  6,
	}
}

// Comparable is a surviving comp augmented with normalized rates and a
// similarity score. DistanceMiles on the embedded sale is filled in
// when derived from coordinates.
type Comparable struct {
	models.SaleComp
	PricePerArea    *float64 `json:"price_per_area"`
	PricePerUnit    *float64 `json:"price_per_unit"`
	SimilarityScore float64  `json:"similarity_score"`
}

// Stats are the nearest-rank percentile bands over one normalized rate.
type Stats struct {
	Median *float64 `json:"median"`
	Low    *float64 `json:"low"`
	High   *float64 `json:"high"`
}

// ValueEstimates are the subject value figures implied by the comp set.
type ValueEstimates struct {
	ByArea  *float64 `json:"by_area"`
	ByUnit  *float64 `json:"by_unit"`
	Blended *float64 `json:"blended"`
	Low     *float64 `json:"low"`
	High    *float64 `json:"high"`
}

// Summary is the full comparable-sales result. A summary with zero
// comps means no comp survived filtering; downstream consumers treat
// that as "sales comparison inactive", not as an error.
type Summary struct {
	Comps          []Comparable   `json:"normalized_comps"`
	AreaStats      Stats          `json:"price_per_area_stats"`
	UnitStats      Stats          `json:"price_per_unit_stats"`
	ValueEstimates ValueEstimates `json:"value_estimates"`
}

// CompCount returns the number of comps kept after filtering and
// trimming.
func (s *Summary) CompCount() int {
	if s == nil {
		return 0
	}
	return len(s.Comps)
}

// Analyzer runs the filter/normalize/rank/blend sequence with fixed
// tunables. It holds no per-run state.
type Analyzer struct {
	tun Tunables
}

// NewAnalyzer builds an Analyzer, defaulting any zero tunable.
func NewAnalyzer(tun Tunables) *Analyzer {
	def := DefaultTunables()
	if tun.MaxDistanceMiles <= 0 {
		tun.MaxDistanceMiles = def.MaxDistanceMiles
	}
	if tun.MinAreaRatio <= 0 {
		tun.MinAreaRatio = def.MinAreaRatio
	}
	if tun.MaxAreaRatio <= 0 {
		tun.MaxAreaRatio = def.MaxAreaRatio
	}
	if tun.TargetCompCount <= 0 {
		tun.TargetCompCount = def.TargetCompCount
	}
	return &Analyzer{tun: tun}
}

// Analyze runs the full comparable-sales sequence for one subject.
func (a *Analyzer) Analyze(subject models.SubjectProperty, comps []models.SaleComp) Summary {
	kept := a.filter(subject, comps)

	normalized := make([]Comparable, 0, len(kept))
	for _, comp := range kept {
		normalized = append(normalized, normalize(subject, comp))
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].SimilarityScore > normalized[j].SimilarityScore
	})
	if len(normalized) > a.tun.TargetCompCount {
		normalized = normalized[:a.tun.TargetCompCount]
	}

	areaStats := bandStats(collect(normalized, func(c Comparable) *float64 { return c.PricePerArea }))
	unitStats := bandStats(collect(normalized, func(c Comparable) *float64 { return c.PricePerUnit }))

	return Summary{
		Comps:          normalized,
		AreaStats:      areaStats,
		UnitStats:      unitStats,
		ValueEstimates: estimateValues(subject, areaStats, unitStats),
	}
}

// filter drops comps without a usable price or area, comps beyond the
// distance limit, and comps outside the area-ratio band. Unknown
// distances pass the distance filter; the ratio filter applies only
// when the subject area is known. Distances are derived from
// coordinates first when absent.
func (a *Analyzer) filter(subject models.SubjectProperty, comps []models.SaleComp) []models.SaleComp {
	kept := make([]models.SaleComp, 0, len(comps))

	for _, comp := range comps {
		if comp.DistanceMiles == nil {
			comp.DistanceMiles = deriveDistance(subject, comp)
		}

		if comp.Price == nil || *comp.Price <= 0 || comp.Area == nil || *comp.Area <= 0 {
			continue
		}
		if comp.DistanceMiles != nil && *comp.DistanceMiles > a.tun.MaxDistanceMiles {
			continue
		}
		if subject.BuildingArea != nil && *subject.BuildingArea > 0 {
			ratio := *comp.Area / *subject.BuildingArea
			if ratio < a.tun.MinAreaRatio || ratio > a.tun.MaxAreaRatio {
				continue
			}
		}
		kept = append(kept, comp)
	}
	return kept
}

// deriveDistance computes the great-circle distance in miles between
// subject and comp when both carry coordinates.
func deriveDistance(subject models.SubjectProperty, comp models.SaleComp) *float64 {
	if subject.Latitude == nil || subject.Longitude == nil ||
		comp.Latitude == nil || comp.Longitude == nil {
		return nil
	}

	from := orb.Point{*subject.Longitude, *subject.Latitude}
	to := orb.Point{*comp.Longitude, *comp.Latitude}
	miles := geo.Distance(from, to) / metersPerMile
	return &miles
}

// normalize computes per-area and per-unit rates and the similarity
// score for one comp.
func normalize(subject models.SubjectProperty, comp models.SaleComp) Comparable {
	units := 1
	if comp.UnitCount != nil && *comp.UnitCount > 0 {
		units = *comp.UnitCount
	}

	c := Comparable{SaleComp: comp}
	if comp.Price != nil && comp.Area != nil && *comp.Area > 0 {
		ppa := *comp.Price / *comp.Area
		c.PricePerArea = &ppa
	}
	if comp.Price != nil {
		ppu := *comp.Price / float64(units)
		c.PricePerUnit = &ppu
	}
	c.SimilarityScore = similarity(subject, comp, units)
	return c
}

// similarity scores how closely a comp resembles the subject, starting
// at 100 and clamped to [0,100].
func similarity(subject models.SubjectProperty, comp models.SaleComp, compUnits int) float64 {
	score := 100.0

	if subject.Beds != nil && comp.Beds != nil {
		score -= math.Abs(*comp.Beds-*subject.Beds) * bedPenalty
	}
	if subject.Baths != nil && comp.Baths != nil {
		score -= math.Abs(*comp.Baths-*subject.Baths) * bathPenalty
	}
	if subject.BuildingArea != nil && *subject.BuildingArea > 0 && comp.Area != nil && *comp.Area > 0 {
		ratio := *comp.Area / *subject.BuildingArea
		score -= math.Abs(1-ratio) * areaRatioPenalty
	}

	subjectUnits := 1
	if subject.UnitCount != nil && *subject.UnitCount > 0 {
		subjectUnits = *subject.UnitCount
	}
	score -= math.Abs(float64(compUnits-subjectUnits)) * unitPenalty

	subjectTag := models.NormalizeArchetype(subject.ArchetypeTag, subject.UnitCount)
	compTag := models.NormalizeArchetype(comp.ArchetypeTag, comp.UnitCount)
	if subjectTag != "" && compTag != "" && subjectTag != compTag {
		score -= archetypePenalty
	}

	if comp.DistanceMiles != nil {
		score -= math.Min(*comp.DistanceMiles, maxPenaltyMiles) * milePenalty
	}

	return math.Max(0, math.Min(100, score))
}

// bandStats computes the median and the 20th/80th nearest-rank bands
// over the sorted values: lowIdx = floor(0.20*n) clamped at 0, highIdx
// = floor(0.80*n) clamped at n-1.
func bandStats(values []float64) Stats {
	n := len(values)
	if n == 0 {
		return Stats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	med := median(sorted)
	lowIdx := int(math.Floor(float64(n) * 0.20))
	if lowIdx < 0 {
		lowIdx = 0
	}
	highIdx := int(math.Floor(float64(n) * 0.80))
	if highIdx > n-1 {
		highIdx = n - 1
	}

	low := sorted[lowIdx]
	high := sorted[highIdx]
	return Stats{Median: &med, Low: &low, High: &high}
}

// median of a sorted slice; the mean of the two middle values for even
// lengths.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// estimateValues converts the rate bands into subject value figures.
// Low and high take the min/max across the per-area and per-unit
// methods.
func estimateValues(subject models.SubjectProperty, areaStats, unitStats Stats) ValueEstimates {
	var est ValueEstimates

	subjectUnits := 1
	if subject.UnitCount != nil && *subject.UnitCount > 0 {
		subjectUnits = *subject.UnitCount
	}

	byRate := func(rate *float64, scale float64) *float64 {
		if rate == nil || scale <= 0 {
			return nil
		}
		v := *rate * scale
		return &v
	}

	var subjectArea float64
	if subject.BuildingArea != nil {
		subjectArea = *subject.BuildingArea
	}

	est.ByArea = byRate(areaStats.Median, subjectArea)
	est.ByUnit = byRate(unitStats.Median, float64(subjectUnits))

	if blended := meanDefined(est.ByArea, est.ByUnit); blended != nil {
		est.Blended = blended
	}
	est.Low = minDefined(byRate(areaStats.Low, subjectArea), byRate(unitStats.Low, float64(subjectUnits)))
	est.High = maxDefined(byRate(areaStats.High, subjectArea), byRate(unitStats.High, float64(subjectUnits)))

	return est
}

func collect(comps []Comparable, field func(Comparable) *float64) []float64 {
	values := make([]float64, 0, len(comps))
	for _, c := range comps {
		if v := field(c); v != nil {
			values = append(values, *v)
		}
	}
	return values
}

func meanDefined(values ...*float64) *float64 {
	defined := make([]float64, 0, len(values))
	for _, v := range values {
		if v != nil {
			defined = append(defined, *v)
		}
	}
	if len(defined) == 0 {
		return nil
	}
	m := stat.Mean(defined, nil)
	return &m
}

func minDefined(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a <= *b:
		return a
	default:
		return b
	}
}

func maxDefined(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a >= *b:
		return a
	default:
		return b
	}
}
