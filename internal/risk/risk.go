// Package risk synthesizes hazard, regulatory, underwriting, and
// income signals into a single 0-100 investment risk score, where 100
// means lowest risk.
package risk

import (
	"math"

	"capsight/internal/income"
	"capsight/internal/models"
)

// Risk grades.
const (
	GradeA = "A"
	GradeB = "B"
	GradeC = "C"
	GradeD = "D"
)

var weights = map[string]float64{
	"hazards":           0.15,
	"rent_control":      0.15,
	"jurisdiction":      0.10,
	"underwriting":      0.25,
	"property_age":      0.10,
	"property_type":     0.10,
	"income_volatility": 0.15,
}

// componentOrder fixes the summation order so equal inputs always
// produce bit-identical scores.
var componentOrder = []string{
	"hazards",
	"rent_control",
	"jurisdiction",
	"underwriting",
	"property_age",
	"property_type",
	"income_volatility",
}

// Inputs are the risk-relevant slices of an appraisal run. Nil fields
// score as unknown/neutral rather than failing.
type Inputs struct {
	Hazards        *models.HazardFlags
	Jurisdiction   *models.Jurisdiction
	YearBuilt      *int
	Archetype      string
	DSCR           *float64
	AnnualCashFlow *float64
	Scenarios      *income.Scenarios
}

// Assessment is the weighted risk result with its component breakdown.
type Assessment struct {
	Score          float64            `json:"score"`
	Grade          string             `json:"grade"`
	Components     map[string]float64 `json:"components"`
	Interpretation string             `json:"interpretation"`
}

// Assess combines the weighted component scores into a graded total.
func Assess(in Inputs) Assessment {
	components := map[string]float64{
		"hazards":           scoreHazards(in.Hazards),
		"rent_control":      scoreRentControl(in.Jurisdiction),
		"jurisdiction":      scoreJurisdiction(in.Jurisdiction),
		"underwriting":      scoreUnderwriting(in.DSCR, in.AnnualCashFlow),
		"property_age":      scorePropertyAge(in.YearBuilt),
		"property_type":     scorePropertyType(in.Archetype),
		"income_volatility": scoreIncomeVolatility(in.Scenarios),
	}

	score := 0.0
	for _, k := range componentOrder {
		score += components[k] * weights[k]
	}
	score = math.Round(score*100) / 100

	grade := gradeFor(score)
	return Assessment{
		Score:          score,
		Grade:          grade,
		Components:     components,
		Interpretation: interpret(grade),
	}
}

// scoreHazards penalizes each confirmed hazard flag 20 points; unknown
// flags are neutral.
func scoreHazards(h *models.HazardFlags) float64 {
	if h == nil {
		return 100
	}

	penalty := 0.0
	for _, flag := range []*bool{h.Flood, h.Fire, h.EarthquakeFault} {
		if flag != nil && *flag {
			penalty += 20
		}
	}
	return math.Max(40, 100-penalty)
}

// scoreRentControl reflects the upside drag and regulatory overhead of
// a rent-controlled jurisdiction; unknown status scores as medium risk.
func scoreRentControl(j *models.Jurisdiction) float64 {
	if j == nil || j.IsRentControlled == nil {
		return 70
	}
	if *j.IsRentControlled {
		return 55
	}
	return 85
}

// scoreJurisdiction maps the supplied jurisdiction risk score (higher
// = riskier) onto the component scale (higher = safer).
func scoreJurisdiction(j *models.Jurisdiction) float64 {
	if j == nil || j.RiskScore == nil {
		return 85
	}
	return math.Max(40, math.Min(95, 100-*j.RiskScore))
}

func scoreUnderwriting(dscr, annualCashFlow *float64) float64 {
	d := 1.0
	if dscr != nil {
		d = *dscr
	}
	cashflow := 0.0
	if annualCashFlow != nil {
		cashflow = *annualCashFlow
	}

	score := 80.0
	switch {
	case d < 1.1:
		score -= 25
	case d < 1.20:
		score -= 15
	case d < 1.30:
		score -= 5
	}
	if cashflow < 0 {
		score -= 20
	}
	return math.Max(40, math.Min(95, score))
}

func scorePropertyAge(yearBuilt *int) float64 {
	if yearBuilt == nil || *yearBuilt <= 0 {
		return 75
	}

	switch year := *yearBuilt; {
	case year < 1940:
		return 55
	case year < 1978:
		return 65
	case year < 2000:
		return 75
	default:
		return 85
	}
}

func scorePropertyType(archetype string) float64 {
	switch archetype {
	case models.ArchetypeMixedUse, models.ArchetypeRetail, models.ArchetypeOffice, models.ArchetypeIndustrial:
		return 65
	case models.ArchetypeLargeMulti:
		return 75
	case models.ArchetypeSmallMulti:
		return 80
	case models.ArchetypeSFR:
		return 85
	default:
		return 70
	}
}

// scoreIncomeVolatility compares market and downside NOI; a steep drop
// under the downside scenario marks volatile income.
func scoreIncomeVolatility(s *income.Scenarios) float64 {
	if s == nil || s.Market.NOI == 0 {
		return 70
	}

	dropPct := (s.Market.NOI - s.Downside.NOI) / s.Market.NOI
	switch {
	case dropPct > 0.20:
		return 60
	case dropPct > 0.10:
		return 70
	default:
		return 80
	}
}

func gradeFor(score float64) string {
	switch {
	case score >= 85:
		return GradeA
	case score >= 75:
		return GradeB
	case score >= 65:
		return GradeC
	default:
		return GradeD
	}
}

func interpret(grade string) string {
	switch grade {
	case GradeA:
		return "Low-risk investment with strong fundamentals."
	case GradeB:
		return "Moderate risk; acceptable for most investors."
	case GradeC:
		return "Higher risk; proceed with caution."
	default:
		return "Very high risk; deal likely unsuitable unless value-add upside is strong."
	}
}
