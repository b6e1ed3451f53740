// Package income models gross-to-net rental income: GSR, vacancy,
// operating expenses, NOI, plus the underwriting scenario set.
package income

// Assumptions are the ratios applied between gross and net income.
type Assumptions struct {
	VacancyRate float64 `json:"vacancy_rate"`
	OpexRatio   float64 `json:"opex_ratio"`
}

// DefaultAssumptions returns 5% vacancy and a 35% operating expense
// ratio.
func DefaultAssumptions() Assumptions {
	return Assumptions{VacancyRate: 0.05, OpexRatio: 0.35}
}

// Metrics is the income statement for one subject property. The
// primary figures derive from the rent actually in place; NOIStabilized
// is the same calculation at market rent.
type Metrics struct {
	MonthlyRent          float64 `json:"monthly_rent"`
	Units                int     `json:"units"`
	GrossScheduledRent   float64 `json:"gross_scheduled_rent"`
	VacancyLoss          float64 `json:"vacancy_loss"`
	EffectiveGrossIncome float64 `json:"effective_gross_income"`
	OperatingExpenses    float64 `json:"operating_expenses"`
	NOI                  float64 `json:"noi"`
	NOIStabilized        float64 `json:"noi_stabilized"`
}

// Compute builds the income statement. asIsRent drives the primary
// figures; marketRent drives NOIStabilized and falls back to asIsRent
// when zero. Units below one are treated as a single unit.
func Compute(asIsRent, marketRent float64, units int, a Assumptions) Metrics {
	if units < 1 {
		units = 1
	}
	if marketRent <= 0 {
		marketRent = asIsRent
	}

	gsr, vacancy, egi, opex, noi := statement(asIsRent, units, a)
	_, _, _, _, noiStab := statement(marketRent, units, a)

	return Metrics{
		MonthlyRent:          asIsRent,
		Units:                units,
		GrossScheduledRent:   gsr,
		VacancyLoss:          vacancy,
		EffectiveGrossIncome: egi,
		OperatingExpenses:    opex,
		NOI:                  noi,
		NOIStabilized:        noiStab,
	}
}

func statement(monthlyRent float64, units int, a Assumptions) (gsr, vacancy, egi, opex, noi float64) {
	gsr = monthlyRent * float64(units) * 12
	vacancy = gsr * a.VacancyRate
	egi = gsr - vacancy
	opex = egi * a.OpexRatio
	noi = egi - opex
	return
}
