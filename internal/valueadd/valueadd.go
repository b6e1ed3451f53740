// Package valueadd underwrites a renovation plan: yield on cost,
// exit value at a stabilized cap rate, equity creation, and a rough
// hold-period IRR. Directional metrics, not a full DCF.
package valueadd

import "math"

// Plan is one value-add underwriting scenario.
type Plan struct {
	PurchasePrice float64 `json:"purchase_price"`
	RehabBudget   float64 `json:"rehab_budget"`
	NOIInitial    float64 `json:"noi_initial"`
	NOIStabilized float64 `json:"noi_stabilized"`
	ExitCapRate   float64 `json:"exit_cap_rate"`
	HoldYears     int     `json:"hold_years"`
}

// Result carries the plan metrics; nil means the metric was not
// computable from the plan (zero price, zero exit cap).
type Result struct {
	Inputs         Plan     `json:"inputs"`
	TotalCost      float64  `json:"total_cost"`
	GoingInCapRate *float64 `json:"going_in_cap_rate"`
	YieldOnCost    *float64 `json:"yield_on_cost"`
	ExitValue      *float64 `json:"exit_value"`
	EquityCreation *float64 `json:"equity_creation"`
	SimpleIRR      *float64 `json:"simple_irr"`
}

// Compute runs the value-add metrics for one plan. Hold periods under
// one year are treated as one year.
func Compute(p Plan) Result {
	if p.HoldYears < 1 {
		p.HoldYears = 1
	}
	totalCost := p.PurchasePrice + p.RehabBudget

	res := Result{Inputs: p, TotalCost: round2(totalCost)}

	if p.PurchasePrice > 0 {
		v := round4(p.NOIInitial / p.PurchasePrice)
		res.GoingInCapRate = &v
	}
	if totalCost > 0 {
		v := round4(p.NOIStabilized / totalCost)
		res.YieldOnCost = &v
	}
	if p.ExitCapRate > 0 {
		exitValue := p.NOIStabilized / p.ExitCapRate
		ev := round2(exitValue)
		res.ExitValue = &ev
		eq := round2(exitValue - totalCost)
		res.EquityCreation = &eq

		if totalCost > 0 {
			irr := round4(simpleIRR(totalCost, p.NOIInitial, p.NOIStabilized, exitValue, p.HoldYears))
			res.SimpleIRR = &irr
		}
	}
	return res
}

// simpleIRR bisects the IRR of an all-cash hold: total cost out at
// time zero, year-1 NOI, stabilized NOI thereafter, exit value added
// in the final year. Search range is -50% to +50%.
func simpleIRR(totalCost, noiInitial, noiStabilized, exitValue float64, holdYears int) float64 {
	flows := make([]float64, holdYears)
	for year := 1; year <= holdYears; year++ {
		cf := noiStabilized
		if year == 1 {
			cf = noiInitial
		}
		if year == holdYears {
			cf += exitValue
		}
		flows[year-1] = cf
	}

	low, high := -0.5, 0.5
	for i := 0; i < 60; i++ {
		mid := (low + high) / 2
		if npv(mid, totalCost, flows) > 0 {
			low = mid
		} else {
			high = mid
		}
	}
	return (low + high) / 2
}

func npv(rate, totalCost float64, flows []float64) float64 {
	v := -totalCost
	for t, cf := range flows {
		v += cf / math.Pow(1+rate, float64(t+1))
	}
	return v
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
