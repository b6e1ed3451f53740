package income

import "math"

// Scenario is one rental assumption set and its resulting income.
type Scenario struct {
	Name        string  `json:"scenario"`
	RentPerUnit float64 `json:"rent_per_unit"`
	GSR         float64 `json:"gsr"`
	NOI         float64 `json:"noi"`
}

// Scenarios bundles the underwriting scenario set. Voucher is nil when
// no fair market rent was supplied.
type Scenarios struct {
	Market   Scenario  `json:"market"`
	Downside Scenario  `json:"downside"`
	Voucher  *Scenario `json:"voucher,omitempty"`
}

// BuildScenarios computes market, downside, and optional voucher
// scenarios from the market rent. downsidePct is the rent decline
// applied in the downside case (e.g. 0.10 for a 10% drop).
func BuildScenarios(marketRent float64, units int, fmr *float64, downsidePct float64, a Assumptions) Scenarios {
	downRent := marketRent * (1 - downsidePct)

	s := Scenarios{
		Market:   buildScenario("market", marketRent, units, a),
		Downside: buildScenario("downside", round2(downRent), units, a),
	}
	if fmr != nil {
		v := buildScenario("voucher", *fmr, units, a)
		s.Voucher = &v
	}
	return s
}

func buildScenario(name string, rent float64, units int, a Assumptions) Scenario {
	m := Compute(rent, rent, units, a)
	return Scenario{
		Name:        name,
		RentPerUnit: rent,
		GSR:         m.GrossScheduledRent,
		NOI:         m.NOI,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
