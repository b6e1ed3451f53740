package loan

import "math"

// Underwriting holds the cash-flow metrics at a sized loan.
type Underwriting struct {
	AnnualDebtService float64  `json:"annual_debt_service"`
	AnnualCashFlow    float64  `json:"annual_cash_flow"`
	CashInvested      float64  `json:"cash_invested"`
	DSCR              *float64 `json:"dscr"`
	CashOnCash        *float64 `json:"cash_on_cash"`
}

// Underwrite derives annual cash flow and cash-on-cash return. DSCR is
// nil when there is no debt service; cash-on-cash is nil when cash
// invested is not positive.
func Underwrite(noi, annualDebtService, cashInvested float64) Underwriting {
	u := Underwriting{
		AnnualDebtService: round2(annualDebtService),
		AnnualCashFlow:    round2(noi - annualDebtService),
		CashInvested:      round2(cashInvested),
	}

	if annualDebtService > 0 {
		dscr := round3(noi / annualDebtService)
		u.DSCR = &dscr
	}
	if cashInvested > 0 {
		coc := round4((noi - annualDebtService) / cashInvested)
		u.CashOnCash = &coc
	}
	return u
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
