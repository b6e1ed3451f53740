// Package loan sizes debt against DSCR and LTV constraints using the
// standard amortizing annuity formula and its closed-form inverse.
package loan

import "math"

// Terms are the lender constraints for one sizing run.
type Terms struct {
	InterestRate float64 `json:"interest_rate"`
	AmortYears   int     `json:"amort_years"`
	MinDSCR      float64 `json:"min_dscr"`
	MaxLTV       float64 `json:"max_ltv"`
}

// Result is the sized loan and its coverage metrics at the final
// amount. Fields are nil when their constraint could not be evaluated;
// monetary figures are rounded to two decimals, ratios to three.
type Result struct {
	Terms             Terms    `json:"inputs"`
	NOI               float64  `json:"noi"`
	PurchasePrice     float64  `json:"purchase_price"`
	LoanByDSCR        *float64 `json:"loan_by_dscr"`
	LoanByLTV         *float64 `json:"loan_by_ltv"`
	FinalLoanAmount   *float64 `json:"final_loan_amount"`
	MonthlyPayment    *float64 `json:"monthly_payment"`
	AnnualDebtService *float64 `json:"annual_debt_service"`
	DSCRAtFinalLoan   *float64 `json:"dscr_at_final_loan"`
	LTVAtFinalLoan    *float64 `json:"ltv_at_final_loan"`
	MeetsMinDSCR      *bool    `json:"meets_min_dscr"`
}

// Payment returns the monthly principal-and-interest payment for a
// loan amount. A non-positive rate degrades to straight-line repayment.
func Payment(loanAmount, annualRate float64, years int) float64 {
	r := annualRate / 12
	n := float64(years * 12)

	if r <= 0 {
		return loanAmount / n
	}

	growth := math.Pow(1+r, n)
	return loanAmount * r * growth / (growth - 1)
}

// LoanForDebtService inverts Payment, solving for the loan amount a
// target annual debt service supports.
func LoanForDebtService(annualDebtService, annualRate float64, years int) float64 {
	monthly := annualDebtService / 12
	r := annualRate / 12
	n := float64(years * 12)

	if r <= 0 {
		return monthly * n
	}

	growth := math.Pow(1+r, n)
	return monthly * (growth - 1) / (r * growth)
}

// Size computes the binding loan amount for the given NOI and price
// under the supplied terms, then re-derives payment and coverage
// metrics at that amount.
func Size(noi, purchasePrice float64, t Terms) Result {
	res := Result{Terms: t, NOI: noi, PurchasePrice: purchasePrice}

	if t.MinDSCR > 0 && noi > 0 {
		maxDebtService := noi / t.MinDSCR
		byDSCR := round2(LoanForDebtService(maxDebtService, t.InterestRate, t.AmortYears))
		res.LoanByDSCR = &byDSCR
	}

	if t.MaxLTV > 0 && purchasePrice > 0 {
		byLTV := round2(purchasePrice * t.MaxLTV)
		res.LoanByLTV = &byLTV
	}

	final := minDefined(res.LoanByDSCR, res.LoanByLTV)
	if final == nil {
		return res
	}

	monthly := Payment(*final, t.InterestRate, t.AmortYears)
	ads := monthly * 12

	loanAmount := round2(*final)
	monthlyRounded := round2(monthly)
	adsRounded := round2(ads)
	res.FinalLoanAmount = &loanAmount
	res.MonthlyPayment = &monthlyRounded
	res.AnnualDebtService = &adsRounded

	if ads > 0 {
		dscr := round3(noi / ads)
		res.DSCRAtFinalLoan = &dscr
		meets := dscr >= t.MinDSCR
		res.MeetsMinDSCR = &meets
	}
	if purchasePrice > 0 {
		ltv := round3(*final / purchasePrice)
		res.LTVAtFinalLoan = &ltv
	}

	return res
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

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
