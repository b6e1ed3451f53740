package loan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTerms() Terms {
	return Terms{InterestRate: 0.0675, AmortYears: 30, MinDSCR: 1.20, MaxLTV: 0.75}
}

func TestPayment_KnownValue(t *testing.T) {
	// Classic fixture: $100k at 6% over 30 years is $599.55/month.
	assert.InDelta(t, 599.55, Payment(100000, 0.06, 30), 0.01)
}

func TestPayment_ZeroRateStraightLine(t *testing.T) {
	assert.InDelta(t, 1000.0, Payment(360000, 0, 30), 0.0001)
	assert.InDelta(t, 1000.0, Payment(360000, -0.01, 30), 0.0001)
}

func TestLoanForDebtService_RoundTrip(t *testing.T) {
	cases := []struct {
		loan  float64
		rate  float64
		years int
	}{
		{100000, 0.06, 30},
		{1350000, 0.065, 30},
		{275000, 0.0825, 15},
		{5000000, 0.0499, 25},
		{42000, 0.12, 10},
	}

	for _, tc := range cases {
		ads := Payment(tc.loan, tc.rate, tc.years) * 12
		back := LoanForDebtService(ads, tc.rate, tc.years)
		assert.InDelta(t, tc.loan, back, 0.01, "loan=%v rate=%v years=%d", tc.loan, tc.rate, tc.years)
	}
}

func TestLoanForDebtService_ZeroRate(t *testing.T) {
	// 360 straight-line payments of $1000
	assert.InDelta(t, 360000.0, LoanForDebtService(12000, 0, 30), 0.0001)
}

func TestSize_LTVBinding(t *testing.T) {
	// NOI supports ~$1.32M but LTV caps at $1.35M; with this NOI the
	// DSCR constraint binds.
	res := Size(120000, 1800000, Terms{InterestRate: 0.065, AmortYears: 30, MinDSCR: 1.20, MaxLTV: 0.75})

	require.NotNil(t, res.LoanByLTV)
	assert.Equal(t, 1350000.0, *res.LoanByLTV)

	require.NotNil(t, res.LoanByDSCR)
	assert.InDelta(t, 1318437, *res.LoanByDSCR, 2000)

	require.NotNil(t, res.FinalLoanAmount)
	assert.Equal(t, *res.LoanByDSCR, *res.FinalLoanAmount)

	require.NotNil(t, res.DSCRAtFinalLoan)
	assert.InDelta(t, 1.20, *res.DSCRAtFinalLoan, 0.001)

	require.NotNil(t, res.MeetsMinDSCR)
	assert.True(t, *res.MeetsMinDSCR)

	require.NotNil(t, res.LTVAtFinalLoan)
	assert.Less(t, *res.LTVAtFinalLoan, 0.75)
}

func TestSize_BindingConstraintAlternates(t *testing.T) {
	terms := defaultTerms()

	// Strong NOI: LTV binds.
	strong := Size(500000, 1800000, terms)
	require.NotNil(t, strong.FinalLoanAmount)
	assert.Equal(t, *strong.LoanByLTV, *strong.FinalLoanAmount)
	assert.Less(t, *strong.LoanByLTV, *strong.LoanByDSCR)
	require.NotNil(t, strong.MeetsMinDSCR)
	assert.True(t, *strong.MeetsMinDSCR, "LTV-capped loan leaves coverage above the minimum")

	// Weak NOI: DSCR binds.
	weak := Size(60000, 1800000, terms)
	require.NotNil(t, weak.FinalLoanAmount)
	assert.Equal(t, *weak.LoanByDSCR, *weak.FinalLoanAmount)
	assert.Less(t, *weak.LoanByDSCR, *weak.LoanByLTV)
}

func TestSize_UndefinedConstraints(t *testing.T) {
	terms := defaultTerms()

	// No usable DSCR bound
	noDSCR := Size(0, 1800000, terms)
	assert.Nil(t, noDSCR.LoanByDSCR)
	require.NotNil(t, noDSCR.FinalLoanAmount)
	assert.Equal(t, *noDSCR.LoanByLTV, *noDSCR.FinalLoanAmount)

	// No usable LTV bound
	noLTV := Size(120000, 0, terms)
	assert.Nil(t, noLTV.LoanByLTV)
	require.NotNil(t, noLTV.FinalLoanAmount)
	assert.Equal(t, *noLTV.LoanByDSCR, *noLTV.FinalLoanAmount)
	assert.Nil(t, noLTV.LTVAtFinalLoan)

	// Neither constraint evaluable
	neither := Size(0, 0, terms)
	assert.Nil(t, neither.LoanByDSCR)
	assert.Nil(t, neither.LoanByLTV)
	assert.Nil(t, neither.FinalLoanAmount)
	assert.Nil(t, neither.MonthlyPayment)
	assert.Nil(t, neither.MeetsMinDSCR)

	// Disabled constraints behave like missing inputs
	disabled := Size(120000, 1800000, Terms{InterestRate: 0.065, AmortYears: 30})
	assert.Nil(t, disabled.LoanByDSCR)
	assert.Nil(t, disabled.LoanByLTV)
	assert.Nil(t, disabled.FinalLoanAmount)
}

func TestSize_AnnualDebtServiceInvariant(t *testing.T) {
	res := Size(95000, 1200000, defaultTerms())

	require.NotNil(t, res.MonthlyPayment)
	require.NotNil(t, res.AnnualDebtService)
	assert.InDelta(t, *res.MonthlyPayment*12, *res.AnnualDebtService, 0.07)
}
