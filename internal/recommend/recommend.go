// Package recommend folds the valuation signals into a single scored
// BUY / WATCH / PASS call.
package recommend

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"capsight/internal/caprate"
	"capsight/internal/confidence"
	"capsight/internal/loan"
	"capsight/internal/salescomp"
)

// Decisions. InsufficientData flags a run where every component signal
// was absent; it is deliberately distinct from PASS.
const (
	DecisionBuy              = "BUY"
	DecisionWatch            = "WATCH"
	DecisionPass             = "PASS"
	DecisionInsufficientData = "INSUFFICIENT_DATA"
)

const (
	buyThreshold   = 4.2
	watchThreshold = 3.2
)

// Inputs are the upstream stage results feeding the recommendation.
// Nil fields mean the stage did not compute.
type Inputs struct {
	CapRate       *caprate.Result
	Loan          *loan.Result
	PurchasePrice *float64
	CashOnCash    *float64
	Sales         *salescomp.Summary
	Confidence    confidence.Score
}

// SalesSignal scores where the purchase price sits against the
// comp-implied value.
type SalesSignal struct {
	Active        bool     `json:"active"`
	Score         *int     `json:"score"`
	Rating        string   `json:"rating"`
	PctDiff       *float64 `json:"pct_diff"`
	BlendedValue  *float64 `json:"blended_value"`
	PurchasePrice *float64 `json:"purchase_price"`
	Details       string   `json:"details,omitempty"`
}

// Components are the per-signal scores; nil means the signal was
// absent and excluded from the average.
type Components struct {
	SalesComparison SalesSignal `json:"sales_comparison"`
	CapRate         *int        `json:"cap_rate_score"`
	DSCR            *int        `json:"dscr_score"`
	CashOnCash      *int        `json:"cash_on_cash_score"`
}

// Result is the final recommendation with its full score breakdown.
type Result struct {
	Decision             string     `json:"decision"`
	FinalScore           float64    `json:"final_score"`
	BaseScore            float64    `json:"base_score"`
	ConfidenceAdjustment float64    `json:"confidence_adjustment"`
	Components           Components `json:"components"`
}

// Aggregate averages the present component scores, applies the
// market-confidence adjustment, and maps the result onto a decision.
// With no components present it returns an insufficient-data decision
// rather than a misleading PASS.
func Aggregate(in Inputs) Result {
	components := Components{
		SalesComparison: salesSignal(in.Sales, in.PurchasePrice),
		CapRate:         capRateScore(in.CapRate),
		DSCR:            dscrScore(in.Loan),
		CashOnCash:      cashOnCashScore(in.CashOnCash),
	}

	present := make([]float64, 0, 4)
	for _, s := range []*int{components.SalesComparison.Score, components.CapRate, components.DSCR, components.CashOnCash} {
		if s != nil {
			present = append(present, float64(*s))
		}
	}

	if len(present) == 0 {
		return Result{Decision: DecisionInsufficientData, Components: components}
	}

	base := stat.Mean(present, nil)
	adjustment := confidenceAdjustment(in.Confidence.Level)
	final := base + adjustment

	return Result{
		Decision:             decide(final),
		FinalScore:           round3(final),
		BaseScore:            round3(base),
		ConfidenceAdjustment: adjustment,
		Components:           components,
	}
}

func salesSignal(sales *salescomp.Summary, purchasePrice *float64) SalesSignal {
	if sales.CompCount() == 0 {
		return SalesSignal{Rating: "unknown", Details: "no usable comparable sales"}
	}

	blended := sales.ValueEstimates.Blended
	if blended == nil || *blended <= 0 || purchasePrice == nil || *purchasePrice <= 0 {
		return SalesSignal{Rating: "unknown", Details: "missing purchase price or comp-based value estimate"}
	}

	pctDiff := (*blended - *purchasePrice) / *purchasePrice

	var (
		score  int
		rating string
	)
	switch {
	case pctDiff >= 0.20:
		score, rating = 5, "strong_buy"
	case pctDiff >= 0.10:
		score, rating = 4, "buy"
	case pctDiff >= -0.05:
		score, rating = 3, "neutral"
	case pctDiff >= -0.15:
		score, rating = 2, "weak"
	default:
		score, rating = 1, "pass"
	}

	rounded := round4(pctDiff)
	return SalesSignal{
		Active:        true,
		Score:         &score,
		Rating:        rating,
		PctDiff:       &rounded,
		BlendedValue:  blended,
		PurchasePrice: purchasePrice,
	}
}

func capRateScore(cap *caprate.Result) *int {
	if cap == nil {
		return nil
	}

	score := 2
	switch {
	case cap.FinalRate >= 0.06:
		score = 4
	case cap.FinalRate >= 0.05:
		score = 3
	}
	return &score
}

// dscrScore is present only when debt sizing actually resolved a
// minimum-DSCR check; a skipped sizing stage contributes nothing.
func dscrScore(l *loan.Result) *int {
	if l == nil || l.MeetsMinDSCR == nil {
		return nil
	}

	score := 1
	if *l.MeetsMinDSCR {
		score = 4
	}
	return &score
}

func cashOnCashScore(coc *float64) *int {
	if coc == nil {
		return nil
	}

	score := 1
	switch {
	case *coc >= 0.07:
		score = 4
	case *coc >= 0.05:
		score = 3
	case *coc >= 0.03:
		score = 2
	}
	return &score
}

func confidenceAdjustment(level string) float64 {
	switch level {
	case confidence.LevelHigh:
		return 0.10
	case confidence.LevelLow:
		return -0.20
	default:
		return 0.0
	}
}

// decide applies the rating thresholds to the unrounded final score.
func decide(final float64) string {
	switch {
	case final >= buyThreshold:
		return DecisionBuy
	case final >= watchThreshold:
		return DecisionWatch
	default:
		return DecisionPass
	}
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
