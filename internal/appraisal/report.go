package appraisal

import (
	"time"

	"capsight/internal/caprate"
	"capsight/internal/confidence"
	"capsight/internal/income"
	"capsight/internal/loan"
	"capsight/internal/models"
	"capsight/internal/recommend"
	"capsight/internal/rentcomp"
	"capsight/internal/risk"
	"capsight/internal/salescomp"
	"capsight/internal/valueadd"
)

// Stage identifiers used in provenance notes.
const (
	StageRental    = "rental_comps"
	StageIncome    = "income"
	StageFinancing = "financing"
	StageValuation = "valuation"
	StageSales     = "sales_comparison"
	StageValueAdd  = "value_add"
)

// Provenance statuses. not_computed marks a stage that lacked inputs;
// inactive marks a stage that had nothing to work on.
const (
	StatusNotComputed = "not_computed"
	StatusInactive    = "inactive"
)

// StageNote records why a stage left its report section empty, so a
// caller can tell "computed, unfavorable" from "uncomputable".
type StageNote struct {
	Stage  string `json:"stage"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// Valuation is the income-approach value opinion next to the asking
// price.
type Valuation struct {
	PurchasePrice   *float64 `json:"purchase_price"`
	AsIsValue       *float64 `json:"as_is_value"`
	StabilizedValue *float64 `json:"stabilized_value"`
}

// AppraisalReport is the full result of one run. Nil sections were not
// computed; Provenance says why.
type AppraisalReport struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Subject   models.SubjectProperty `json:"subject"`
	Archetype string                 `json:"archetype"`
	Tier      string                 `json:"tier"`

	Rental           *rentcomp.Summary  `json:"rental,omitempty"`
	Income           *income.Metrics    `json:"income"`
	IncomeScenarios  *income.Scenarios  `json:"income_scenarios,omitempty"`
	CapRate          *caprate.Result    `json:"cap_rate"`
	Financing        *loan.Result       `json:"financing"`
	Underwriting     *loan.Underwriting `json:"underwriting"`
	Valuation        Valuation          `json:"valuation"`
	SalesComparison  *salescomp.Summary `json:"sales_comparison"`
	MarketConfidence confidence.Score   `json:"market_confidence"`
	Risk             risk.Assessment    `json:"risk"`
	ValueAdd         *valueadd.Result   `json:"value_add,omitempty"`
	Recommendation   recommend.Result   `json:"recommendation"`

	Provenance []StageNote `json:"provenance"`
}

func (r *AppraisalReport) note(stage, status, reason string) {
	r.Provenance = append(r.Provenance, StageNote{Stage: stage, Status: status, Reason: reason})
}
