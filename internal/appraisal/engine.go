// Package appraisal sequences the valuation pipeline over one subject
// property: rent aggregation, income modeling, cap rate selection, debt
// sizing, comparable sales, risk, and the final recommendation.
//
// A stage that lacks inputs degrades to a nil report section plus a
// provenance note; only a missing subject property aborts a run. Stages
// hold no cross-run state, so one Engine may serve concurrent runs.
package appraisal

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"capsight/config"
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

// Engine wires the pipeline stages together with their configured
// defaults.
type Engine struct {
	cfg      *config.Config
	selector *caprate.Selector
	analyzer *salescomp.Analyzer
	logger   *logrus.Logger
}

// NewEngine builds an Engine around a cap-rate grid and configured
// defaults. A nil grid uses the built-in one; a nil logger gets a
// default JSON logger.
func NewEngine(cfg *config.Config, grid map[string]map[string]float64, logger *logrus.Logger) *Engine {
	if grid == nil {
		grid = config.CapRateGrid()
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return &Engine{
		cfg:      cfg,
		selector: caprate.NewSelector(grid),
		analyzer: salescomp.NewAnalyzer(salescomp.Tunables{
			MaxDistanceMiles: cfg.Comps.MaxDistanceMiles,
			MinAreaRatio:     cfg.Comps.MinAreaRatio,
			MaxAreaRatio:     cfg.Comps.MaxAreaRatio,
			TargetCompCount:  cfg.Comps.TargetCount,
		}),
		logger: logger,
	}
}

// Run executes the full pipeline for one input and returns a fresh
// report. The input is never mutated.
func (e *Engine) Run(input *models.AppraisalInput) (*AppraisalReport, error) {
	if input == nil || input.Subject == nil {
		return nil, ErrMissingSubject
	}
	subject := *input.Subject

	report := &AppraisalReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Subject:     subject,
		Provenance:  []StageNote{},
	}

	archetype := models.NormalizeArchetype(subject.ArchetypeTag, subject.UnitCount)
	if archetype == "" {
		archetype = models.ArchetypeSFR
	}
	report.Archetype = archetype

	units := 1
	if subject.UnitCount != nil && *subject.UnitCount > 0 {
		units = *subject.UnitCount
	}

	// Rent: a direct market-rent estimate wins; otherwise the rent-comp
	// aggregation supplies one.
	marketRent := 0.0
	if input.MarketRent != nil && *input.MarketRent > 0 {
		marketRent = *input.MarketRent
	}
	if len(input.RentComps) > 0 {
		rental := rentcomp.Aggregate(rentcomp.Subject{
			Beds:  subject.Beds,
			Baths: subject.Baths,
			Area:  subject.BuildingArea,
		}, input.RentComps)
		report.Rental = &rental

		if rental.Recommendation.RentEstimate == nil {
			report.note(StageRental, StatusInactive, "rent comps produced no usable estimate")
		} else if marketRent == 0 {
			marketRent = *rental.Recommendation.RentEstimate
		}
	}

	asIsRent := marketRent
	if input.InPlaceRent != nil && *input.InPlaceRent > 0 {
		asIsRent = *input.InPlaceRent
	}

	assumptions := income.Assumptions{
		VacancyRate: e.cfg.Income.VacancyRate,
		OpexRatio:   e.cfg.Income.OpexRatio,
	}
	if input.VacancyRate != nil {
		assumptions.VacancyRate = *input.VacancyRate
	}
	if input.OpexRatio != nil {
		assumptions.OpexRatio = *input.OpexRatio
	}

	if asIsRent > 0 {
		metrics := income.Compute(asIsRent, marketRent, units, assumptions)
		report.Income = &metrics

		stabilizedRent := marketRent
		if stabilizedRent <= 0 {
			stabilizedRent = asIsRent
		}
		scenarios := income.BuildScenarios(stabilizedRent, units, input.FairMarketRent,
			e.cfg.Income.DownsideRentDrop, assumptions)
		report.IncomeScenarios = &scenarios
	} else {
		report.note(StageIncome, StatusNotComputed, "no rent estimate available")
	}

	// Cap rate selection never fails; unknown tiers fall back inside the
	// selector.
	tier := ""
	var riskScore *float64
	rentControlled := false
	if j := input.Jurisdiction; j != nil {
		tier = models.NormalizeTier(j.SubmarketTier)
		riskScore = j.RiskScore
		if j.IsRentControlled != nil {
			rentControlled = *j.IsRentControlled
		}
	}
	capResult := e.selector.Select(archetype, tier, riskScore, rentControlled)
	report.CapRate = &capResult
	report.Tier = capResult.Tier

	price := 0.0
	if subject.PurchasePrice != nil && *subject.PurchasePrice > 0 {
		price = *subject.PurchasePrice
	}

	// Debt sizing wants a positive NOI; the stabilized figure stands in
	// when in-place income nets out to zero.
	sizingNOI := 0.0
	if report.Income != nil {
		sizingNOI = report.Income.NOI
		if sizingNOI <= 0 {
			sizingNOI = report.Income.NOIStabilized
		}
	}

	var loanResult *loan.Result
	if sizingNOI > 0 && price > 0 {
		sized := loan.Size(sizingNOI, price, e.resolveTerms(input.Financing))
		loanResult = &sized
		report.Financing = &sized

		if sized.AnnualDebtService != nil {
			closing := 0.0
			if input.ClosingCosts != nil && *input.ClosingCosts > 0 {
				closing = *input.ClosingCosts
			}
			finalLoan := 0.0
			if sized.FinalLoanAmount != nil {
				finalLoan = *sized.FinalLoanAmount
			}
			uw := loan.Underwrite(sizingNOI, *sized.AnnualDebtService, price-finalLoan+closing)
			report.Underwriting = &uw
		}
	} else {
		report.note(StageFinancing, StatusNotComputed, "missing NOI or purchase price; debt sizing skipped")
	}

	report.Valuation = Valuation{PurchasePrice: subject.PurchasePrice}
	if report.Income != nil && capResult.FinalRate > 0 {
		if report.Income.NOI > 0 {
			v := round2(report.Income.NOI / capResult.FinalRate)
			report.Valuation.AsIsValue = &v
		}
		if report.Income.NOIStabilized > 0 {
			v := round2(report.Income.NOIStabilized / capResult.FinalRate)
			report.Valuation.StabilizedValue = &v
		}
	} else {
		report.note(StageValuation, StatusNotComputed, "valuation requires income figures")
	}

	var salesSummary *salescomp.Summary
	if len(input.SalesComps) > 0 {
		s := e.analyzer.Analyze(subject, input.SalesComps)
		salesSummary = &s
		report.SalesComparison = salesSummary
		if s.CompCount() == 0 {
			report.note(StageSales, StatusInactive, "no comparable sales survived filtering")
		}
	} else {
		report.note(StageSales, StatusInactive, "no comparable sales provided")
	}

	report.MarketConfidence = confidence.Rate(salesSummary)

	report.Risk = risk.Assess(risk.Inputs{
		Hazards:        input.Hazards,
		Jurisdiction:   input.Jurisdiction,
		YearBuilt:      subject.YearBuilt,
		Archetype:      archetype,
		DSCR:           dscrOf(loanResult),
		AnnualCashFlow: cashFlowOf(report.Underwriting),
		Scenarios:      report.IncomeScenarios,
	})

	if plan := input.ValueAdd; plan != nil {
		if report.Income != nil {
			va := valueadd.Compute(valueadd.Plan{
				PurchasePrice: price,
				RehabBudget:   plan.RehabBudget,
				NOIInitial:    report.Income.NOI,
				NOIStabilized: report.Income.NOIStabilized,
				ExitCapRate:   plan.ExitCapRate,
				HoldYears:     plan.HoldYears,
			})
			report.ValueAdd = &va
		} else {
			report.note(StageValueAdd, StatusNotComputed, "no income figures for value-add analysis")
		}
	}

	// Explicit cash-on-cash wins over the derived one.
	coc := input.CashOnCash
	if coc == nil && report.Underwriting != nil {
		coc = report.Underwriting.CashOnCash
	}

	report.Recommendation = recommend.Aggregate(recommend.Inputs{
		CapRate:       report.CapRate,
		Loan:          loanResult,
		PurchasePrice: subject.PurchasePrice,
		CashOnCash:    coc,
		Sales:         salesSummary,
		Confidence:    report.MarketConfidence,
	})

	e.logger.WithFields(logrus.Fields{
		"run_id":      report.RunID,
		"archetype":   archetype,
		"decision":    report.Recommendation.Decision,
		"final_score": report.Recommendation.FinalScore,
	}).Info("Appraisal run completed")

	return report, nil
}

// resolveTerms overlays the caller's financing overrides onto the
// configured defaults.
func (e *Engine) resolveTerms(f *models.Financing) loan.Terms {
	t := loan.Terms{
		InterestRate: e.cfg.Financing.InterestRate,
		AmortYears:   e.cfg.Financing.AmortYears,
		MinDSCR:      e.cfg.Financing.MinDSCR,
		MaxLTV:       e.cfg.Financing.MaxLTV,
	}
	if f == nil {
		return t
	}
	if f.InterestRate != nil {
		t.InterestRate = *f.InterestRate
	}
	if f.AmortYears != nil && *f.AmortYears > 0 {
		t.AmortYears = *f.AmortYears
	}
	if f.MinDSCR != nil {
		t.MinDSCR = *f.MinDSCR
	}
	if f.MaxLTV != nil {
		t.MaxLTV = *f.MaxLTV
	}
	return t
}

func dscrOf(l *loan.Result) *float64 {
	if l == nil {
		return nil
	}
	return l.DSCRAtFinalLoan
}

func cashFlowOf(u *loan.Underwriting) *float64 {
	if u == nil {
		return nil
	}
	return &u.AnnualCashFlow
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
