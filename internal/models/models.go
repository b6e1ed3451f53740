package models

// SubjectProperty is the property under appraisal. It is built once per
// run from upstream listing/assessor data and never mutated; optional
// fields are nil when the source did not provide them.
type SubjectProperty struct {
	Address       string   `json:"address,omitempty"`
	Beds          *float64 `json:"beds"`
	Baths         *float64 `json:"baths"`
	BuildingArea  *float64 `json:"building_area"`
	LotArea       *float64 `json:"lot_area"`
	YearBuilt     *int     `json:"year_built"`
	UnitCount     *int     `json:"unit_count"`
	ArchetypeTag  string   `json:"archetype_tag"`
	PurchasePrice *float64 `json:"purchase_price"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

// SaleComp is a single comparable sale supplied by an upstream data
// source. Price and Area are required for the comp to be usable.
type SaleComp struct {
	Price         *float64 `json:"price"`
	Area          *float64 `json:"area"`
	Beds          *float64 `json:"beds"`
	Baths         *float64 `json:"baths"`
	UnitCount     *int     `json:"unit_count"`
	DistanceMiles *float64 `json:"distance_miles"`
	ArchetypeTag  string   `json:"archetype_tag,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	SaleDate      string   `json:"sale_date,omitempty"`
	Source        string   `json:"source,omitempty"`
}

// RentComp is a single rental comparable used to estimate market rent
// when the caller has no direct estimate.
type RentComp struct {
	Beds   *float64 `json:"beds"`
	Baths  *float64 `json:"baths"`
	Area   *float64 `json:"area"`
	Rent   *float64 `json:"rent"`
	Source string   `json:"source,omitempty"`
}

// Financing carries the caller's loan sizing overrides. Nil fields fall
// back to the configured defaults.
type Financing struct {
	InterestRate *float64 `json:"interest_rate"`
	AmortYears   *int     `json:"amort_years"`
	MinDSCR      *float64 `json:"min_dscr"`
	MaxLTV       *float64 `json:"max_ltv"`
}

// Jurisdiction carries regulatory and submarket context for the subject.
type Jurisdiction struct {
	Name             string   `json:"name,omitempty"`
	IsRentControlled *bool    `json:"is_rent_controlled"`
	SubmarketTier    string   `json:"submarket_tier,omitempty"`
	RiskScore        *float64 `json:"risk_score"`
}

// HazardFlags are per-property hazard overlay results from an external
// GIS lookup. Nil means the overlay was not checked.
type HazardFlags struct {
	Flood           *bool `json:"flood"`
	Fire            *bool `json:"fire"`
	EarthquakeFault *bool `json:"earthquake_fault"`
}

// ValueAddPlan describes a renovation scenario for the optional
// value-add analysis.
type ValueAddPlan struct {
	RehabBudget float64 `json:"rehab_budget"`
	ExitCapRate float64 `json:"exit_cap_rate"`
	HoldYears   int     `json:"hold_years"`
}

// AppraisalInput is the full request for one appraisal run. Subject is
// required; everything else degrades gracefully when absent.
type AppraisalInput struct {
	Subject *SubjectProperty `json:"subject"`

	// Monthly rents, per unit. MarketRent takes precedence over a
	// rent-comp derived estimate; InPlaceRent drives as-is income when
	// set.
	MarketRent  *float64 `json:"market_rent"`
	InPlaceRent *float64 `json:"in_place_rent"`

	// HUD fair market rent, enables the voucher income scenario.
	FairMarketRent *float64 `json:"fair_market_rent"`

	// Income assumption overrides; nil uses configured defaults.
	VacancyRate *float64 `json:"vacancy_rate"`
	OpexRatio   *float64 `json:"opex_ratio"`

	// Estimated closing costs, used for cash-invested in underwriting.
	ClosingCosts *float64 `json:"closing_costs"`

	// Direct cash-on-cash figure; overrides the derived one.
	CashOnCash *float64 `json:"cash_on_cash"`

	RentComps    []RentComp    `json:"rent_comps,omitempty"`
	SalesComps   []SaleComp    `json:"sales_comps,omitempty"`
	Financing    *Financing    `json:"financing,omitempty"`
	Jurisdiction *Jurisdiction `json:"jurisdiction,omitempty"`
	Hazards      *HazardFlags  `json:"hazards,omitempty"`
	ValueAdd     *ValueAddPlan `json:"value_add,omitempty"`
}
