package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		Port string `env:"SERVER_PORT" envDefault:"5250"`
	}

	// Financing defaults applied when a request omits them
	Financing struct {
		InterestRate float64 `env:"FINANCING_INTEREST_RATE" envDefault:"0.0675"`
		AmortYears   int     `env:"FINANCING_AMORT_YEARS" envDefault:"30"`
		MinDSCR      float64 `env:"FINANCING_MIN_DSCR" envDefault:"1.20"`
		MaxLTV       float64 `env:"FINANCING_MAX_LTV" envDefault:"0.75"`
	}

	// Income modeling defaults
	Income struct {
		VacancyRate float64 `env:"INCOME_VACANCY_RATE" envDefault:"0.05"`
		OpexRatio   float64 `env:"INCOME_OPEX_RATIO" envDefault:"0.35"`

		// Rent decline applied in the downside scenario
		DownsideRentDrop float64 `env:"INCOME_DOWNSIDE_RENT_DROP" envDefault:"0.10"`
	}

	// Comparable-sales tunables
	Comps struct {
		MaxDistanceMiles float64 `env:"COMPS_MAX_DISTANCE_MILES" envDefault:"2.0"`
		MinAreaRatio     float64 `env:"COMPS_MIN_AREA_RATIO" envDefault:"0.5"`
		MaxAreaRatio     float64 `env:"COMPS_MAX_AREA_RATIO" envDefault:"1.5"`
		TargetCount      int     `env:"COMPS_TARGET_COUNT" envDefault:"6"`
	}

	// Batch appraisal worker pool
	Batch struct {
		WorkerCount int `env:"BATCH_WORKER_COUNT" envDefault:"4"`
	}

	// Optional JSON file overriding entries of the built-in cap rate grid
	CapRateGridPath string `env:"CAP_RATE_GRID_PATH"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
