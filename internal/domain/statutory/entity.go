package statutory

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Benefit types for contribution configs.
const (
	BenefitTypeSSS        = "sss"
	BenefitTypePhilHealth = "philhealth"
	BenefitTypePagIBIG    = "pagibig"
)

// TaxTypeWithholding is the only tax type the engine computes.
const TaxTypeWithholding = "withholding_tax"

// SSSBracket is one row of the SSS contribution schedule. A nil Max
// marks the open-ended top bracket.
type SSSBracket struct {
	Min           decimal.Decimal  `json:"min"`
	Max           *decimal.Decimal `json:"max,omitempty"`
	Total         decimal.Decimal  `json:"total_contribution"`
	EmployeeShare decimal.Decimal  `json:"employee_share"`
}

type SSSTable struct {
	Brackets []SSSBracket `json:"brackets"`
}

type PhilHealthTable struct {
	Rate            decimal.Decimal `json:"rate"`
	SalaryCap       decimal.Decimal `json:"salary_cap"`
	MinContribution decimal.Decimal `json:"min_contribution"`
}

type PagIBIGTable struct {
	EmployeeRate decimal.Decimal `json:"employee_rate"`
	EmployerRate decimal.Decimal `json:"employer_rate"`
	EmployeeCap  decimal.Decimal `json:"employee_cap"`
	EmployerCap  decimal.Decimal `json:"employer_cap"`
}

// TaxBracket is one progressive withholding bracket. A nil Max marks
// the open-ended top bracket.
type TaxBracket struct {
	Min     decimal.Decimal  `json:"min"`
	Max     *decimal.Decimal `json:"max,omitempty"`
	Rate    decimal.Decimal  `json:"rate"`
	BaseTax decimal.Decimal  `json:"base_tax"`
}

// BenefitConfig is a time-versioned contribution table. The Table
// payload is scheme-shaped JSON; the contribution calculator decodes it
// into the matching typed table.
type BenefitConfig struct {
	ID          string          `json:"id"`
	BenefitType string          `json:"benefit_type"`
	Year        int             `json:"year"`
	IsActive    bool            `json:"is_active"`
	Table       json.RawMessage `json:"table"`
	Notes       *string         `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TaxConfig is a time-versioned withholding bracket set.
type TaxConfig struct {
	ID        string       `json:"id"`
	TaxType   string       `json:"tax_type"`
	Year      int          `json:"year"`
	IsActive  bool         `json:"is_active"`
	Brackets  []TaxBracket `json:"brackets"`
	Notes     *string      `json:"notes,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
