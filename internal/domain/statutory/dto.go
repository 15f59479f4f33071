package statutory

import (
	"encoding/json"

	"github.com/suweldo/payroll-backend-go/internal/pkg/validator"
)

type CreateBenefitConfigRequest struct {
	BenefitType string          `json:"benefit_type"`
	Year        int             `json:"year"`
	Table       json.RawMessage `json:"table"`
	Notes       *string         `json:"notes,omitempty"`
}

func (r *CreateBenefitConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.BenefitType, []string{BenefitTypeSSS, BenefitTypePhilHealth, BenefitTypePagIBIG}) {
		errs = append(errs, validator.ValidationError{Field: "benefit_type", Message: "must be 'sss', 'philhealth' or 'pagibig'"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "is out of range"})
	}
	if len(r.Table) == 0 {
		errs = append(errs, validator.ValidationError{Field: "table", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateTaxConfigRequest struct {
	TaxType  string       `json:"tax_type"`
	Year     int          `json:"year"`
	Brackets []TaxBracket `json:"brackets"`
	Notes    *string      `json:"notes,omitempty"`
}

func (r *CreateTaxConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TaxType != TaxTypeWithholding {
		errs = append(errs, validator.ValidationError{Field: "tax_type", Message: "must be 'withholding_tax'"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "is out of range"})
	}
	if len(r.Brackets) == 0 {
		errs = append(errs, validator.ValidationError{Field: "brackets", Message: "is required"})
	}
	for _, b := range r.Brackets {
		if b.Rate.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "brackets", Message: "rates must be non-negative"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
