package statutory

import (
	"context"
)

// StatutoryService defines admin operations over contribution and tax
// rate tables
type StatutoryService interface {
	// CreateBenefitConfig registers a contribution table for a year and
	// marks it active
	CreateBenefitConfig(ctx context.Context, req CreateBenefitConfigRequest) (BenefitConfig, error)

	// ListBenefitConfigs retrieves all configs for a benefit type
	ListBenefitConfigs(ctx context.Context, benefitType string) ([]BenefitConfig, error)

	// SetBenefitConfigActive toggles a config's active flag
	SetBenefitConfigActive(ctx context.Context, id string, active bool) error

	// CreateTaxConfig registers a withholding bracket set for a year
	// and marks it active
	CreateTaxConfig(ctx context.Context, req CreateTaxConfigRequest) (TaxConfig, error)

	// ListTaxConfigs retrieves all configs for a tax type
	ListTaxConfigs(ctx context.Context, taxType string) ([]TaxConfig, error)

	// SetTaxConfigActive toggles a config's active flag
	SetTaxConfigActive(ctx context.Context, id string, active bool) error
}
