package statutory

import "context"

// StatutoryRepository is the read-mostly store of time-versioned rate
// tables. GetActive* return ErrConfigNotFound when no active row exists
// for the requested year; callers fall back to the hardcoded defaults.
type StatutoryRepository interface {
	CreateBenefitConfig(ctx context.Context, cfg BenefitConfig) (BenefitConfig, error)
	GetActiveBenefitConfig(ctx context.Context, benefitType string, year int) (BenefitConfig, error)
	ListBenefitConfigs(ctx context.Context, benefitType string) ([]BenefitConfig, error)
	SetBenefitConfigActive(ctx context.Context, id string, active bool) error

	CreateTaxConfig(ctx context.Context, cfg TaxConfig) (TaxConfig, error)
	GetActiveTaxConfig(ctx context.Context, taxType string, year int) (TaxConfig, error)
	ListTaxConfigs(ctx context.Context, taxType string) ([]TaxConfig, error)
	SetTaxConfigActive(ctx context.Context, id string, active bool) error
}
