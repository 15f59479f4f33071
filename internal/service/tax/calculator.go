package tax

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/domain/statutory"
)

var twelve = decimal.NewFromInt(12)

func closedBracket(min, max, rate, baseTax float64) statutory.TaxBracket {
	maxD := decimal.NewFromFloat(max)
	return statutory.TaxBracket{
		Min:     decimal.NewFromFloat(min),
		Max:     &maxD,
		Rate:    decimal.NewFromFloat(rate),
		BaseTax: decimal.NewFromFloat(baseTax),
	}
}

// DefaultBrackets is the 2024 TRAIN-law annual withholding schedule,
// used when no active tax config exists for the payroll year.
func DefaultBrackets() []statutory.TaxBracket {
	return []statutory.TaxBracket{
		closedBracket(0, 250000, 0.0, 0),
		closedBracket(250001, 400000, 0.15, 0),
		closedBracket(400001, 800000, 0.20, 22500),
		closedBracket(800001, 2000000, 0.25, 102500),
		closedBracket(2000001, 8000000, 0.30, 402500),
		{
			Min:     decimal.NewFromInt(8000001),
			Rate:    decimal.NewFromFloat(0.35),
			BaseTax: decimal.NewFromInt(2202500),
		},
	}
}

// Calculator computes progressive withholding tax. Brackets come from
// the active tax config for the payroll year, falling back to the
// built-in TRAIN-law defaults.
type Calculator struct {
	repo statutory.StatutoryRepository
}

func NewCalculator(repo statutory.StatutoryRepository) *Calculator {
	return &Calculator{repo: repo}
}

// AnnualTax applies the bracket schedule to an annual taxable income:
// base tax of the matched bracket plus the bracket rate on the excess
// over its lower bound. The schedule carries the published whole-peso
// bounds, so a fractional income strictly between one bracket's Max
// and the next bracket's Min matches nothing and is taxed as zero.
func AnnualTax(annualTaxable decimal.Decimal, brackets []statutory.TaxBracket) decimal.Decimal {
	for _, b := range brackets {
		if annualTaxable.LessThan(b.Min) {
			continue
		}
		if b.Max != nil && annualTaxable.GreaterThan(*b.Max) {
			continue
		}
		excess := annualTaxable.Sub(b.Min)
		return b.BaseTax.Add(excess.Mul(b.Rate)).Round(2)
	}
	return decimal.Zero
}

// PeriodTax converts one pay period to an annual equivalent, taxes it,
// and divides the annual tax back down. Mandatory contributions are
// tax-exempt and excluded from the taxable base.
func PeriodTax(periodGross, periodContributions decimal.Decimal, brackets []statutory.TaxBracket) decimal.Decimal {
	annualGross := periodGross.Mul(twelve)
	annualDeductions := periodContributions.Mul(twelve)
	annualTaxable := annualGross.Sub(annualDeductions)

	if annualTaxable.IsNegative() {
		return decimal.Zero
	}

	return AnnualTax(annualTaxable, brackets).Div(twelve).Round(2)
}

// Calculate returns the withholding tax for one pay period using the
// configured brackets for year.
func (c *Calculator) Calculate(ctx context.Context, periodGross, periodContributions decimal.Decimal, year int) (decimal.Decimal, error) {
	brackets, err := c.brackets(ctx, year)
	if err != nil {
		return decimal.Zero, err
	}
	return PeriodTax(periodGross, periodContributions, brackets), nil
}

func (c *Calculator) brackets(ctx context.Context, year int) ([]statutory.TaxBracket, error) {
	if c.repo == nil {
		return DefaultBrackets(), nil
	}

	cfg, err := c.repo.GetActiveTaxConfig(ctx, statutory.TaxTypeWithholding, year)
	if err != nil {
		if errors.Is(err, statutory.ErrConfigNotFound) {
			return DefaultBrackets(), nil
		}
		return nil, fmt.Errorf("failed to get active tax config: %w", err)
	}

	if len(cfg.Brackets) == 0 {
		return DefaultBrackets(), nil
	}
	return cfg.Brackets, nil
}
