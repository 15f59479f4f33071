package contribution

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/domain/payroll"
	"github.com/suweldo/payroll-backend-go/internal/domain/statutory"
)

var two = decimal.NewFromInt(2)

// Calculator computes the mandatory SSS, PhilHealth and Pag-IBIG
// contributions from a monthly salary equivalent. Tables come from the
// active statutory config for the payroll year, falling back to the
// built-in defaults when none is configured.
type Calculator struct {
	repo statutory.StatutoryRepository
}

func NewCalculator(repo statutory.StatutoryRepository) *Calculator {
	return &Calculator{repo: repo}
}

// Calculate returns the full contribution breakdown for one monthly
// salary equivalent.
func (c *Calculator) Calculate(ctx context.Context, monthlySalary decimal.Decimal, year int) (payroll.ContributionBreakdown, error) {
	sssTable, err := c.sssTable(ctx, year)
	if err != nil {
		return payroll.ContributionBreakdown{}, err
	}
	philHealthTable, err := c.philHealthTable(ctx, year)
	if err != nil {
		return payroll.ContributionBreakdown{}, err
	}
	pagIBIGTable, err := c.pagIBIGTable(ctx, year)
	if err != nil {
		return payroll.ContributionBreakdown{}, err
	}

	breakdown := payroll.ContributionBreakdown{
		SSS:        SSS(monthlySalary, sssTable),
		PhilHealth: PhilHealth(monthlySalary, philHealthTable),
		PagIBIG:    PagIBIG(monthlySalary, pagIBIGTable),
	}

	breakdown.TotalEmployee = breakdown.SSS.Employee.
		Add(breakdown.PhilHealth.Employee).
		Add(breakdown.PagIBIG.Employee).Round(2)
	breakdown.TotalEmployer = breakdown.SSS.Employer.
		Add(breakdown.PhilHealth.Employer).
		Add(breakdown.PagIBIG.Employer).Round(2)
	breakdown.GrandTotal = breakdown.TotalEmployee.Add(breakdown.TotalEmployer).Round(2)

	return breakdown, nil
}

// SSS looks the salary up in the bracket table. Salaries above the top
// closed bracket take the open-ended maximum row.
func SSS(monthlySalary decimal.Decimal, table statutory.SSSTable) payroll.ContributionShare {
	for _, b := range table.Brackets {
		if monthlySalary.LessThan(b.Min) {
			continue
		}
		if b.Max != nil && monthlySalary.GreaterThan(*b.Max) {
			continue
		}
		return share(b.EmployeeShare, b.Total.Sub(b.EmployeeShare))
	}
	return share(decimal.Zero, decimal.Zero)
}

// PhilHealth charges the table rate on the capped salary, split equally
// between employee and employer, subject to the minimum total.
func PhilHealth(monthlySalary decimal.Decimal, table statutory.PhilHealthTable) payroll.ContributionShare {
	capped := monthlySalary
	if capped.GreaterThan(table.SalaryCap) {
		capped = table.SalaryCap
	}

	total := capped.Mul(table.Rate)
	if total.LessThan(table.MinContribution) {
		total = table.MinContribution
	}

	half := total.Div(two)
	return share(half, half)
}

// PagIBIG charges each side its own rate against its own cap.
func PagIBIG(monthlySalary decimal.Decimal, table statutory.PagIBIGTable) payroll.ContributionShare {
	employee := monthlySalary.Mul(table.EmployeeRate)
	if employee.GreaterThan(table.EmployeeCap) {
		employee = table.EmployeeCap
	}

	employer := monthlySalary.Mul(table.EmployerRate)
	if employer.GreaterThan(table.EmployerCap) {
		employer = table.EmployerCap
	}

	return share(employee, employer)
}

func share(employee, employer decimal.Decimal) payroll.ContributionShare {
	employee = employee.Round(2)
	employer = employer.Round(2)
	return payroll.ContributionShare{
		Employee: employee,
		Employer: employer,
		Total:    employee.Add(employer).Round(2),
	}
}

func (c *Calculator) sssTable(ctx context.Context, year int) (statutory.SSSTable, error) {
	cfg, err := c.activeConfig(ctx, statutory.BenefitTypeSSS, year)
	if err != nil {
		return statutory.SSSTable{}, err
	}
	if cfg == nil {
		return DefaultSSSTable(), nil
	}

	var table statutory.SSSTable
	if err := json.Unmarshal(cfg.Table, &table); err != nil {
		return statutory.SSSTable{}, fmt.Errorf("failed to decode sss table config %s: %w", cfg.ID, err)
	}
	return table, nil
}

func (c *Calculator) philHealthTable(ctx context.Context, year int) (statutory.PhilHealthTable, error) {
	cfg, err := c.activeConfig(ctx, statutory.BenefitTypePhilHealth, year)
	if err != nil {
		return statutory.PhilHealthTable{}, err
	}
	if cfg == nil {
		return DefaultPhilHealthTable(), nil
	}

	var table statutory.PhilHealthTable
	if err := json.Unmarshal(cfg.Table, &table); err != nil {
		return statutory.PhilHealthTable{}, fmt.Errorf("failed to decode philhealth table config %s: %w", cfg.ID, err)
	}
	return table, nil
}

func (c *Calculator) pagIBIGTable(ctx context.Context, year int) (statutory.PagIBIGTable, error) {
	cfg, err := c.activeConfig(ctx, statutory.BenefitTypePagIBIG, year)
	if err != nil {
		return statutory.PagIBIGTable{}, err
	}
	if cfg == nil {
		return DefaultPagIBIGTable(), nil
	}

	var table statutory.PagIBIGTable
	if err := json.Unmarshal(cfg.Table, &table); err != nil {
		return statutory.PagIBIGTable{}, fmt.Errorf("failed to decode pagibig table config %s: %w", cfg.ID, err)
	}
	return table, nil
}

func (c *Calculator) activeConfig(ctx context.Context, benefitType string, year int) (*statutory.BenefitConfig, error) {
	if c.repo == nil {
		return nil, nil
	}

	cfg, err := c.repo.GetActiveBenefitConfig(ctx, benefitType, year)
	if err != nil {
		if errors.Is(err, statutory.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active %s config: %w", benefitType, err)
	}
	return &cfg, nil
}
