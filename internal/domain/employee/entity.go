package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryType enum
type SalaryType string

const (
	SalaryTypeHourly  SalaryType = "hourly"
	SalaryTypeDaily   SalaryType = "daily"
	SalaryTypeMonthly SalaryType = "monthly"
)

// Status enum
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Employee is consumed read-only by the payroll engine.
type Employee struct {
	ID         string
	Name       string
	Contact    string
	Role       string
	Department *string
	SalaryType SalaryType
	SalaryRate decimal.Decimal

	// Hourly-equivalent multiplied rates. Nil means the standard
	// multipliers apply: 1.25x (overtime) and 1.10x (nightshift) of the
	// derived hourly rate.
	OvertimeRate   *decimal.Decimal
	NightshiftRate *decimal.Decimal

	// Named fixed amounts per pay period.
	Allowances map[string]decimal.Decimal
	Benefits   map[string]decimal.Decimal
	Taxes      map[string]decimal.Decimal

	Status    Status
	HireDate  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

var (
	eight     = decimal.NewFromInt(8)
	thirty    = decimal.NewFromInt(30)
	twentyTwo = decimal.NewFromInt(22)
)

// HourlyRate normalizes the salary rate to an hourly figure.
// Daily rates assume an 8-hour day, monthly rates a 30-day month.
func (e Employee) HourlyRate() decimal.Decimal {
	switch e.SalaryType {
	case SalaryTypeHourly:
		return e.SalaryRate
	case SalaryTypeDaily:
		return e.SalaryRate.Div(eight)
	case SalaryTypeMonthly:
		return e.SalaryRate.Div(thirty).Div(eight)
	}
	return decimal.Zero
}

// DailyRate is the hourly rate over a standard 8-hour day.
func (e Employee) DailyRate() decimal.Decimal {
	return e.HourlyRate().Mul(eight)
}

// MonthlyEquivalent normalizes the salary to a monthly figure for
// statutory contribution lookups, assuming 22 working days per month.
func (e Employee) MonthlyEquivalent() decimal.Decimal {
	switch e.SalaryType {
	case SalaryTypeMonthly:
		return e.SalaryRate
	case SalaryTypeDaily:
		return e.SalaryRate.Mul(twentyTwo)
	case SalaryTypeHourly:
		return e.SalaryRate.Mul(eight).Mul(twentyTwo)
	}
	return decimal.Zero
}

// EffectiveOvertimeRate is the configured overtime rate or 1.25x the
// hourly rate when unset.
func (e Employee) EffectiveOvertimeRate() decimal.Decimal {
	if e.OvertimeRate != nil && !e.OvertimeRate.IsZero() {
		return *e.OvertimeRate
	}
	return e.HourlyRate().Mul(decimal.NewFromFloat(1.25))
}

// EffectiveNightshiftRate is the configured nightshift rate or 1.10x the
// hourly rate when unset.
func (e Employee) EffectiveNightshiftRate() decimal.Decimal {
	if e.NightshiftRate != nil && !e.NightshiftRate.IsZero() {
		return *e.NightshiftRate
	}
	return e.HourlyRate().Mul(decimal.NewFromFloat(1.10))
}
