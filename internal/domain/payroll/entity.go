package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunType enum
type RunType string

const (
	RunTypeWeekly   RunType = "weekly"
	RunTypeBiweekly RunType = "bi-weekly"
	RunTypeMonthly  RunType = "monthly"
)

// RunStatus enum
type RunStatus string

const (
	RunStatusDraft     RunStatus = "draft"
	RunStatusFinalized RunStatus = "finalized"
	RunStatusArchived  RunStatus = "archived"
)

// Run owns zero or more Entries for one pay period.
type Run struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	Type      RunType
	Status    RunStatus
	CreatedAt time.Time
}

// EditRecord is one append-only entry of an Entry's edit history.
type EditRecord struct {
	Timestamp time.Time              `json:"timestamp"`
	EditedBy  string                 `json:"edited_by"`
	Changes   map[string]interface{} `json:"changes"`
}

// Reserved deduction keys written by the engine itself. Custom
// per-employee tax keys are merged after these; a custom key reusing a
// reserved name overwrites it (known collision risk).
var ReservedDeductionKeys = []string{
	"sss", "philhealth", "pagibig",
	"late", "absent", "undertime",
	"withholding_tax",
}

// Entry is one employee's computed payroll for a run.
//
// Invariants: gross = base + overtime + nightshift + holiday premium +
// holiday OT + allowances + benefits; net = gross - sum(deductions),
// each aggregate rounded to 2 decimal places.
type Entry struct {
	ID           string
	PayrollRunID string
	EmployeeID   string
	EmployeeName string

	BasePay            decimal.Decimal
	OvertimePay        decimal.Decimal
	NightshiftPay      decimal.Decimal
	HolidayPay         decimal.Decimal
	HolidayOvertimePay decimal.Decimal

	Allowances map[string]decimal.Decimal
	Bonuses    map[string]decimal.Decimal
	Benefits   map[string]decimal.Decimal
	Deductions map[string]decimal.Decimal

	Gross decimal.Decimal
	Net   decimal.Decimal

	IsFinalized bool
	Version     int
	EditHistory []EditRecord

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContributionShare is one scheme's employee/employer split.
type ContributionShare struct {
	Employee decimal.Decimal `json:"employee"`
	Employer decimal.Decimal `json:"employer"`
	Total    decimal.Decimal `json:"total"`
}

// ContributionBreakdown is the full statutory contribution result for
// one monthly salary equivalent.
type ContributionBreakdown struct {
	SSS           ContributionShare `json:"sss"`
	PhilHealth    ContributionShare `json:"philhealth"`
	PagIBIG       ContributionShare `json:"pagibig"`
	TotalEmployee decimal.Decimal   `json:"total_employee"`
	TotalEmployer decimal.Decimal   `json:"total_employer"`
	GrandTotal    decimal.Decimal   `json:"grand_total"`
}

// Contributions is the immutable per-entry remittance record.
type Contributions struct {
	ID             string
	EmployeeID     string
	PayrollEntryID string

	SSSEmployee        decimal.Decimal
	SSSEmployer        decimal.Decimal
	PhilHealthEmployee decimal.Decimal
	PhilHealthEmployer decimal.Decimal
	PagIBIGEmployee    decimal.Decimal
	PagIBIGEmployer    decimal.Decimal

	TotalEmployee decimal.Decimal

	CalculationDetails map[string]interface{}
	CreatedAt          time.Time
}

// CalculationResult is the output of CalculateForEmployee, before
// persistence.
type CalculationResult struct {
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	PeriodStart  time.Time `json:"period_start"`
	PeriodEnd    time.Time `json:"period_end"`

	WorkDays   int `json:"work_days"`
	AbsentDays int `json:"absent_days"`

	RegularHours    float64 `json:"regular_hours"`
	OvertimeHours   float64 `json:"overtime_hours"`
	NightshiftHours float64 `json:"nightshift_hours"`

	BasePay            decimal.Decimal `json:"base_pay"`
	OvertimePay        decimal.Decimal `json:"overtime_pay"`
	NightshiftPay      decimal.Decimal `json:"nightshift_pay"`
	HolidayPay         decimal.Decimal `json:"holiday_pay"`
	HolidayOvertimePay decimal.Decimal `json:"holiday_overtime_pay"`

	Allowances map[string]decimal.Decimal `json:"allowances,omitempty"`
	Benefits   map[string]decimal.Decimal `json:"benefits,omitempty"`
	Deductions map[string]decimal.Decimal `json:"deductions"`

	Gross decimal.Decimal `json:"gross"`
	Net   decimal.Decimal `json:"net"`

	MonthlySalaryEquivalent decimal.Decimal       `json:"monthly_salary_equivalent"`
	Contributions           ContributionBreakdown `json:"contributions"`
	WithholdingTax          decimal.Decimal       `json:"withholding_tax"`
}
