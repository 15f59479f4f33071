package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/pkg/validator"
)

type CreateRunRequest struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`
	Type      string `json:"type"`
}

func (r *CreateRunRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if !validator.IsInSlice(r.Type, []string{string(RunTypeWeekly), string(RunTypeBiweekly), string(RunTypeMonthly)}) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'weekly', 'bi-weekly' or 'monthly'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRunRequest struct {
	Status *string `json:"status,omitempty"`
}

func (r *UpdateRunRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{
		string(RunStatusDraft), string(RunStatusFinalized), string(RunStatusArchived),
	}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'draft', 'finalized' or 'archived'"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      string
}

type EntryFilter struct {
	RunID      string
	EmployeeID string
	Version    int
}

// UpdateEntryRequest carries the manually editable fields. Gross and
// net are always recomputed in full from the resulting totals, never
// patched incrementally.
type UpdateEntryRequest struct {
	BasePay       *decimal.Decimal            `json:"base_pay,omitempty"`
	OvertimePay   *decimal.Decimal            `json:"overtime_pay,omitempty"`
	NightshiftPay *decimal.Decimal            `json:"nightshift_pay,omitempty"`
	Bonuses       map[string]decimal.Decimal  `json:"bonuses,omitempty"`
	Benefits      map[string]decimal.Decimal  `json:"benefits,omitempty"`
	Deductions    map[string]decimal.Decimal  `json:"deductions,omitempty"`
}

func (r *UpdateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BasePay != nil && r.BasePay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_pay", Message: "must be non-negative"})
	}
	if r.OvertimePay != nil && r.OvertimePay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_pay", Message: "must be non-negative"})
	}
	if r.NightshiftPay != nil && r.NightshiftPay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "nightshift_pay", Message: "must be non-negative"})
	}
	for name, amount := range r.Deductions {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "deductions." + name, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GenerateError records a per-employee failure during run generation
// without aborting the remaining employees.
type GenerateError struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

type GenerateResult struct {
	RunID   string          `json:"run_id"`
	Count   int             `json:"count"`
	Entries []EntryResponse `json:"entries"`
	Errors  []GenerateError `json:"errors,omitempty"`
}

type RunResponse struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Type      string `json:"type"`
	Status    string `json:"status"`
}

func ToRunResponse(r Run) RunResponse {
	return RunResponse{
		ID:        r.ID,
		StartDate: r.StartDate.Format("2006-01-02"),
		EndDate:   r.EndDate.Format("2006-01-02"),
		Type:      string(r.Type),
		Status:    string(r.Status),
	}
}

type EntryResponse struct {
	ID           string `json:"id"`
	PayrollRunID string `json:"payroll_run_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`

	BasePay            decimal.Decimal `json:"base_pay"`
	OvertimePay        decimal.Decimal `json:"overtime_pay"`
	NightshiftPay      decimal.Decimal `json:"nightshift_pay"`
	HolidayPay         decimal.Decimal `json:"holiday_pay"`
	HolidayOvertimePay decimal.Decimal `json:"holiday_overtime_pay"`

	Allowances map[string]decimal.Decimal `json:"allowances,omitempty"`
	Bonuses    map[string]decimal.Decimal `json:"bonuses,omitempty"`
	Benefits   map[string]decimal.Decimal `json:"benefits,omitempty"`
	Deductions map[string]decimal.Decimal `json:"deductions"`

	Gross decimal.Decimal `json:"gross"`
	Net   decimal.Decimal `json:"net"`

	IsFinalized bool         `json:"is_finalized"`
	Version     int          `json:"version"`
	EditHistory []EditRecord `json:"edit_history,omitempty"`
}

func ToEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:                 e.ID,
		PayrollRunID:       e.PayrollRunID,
		EmployeeID:         e.EmployeeID,
		EmployeeName:       e.EmployeeName,
		BasePay:            e.BasePay,
		OvertimePay:        e.OvertimePay,
		NightshiftPay:      e.NightshiftPay,
		HolidayPay:         e.HolidayPay,
		HolidayOvertimePay: e.HolidayOvertimePay,
		Allowances:         e.Allowances,
		Bonuses:            e.Bonuses,
		Benefits:           e.Benefits,
		Deductions:         e.Deductions,
		Gross:              e.Gross,
		Net:                e.Net,
		IsFinalized:        e.IsFinalized,
		Version:            e.Version,
		EditHistory:        e.EditHistory,
	}
}

type ContributionsResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	PayrollEntryID string `json:"payroll_entry_id"`

	SSS        ContributionShare `json:"sss"`
	PhilHealth ContributionShare `json:"philhealth"`
	PagIBIG    ContributionShare `json:"pagibig"`

	TotalEmployee      decimal.Decimal        `json:"total_employee"`
	CalculationDetails map[string]interface{} `json:"calculation_details,omitempty"`
}

func ToContributionsResponse(c Contributions) ContributionsResponse {
	return ContributionsResponse{
		ID:             c.ID,
		EmployeeID:     c.EmployeeID,
		PayrollEntryID: c.PayrollEntryID,
		SSS: ContributionShare{
			Employee: c.SSSEmployee,
			Employer: c.SSSEmployer,
			Total:    c.SSSEmployee.Add(c.SSSEmployer),
		},
		PhilHealth: ContributionShare{
			Employee: c.PhilHealthEmployee,
			Employer: c.PhilHealthEmployer,
			Total:    c.PhilHealthEmployee.Add(c.PhilHealthEmployer),
		},
		PagIBIG: ContributionShare{
			Employee: c.PagIBIGEmployee,
			Employer: c.PagIBIGEmployer,
			Total:    c.PagIBIGEmployee.Add(c.PagIBIGEmployer),
		},
		TotalEmployee:      c.TotalEmployee,
		CalculationDetails: c.CalculationDetails,
	}
}
