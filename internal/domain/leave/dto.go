package leave

import (
	"time"

	"github.com/suweldo/payroll-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	EmployeeID string  `json:"employee_id"`
	LeaveType  string  `json:"leave_type"`
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	validTypes := []string{
		string(TypeSick), string(TypeVacation), string(TypeEmergency),
		string(TypeMaternity), string(TypePaternity), string(TypeUnpaid),
	}
	if !validator.IsInSlice(r.LeaveType, validTypes) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "is not a valid leave type"})
	}
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

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestFilter struct {
	EmployeeID string
	Status     string
	Page       int
	Limit      int
}

type AssignCreditsRequest struct {
	EmployeeID    string  `json:"employee_id"`
	SickLeave     float64 `json:"sick_leave"`
	VacationLeave float64 `json:"vacation_leave"`
	Reason        *string `json:"reason,omitempty"`
}

func (r *AssignCreditsRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	LeaveType       string     `json:"leave_type"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	DaysCount       int        `json:"days_count"`
	Reason          *string    `json:"reason,omitempty"`
	Status          string     `json:"status"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func ToRequestResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		LeaveType:       string(r.Type),
		StartDate:       r.StartDate.Format("2006-01-02"),
		EndDate:         r.EndDate.Format("2006-01-02"),
		DaysCount:       r.DaysCount,
		Reason:          r.Reason,
		Status:          string(r.Status),
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
	}
}

type BalanceSide struct {
	Balance float64 `json:"balance"`
	Used    float64 `json:"used"`
	Total   float64 `json:"total"`
}

type BalanceResponse struct {
	EmployeeID    string      `json:"employee_id"`
	Year          int         `json:"year"`
	SickLeave     BalanceSide `json:"sick_leave"`
	VacationLeave BalanceSide `json:"vacation_leave"`
}

func ToBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		EmployeeID: b.EmployeeID,
		Year:       b.Year,
		SickLeave: BalanceSide{
			Balance: b.SickBalance,
			Used:    b.SickUsed,
			Total:   b.SickBalance + b.SickUsed,
		},
		VacationLeave: BalanceSide{
			Balance: b.VacationBalance,
			Used:    b.VacationUsed,
			Total:   b.VacationBalance + b.VacationUsed,
		},
	}
}
