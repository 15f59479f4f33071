package attendance

import (
	"time"

	"github.com/suweldo/payroll-backend-go/internal/pkg/validator"
)

type CreateAttendanceRequest struct {
	EmployeeID      string  `json:"employee_id"`
	Date            string  `json:"date"` // YYYY-MM-DD
	TimeIn          *string `json:"time_in,omitempty"`
	TimeOut         *string `json:"time_out,omitempty"`
	ShiftType       string  `json:"shift_type"`
	OvertimeHours   float64 `json:"overtime_hours"`
	NightshiftHours float64 `json:"nightshift_hours"`
	Notes           *string `json:"notes,omitempty"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if !validator.IsInSlice(r.ShiftType, []string{string(ShiftDay), string(ShiftNight), string(ShiftMixed)}) {
		errs = append(errs, validator.ValidationError{Field: "shift_type", Message: "must be 'day', 'night' or 'mixed'"})
	}
	if r.OvertimeHours < 0 {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be non-negative"})
	}
	if r.NightshiftHours < 0 {
		errs = append(errs, validator.ValidationError{Field: "nightshift_hours", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAttendanceRequest struct {
	Date            *string `json:"date,omitempty"`
	TimeIn          *string `json:"time_in,omitempty"`
	TimeOut         *string `json:"time_out,omitempty"`
	ShiftType       *string `json:"shift_type,omitempty"`
	OvertimeHours   *float64 `json:"overtime_hours,omitempty"`
	NightshiftHours *float64 `json:"nightshift_hours,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

type ListFilter struct {
	EmployeeID string
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

type ImportError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportSummary is the partial-success result of a bulk import.
type ImportSummary struct {
	ImportedCount int           `json:"imported_count"`
	ErrorCount    int           `json:"error_count"`
	Errors        []ImportError `json:"errors,omitempty"`
}

type RecordResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	Date               string  `json:"date"`
	TimeIn             *string `json:"time_in"`
	TimeOut            *string `json:"time_out"`
	ShiftType          string  `json:"shift_type"`
	RegularHours       float64 `json:"regular_hours"`
	OvertimeHours      float64 `json:"overtime_hours"`
	NightshiftHours    float64 `json:"nightshift_hours"`
	Status             string  `json:"status"`
	LateMinutes        float64 `json:"late_minutes"`
	UndertimeMinutes   float64 `json:"undertime_minutes"`
	LateDeduction      string  `json:"late_deduction"`
	UndertimeDeduction string  `json:"undertime_deduction"`
	AbsentDeduction    string  `json:"absent_deduction"`
	Malformed          bool    `json:"malformed,omitempty"`
	IsHoliday          bool    `json:"is_holiday"`
	HolidayID          *string `json:"holiday_id,omitempty"`
	Notes              *string `json:"notes,omitempty"`
}

func ToResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		Date:               r.Date.Format("2006-01-02"),
		TimeIn:             r.TimeIn,
		TimeOut:            r.TimeOut,
		ShiftType:          string(r.ShiftType),
		RegularHours:       r.RegularHours,
		OvertimeHours:      r.OvertimeHours,
		NightshiftHours:    r.NightshiftHours,
		Status:             string(r.Status),
		LateMinutes:        r.LateMinutes,
		UndertimeMinutes:   r.UndertimeMinutes,
		LateDeduction:      r.LateDeduction.StringFixed(2),
		UndertimeDeduction: r.UndertimeDeduction.StringFixed(2),
		AbsentDeduction:    r.AbsentDeduction.StringFixed(2),
		Malformed:          r.Malformed,
		IsHoliday:          r.IsHoliday,
		HolidayID:          r.HolidayID,
		Notes:              r.Notes,
	}
}
