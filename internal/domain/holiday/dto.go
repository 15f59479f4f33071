package holiday

import (
	"github.com/suweldo/payroll-backend-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Name        string  `json:"name"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Type        string  `json:"type"`
	Description *string `json:"description,omitempty"`
	IsRecurring bool    `json:"is_recurring"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if r.Type != string(TypeRegular) && r.Type != string(TypeSpecial) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'regular' or 'special'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Description *string `json:"description,omitempty"`
	IsRecurring bool    `json:"is_recurring"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date.Format("2006-01-02"),
		Type:        string(h.Type),
		Description: h.Description,
		IsRecurring: h.IsRecurring,
	}
}

// MaterializeResult summarizes a recurring-holiday expansion run.
type MaterializeResult struct {
	Year         int `json:"year"`
	CreatedCount int `json:"created_count"`
	SkippedCount int `json:"skipped_count"`
}
