package holiday

import "time"

// Type enum
type Type string

const (
	TypeRegular Type = "regular"
	TypeSpecial Type = "special"
)

// Holiday rows are discrete dates. Recurring holidays are materialized
// into new dated rows per year ahead of payroll evaluation; lookups are
// always exact-date.
type Holiday struct {
	ID          string
	Name        string
	Date        time.Time
	Type        Type
	Description *string
	IsRecurring bool
	CreatedAt   time.Time
}
