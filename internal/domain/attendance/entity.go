package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusPresent   Status = "present"
	StatusLate      Status = "late"
	StatusAbsent    Status = "absent"
	StatusUndertime Status = "undertime"
	StatusHalfDay   Status = "half_day"
	StatusOnLeave   Status = "on_leave"
)

// ShiftType enum
type ShiftType string

const (
	ShiftDay   ShiftType = "day"
	ShiftNight ShiftType = "night"
	ShiftMixed ShiftType = "mixed"
)

// Record is one employee-day. (EmployeeID, Date) is unique; derived
// fields are recomputed whenever the clock times change.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time

	// "HH:MM" clock strings. Nil signals absence unless the status was
	// pre-empted to on_leave by an approved leave.
	TimeIn  *string
	TimeOut *string

	ShiftType       ShiftType
	RegularHours    float64
	OvertimeHours   float64
	NightshiftHours float64

	Status           Status
	LateMinutes      float64
	UndertimeMinutes float64

	LateDeduction      decimal.Decimal
	UndertimeDeduction decimal.Decimal
	AbsentDeduction    decimal.Decimal

	// Set when the record's time strings could not be parsed and the
	// evaluator fell back to zero values. Kept for audit.
	Malformed bool

	IsHoliday bool
	HolidayID *string

	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
