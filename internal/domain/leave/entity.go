package leave

import "time"

// Type enum
type Type string

const (
	TypeSick      Type = "sick"
	TypeVacation  Type = "vacation"
	TypeEmergency Type = "emergency"
	TypeMaternity Type = "maternity"
	TypePaternity Type = "paternity"
	TypeUnpaid    Type = "unpaid"
)

// Balanced reports whether this leave type draws against a tracked
// balance. Emergency, maternity, paternity and unpaid leaves are not
// balance-gated.
func (t Type) Balanced() bool {
	return t == TypeSick || t == TypeVacation
}

// Status enum
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

type Request struct {
	ID         string
	EmployeeID string
	Type       Type
	StartDate  time.Time
	EndDate    time.Time

	// Weekdays in [StartDate, EndDate] excluding holidays. Weekends and
	// holidays never consume balance.
	DaysCount int

	Reason          *string
	Status          Status
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Balance is the one piece of shared mutable state in the engine. The
// Version column backs a compare-and-swap update protecting the
// check-balance -> debit sequence from concurrent approvals.
type Balance struct {
	ID         string
	EmployeeID string
	Year       int

	SickBalance     float64
	VacationBalance float64
	SickUsed        float64
	VacationUsed    float64

	Version   int64
	UpdatedAt time.Time
}
