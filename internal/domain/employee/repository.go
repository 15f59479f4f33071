package employee

import "context"

// EmployeeRepository defines the read-side contract the payroll engine
// consumes. Employee lifecycle management lives outside this service.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
}
