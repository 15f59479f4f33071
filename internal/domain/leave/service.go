package leave

import (
	"context"
)

// LeaveService defines business logic for leave requests and balances
type LeaveService interface {
	// RequestLeave files a leave request in pending state
	RequestLeave(ctx context.Context, req CreateLeaveRequest) (RequestResponse, error)

	// GetLeaveRequest retrieves a request by ID
	GetLeaveRequest(ctx context.Context, id string) (RequestResponse, error)

	// ListLeaveRequests retrieves requests with filters and pagination
	ListLeaveRequests(ctx context.Context, filter RequestFilter) ([]RequestResponse, int64, error)

	// ApproveLeave approves a pending request, debiting the balance for
	// balance-gated leave types
	ApproveLeave(ctx context.Context, id string) (RequestResponse, error)

	// RejectLeave rejects a pending request with a reason
	RejectLeave(ctx context.Context, id string, reason string) (RequestResponse, error)

	// CancelLeave cancels a pending request
	CancelLeave(ctx context.Context, id string) (RequestResponse, error)

	// GetBalance retrieves an employee's leave balance
	GetBalance(ctx context.Context, employeeID string) (BalanceResponse, error)

	// InitializeBalance creates the first balance row for an employee,
	// prorating the annual grant by hire date
	InitializeBalance(ctx context.Context, employeeID string, year int) (BalanceResponse, error)

	// AssignCredits adds credits to an existing balance, clamped at the
	// per-type cap
	AssignCredits(ctx context.Context, req AssignCreditsRequest) (BalanceResponse, error)
}
