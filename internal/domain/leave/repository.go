package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	CreateRequest(ctx context.Context, req Request) (Request, error)
	GetRequestByID(ctx context.Context, id string) (Request, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]Request, int64, error)
	UpdateRequest(ctx context.Context, req Request) (Request, error)

	// ApprovedLeaveCovering returns the approved leave whose date range
	// contains date, or ErrLeaveRequestNotFound.
	ApprovedLeaveCovering(ctx context.Context, employeeID string, date time.Time) (Request, error)

	CreateBalance(ctx context.Context, b Balance) (Balance, error)
	GetBalanceByEmployee(ctx context.Context, employeeID string) (Balance, error)

	// UpdateBalance persists b only when its Version still matches the
	// stored row, incrementing Version on success. Returns
	// ErrBalanceConflict when the compare-and-swap loses.
	UpdateBalance(ctx context.Context, b Balance) (Balance, error)
}
