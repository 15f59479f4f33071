package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CreateAttendance records one employee-day and derives its status
	CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (RecordResponse, error)

	// GetAttendance retrieves a single record by ID
	GetAttendance(ctx context.Context, id string) (RecordResponse, error)

	// ListAttendance retrieves records with filters and pagination
	ListAttendance(ctx context.Context, filter ListFilter) ([]RecordResponse, int64, error)

	// UpdateAttendance updates a record and re-derives its status
	UpdateAttendance(ctx context.Context, id string, req UpdateAttendanceRequest) (RecordResponse, error)

	// DeleteAttendance removes a record
	DeleteAttendance(ctx context.Context, id string) error

	// ImportAttendance bulk-creates records with partial success
	ImportAttendance(ctx context.Context, reqs []CreateAttendanceRequest) (ImportSummary, error)
}
