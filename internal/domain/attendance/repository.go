package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (Record, error)
	ListByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]Record, error)
	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)
	Update(ctx context.Context, record Record) (Record, error)
	Delete(ctx context.Context, id string) error
}
