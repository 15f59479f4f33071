package holiday

import (
	"context"
)

// HolidayService defines business logic for the holiday calendar
type HolidayService interface {
	// CreateHoliday registers a holiday date
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)

	// GetHoliday retrieves a holiday by ID
	GetHoliday(ctx context.Context, id string) (HolidayResponse, error)

	// ListHolidays retrieves the whole calendar
	ListHolidays(ctx context.Context) ([]HolidayResponse, error)

	// DeleteHoliday removes a holiday
	DeleteHoliday(ctx context.Context, id string) error

	// MaterializeRecurring expands recurring holidays into dated rows
	// for the given year, skipping dates already present
	MaterializeRecurring(ctx context.Context, year int) (MaterializeResult, error)
}
