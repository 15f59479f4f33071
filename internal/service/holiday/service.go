package holiday

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/suweldo/payroll-backend-go/internal/domain/holiday"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
	"github.com/teambition/rrule-go"
)

type HolidayServiceImpl struct {
	db *database.DB
	holiday.HolidayRepository
}

// CreateHoliday implements holiday.HolidayService.
func (h *HolidayServiceImpl) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to parse holiday date: %w", err)
	}

	created, err := h.HolidayRepository.Create(ctx, holiday.Holiday{
		Name:        req.Name,
		Date:        date,
		Type:        holiday.Type(req.Type),
		Description: req.Description,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		if errors.Is(err, holiday.ErrDuplicateHoliday) {
			return holiday.HolidayResponse{}, err
		}
		return holiday.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return holiday.ToResponse(created), nil
}

// GetHoliday implements holiday.HolidayService.
func (h *HolidayServiceImpl) GetHoliday(ctx context.Context, id string) (holiday.HolidayResponse, error) {
	found, err := h.HolidayRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, holiday.ErrHolidayNotFound) {
			return holiday.HolidayResponse{}, err
		}
		return holiday.HolidayResponse{}, fmt.Errorf("failed to get holiday: %w", err)
	}
	return holiday.ToResponse(found), nil
}

// ListHolidays implements holiday.HolidayService.
func (h *HolidayServiceImpl) ListHolidays(ctx context.Context) ([]holiday.HolidayResponse, error) {
	holidays, err := h.HolidayRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, hol := range holidays {
		responses = append(responses, holiday.ToResponse(hol))
	}
	return responses, nil
}

// DeleteHoliday implements holiday.HolidayService.
func (h *HolidayServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	if err := h.HolidayRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, holiday.ErrHolidayNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	return nil
}

// MaterializeRecurring implements holiday.HolidayService. Each
// recurring holiday is expanded with a yearly recurrence rule anchored
// on its original date; dates already registered for the target year
// are skipped so the expansion is idempotent.
func (h *HolidayServiceImpl) MaterializeRecurring(ctx context.Context, year int) (holiday.MaterializeResult, error) {
	result := holiday.MaterializeResult{Year: year}

	recurring, err := h.HolidayRepository.ListRecurring(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list recurring holidays: %w", err)
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	for _, base := range recurring {
		rr, err := rrule.NewRRule(rrule.ROption{
			Freq:    rrule.YEARLY,
			Dtstart: time.Date(base.Date.Year(), base.Date.Month(), base.Date.Day(), 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			return result, fmt.Errorf("failed to build recurrence rule for holiday %s: %w", base.ID, err)
		}

		for _, instance := range rr.Between(yearStart, yearEnd, true) {
			if _, err := h.HolidayRepository.GetByDate(ctx, instance); err == nil {
				result.SkippedCount++
				continue
			} else if !errors.Is(err, holiday.ErrHolidayNotFound) {
				return result, fmt.Errorf("failed to check holiday date: %w", err)
			}

			_, err := h.HolidayRepository.Create(ctx, holiday.Holiday{
				Name:        base.Name,
				Date:        instance,
				Type:        base.Type,
				Description: base.Description,
				IsRecurring: false,
			})
			if err != nil {
				if errors.Is(err, holiday.ErrDuplicateHoliday) {
					result.SkippedCount++
					continue
				}
				return result, fmt.Errorf("failed to materialize holiday: %w", err)
			}
			result.CreatedCount++
		}
	}

	return result, nil
}

func NewHolidayService(
	db *database.DB,
	holidayRepo holiday.HolidayRepository,
) holiday.HolidayService {
	return &HolidayServiceImpl{
		db:                db,
		HolidayRepository: holidayRepo,
	}
}
