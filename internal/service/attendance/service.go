package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/suweldo/payroll-backend-go/internal/domain/attendance"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/holiday"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	employee.EmployeeRepository
	holiday.HolidayRepository
	leave.LeaveRepository
}

// CreateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.RecordResponse, error) {
	record, err := a.buildRecord(ctx, req)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateAttendance) {
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return attendance.ToResponse(created), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.RecordResponse, error) {
	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return attendance.ToResponse(record), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.ListFilter) ([]attendance.RecordResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}
	return responses, total, nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, id string, req attendance.UpdateAttendanceRequest) (attendance.RecordResponse, error) {
	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return attendance.RecordResponse{}, attendance.ErrInvalidTimeFormat
		}
		record.Date = date
	}
	if req.TimeIn != nil {
		record.TimeIn = req.TimeIn
	}
	if req.TimeOut != nil {
		record.TimeOut = req.TimeOut
	}
	if req.ShiftType != nil {
		record.ShiftType = attendance.ShiftType(*req.ShiftType)
	}
	if req.OvertimeHours != nil {
		record.OvertimeHours = *req.OvertimeHours
	}
	if req.NightshiftHours != nil {
		record.NightshiftHours = *req.NightshiftHours
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if err := a.evaluateRecord(ctx, &record); err != nil {
		return attendance.RecordResponse{}, err
	}

	updated, err := a.AttendanceRepository.Update(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return attendance.ToResponse(updated), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if err := a.AttendanceRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	return nil
}

// ImportAttendance implements attendance.AttendanceService. Rows are
// processed independently; a failing row is reported in the summary and
// never aborts the batch.
func (a *AttendanceServiceImpl) ImportAttendance(ctx context.Context, reqs []attendance.CreateAttendanceRequest) (attendance.ImportSummary, error) {
	summary := attendance.ImportSummary{}

	for i, req := range reqs {
		record, err := a.buildRecord(ctx, req)
		if err == nil {
			_, err = a.AttendanceRepository.Create(ctx, record)
		}
		if err != nil {
			summary.ErrorCount++
			summary.Errors = append(summary.Errors, attendance.ImportError{
				Row:   i + 1,
				Error: err.Error(),
			})
			continue
		}
		summary.ImportedCount++
	}

	return summary, nil
}

// buildRecord validates the request and assembles a fully evaluated
// record ready for persistence.
func (a *AttendanceServiceImpl) buildRecord(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.Record{}, attendance.ErrInvalidTimeFormat
	}

	record := attendance.Record{
		EmployeeID:      req.EmployeeID,
		Date:            date,
		TimeIn:          req.TimeIn,
		TimeOut:         req.TimeOut,
		ShiftType:       attendance.ShiftType(req.ShiftType),
		OvertimeHours:   req.OvertimeHours,
		NightshiftHours: req.NightshiftHours,
		Notes:           req.Notes,
	}

	if err := a.evaluateRecord(ctx, &record); err != nil {
		return attendance.Record{}, err
	}
	return record, nil
}

// evaluateRecord derives status, hours and deductions in place, and
// flags the day when it lands on a registered holiday.
func (a *AttendanceServiceImpl) evaluateRecord(ctx context.Context, record *attendance.Record) error {
	emp, err := a.EmployeeRepository.GetByID(ctx, record.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	onLeave := false
	if _, err := a.LeaveRepository.ApprovedLeaveCovering(ctx, record.EmployeeID, record.Date); err == nil {
		onLeave = true
	} else if !errors.Is(err, leave.ErrLeaveRequestNotFound) {
		return fmt.Errorf("failed to check approved leave: %w", err)
	}

	record.IsHoliday = false
	record.HolidayID = nil
	if h, err := a.HolidayRepository.GetByDate(ctx, record.Date); err == nil {
		record.IsHoliday = true
		record.HolidayID = &h.ID
	} else if !errors.Is(err, holiday.ErrHolidayNotFound) {
		return fmt.Errorf("failed to check holiday: %w", err)
	}

	res := Evaluate(EvalInput{
		TimeIn:     record.TimeIn,
		TimeOut:    record.TimeOut,
		HourlyRate: emp.HourlyRate(),
		OnLeave:    onLeave,
	})

	record.Status = res.Status
	record.RegularHours = res.WorkedHours
	record.LateMinutes = res.LateMinutes
	record.UndertimeMinutes = res.UndertimeMinutes
	record.LateDeduction = res.LateDeduction
	record.UndertimeDeduction = res.UndertimeDeduction
	record.AbsentDeduction = res.AbsentDeduction
	record.Malformed = res.Malformed
	return nil
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	leaveRepo leave.LeaveRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		HolidayRepository:    holidayRepo,
		LeaveRepository:      leaveRepo,
	}
}
