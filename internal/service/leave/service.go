package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/holiday"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
	"github.com/suweldo/payroll-backend-go/internal/pkg/clock"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
	"github.com/suweldo/payroll-backend-go/internal/pkg/identity"
	"github.com/suweldo/payroll-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveRepository
	employee.EmployeeRepository
	holiday.HolidayRepository
	clock clock.Clock

	// runTx wraps balance-touching status transitions in a transaction.
	// Defaults to postgresql.WithTransaction.
	runTx func(ctx context.Context, db *database.DB, fn func(pgx.Tx) error) error
}

// RequestLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) RequestLeave(ctx context.Context, req leave.CreateLeaveRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	if _, err := l.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.RequestResponse{}, err
		}
		return leave.RequestResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	holidays, err := l.holidaySet(ctx, start, end)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	created, err := l.LeaveRepository.CreateRequest(ctx, leave.Request{
		EmployeeID: req.EmployeeID,
		Type:       leave.Type(req.LeaveType),
		StartDate:  start,
		EndDate:    end,
		DaysCount:  WorkingDaysBetween(start, end, holidays),
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.ToRequestResponse(created), nil
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, id string) (leave.RequestResponse, error) {
	req, err := l.LeaveRepository.GetRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.RequestResponse{}, err
		}
		return leave.RequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return leave.ToRequestResponse(req), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.RequestFilter) ([]leave.RequestResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	requests, total, err := l.LeaveRepository.ListRequests(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToRequestResponse(r))
	}
	return responses, total, nil
}

// ApproveLeave implements leave.LeaveService. Balance-gated leave types
// check and debit the balance inside one transaction; the balance row's
// version guards against a concurrent approval racing the same credits.
func (l *LeaveServiceImpl) ApproveLeave(ctx context.Context, id string) (leave.RequestResponse, error) {
	req, err := l.LeaveRepository.GetRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.RequestResponse{}, err
		}
		return leave.RequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if req.Status != leave.StatusPending {
		return leave.RequestResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	now := l.clock.Now()
	approver := identity.FromContext(ctx)
	req.Status = leave.StatusApproved
	req.ApprovedBy = &approver
	req.ApprovedAt = &now

	var updated leave.Request
	err = l.runTx(ctx, l.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if req.Type.Balanced() {
			balance, err := l.LeaveRepository.GetBalanceByEmployee(txCtx, req.EmployeeID)
			if err != nil {
				if errors.Is(err, leave.ErrBalanceNotFound) {
					return err
				}
				return fmt.Errorf("failed to get leave balance: %w", err)
			}

			if !Sufficient(balance, req.Type, req.DaysCount) {
				return leave.ErrInsufficientBalance
			}

			if _, err := l.LeaveRepository.UpdateBalance(txCtx, Debit(balance, req.Type, req.DaysCount)); err != nil {
				if errors.Is(err, leave.ErrBalanceConflict) {
					return err
				}
				return fmt.Errorf("failed to update leave balance: %w", err)
			}
		}

		var err error
		updated, err = l.LeaveRepository.UpdateRequest(txCtx, req)
		if err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return leave.ToRequestResponse(updated), nil
}

// RejectLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectLeave(ctx context.Context, id string, reason string) (leave.RequestResponse, error) {
	req, err := l.LeaveRepository.GetRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.RequestResponse{}, err
		}
		return leave.RequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if req.Status != leave.StatusPending {
		return leave.RequestResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	req.Status = leave.StatusRejected
	if reason != "" {
		req.RejectionReason = &reason
	}

	updated, err := l.LeaveRepository.UpdateRequest(ctx, req)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	return leave.ToRequestResponse(updated), nil
}

// CancelLeave implements leave.LeaveService. Cancelling an approved
// request refunds the debited days in the same transaction as the
// status change, so the balance lands exactly where it was before
// approval.
func (l *LeaveServiceImpl) CancelLeave(ctx context.Context, id string) (leave.RequestResponse, error) {
	req, err := l.LeaveRepository.GetRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.RequestResponse{}, err
		}
		return leave.RequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if req.Status != leave.StatusPending && req.Status != leave.StatusApproved {
		return leave.RequestResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	wasApproved := req.Status == leave.StatusApproved
	req.Status = leave.StatusCancelled

	if !wasApproved || !req.Type.Balanced() {
		updated, err := l.LeaveRepository.UpdateRequest(ctx, req)
		if err != nil {
			return leave.RequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
		}
		return leave.ToRequestResponse(updated), nil
	}

	var updated leave.Request
	err = l.runTx(ctx, l.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		balance, err := l.LeaveRepository.GetBalanceByEmployee(txCtx, req.EmployeeID)
		if err != nil {
			if errors.Is(err, leave.ErrBalanceNotFound) {
				return err
			}
			return fmt.Errorf("failed to get leave balance: %w", err)
		}

		if _, err := l.LeaveRepository.UpdateBalance(txCtx, Refund(balance, req.Type, req.DaysCount)); err != nil {
			if errors.Is(err, leave.ErrBalanceConflict) {
				return err
			}
			return fmt.Errorf("failed to update leave balance: %w", err)
		}

		updated, err = l.LeaveRepository.UpdateRequest(txCtx, req)
		if err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return leave.ToRequestResponse(updated), nil
}

// GetBalance implements leave.LeaveService.
// A missing balance row is created on the fly with the full annual
// grant, so queries for employees never explicitly initialized still
// succeed.
func (l *LeaveServiceImpl) GetBalance(ctx context.Context, employeeID string) (leave.BalanceResponse, error) {
	balance, err := l.LeaveRepository.GetBalanceByEmployee(ctx, employeeID)
	if err == nil {
		return leave.ToBalanceResponse(balance), nil
	}
	if !errors.Is(err, leave.ErrBalanceNotFound) {
		return leave.BalanceResponse{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	if _, err := l.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.BalanceResponse{}, err
		}
		return leave.BalanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	created, err := l.LeaveRepository.CreateBalance(ctx, leave.Balance{
		EmployeeID:      employeeID,
		Year:            l.clock.Now().Year(),
		SickBalance:     AnnualSickCredits,
		VacationBalance: AnnualVacationCredits,
	})
	if err != nil {
		if errors.Is(err, leave.ErrBalanceExists) {
			// Lost a create race; the row is there now.
			balance, err = l.LeaveRepository.GetBalanceByEmployee(ctx, employeeID)
			if err != nil {
				return leave.BalanceResponse{}, fmt.Errorf("failed to get leave balance: %w", err)
			}
			return leave.ToBalanceResponse(balance), nil
		}
		return leave.BalanceResponse{}, fmt.Errorf("failed to create leave balance: %w", err)
	}

	return leave.ToBalanceResponse(created), nil
}

// InitializeBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) InitializeBalance(ctx context.Context, employeeID string, year int) (leave.BalanceResponse, error) {
	emp, err := l.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.BalanceResponse{}, err
		}
		return leave.BalanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if year == 0 {
		year = l.clock.Now().Year()
	}

	created, err := l.LeaveRepository.CreateBalance(ctx, leave.Balance{
		EmployeeID:      employeeID,
		Year:            year,
		SickBalance:     ProratedGrant(AnnualSickCredits, emp.HireDate, year),
		VacationBalance: ProratedGrant(AnnualVacationCredits, emp.HireDate, year),
	})
	if err != nil {
		if errors.Is(err, leave.ErrBalanceExists) {
			return leave.BalanceResponse{}, err
		}
		return leave.BalanceResponse{}, fmt.Errorf("failed to create leave balance: %w", err)
	}

	return leave.ToBalanceResponse(created), nil
}

// AssignCredits implements leave.LeaveService.
func (l *LeaveServiceImpl) AssignCredits(ctx context.Context, req leave.AssignCreditsRequest) (leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BalanceResponse{}, err
	}

	balance, err := l.LeaveRepository.GetBalanceByEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, leave.ErrBalanceNotFound) {
			return leave.BalanceResponse{}, err
		}
		return leave.BalanceResponse{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	updated, err := l.LeaveRepository.UpdateBalance(ctx, Credit(balance, req.SickLeave, req.VacationLeave))
	if err != nil {
		if errors.Is(err, leave.ErrBalanceConflict) {
			return leave.BalanceResponse{}, err
		}
		return leave.BalanceResponse{}, fmt.Errorf("failed to update leave balance: %w", err)
	}

	return leave.ToBalanceResponse(updated), nil
}

// holidaySet collects holiday dates in [start, end] keyed YYYY-MM-DD.
func (l *LeaveServiceImpl) holidaySet(ctx context.Context, start, end time.Time) (map[string]bool, error) {
	holidays, err := l.HolidayRepository.ListRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	set := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		set[h.Date.Format("2006-01-02")] = true
	}
	return set, nil
}

func NewLeaveService(
	db *database.DB,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	clk clock.Clock,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                 db,
		LeaveRepository:    leaveRepo,
		EmployeeRepository: employeeRepo,
		HolidayRepository:  holidayRepo,
		clock:              clk,
		runTx:              postgresql.WithTransaction,
	}
}
