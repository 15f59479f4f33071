package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/payroll"
	"github.com/suweldo/payroll-backend-go/internal/pkg/clock"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
	"github.com/suweldo/payroll-backend-go/internal/pkg/identity"
	"github.com/suweldo/payroll-backend-go/internal/repository/postgresql"
)

type PayrollServiceImpl struct {
	db *database.DB
	payroll.PayrollRepository
	employee.EmployeeRepository
	composer *Composer
	clock    clock.Clock

	// runTx wraps multi-row writes in a transaction. Defaults to
	// postgresql.WithTransaction.
	runTx func(ctx context.Context, db *database.DB, fn func(pgx.Tx) error) error
}

// CreateRun implements payroll.PayrollService.
func (p *PayrollServiceImpl) CreateRun(ctx context.Context, req payroll.CreateRunRequest) (payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	created, err := p.PayrollRepository.CreateRun(ctx, payroll.Run{
		StartDate: start,
		EndDate:   end,
		Type:      payroll.RunType(req.Type),
		Status:    payroll.RunStatusDraft,
	})
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return payroll.ToRunResponse(created), nil
}

// GetRun implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetRun(ctx context.Context, id string) (payroll.RunResponse, error) {
	run, err := p.PayrollRepository.GetRunByID(ctx, id)
	if err != nil {
		if errors.Is(err, payroll.ErrRunNotFound) {
			return payroll.RunResponse{}, err
		}
		return payroll.RunResponse{}, fmt.Errorf("failed to get payroll run: %w", err)
	}
	return payroll.ToRunResponse(run), nil
}

// ListRuns implements payroll.PayrollService.
func (p *PayrollServiceImpl) ListRuns(ctx context.Context, filter payroll.RunFilter) ([]payroll.RunResponse, error) {
	runs, err := p.PayrollRepository.ListRuns(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}

	responses := make([]payroll.RunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, payroll.ToRunResponse(run))
	}
	return responses, nil
}

// UpdateRun implements payroll.PayrollService.
func (p *PayrollServiceImpl) UpdateRun(ctx context.Context, id string, req payroll.UpdateRunRequest) (payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := p.PayrollRepository.GetRunByID(ctx, id)
	if err != nil {
		if errors.Is(err, payroll.ErrRunNotFound) {
			return payroll.RunResponse{}, err
		}
		return payroll.RunResponse{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	if req.Status == nil || payroll.RunStatus(*req.Status) == run.Status {
		return payroll.ToRunResponse(run), nil
	}
	newStatus := payroll.RunStatus(*req.Status)

	var updated payroll.Run
	err = p.runTx(ctx, p.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		run.Status = newStatus
		var err error
		updated, err = p.PayrollRepository.UpdateRun(txCtx, run)
		if err != nil {
			return fmt.Errorf("failed to update payroll run: %w", err)
		}

		if newStatus == payroll.RunStatusFinalized {
			if err := p.PayrollRepository.FinalizeEntriesByRun(txCtx, run.ID); err != nil {
				return fmt.Errorf("failed to finalize entries: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return payroll.RunResponse{}, err
	}

	return payroll.ToRunResponse(updated), nil
}

// GenerateEntries implements payroll.PayrollService. Each employee's
// entry and contributions record persist in their own transaction, so
// one failure never blocks or corrupts the rest of the run.
func (p *PayrollServiceImpl) GenerateEntries(ctx context.Context, runID string) (payroll.GenerateResult, error) {
	run, err := p.PayrollRepository.GetRunByID(ctx, runID)
	if err != nil {
		if errors.Is(err, payroll.ErrRunNotFound) {
			return payroll.GenerateResult{}, err
		}
		return payroll.GenerateResult{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	employees, err := p.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return payroll.GenerateResult{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	result := payroll.GenerateResult{RunID: run.ID}

	for _, emp := range employees {
		entry, err := p.generateOne(ctx, run, emp.ID)
		if err != nil {
			result.Errors = append(result.Errors, payroll.GenerateError{
				EmployeeID: emp.ID,
				Error:      err.Error(),
			})
			continue
		}
		result.Count++
		result.Entries = append(result.Entries, payroll.ToEntryResponse(entry))
	}

	return result, nil
}

func (p *PayrollServiceImpl) generateOne(ctx context.Context, run payroll.Run, employeeID string) (payroll.Entry, error) {
	calc, err := p.composer.CalculateForEmployee(ctx, employeeID, run.StartDate, run.EndDate)
	if err != nil {
		return payroll.Entry{}, err
	}

	entry := payroll.Entry{
		PayrollRunID: run.ID,
		EmployeeID:   calc.EmployeeID,
		EmployeeName: calc.EmployeeName,

		BasePay:            calc.BasePay,
		OvertimePay:        calc.OvertimePay,
		NightshiftPay:      calc.NightshiftPay,
		HolidayPay:         calc.HolidayPay,
		HolidayOvertimePay: calc.HolidayOvertimePay,

		Allowances: calc.Allowances,
		Benefits:   calc.Benefits,
		Deductions: calc.Deductions,

		Gross:   calc.Gross,
		Net:     calc.Net,
		Version: 1,
	}

	var created payroll.Entry
	err = p.runTx(ctx, p.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		created, err = p.PayrollRepository.CreateEntry(txCtx, entry)
		if err != nil {
			if errors.Is(err, payroll.ErrDuplicateEntry) {
				return err
			}
			return fmt.Errorf("failed to create payroll entry: %w", err)
		}

		_, err = p.PayrollRepository.CreateContributions(txCtx, payroll.Contributions{
			EmployeeID:     calc.EmployeeID,
			PayrollEntryID: created.ID,

			SSSEmployee:        calc.Contributions.SSS.Employee,
			SSSEmployer:        calc.Contributions.SSS.Employer,
			PhilHealthEmployee: calc.Contributions.PhilHealth.Employee,
			PhilHealthEmployer: calc.Contributions.PhilHealth.Employer,
			PagIBIGEmployee:    calc.Contributions.PagIBIG.Employee,
			PagIBIGEmployer:    calc.Contributions.PagIBIG.Employer,

			TotalEmployee: calc.Contributions.TotalEmployee,
			CalculationDetails: map[string]interface{}{
				"monthly_salary_equivalent": calc.MonthlySalaryEquivalent.String(),
				"period_start":              calc.PeriodStart.Format("2006-01-02"),
				"period_end":                calc.PeriodEnd.Format("2006-01-02"),
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create contributions record: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.Entry{}, err
	}

	return created, nil
}

// CalculateForEmployee implements payroll.PayrollService.
func (p *PayrollServiceImpl) CalculateForEmployee(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (payroll.CalculationResult, error) {
	if periodEnd.Before(periodStart) {
		return payroll.CalculationResult{}, payroll.ErrInvalidPeriod
	}
	return p.composer.CalculateForEmployee(ctx, employeeID, periodStart, periodEnd)
}

// GetEntry implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetEntry(ctx context.Context, id string) (payroll.EntryResponse, error) {
	entry, err := p.PayrollRepository.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, payroll.ErrEntryNotFound) {
			return payroll.EntryResponse{}, err
		}
		return payroll.EntryResponse{}, fmt.Errorf("failed to get payroll entry: %w", err)
	}
	return payroll.ToEntryResponse(entry), nil
}

// ListEntries implements payroll.PayrollService.
func (p *PayrollServiceImpl) ListEntries(ctx context.Context, filter payroll.EntryFilter) ([]payroll.EntryResponse, error) {
	entries, err := p.PayrollRepository.ListEntries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll entries: %w", err)
	}

	responses := make([]payroll.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, payroll.ToEntryResponse(entry))
	}
	return responses, nil
}

// UpdateEntry implements payroll.PayrollService.
func (p *PayrollServiceImpl) UpdateEntry(ctx context.Context, id string, req payroll.UpdateEntryRequest) (payroll.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.EntryResponse{}, err
	}

	entry, err := p.PayrollRepository.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, payroll.ErrEntryNotFound) {
			return payroll.EntryResponse{}, err
		}
		return payroll.EntryResponse{}, fmt.Errorf("failed to get payroll entry: %w", err)
	}

	if entry.IsFinalized {
		return payroll.EntryResponse{}, payroll.ErrEntryFinalized
	}

	changes := map[string]interface{}{}
	if req.BasePay != nil && !req.BasePay.Equal(entry.BasePay) {
		changes["base_pay"] = fieldChange(entry.BasePay, *req.BasePay)
		entry.BasePay = *req.BasePay
	}
	if req.OvertimePay != nil && !req.OvertimePay.Equal(entry.OvertimePay) {
		changes["overtime_pay"] = fieldChange(entry.OvertimePay, *req.OvertimePay)
		entry.OvertimePay = *req.OvertimePay
	}
	if req.NightshiftPay != nil && !req.NightshiftPay.Equal(entry.NightshiftPay) {
		changes["nightshift_pay"] = fieldChange(entry.NightshiftPay, *req.NightshiftPay)
		entry.NightshiftPay = *req.NightshiftPay
	}
	if req.Bonuses != nil {
		changes["bonuses"] = mapChange(entry.Bonuses, req.Bonuses)
		entry.Bonuses = req.Bonuses
	}
	if req.Benefits != nil {
		changes["benefits"] = mapChange(entry.Benefits, req.Benefits)
		entry.Benefits = req.Benefits
	}
	if req.Deductions != nil {
		changes["deductions"] = mapChange(entry.Deductions, req.Deductions)
		entry.Deductions = req.Deductions
	}

	if len(changes) == 0 {
		return payroll.ToEntryResponse(entry), nil
	}

	recomputeTotals(&entry)
	entry.Version++
	entry.EditHistory = append(entry.EditHistory, payroll.EditRecord{
		Timestamp: p.clock.Now(),
		EditedBy:  identity.FromContext(ctx),
		Changes:   changes,
	})

	updated, err := p.PayrollRepository.UpdateEntry(ctx, entry)
	if err != nil {
		return payroll.EntryResponse{}, fmt.Errorf("failed to update payroll entry: %w", err)
	}
	return payroll.ToEntryResponse(updated), nil
}

// GetEntryContributions implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetEntryContributions(ctx context.Context, entryID string) (payroll.ContributionsResponse, error) {
	contributions, err := p.PayrollRepository.GetContributionsByEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, payroll.ErrContributionsNotFound) {
			return payroll.ContributionsResponse{}, err
		}
		return payroll.ContributionsResponse{}, fmt.Errorf("failed to get contributions: %w", err)
	}
	return payroll.ToContributionsResponse(contributions), nil
}

// recomputeTotals rebuilds gross and net from the entry's current
// components instead of patching the previous figures.
func recomputeTotals(entry *payroll.Entry) {
	gross := entry.BasePay.
		Add(entry.OvertimePay).
		Add(entry.NightshiftPay).
		Add(entry.HolidayPay).
		Add(entry.HolidayOvertimePay)
	for _, amount := range entry.Allowances {
		gross = gross.Add(amount)
	}
	for _, amount := range entry.Bonuses {
		gross = gross.Add(amount)
	}
	for _, amount := range entry.Benefits {
		gross = gross.Add(amount)
	}
	entry.Gross = gross.Round(2)

	deductions := decimal.Zero
	for _, amount := range entry.Deductions {
		deductions = deductions.Add(amount)
	}
	entry.Net = entry.Gross.Sub(deductions).Round(2)
}

func fieldChange(from, to decimal.Decimal) map[string]string {
	return map[string]string{"from": from.String(), "to": to.String()}
}

func mapChange(from, to map[string]decimal.Decimal) map[string]interface{} {
	fromPlain := make(map[string]string, len(from))
	for name, amount := range from {
		fromPlain[name] = amount.String()
	}
	toPlain := make(map[string]string, len(to))
	for name, amount := range to {
		toPlain[name] = amount.String()
	}
	return map[string]interface{}{"from": fromPlain, "to": toPlain}
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	composer *Composer,
	clk clock.Clock,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:                 db,
		PayrollRepository:  payrollRepo,
		EmployeeRepository: employeeRepo,
		composer:           composer,
		clock:              clk,
		runTx:              postgresql.WithTransaction,
	}
}
