package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/suweldo/payroll-backend-go/internal/domain/payroll"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

// CreateRun implements payroll.PayrollRepository.
func (p *payrollRepository) CreateRun(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO payroll_runs (id, start_date, end_date, type, status)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, run.StartDate, run.EndDate, run.Type, run.Status).
		Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return payroll.Run{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return run, nil
}

// GetRunByID implements payroll.PayrollRepository.
func (p *payrollRepository) GetRunByID(ctx context.Context, id string) (payroll.Run, error) {
	q := GetQuerier(ctx, p.db)

	query := `SELECT id, start_date, end_date, type, status, created_at FROM payroll_runs WHERE id = $1`

	var run payroll.Run
	err := q.QueryRow(ctx, query, id).Scan(
		&run.ID, &run.StartDate, &run.EndDate, &run.Type, &run.Status, &run.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

// ListRuns implements payroll.PayrollRepository.
func (p *payrollRepository) ListRuns(ctx context.Context, filter payroll.RunFilter) ([]payroll.Run, error) {
	q := GetQuerier(ctx, p.db)

	query := `SELECT id, start_date, end_date, type, status, created_at FROM payroll_runs WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND start_date >= $%d", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND end_date <= $%d", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", argPos)
		args = append(args, filter.Type)
		argPos++
	}
	query += " ORDER BY start_date DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		var run payroll.Run
		if err := rows.Scan(&run.ID, &run.StartDate, &run.EndDate, &run.Type, &run.Status, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// UpdateRun implements payroll.PayrollRepository.
func (p *payrollRepository) UpdateRun(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	q := GetQuerier(ctx, p.db)

	query := `UPDATE payroll_runs SET status = $2 WHERE id = $1 RETURNING created_at`

	if err := q.QueryRow(ctx, query, run.ID, run.Status).Scan(&run.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to update payroll run: %w", err)
	}

	return run, nil
}

const entryColumns = `
	id, payroll_run_id, employee_id, employee_name,
	base_pay, overtime_pay, nightshift_pay, holiday_pay, holiday_overtime_pay,
	allowances, bonuses, benefits, deductions,
	gross, net, is_finalized, version, edit_history, created_at, updated_at
`

func scanEntry(row pgx.Row) (payroll.Entry, error) {
	var e payroll.Entry
	err := row.Scan(
		&e.ID, &e.PayrollRunID, &e.EmployeeID, &e.EmployeeName,
		&e.BasePay, &e.OvertimePay, &e.NightshiftPay, &e.HolidayPay, &e.HolidayOvertimePay,
		&e.Allowances, &e.Bonuses, &e.Benefits, &e.Deductions,
		&e.Gross, &e.Net, &e.IsFinalized, &e.Version, &e.EditHistory, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// CreateEntry implements payroll.PayrollRepository.
func (p *payrollRepository) CreateEntry(ctx context.Context, entry payroll.Entry) (payroll.Entry, error) {
	q := GetQuerier(ctx, p.db)

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	query := `
		INSERT INTO payroll_entries (
			id, payroll_run_id, employee_id, employee_name,
			base_pay, overtime_pay, nightshift_pay, holiday_pay, holiday_overtime_pay,
			allowances, bonuses, benefits, deductions,
			gross, net, is_finalized, version, edit_history
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15, $16, $17, $18
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID, entry.PayrollRunID, entry.EmployeeID, entry.EmployeeName,
		entry.BasePay, entry.OvertimePay, entry.NightshiftPay, entry.HolidayPay, entry.HolidayOvertimePay,
		entry.Allowances, entry.Bonuses, entry.Benefits, entry.Deductions,
		entry.Gross, entry.Net, entry.IsFinalized, entry.Version, entry.EditHistory,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.Entry{}, payroll.ErrDuplicateEntry
		}
		return payroll.Entry{}, fmt.Errorf("failed to create payroll entry: %w", err)
	}

	return entry, nil
}

// GetEntryByID implements payroll.PayrollRepository.
func (p *payrollRepository) GetEntryByID(ctx context.Context, id string) (payroll.Entry, error) {
	q := GetQuerier(ctx, p.db)

	entry, err := scanEntry(q.QueryRow(ctx, `SELECT `+entryColumns+` FROM payroll_entries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Entry{}, payroll.ErrEntryNotFound
		}
		return payroll.Entry{}, fmt.Errorf("failed to get payroll entry: %w", err)
	}

	return entry, nil
}

// GetEntryByRunEmployee implements payroll.PayrollRepository.
func (p *payrollRepository) GetEntryByRunEmployee(ctx context.Context, runID, employeeID string) (payroll.Entry, error) {
	q := GetQuerier(ctx, p.db)

	query := `SELECT ` + entryColumns + ` FROM payroll_entries WHERE payroll_run_id = $1 AND employee_id = $2`

	entry, err := scanEntry(q.QueryRow(ctx, query, runID, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Entry{}, payroll.ErrEntryNotFound
		}
		return payroll.Entry{}, fmt.Errorf("failed to get payroll entry: %w", err)
	}

	return entry, nil
}

// ListEntries implements payroll.PayrollRepository.
func (p *payrollRepository) ListEntries(ctx context.Context, filter payroll.EntryFilter) ([]payroll.Entry, error) {
	q := GetQuerier(ctx, p.db)

	query := `SELECT ` + entryColumns + ` FROM payroll_entries WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.RunID != "" {
		query += fmt.Sprintf(" AND payroll_run_id = $%d", argPos)
		args = append(args, filter.RunID)
		argPos++
	}
	if filter.EmployeeID != "" {
		query += fmt.Sprintf(" AND employee_id = $%d", argPos)
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.Version > 0 {
		query += fmt.Sprintf(" AND version = $%d", argPos)
		args = append(args, filter.Version)
		argPos++
	}
	query += " ORDER BY employee_name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll entries: %w", err)
	}
	defer rows.Close()

	var entries []payroll.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// UpdateEntry implements payroll.PayrollRepository.
func (p *payrollRepository) UpdateEntry(ctx context.Context, entry payroll.Entry) (payroll.Entry, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_entries SET
			base_pay = $2, overtime_pay = $3, nightshift_pay = $4,
			holiday_pay = $5, holiday_overtime_pay = $6,
			allowances = $7, bonuses = $8, benefits = $9, deductions = $10,
			gross = $11, net = $12, is_finalized = $13, version = $14, edit_history = $15,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.BasePay, entry.OvertimePay, entry.NightshiftPay,
		entry.HolidayPay, entry.HolidayOvertimePay,
		entry.Allowances, entry.Bonuses, entry.Benefits, entry.Deductions,
		entry.Gross, entry.Net, entry.IsFinalized, entry.Version, entry.EditHistory,
	).Scan(&entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Entry{}, payroll.ErrEntryNotFound
		}
		return payroll.Entry{}, fmt.Errorf("failed to update payroll entry: %w", err)
	}

	return entry, nil
}

// FinalizeEntriesByRun implements payroll.PayrollRepository.
func (p *payrollRepository) FinalizeEntriesByRun(ctx context.Context, runID string) error {
	q := GetQuerier(ctx, p.db)

	_, err := q.Exec(ctx, `UPDATE payroll_entries SET is_finalized = true, updated_at = NOW() WHERE payroll_run_id = $1`, runID)
	if err != nil {
		return fmt.Errorf("failed to finalize payroll entries: %w", err)
	}

	return nil
}

// CreateContributions implements payroll.PayrollRepository.
func (p *payrollRepository) CreateContributions(ctx context.Context, c payroll.Contributions) (payroll.Contributions, error) {
	q := GetQuerier(ctx, p.db)

	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	query := `
		INSERT INTO mandatory_contributions (
			id, employee_id, payroll_entry_id,
			sss_employee, sss_employer,
			philhealth_employee, philhealth_employer,
			pagibig_employee, pagibig_employer,
			total_employee, calculation_details
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		c.ID, c.EmployeeID, c.PayrollEntryID,
		c.SSSEmployee, c.SSSEmployer,
		c.PhilHealthEmployee, c.PhilHealthEmployer,
		c.PagIBIGEmployee, c.PagIBIGEmployer,
		c.TotalEmployee, c.CalculationDetails,
	).Scan(&c.CreatedAt)
	if err != nil {
		return payroll.Contributions{}, fmt.Errorf("failed to create contributions record: %w", err)
	}

	return c, nil
}

// GetContributionsByEntry implements payroll.PayrollRepository.
func (p *payrollRepository) GetContributionsByEntry(ctx context.Context, entryID string) (payroll.Contributions, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, employee_id, payroll_entry_id,
			   sss_employee, sss_employer,
			   philhealth_employee, philhealth_employer,
			   pagibig_employee, pagibig_employer,
			   total_employee, calculation_details, created_at
		FROM mandatory_contributions
		WHERE payroll_entry_id = $1
	`

	var c payroll.Contributions
	err := q.QueryRow(ctx, query, entryID).Scan(
		&c.ID, &c.EmployeeID, &c.PayrollEntryID,
		&c.SSSEmployee, &c.SSSEmployer,
		&c.PhilHealthEmployee, &c.PhilHealthEmployer,
		&c.PagIBIGEmployee, &c.PagIBIGEmployer,
		&c.TotalEmployee, &c.CalculationDetails, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Contributions{}, payroll.ErrContributionsNotFound
		}
		return payroll.Contributions{}, fmt.Errorf("failed to get contributions record: %w", err)
	}

	return c, nil
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}
