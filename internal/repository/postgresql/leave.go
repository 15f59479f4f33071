package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

const leaveRequestColumns = `
	id, employee_id, leave_type, start_date, end_date, days_count,
	reason, status, approved_by, approved_at, rejection_reason,
	created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var r leave.Request
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Type, &r.StartDate, &r.EndDate, &r.DaysCount,
		&r.Reason, &r.Status, &r.ApprovedBy, &r.ApprovedAt, &r.RejectionReason,
		&r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// CreateRequest implements leave.LeaveRepository.
func (l *leaveRepository) CreateRequest(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type, start_date, end_date, days_count, reason, status
		) VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.Type, req.StartDate, req.EndDate, req.DaysCount, req.Reason, req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

// GetRequestByID implements leave.LeaveRepository.
func (l *leaveRepository) GetRequestByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	req, err := scanLeaveRequest(q.QueryRow(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return req, nil
}

// ListRequests implements leave.LeaveRepository.
func (l *leaveRepository) ListRequests(ctx context.Context, filter leave.RequestFilter) ([]leave.Request, int64, error) {
	q := GetQuerier(ctx, l.db)

	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND employee_id = $%d", argPos)
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, rows.Err()
}

// UpdateRequest implements leave.LeaveRepository.
func (l *leaveRepository) UpdateRequest(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests SET
			status = $2, approved_by = $3, approved_at = $4, rejection_reason = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query, req.ID, req.Status, req.ApprovedBy, req.ApprovedAt, req.RejectionReason).
		Scan(&req.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return req, nil
}

// ApprovedLeaveCovering implements leave.LeaveRepository.
func (l *leaveRepository) ApprovedLeaveCovering(ctx context.Context, employeeID string, date time.Time) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1 AND status = $2 AND start_date <= $3 AND end_date >= $3
		LIMIT 1
	`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, employeeID, leave.StatusApproved, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get approved leave: %w", err)
	}

	return req, nil
}

// CreateBalance implements leave.LeaveRepository.
func (l *leaveRepository) CreateBalance(ctx context.Context, b leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_balances (
			id, employee_id, year, sick_balance, vacation_balance, sick_used, vacation_used, version
		) VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, 1)
		RETURNING id, version, updated_at
	`

	err := q.QueryRow(ctx, query,
		b.EmployeeID, b.Year, b.SickBalance, b.VacationBalance, b.SickUsed, b.VacationUsed,
	).Scan(&b.ID, &b.Version, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return leave.Balance{}, leave.ErrBalanceExists
		}
		return leave.Balance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}

	return b, nil
}

// GetBalanceByEmployee implements leave.LeaveRepository.
func (l *leaveRepository) GetBalanceByEmployee(ctx context.Context, employeeID string) (leave.Balance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, year, sick_balance, vacation_balance, sick_used, vacation_used, version, updated_at
		FROM leave_balances
		WHERE employee_id = $1
		ORDER BY year DESC
		LIMIT 1
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&b.ID, &b.EmployeeID, &b.Year,
		&b.SickBalance, &b.VacationBalance, &b.SickUsed, &b.VacationUsed,
		&b.Version, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return b, nil
}

// UpdateBalance implements leave.LeaveRepository. The WHERE clause on
// version makes the update a compare-and-swap: a concurrent writer that
// bumped the version first causes zero affected rows here.
func (l *leaveRepository) UpdateBalance(ctx context.Context, b leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_balances SET
			sick_balance = $3, vacation_balance = $4, sick_used = $5, vacation_used = $6,
			version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
		RETURNING version, updated_at
	`

	err := q.QueryRow(ctx, query,
		b.ID, b.Version,
		b.SickBalance, b.VacationBalance, b.SickUsed, b.VacationUsed,
	).Scan(&b.Version, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceConflict
		}
		return leave.Balance{}, fmt.Errorf("failed to update leave balance: %w", err)
	}

	return b, nil
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}
