package leave

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/holiday"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
	"github.com/suweldo/payroll-backend-go/internal/pkg/clock"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type fakeLeaveRepo struct {
	requests map[string]leave.Request
	balances map[string]leave.Balance

	// forced error on the next UpdateBalance, simulating a lost
	// compare-and-swap against a concurrent writer.
	updateBalanceErr error
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{
		requests: map[string]leave.Request{},
		balances: map[string]leave.Balance{},
	}
}

func (f *fakeLeaveRepo) CreateRequest(_ context.Context, req leave.Request) (leave.Request, error) {
	if req.ID == "" {
		req.ID = "req-1"
	}
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeLeaveRepo) GetRequestByID(_ context.Context, id string) (leave.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (f *fakeLeaveRepo) ListRequests(_ context.Context, _ leave.RequestFilter) ([]leave.Request, int64, error) {
	var out []leave.Request
	for _, r := range f.requests {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRepo) UpdateRequest(_ context.Context, req leave.Request) (leave.Request, error) {
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeLeaveRepo) ApprovedLeaveCovering(_ context.Context, employeeID string, date time.Time) (leave.Request, error) {
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.Status == leave.StatusApproved &&
			!date.Before(r.StartDate) && !date.After(r.EndDate) {
			return r, nil
		}
	}
	return leave.Request{}, leave.ErrLeaveRequestNotFound
}

func (f *fakeLeaveRepo) CreateBalance(_ context.Context, b leave.Balance) (leave.Balance, error) {
	if _, exists := f.balances[b.EmployeeID]; exists {
		return leave.Balance{}, leave.ErrBalanceExists
	}
	if b.ID == "" {
		b.ID = "bal-" + b.EmployeeID
	}
	b.Version = 1
	f.balances[b.EmployeeID] = b
	return b, nil
}

func (f *fakeLeaveRepo) GetBalanceByEmployee(_ context.Context, employeeID string) (leave.Balance, error) {
	b, ok := f.balances[employeeID]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return b, nil
}

func (f *fakeLeaveRepo) UpdateBalance(_ context.Context, b leave.Balance) (leave.Balance, error) {
	if f.updateBalanceErr != nil {
		err := f.updateBalanceErr
		f.updateBalanceErr = nil
		return leave.Balance{}, err
	}
	stored, ok := f.balances[b.EmployeeID]
	if !ok || stored.Version != b.Version {
		return leave.Balance{}, leave.ErrBalanceConflict
	}
	b.Version++
	f.balances[b.EmployeeID] = b
	return b, nil
}

type stubEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (s *stubEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *stubEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	return nil, nil
}

type stubHolidayRepo struct {
	holidays []holiday.Holiday
}

func (s *stubHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	return h, nil
}
func (s *stubHolidayRepo) GetByID(_ context.Context, _ string) (holiday.Holiday, error) {
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}
func (s *stubHolidayRepo) GetByDate(_ context.Context, _ time.Time) (holiday.Holiday, error) {
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}
func (s *stubHolidayRepo) ListRange(_ context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range s.holidays {
		if !h.Date.Before(start) && !h.Date.After(end) {
			out = append(out, h)
		}
	}
	return out, nil
}
func (s *stubHolidayRepo) ListRecurring(_ context.Context) ([]holiday.Holiday, error) {
	return nil, nil
}
func (s *stubHolidayRepo) List(_ context.Context) ([]holiday.Holiday, error) { return nil, nil }
func (s *stubHolidayRepo) Update(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	return h, nil
}
func (s *stubHolidayRepo) Delete(_ context.Context, _ string) error { return nil }

func newTestLeaveService(leaveRepo *fakeLeaveRepo, holidays []holiday.Holiday) *LeaveServiceImpl {
	employees := &stubEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID:         "emp-1",
			Name:       "Juan Dela Cruz",
			SalaryType: employee.SalaryTypeMonthly,
			SalaryRate: decimal.NewFromInt(30000),
			Status:     employee.StatusActive,
			HireDate:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}}
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	svc := NewLeaveService(nil, leaveRepo, employees, &stubHolidayRepo{holidays: holidays}, clock.Fixed(now)).(*LeaveServiceImpl)
	svc.runTx = func(_ context.Context, _ *database.DB, fn func(pgx.Tx) error) error {
		return fn(nil)
	}
	return svc
}

func TestRequestLeaveSkipsWeekendsAndHolidays(t *testing.T) {
	repo := newFakeLeaveRepo()
	// 2025-06-09 is a Monday holiday inside a Friday-to-Tuesday span.
	svc := newTestLeaveService(repo, []holiday.Holiday{
		{ID: "hol-1", Name: "Independence Day (moved)", Date: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), Type: holiday.TypeRegular},
	})

	created, err := svc.RequestLeave(context.Background(), leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "vacation",
		StartDate:  "2025-06-06",
		EndDate:    "2025-06-10",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, created.DaysCount)
	assert.Equal(t, string(leave.StatusPending), created.Status)
}

func TestRequestLeaveUnknownEmployee(t *testing.T) {
	svc := newTestLeaveService(newFakeLeaveRepo(), nil)

	_, err := svc.RequestLeave(context.Background(), leave.CreateLeaveRequest{
		EmployeeID: "ghost",
		LeaveType:  "sick",
		StartDate:  "2025-06-06",
		EndDate:    "2025-06-06",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestRejectLeaveOnlyWhenPending(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.requests["req-1"] = leave.Request{ID: "req-1", EmployeeID: "emp-1", Status: leave.StatusApproved}
	svc := newTestLeaveService(repo, nil)

	_, err := svc.RejectLeave(context.Background(), "req-1", "no coverage")
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestCancelLeavePending(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.requests["req-1"] = leave.Request{ID: "req-1", EmployeeID: "emp-1", Status: leave.StatusPending}
	svc := newTestLeaveService(repo, nil)

	cancelled, err := svc.CancelLeave(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusCancelled), cancelled.Status)
}

func TestGetBalanceAutoInitializes(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newTestLeaveService(repo, nil)

	balance, err := svc.GetBalance(context.Background(), "emp-1")
	require.NoError(t, err)

	assert.Equal(t, 2025, balance.Year)
	assert.Equal(t, AnnualSickCredits, balance.SickLeave.Balance)
	assert.Equal(t, AnnualVacationCredits, balance.VacationLeave.Balance)

	again, err := svc.GetBalance(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, balance, again)
}

func TestGetBalanceUnknownEmployee(t *testing.T) {
	svc := newTestLeaveService(newFakeLeaveRepo(), nil)

	_, err := svc.GetBalance(context.Background(), "ghost")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestInitializeBalanceConflict(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newTestLeaveService(repo, nil)

	_, err := svc.InitializeBalance(context.Background(), "emp-1", 2025)
	require.NoError(t, err)

	_, err = svc.InitializeBalance(context.Background(), "emp-1", 2025)
	assert.ErrorIs(t, err, leave.ErrBalanceExists)
}

func TestAssignCreditsClampsAtCap(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.balances["emp-1"] = leave.Balance{
		ID: "bal-emp-1", EmployeeID: "emp-1", Year: 2025,
		SickBalance: 28, VacationBalance: 10, Version: 1,
	}
	svc := newTestLeaveService(repo, nil)

	balance, err := svc.AssignCredits(context.Background(), leave.AssignCreditsRequest{
		EmployeeID: "emp-1",
		SickLeave:  5,
	})
	require.NoError(t, err)

	assert.Equal(t, MaxSickBalance, balance.SickLeave.Balance)
	assert.Equal(t, 10.0, balance.VacationLeave.Balance)
}

func TestAssignCreditsSurfacesConflict(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.balances["emp-1"] = leave.Balance{
		ID: "bal-emp-1", EmployeeID: "emp-1", Year: 2025,
		SickBalance: 10, VacationBalance: 10, Version: 1,
	}
	repo.updateBalanceErr = leave.ErrBalanceConflict
	svc := newTestLeaveService(repo, nil)

	_, err := svc.AssignCredits(context.Background(), leave.AssignCreditsRequest{
		EmployeeID: "emp-1",
		SickLeave:  1,
	})
	assert.ErrorIs(t, err, leave.ErrBalanceConflict)
}

func TestApproveLeaveDebitsBalance(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.requests["req-1"] = leave.Request{
		ID: "req-1", EmployeeID: "emp-1", Type: leave.TypeSick,
		DaysCount: 3, Status: leave.StatusPending,
	}
	repo.balances["emp-1"] = leave.Balance{
		ID: "bal-emp-1", EmployeeID: "emp-1", Year: 2025,
		SickBalance: 15, VacationBalance: 15, Version: 1,
	}
	svc := newTestLeaveService(repo, nil)

	approved, err := svc.ApproveLeave(context.Background(), "req-1")
	require.NoError(t, err)

	assert.Equal(t, string(leave.StatusApproved), approved.Status)
	require.NotNil(t, approved.ApprovedBy)

	balance := repo.balances["emp-1"]
	assert.Equal(t, 12.0, balance.SickBalance)
	assert.Equal(t, 3.0, balance.SickUsed)
	assert.Equal(t, int64(2), balance.Version)
}

func TestApproveLeaveInsufficientBalance(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.requests["req-1"] = leave.Request{
		ID: "req-1", EmployeeID: "emp-1", Type: leave.TypeVacation,
		DaysCount: 5, Status: leave.StatusPending,
	}
	repo.balances["emp-1"] = leave.Balance{
		ID: "bal-emp-1", EmployeeID: "emp-1", Year: 2025,
		SickBalance: 15, VacationBalance: 2, Version: 1,
	}
	svc := newTestLeaveService(repo, nil)

	_, err := svc.ApproveLeave(context.Background(), "req-1")
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	assert.Equal(t, leave.StatusPending, repo.requests["req-1"].Status)
	assert.Equal(t, 2.0, repo.balances["emp-1"].VacationBalance)
}

func TestApproveLeaveBalanceConflict(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.requests["req-1"] = leave.Request{
		ID: "req-1", EmployeeID: "emp-1", Type: leave.TypeSick,
		DaysCount: 1, Status: leave.StatusPending,
	}
	repo.balances["emp-1"] = leave.Balance{
		ID: "bal-emp-1", EmployeeID: "emp-1", Year: 2025,
		SickBalance: 15, VacationBalance: 15, Version: 1,
	}
	repo.updateBalanceErr = leave.ErrBalanceConflict
	svc := newTestLeaveService(repo, nil)

	_, err := svc.ApproveLeave(context.Background(), "req-1")
	assert.ErrorIs(t, err, leave.ErrBalanceConflict)
	assert.Equal(t, leave.StatusPending, repo.requests["req-1"].Status)
}

func TestCancelApprovedRestoresBalance(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.requests["req-1"] = leave.Request{
		ID: "req-1", EmployeeID: "emp-1", Type: leave.TypeSick,
		DaysCount: 3, Status: leave.StatusPending,
	}
	repo.balances["emp-1"] = leave.Balance{
		ID: "bal-emp-1", EmployeeID: "emp-1", Year: 2025,
		SickBalance: 15, VacationBalance: 15, Version: 1,
	}
	svc := newTestLeaveService(repo, nil)

	_, err := svc.ApproveLeave(context.Background(), "req-1")
	require.NoError(t, err)

	cancelled, err := svc.CancelLeave(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusCancelled), cancelled.Status)

	balance := repo.balances["emp-1"]
	assert.Equal(t, 15.0, balance.SickBalance)
	assert.Equal(t, 0.0, balance.SickUsed)
}

func TestCancelApprovedUnbalancedSkipsBalance(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.requests["req-1"] = leave.Request{
		ID: "req-1", EmployeeID: "emp-1", Type: leave.TypeUnpaid,
		DaysCount: 4, Status: leave.StatusApproved,
	}
	svc := newTestLeaveService(repo, nil)

	cancelled, err := svc.CancelLeave(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusCancelled), cancelled.Status)
	assert.Empty(t, repo.balances)
}

func TestCancelProcessedRejected(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.requests["req-1"] = leave.Request{ID: "req-1", EmployeeID: "emp-1", Status: leave.StatusRejected}
	svc := newTestLeaveService(repo, nil)

	_, err := svc.CancelLeave(context.Background(), "req-1")
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}
