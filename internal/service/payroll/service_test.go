package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suweldo/payroll-backend-go/internal/domain/attendance"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/payroll"
	"github.com/suweldo/payroll-backend-go/internal/pkg/clock"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
	"github.com/suweldo/payroll-backend-go/internal/pkg/identity"
)

type fakePayrollRepo struct {
	runs          map[string]payroll.Run
	entries       map[string]payroll.Entry
	contributions []payroll.Contributions
	updateCalls   int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		runs:    map[string]payroll.Run{},
		entries: map[string]payroll.Entry{},
	}
}

func (f *fakePayrollRepo) CreateRun(_ context.Context, run payroll.Run) (payroll.Run, error) {
	f.runs[run.ID] = run
	return run, nil
}

func (f *fakePayrollRepo) GetRunByID(_ context.Context, id string) (payroll.Run, error) {
	run, ok := f.runs[id]
	if !ok {
		return payroll.Run{}, payroll.ErrRunNotFound
	}
	return run, nil
}

func (f *fakePayrollRepo) ListRuns(_ context.Context, _ payroll.RunFilter) ([]payroll.Run, error) {
	var out []payroll.Run
	for _, r := range f.runs {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakePayrollRepo) UpdateRun(_ context.Context, run payroll.Run) (payroll.Run, error) {
	f.runs[run.ID] = run
	return run, nil
}

func (f *fakePayrollRepo) CreateEntry(_ context.Context, entry payroll.Entry) (payroll.Entry, error) {
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakePayrollRepo) GetEntryByID(_ context.Context, id string) (payroll.Entry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return payroll.Entry{}, payroll.ErrEntryNotFound
	}
	return entry, nil
}

func (f *fakePayrollRepo) GetEntryByRunEmployee(_ context.Context, runID, employeeID string) (payroll.Entry, error) {
	for _, e := range f.entries {
		if e.PayrollRunID == runID && e.EmployeeID == employeeID {
			return e, nil
		}
	}
	return payroll.Entry{}, payroll.ErrEntryNotFound
}

func (f *fakePayrollRepo) ListEntries(_ context.Context, _ payroll.EntryFilter) ([]payroll.Entry, error) {
	var out []payroll.Entry
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakePayrollRepo) UpdateEntry(_ context.Context, entry payroll.Entry) (payroll.Entry, error) {
	f.updateCalls++
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakePayrollRepo) FinalizeEntriesByRun(_ context.Context, runID string) error {
	for id, e := range f.entries {
		if e.PayrollRunID == runID {
			e.IsFinalized = true
			f.entries[id] = e
		}
	}
	return nil
}

func (f *fakePayrollRepo) CreateContributions(_ context.Context, c payroll.Contributions) (payroll.Contributions, error) {
	f.contributions = append(f.contributions, c)
	return c, nil
}

func (f *fakePayrollRepo) GetContributionsByEntry(_ context.Context, _ string) (payroll.Contributions, error) {
	return payroll.Contributions{}, payroll.ErrContributionsNotFound
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func seedEntry(repo *fakePayrollRepo) payroll.Entry {
	entry := payroll.Entry{
		ID:           "entry-1",
		PayrollRunID: "run-1",
		EmployeeID:   "emp-1",
		EmployeeName: "Maria Santos",
		BasePay:      dec("20000"),
		Deductions:   map[string]decimal.Decimal{"sss": dec("500")},
		Gross:        dec("20000.00"),
		Net:          dec("19500.00"),
		Version:      1,
	}
	repo.entries[entry.ID] = entry
	return entry
}

func newTestService(repo *fakePayrollRepo, now time.Time) *PayrollServiceImpl {
	return newTestServiceWith(repo, nil, nil, now)
}

func newTestServiceWith(repo *fakePayrollRepo, roster employee.EmployeeRepository, composer *Composer, now time.Time) *PayrollServiceImpl {
	svc := NewPayrollService(nil, repo, roster, composer, clock.Fixed(now)).(*PayrollServiceImpl)
	svc.runTx = func(_ context.Context, _ *database.DB, fn func(pgx.Tx) error) error {
		return fn(nil)
	}
	return svc
}

func TestUpdateEntryVersionAndHistory(t *testing.T) {
	repo := newFakePayrollRepo()
	seedEntry(repo)
	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	newBase := dec("22000")
	updated, err := svc.UpdateEntry(context.Background(), "entry-1", payroll.UpdateEntryRequest{
		BasePay: &newBase,
		Bonuses: map[string]decimal.Decimal{"13th_month": dec("1000")},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, "23000.00", updated.Gross.StringFixed(2))
	assert.Equal(t, "22500.00", updated.Net.StringFixed(2))

	require.Len(t, updated.EditHistory, 1)
	record := updated.EditHistory[0]
	assert.Equal(t, now, record.Timestamp)
	assert.Equal(t, identity.SystemActor, record.EditedBy)
	assert.Contains(t, record.Changes, "base_pay")
	assert.Contains(t, record.Changes, "bonuses")
	assert.Equal(t, 1, repo.updateCalls)
}

func TestUpdateEntrySecondEditAppendsHistory(t *testing.T) {
	repo := newFakePayrollRepo()
	seedEntry(repo)
	svc := newTestService(repo, time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC))

	first := dec("21000")
	_, err := svc.UpdateEntry(context.Background(), "entry-1", payroll.UpdateEntryRequest{BasePay: &first})
	require.NoError(t, err)

	second := dec("22000")
	updated, err := svc.UpdateEntry(context.Background(), "entry-1", payroll.UpdateEntryRequest{BasePay: &second})
	require.NoError(t, err)

	assert.Equal(t, 3, updated.Version)
	assert.Len(t, updated.EditHistory, 2)
}

func TestUpdateEntryFinalized(t *testing.T) {
	repo := newFakePayrollRepo()
	entry := seedEntry(repo)
	entry.IsFinalized = true
	repo.entries[entry.ID] = entry
	svc := newTestService(repo, time.Now())

	newBase := dec("25000")
	_, err := svc.UpdateEntry(context.Background(), "entry-1", payroll.UpdateEntryRequest{BasePay: &newBase})
	assert.ErrorIs(t, err, payroll.ErrEntryFinalized)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestUpdateEntryNoChanges(t *testing.T) {
	repo := newFakePayrollRepo()
	seedEntry(repo)
	svc := newTestService(repo, time.Now())

	sameBase := dec("20000")
	updated, err := svc.UpdateEntry(context.Background(), "entry-1", payroll.UpdateEntryRequest{BasePay: &sameBase})
	require.NoError(t, err)

	assert.Equal(t, 1, updated.Version)
	assert.Empty(t, updated.EditHistory)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestUpdateEntryNegativeRejected(t *testing.T) {
	repo := newFakePayrollRepo()
	seedEntry(repo)
	svc := newTestService(repo, time.Now())

	negative := dec("-1")
	_, err := svc.UpdateEntry(context.Background(), "entry-1", payroll.UpdateEntryRequest{BasePay: &negative})
	assert.Error(t, err)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestUpdateEntryNotFound(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := newTestService(repo, time.Now())

	newBase := dec("100")
	_, err := svc.UpdateEntry(context.Background(), "missing", payroll.UpdateEntryRequest{BasePay: &newBase})
	assert.ErrorIs(t, err, payroll.ErrEntryNotFound)
}

func TestCalculateInvalidPeriod(t *testing.T) {
	svc := newTestService(newFakePayrollRepo(), time.Now())

	start := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.CalculateForEmployee(context.Background(), "emp-1", start, end)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestGenerateEntriesRecordsPerEmployeeErrors(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.runs["run-1"] = payroll.Run{
		ID:        "run-1",
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Status:    payroll.RunStatusDraft,
	}

	// Active roster and calculation inputs come from different sources,
	// so a roster entry the calculation cannot resolve fails per
	// employee instead of aborting the run.
	roster := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-a": {ID: "emp-a", Name: "Ana Reyes", Status: employee.StatusActive},
		"emp-b": {ID: "emp-b", Name: "Ben Ocampo", Status: employee.StatusActive},
	}}
	composer := newTestComposer(map[string]employee.Employee{}, nil, nil)

	svc := newTestServiceWith(repo, roster, composer, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

	result, err := svc.GenerateEntries(context.Background(), "run-1")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Count)
	require.Len(t, result.Errors, 2)
	for _, genErr := range result.Errors {
		assert.Contains(t, []string{"emp-a", "emp-b"}, genErr.EmployeeID)
		assert.NotEmpty(t, genErr.Error)
	}
}

func TestGenerateEntriesRunNotFound(t *testing.T) {
	svc := newTestService(newFakePayrollRepo(), time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.GenerateEntries(context.Background(), "missing")
	assert.ErrorIs(t, err, payroll.ErrRunNotFound)
}

func TestGenerateEntriesPersistsEntryAndContributions(t *testing.T) {
	repo := newFakePayrollRepo()
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	repo.runs["run-1"] = payroll.Run{ID: "run-1", StartDate: start, EndDate: end, Status: payroll.RunStatusDraft}

	emp := employee.Employee{
		ID:         "emp-1",
		Name:       "Maria Santos",
		SalaryType: employee.SalaryTypeMonthly,
		SalaryRate: decimal.NewFromInt(30000),
		Status:     employee.StatusActive,
	}
	employees := map[string]employee.Employee{"emp-1": emp}
	records := []attendance.Record{
		presentDay("emp-1", start.AddDate(0, 0, 2), 8),
		presentDay("emp-1", start.AddDate(0, 0, 3), 8),
	}

	svc := newTestServiceWith(repo, &fakeEmployeeRepo{employees: employees},
		newTestComposer(employees, records, nil), time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))

	result, err := svc.GenerateEntries(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Empty(t, result.Errors)

	entry, err := repo.GetEntryByRunEmployee(context.Background(), "run-1", "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "30000.00", entry.Gross.StringFixed(2))
	assert.Equal(t, "27605.01", entry.Net.StringFixed(2))
	assert.Equal(t, 1, entry.Version)

	require.Len(t, repo.contributions, 1)
	contrib := repo.contributions[0]
	assert.Equal(t, "emp-1", contrib.EmployeeID)
	assert.Equal(t, "500.00", contrib.SSSEmployee.StringFixed(2))
	assert.Equal(t, "1200.00", contrib.TotalEmployee.StringFixed(2))
}
