package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suweldo/payroll-backend-go/internal/domain/attendance"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/holiday"
	"github.com/suweldo/payroll-backend-go/internal/service/contribution"
	"github.com/suweldo/payroll-backend-go/internal/service/tax"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		out = append(out, emp)
	}
	return out, nil
}

type fakeAttendanceRepo struct {
	records []attendance.Record
}

func (f *fakeAttendanceRepo) Create(_ context.Context, r attendance.Record) (attendance.Record, error) {
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Record, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeDate(_ context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.Date.Equal(date) {
			return r, nil
		}
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) ListByEmployeeRange(_ context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.records {
		if r.EmployeeID == employeeID && !r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.ListFilter) ([]attendance.Record, int64, error) {
	return f.records, int64(len(f.records)), nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, r attendance.Record) (attendance.Record, error) {
	return r, nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeHolidayRepo struct {
	holidays map[string]holiday.Holiday // keyed by ID
}

func (f *fakeHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	f.holidays[h.ID] = h
	return h, nil
}

func (f *fakeHolidayRepo) GetByID(_ context.Context, id string) (holiday.Holiday, error) {
	h, ok := f.holidays[id]
	if !ok {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
}

func (f *fakeHolidayRepo) GetByDate(_ context.Context, date time.Time) (holiday.Holiday, error) {
	for _, h := range f.holidays {
		if h.Date.Equal(date) {
			return h, nil
		}
	}
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) ListRange(_ context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.holidays {
		if !h.Date.Before(start) && !h.Date.After(end) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHolidayRepo) ListRecurring(_ context.Context) ([]holiday.Holiday, error) {
	return nil, nil
}

func (f *fakeHolidayRepo) List(_ context.Context) ([]holiday.Holiday, error) { return nil, nil }

func (f *fakeHolidayRepo) Update(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	return h, nil
}

func (f *fakeHolidayRepo) Delete(_ context.Context, _ string) error { return nil }

func newTestComposer(employees map[string]employee.Employee, records []attendance.Record, holidays map[string]holiday.Holiday) *Composer {
	if holidays == nil {
		holidays = map[string]holiday.Holiday{}
	}
	return NewComposer(
		&fakeEmployeeRepo{employees: employees},
		&fakeAttendanceRepo{records: records},
		&fakeHolidayRepo{holidays: holidays},
		contribution.NewCalculator(nil),
		tax.NewCalculator(nil),
	)
}

func presentDay(employeeID string, date time.Time, hours float64) attendance.Record {
	in := "08:00"
	out := "17:00"
	return attendance.Record{
		ID:           employeeID + date.Format("20060102"),
		EmployeeID:   employeeID,
		Date:         date,
		TimeIn:       &in,
		TimeOut:      &out,
		Status:       attendance.StatusPresent,
		RegularHours: hours,
	}
}

func TestCalculateMonthlyFullMonth(t *testing.T) {
	emp := employee.Employee{
		ID:         "emp-1",
		Name:       "Maria Santos",
		SalaryType: employee.SalaryTypeMonthly,
		SalaryRate: decimal.NewFromInt(30000),
		Status:     employee.StatusActive,
	}
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)

	records := []attendance.Record{
		presentDay("emp-1", start.AddDate(0, 0, 2), 8),
		presentDay("emp-1", start.AddDate(0, 0, 3), 8),
	}

	c := newTestComposer(map[string]employee.Employee{"emp-1": emp}, records, nil)
	res, err := c.CalculateForEmployee(context.Background(), "emp-1", start, end)
	require.NoError(t, err)

	// 30 calendar days at 30000/30 per day.
	assert.Equal(t, "30000.00", res.BasePay.StringFixed(2))
	assert.Equal(t, "30000.00", res.Gross.StringFixed(2))

	assert.Equal(t, "500.00", res.Deductions["sss"].StringFixed(2))
	assert.Equal(t, "600.00", res.Deductions["philhealth"].StringFixed(2))
	assert.Equal(t, "100.00", res.Deductions["pagibig"].StringFixed(2))
	assert.Equal(t, "1194.99", res.Deductions["withholding_tax"].StringFixed(2))
	assert.Equal(t, "27605.01", res.Net.StringFixed(2))
}

func TestCalculateEmployeeNotFound(t *testing.T) {
	c := newTestComposer(map[string]employee.Employee{}, nil, nil)

	_, err := c.CalculateForEmployee(context.Background(),
		"ghost",
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
	)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCalculateZeroRateRejected(t *testing.T) {
	emp := employee.Employee{
		ID:         "emp-9",
		Name:       "Rico Blanco",
		SalaryType: employee.SalaryTypeMonthly,
		SalaryRate: decimal.Zero,
		Status:     employee.StatusActive,
	}
	c := newTestComposer(map[string]employee.Employee{"emp-9": emp}, nil, nil)

	_, err := c.CalculateForEmployee(context.Background(),
		"emp-9",
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
	)
	assert.ErrorIs(t, err, employee.ErrInvalidRate)
}

func TestCalculateHolidayExclusivity(t *testing.T) {
	emp := employee.Employee{
		ID:         "emp-2",
		Name:       "Jose Cruz",
		SalaryType: employee.SalaryTypeHourly,
		SalaryRate: decimal.NewFromInt(100),
		Status:     employee.StatusActive,
	}

	start := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC)
	holidayDate := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)

	holidayID := "hol-1"
	workedHoliday := presentDay("emp-2", holidayDate, 8)
	workedHoliday.IsHoliday = true
	workedHoliday.HolidayID = &holidayID

	records := []attendance.Record{
		presentDay("emp-2", start, 8),
		workedHoliday,
	}
	holidays := map[string]holiday.Holiday{
		holidayID: {ID: holidayID, Name: "Independence Day", Date: holidayDate, Type: holiday.TypeRegular},
	}

	c := newTestComposer(map[string]employee.Employee{"emp-2": emp}, records, holidays)
	res, err := c.CalculateForEmployee(context.Background(), "emp-2", start, end)
	require.NoError(t, err)

	// The worked holiday's 8 hours are paid as double-pay premium,
	// never as regular hourly base pay.
	assert.Equal(t, 8.0, res.RegularHours)
	assert.Equal(t, "800.00", res.BasePay.StringFixed(2))
	assert.Equal(t, "1600.00", res.HolidayPay.StringFixed(2))
	assert.Equal(t, "2400.00", res.Gross.StringFixed(2))
}

func TestCalculateDailyWithAbsence(t *testing.T) {
	emp := employee.Employee{
		ID:         "emp-3",
		Name:       "Ana Reyes",
		SalaryType: employee.SalaryTypeDaily,
		SalaryRate: decimal.NewFromInt(1000),
		Status:     employee.StatusActive,
		Allowances: map[string]decimal.Decimal{"meal": decimal.NewFromInt(500)},
	}

	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	records := []attendance.Record{
		presentDay("emp-3", start, 8),
		presentDay("emp-3", start.AddDate(0, 0, 1), 8),
		presentDay("emp-3", start.AddDate(0, 0, 2), 8),
		presentDay("emp-3", start.AddDate(0, 0, 3), 8),
		{
			ID:              "absent-1",
			EmployeeID:      "emp-3",
			Date:            start.AddDate(0, 0, 4),
			Status:          attendance.StatusAbsent,
			AbsentDeduction: decimal.NewFromInt(1000),
		},
	}

	c := newTestComposer(map[string]employee.Employee{"emp-3": emp}, records, nil)
	res, err := c.CalculateForEmployee(context.Background(), "emp-3", start, end)
	require.NoError(t, err)

	assert.Equal(t, 4, res.WorkDays)
	assert.Equal(t, 1, res.AbsentDays)
	assert.Equal(t, "4000.00", res.BasePay.StringFixed(2))

	// One absence prorates every allowance by workDays/periodDays.
	assert.Equal(t, "200.00", res.Allowances["meal"].StringFixed(2))
	assert.Equal(t, "1000.00", res.Deductions["absent"].StringFixed(2))
	assert.Equal(t, "4200.00", res.Gross.StringFixed(2))
	assert.Equal(t, "2220.00", res.Net.StringFixed(2))
}

func TestCalculateNetReconciliation(t *testing.T) {
	emp := employee.Employee{
		ID:         "emp-4",
		Name:       "Carlo Dizon",
		SalaryType: employee.SalaryTypeMonthly,
		SalaryRate: decimal.NewFromInt(45000),
		Status:     employee.StatusActive,
		Taxes:      map[string]decimal.Decimal{"hmo": decimal.NewFromInt(750)},
	}
	start := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.July, 31, 0, 0, 0, 0, time.UTC)

	c := newTestComposer(map[string]employee.Employee{"emp-4": emp}, []attendance.Record{
		presentDay("emp-4", start, 8),
	}, nil)
	res, err := c.CalculateForEmployee(context.Background(), "emp-4", start, end)
	require.NoError(t, err)

	total := decimal.Zero
	for _, amount := range res.Deductions {
		total = total.Add(amount)
	}
	assert.True(t, res.Net.Equal(res.Gross.Sub(total).Round(2)))
	assert.Equal(t, "750", res.Deductions["hmo"].String())
}

func TestCalculateDeterministic(t *testing.T) {
	emp := employee.Employee{
		ID:         "emp-5",
		Name:       "Liza Torres",
		SalaryType: employee.SalaryTypeDaily,
		SalaryRate: decimal.NewFromFloat(987.65),
		Status:     employee.StatusActive,
		Allowances: map[string]decimal.Decimal{"transport": decimal.NewFromInt(300)},
	}
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	records := []attendance.Record{
		presentDay("emp-5", start, 8),
		presentDay("emp-5", start.AddDate(0, 0, 1), 8),
	}

	c := newTestComposer(map[string]employee.Employee{"emp-5": emp}, records, nil)

	first, err := c.CalculateForEmployee(context.Background(), "emp-5", start, end)
	require.NoError(t, err)
	second, err := c.CalculateForEmployee(context.Background(), "emp-5", start, end)
	require.NoError(t, err)

	assert.Equal(t, first.Gross.String(), second.Gross.String())
	assert.Equal(t, first.Net.String(), second.Net.String())
	assert.Equal(t, first.Deductions["withholding_tax"].String(), second.Deductions["withholding_tax"].String())
}
