package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/domain/attendance"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/holiday"
	"github.com/suweldo/payroll-backend-go/internal/domain/payroll"
	"github.com/suweldo/payroll-backend-go/internal/service/contribution"
	holidaysvc "github.com/suweldo/payroll-backend-go/internal/service/holiday"
	"github.com/suweldo/payroll-backend-go/internal/service/tax"
)

// Composer assembles one employee's payroll for one period from
// attendance, holiday, contribution and tax results. Aside from
// repository reads the computation is pure: identical inputs produce
// identical entries.
type Composer struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	holidayRepo    holiday.HolidayRepository
	contributions  *contribution.Calculator
	tax            *tax.Calculator
}

func NewComposer(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	holidayRepo holiday.HolidayRepository,
	contributions *contribution.Calculator,
	taxCalc *tax.Calculator,
) *Composer {
	return &Composer{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		holidayRepo:    holidayRepo,
		contributions:  contributions,
		tax:            taxCalc,
	}
}

// periodTotals accumulates the attendance sweep over one period.
type periodTotals struct {
	regularHours    float64
	overtimeHours   float64
	nightshiftHours float64

	// Days paid at the daily rate. Excludes absences and
	// holiday-flagged days, whose hours are paid as holiday premium
	// instead. Approved-leave days stay payable.
	baseDays int

	// Days with any attendance other than absent, for allowance
	// proration.
	workDays   int
	absentDays int

	lateDeduction      decimal.Decimal
	undertimeDeduction decimal.Decimal
	absentDeduction    decimal.Decimal

	holidayPay         decimal.Decimal
	holidayOvertimePay decimal.Decimal
}

// CalculateForEmployee computes the full payroll breakdown for one
// employee over [periodStart, periodEnd], without persisting anything.
func (c *Composer) CalculateForEmployee(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (payroll.CalculationResult, error) {
	emp, err := c.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.CalculationResult{}, err
		}
		return payroll.CalculationResult{}, fmt.Errorf("failed to get employee: %w", err)
	}

	// Every pay figure derives from the salary rate, so a zero or
	// negative rate poisons the whole breakdown.
	if emp.SalaryRate.Sign() <= 0 {
		return payroll.CalculationResult{}, employee.ErrInvalidRate
	}

	records, err := c.attendanceRepo.ListByEmployeeRange(ctx, employeeID, periodStart, periodEnd)
	if err != nil {
		return payroll.CalculationResult{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	totals, err := c.sweepAttendance(ctx, emp, records)
	if err != nil {
		return payroll.CalculationResult{}, err
	}

	periodDays := int(periodEnd.Sub(periodStart).Hours()/24) + 1

	basePay := c.basePay(emp, totals, periodDays)
	overtimePay := decimal.NewFromFloat(totals.overtimeHours).Mul(emp.EffectiveOvertimeRate()).Round(2)
	nightshiftPay := decimal.NewFromFloat(totals.nightshiftHours).Mul(emp.EffectiveNightshiftRate()).Round(2)

	allowances := prorateAllowances(emp.Allowances, totals.absentDays, totals.workDays, periodDays)

	monthlyEquivalent := emp.MonthlyEquivalent().Round(2)
	year := periodStart.Year()

	breakdown, err := c.contributions.Calculate(ctx, monthlyEquivalent, year)
	if err != nil {
		return payroll.CalculationResult{}, err
	}

	gross := basePay.
		Add(overtimePay).
		Add(nightshiftPay).
		Add(totals.holidayPay).
		Add(totals.holidayOvertimePay).
		Add(sumMap(allowances)).
		Add(sumMap(emp.Benefits)).
		Round(2)

	withholdingTax, err := c.tax.Calculate(ctx, gross, breakdown.TotalEmployee, year)
	if err != nil {
		return payroll.CalculationResult{}, err
	}

	deductions := map[string]decimal.Decimal{
		"sss":             breakdown.SSS.Employee,
		"philhealth":      breakdown.PhilHealth.Employee,
		"pagibig":         breakdown.PagIBIG.Employee,
		"late":            totals.lateDeduction.Round(2),
		"absent":          totals.absentDeduction.Round(2),
		"undertime":       totals.undertimeDeduction.Round(2),
		"withholding_tax": withholdingTax,
	}
	// Custom per-employee deductions merge last. A custom key reusing a
	// reserved name overwrites the computed value.
	for name, amount := range emp.Taxes {
		deductions[name] = amount
	}

	net := gross.Sub(sumMap(deductions)).Round(2)

	return payroll.CalculationResult{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,

		WorkDays:   totals.workDays,
		AbsentDays: totals.absentDays,

		RegularHours:    totals.regularHours,
		OvertimeHours:   totals.overtimeHours,
		NightshiftHours: totals.nightshiftHours,

		BasePay:            basePay,
		OvertimePay:        overtimePay,
		NightshiftPay:      nightshiftPay,
		HolidayPay:         totals.holidayPay.Round(2),
		HolidayOvertimePay: totals.holidayOvertimePay.Round(2),

		Allowances: allowances,
		Benefits:   emp.Benefits,
		Deductions: deductions,

		Gross: gross,
		Net:   net,

		MonthlySalaryEquivalent: monthlyEquivalent,
		Contributions:           breakdown,
		WithholdingTax:          withholdingTax,
	}, nil
}

// sweepAttendance folds the period's records into totals. Hours on
// holiday-flagged days are paid through the holiday premium and never
// through regular pay.
func (c *Composer) sweepAttendance(ctx context.Context, emp employee.Employee, records []attendance.Record) (periodTotals, error) {
	totals := periodTotals{
		lateDeduction:      decimal.Zero,
		undertimeDeduction: decimal.Zero,
		absentDeduction:    decimal.Zero,
		holidayPay:         decimal.Zero,
		holidayOvertimePay: decimal.Zero,
	}

	for _, record := range records {
		totals.lateDeduction = totals.lateDeduction.Add(record.LateDeduction)
		totals.undertimeDeduction = totals.undertimeDeduction.Add(record.UndertimeDeduction)
		totals.absentDeduction = totals.absentDeduction.Add(record.AbsentDeduction)

		if record.Status == attendance.StatusAbsent {
			totals.absentDays++
			if record.IsHoliday {
				if err := c.applyHoliday(ctx, emp, record, false, &totals); err != nil {
					return totals, err
				}
			}
			continue
		}

		totals.workDays++

		if record.Status == attendance.StatusOnLeave {
			// Paid leave keeps the day payable but contributes no hours.
			if record.IsHoliday {
				if err := c.applyHoliday(ctx, emp, record, false, &totals); err != nil {
					return totals, err
				}
				continue
			}
			totals.baseDays++
			continue
		}

		if record.IsHoliday {
			if err := c.applyHoliday(ctx, emp, record, true, &totals); err != nil {
				return totals, err
			}
			continue
		}

		totals.baseDays++
		totals.regularHours += record.RegularHours
		totals.overtimeHours += record.OvertimeHours
		totals.nightshiftHours += record.NightshiftHours
	}

	return totals, nil
}

func (c *Composer) applyHoliday(ctx context.Context, emp employee.Employee, record attendance.Record, worked bool, totals *periodTotals) error {
	h, err := c.lookupHoliday(ctx, record)
	if err != nil {
		return err
	}

	res := holidaysvc.Pay(holidaysvc.PayInput{
		Type:          h.Type,
		Worked:        worked,
		DailyRate:     emp.DailyRate(),
		HourlyRate:    emp.HourlyRate(),
		OvertimeHours: decimal.NewFromFloat(record.OvertimeHours),
	})

	totals.holidayPay = totals.holidayPay.Add(res.HolidayPay)
	totals.holidayOvertimePay = totals.holidayOvertimePay.Add(res.HolidayOvertimePay)

	if worked {
		// Night differential still applies on a worked holiday.
		totals.nightshiftHours += record.NightshiftHours
	}
	return nil
}

func (c *Composer) lookupHoliday(ctx context.Context, record attendance.Record) (holiday.Holiday, error) {
	if record.HolidayID != nil {
		h, err := c.holidayRepo.GetByID(ctx, *record.HolidayID)
		if err == nil {
			return h, nil
		}
		if !errors.Is(err, holiday.ErrHolidayNotFound) {
			return holiday.Holiday{}, fmt.Errorf("failed to get holiday: %w", err)
		}
	}

	h, err := c.holidayRepo.GetByDate(ctx, record.Date)
	if err != nil {
		if errors.Is(err, holiday.ErrHolidayNotFound) {
			return holiday.Holiday{}, fmt.Errorf("attendance %s flagged holiday but no holiday exists for %s", record.ID, record.Date.Format("2006-01-02"))
		}
		return holiday.Holiday{}, fmt.Errorf("failed to get holiday by date: %w", err)
	}
	return h, nil
}

// basePay follows the employee's compensation basis. Monthly salaries
// cover the calendar period regardless of attendance; absences are
// charged separately through the absent deduction.
func (c *Composer) basePay(emp employee.Employee, totals periodTotals, periodDays int) decimal.Decimal {
	switch emp.SalaryType {
	case employee.SalaryTypeHourly:
		return decimal.NewFromFloat(totals.regularHours).Mul(emp.SalaryRate).Round(2)
	case employee.SalaryTypeDaily:
		return decimal.NewFromInt(int64(totals.baseDays)).Mul(emp.SalaryRate).Round(2)
	case employee.SalaryTypeMonthly:
		return emp.SalaryRate.Div(decimal.NewFromInt(30)).Mul(decimal.NewFromInt(int64(periodDays))).Round(2)
	}
	return decimal.Zero
}

// prorateAllowances pays allowances in full for a period without
// absences; otherwise every line scales by workDays/periodDays.
func prorateAllowances(allowances map[string]decimal.Decimal, absentDays, workDays, periodDays int) map[string]decimal.Decimal {
	if len(allowances) == 0 {
		return map[string]decimal.Decimal{}
	}

	prorated := make(map[string]decimal.Decimal, len(allowances))
	if absentDays == 0 {
		for name, amount := range allowances {
			prorated[name] = amount.Round(2)
		}
		return prorated
	}

	factor := decimal.NewFromInt(int64(workDays)).Div(decimal.NewFromInt(int64(periodDays)))
	for name, amount := range allowances {
		prorated[name] = amount.Mul(factor).Round(2)
	}
	return prorated
}

func sumMap(m map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range m {
		total = total.Add(amount)
	}
	return total
}
