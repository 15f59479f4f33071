package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkingDaysBetweenSkipsWeekendAndHoliday(t *testing.T) {
	// Fri Jun 13 .. Tue Jun 17 2025, with Mon Jun 16 a holiday:
	// Fri + Tue = 2 working days.
	days := WorkingDaysBetween(
		date(2025, time.June, 13),
		date(2025, time.June, 17),
		map[string]bool{"2025-06-16": true},
	)
	assert.Equal(t, 2, days)
}

func TestWorkingDaysBetweenFullWeek(t *testing.T) {
	// Mon .. Fri, no holidays.
	days := WorkingDaysBetween(date(2025, time.June, 2), date(2025, time.June, 6), nil)
	assert.Equal(t, 5, days)
}

func TestWorkingDaysBetweenInvertedRange(t *testing.T) {
	days := WorkingDaysBetween(date(2025, time.June, 6), date(2025, time.June, 2), nil)
	assert.Equal(t, 0, days)
}

func TestProratedGrantFullYear(t *testing.T) {
	grant := ProratedGrant(AnnualSickCredits, date(2024, time.March, 1), 2025)
	assert.Equal(t, 15.0, grant)
}

func TestProratedGrantMidYear(t *testing.T) {
	// Hired July 1 2025: 184 days remaining of 365.
	grant := ProratedGrant(AnnualSickCredits, date(2025, time.July, 1), 2025)
	assert.Equal(t, 7.6, grant)
}

func TestProratedGrantHiredAfterYear(t *testing.T) {
	grant := ProratedGrant(AnnualSickCredits, date(2026, time.February, 1), 2025)
	assert.Equal(t, 0.0, grant)
}

func TestSufficientBalancedTypes(t *testing.T) {
	b := leave.Balance{SickBalance: 3, VacationBalance: 0}

	assert.True(t, Sufficient(b, leave.TypeSick, 3))
	assert.False(t, Sufficient(b, leave.TypeSick, 4))
	assert.False(t, Sufficient(b, leave.TypeVacation, 1))
	// Non-balanced types never check balance.
	assert.True(t, Sufficient(b, leave.TypeUnpaid, 100))
	assert.True(t, Sufficient(b, leave.TypeMaternity, 100))
}

func TestDebitConservesTotal(t *testing.T) {
	b := leave.Balance{SickBalance: 15, SickUsed: 0}
	after := Debit(b, leave.TypeSick, 4)

	assert.Equal(t, 11.0, after.SickBalance)
	assert.Equal(t, 4.0, after.SickUsed)
	assert.Equal(t, b.SickBalance+b.SickUsed, after.SickBalance+after.SickUsed)
}

func TestRefundReversesDebit(t *testing.T) {
	before := leave.Balance{SickBalance: 15, VacationBalance: 15}

	after := Refund(Debit(before, leave.TypeSick, 3), leave.TypeSick, 3)
	assert.Equal(t, before, after)
}

func TestRefundIgnoresCap(t *testing.T) {
	b := leave.Balance{SickBalance: 30, SickUsed: 3}

	b = Refund(b, leave.TypeSick, 3)
	assert.Equal(t, 33.0, b.SickBalance)
	assert.Equal(t, 0.0, b.SickUsed)
}

func TestCreditClampsAtCap(t *testing.T) {
	b := leave.Balance{SickBalance: 28, VacationBalance: 10}
	after := Credit(b, 5, 5)

	assert.Equal(t, 30.0, after.SickBalance)
	assert.Equal(t, 15.0, after.VacationBalance)
}

func TestAnnualResetCarriesOverWithCap(t *testing.T) {
	b := leave.Balance{
		Year:            2024,
		SickBalance:     20,
		VacationBalance: 5,
		SickUsed:        10,
		VacationUsed:    12,
	}
	after := AnnualReset(b, 2025)

	assert.Equal(t, 2025, after.Year)
	// 20 + 15 clamps to 30; 5 + 15 = 20.
	assert.Equal(t, 30.0, after.SickBalance)
	assert.Equal(t, 20.0, after.VacationBalance)
	assert.Equal(t, 0.0, after.SickUsed)
	assert.Equal(t, 0.0, after.VacationUsed)
}
