package leave

import (
	"math"
	"time"

	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
)

const (
	// Annual grant per leave type, in days.
	AnnualSickCredits     = 15.0
	AnnualVacationCredits = 15.0

	// Balances never accumulate past this cap, including carry-over and
	// manual credit assignments.
	MaxSickBalance     = 30.0
	MaxVacationBalance = 30.0
)

// WorkingDaysBetween counts weekdays in [start, end] that are not in
// the holiday set. Keys in holidays are YYYY-MM-DD.
func WorkingDaysBetween(start, end time.Time, holidays map[string]bool) int {
	if end.Before(start) {
		return 0
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if holidays[d.Format("2006-01-02")] {
			continue
		}
		days++
	}
	return days
}

// ProratedGrant scales the annual credit grant by the fraction of the
// year remaining from hireDate, rounded to one decimal. Hires on or
// before January 1 receive the full grant.
func ProratedGrant(annual float64, hireDate time.Time, year int) float64 {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !hireDate.After(yearStart) {
		return annual
	}

	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	if hireDate.After(yearEnd) {
		return 0
	}

	daysRemaining := yearEnd.Sub(hireDate).Hours()/24 + 1
	factor := daysRemaining / 365
	return math.Round(annual*factor*10) / 10
}

// Sufficient reports whether the balance can cover days of the given
// leave type. Non-balanced types are always sufficient.
func Sufficient(b leave.Balance, t leave.Type, days int) bool {
	switch t {
	case leave.TypeSick:
		return b.SickBalance >= float64(days)
	case leave.TypeVacation:
		return b.VacationBalance >= float64(days)
	}
	return true
}

// Debit moves days from balance to used for a balanced leave type.
// The caller must have checked sufficiency first.
func Debit(b leave.Balance, t leave.Type, days int) leave.Balance {
	switch t {
	case leave.TypeSick:
		b.SickBalance -= float64(days)
		b.SickUsed += float64(days)
	case leave.TypeVacation:
		b.VacationBalance -= float64(days)
		b.VacationUsed += float64(days)
	}
	return b
}

// Refund reverses a prior Debit exactly: days move from used back to
// balance with no cap clamp, so approve-then-cancel leaves the balance
// exactly where it started.
func Refund(b leave.Balance, t leave.Type, days int) leave.Balance {
	switch t {
	case leave.TypeSick:
		b.SickBalance += float64(days)
		b.SickUsed -= float64(days)
	case leave.TypeVacation:
		b.VacationBalance += float64(days)
		b.VacationUsed -= float64(days)
	}
	return b
}

// Credit adds days to a balance, clamping at the per-type cap.
func Credit(b leave.Balance, sick, vacation float64) leave.Balance {
	b.SickBalance = math.Min(b.SickBalance+sick, MaxSickBalance)
	b.VacationBalance = math.Min(b.VacationBalance+vacation, MaxVacationBalance)
	return b
}

// AnnualReset rolls a balance into a new year: unused days carry over,
// the full annual grant is added, and the cap is applied. Used counters
// restart at zero.
func AnnualReset(b leave.Balance, year int) leave.Balance {
	b.Year = year
	b.SickBalance = math.Min(b.SickBalance+AnnualSickCredits, MaxSickBalance)
	b.VacationBalance = math.Min(b.VacationBalance+AnnualVacationCredits, MaxVacationBalance)
	b.SickUsed = 0
	b.VacationUsed = 0
	return b
}
