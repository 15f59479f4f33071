package holiday

import (
	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/domain/holiday"
)

// Statutory holiday premium multipliers. Worked overtime hours on a
// holiday stack the overtime premium on top of the holiday premium
// (2.0 x 1.3 = 2.6, 1.3 x 1.3 = 1.69).
var (
	regularWorkedMultiplier   = decimal.NewFromFloat(2.0)
	regularOvertimeMultiplier = decimal.NewFromFloat(2.6)
	specialWorkedMultiplier   = decimal.NewFromFloat(1.3)
	specialOvertimeMultiplier = decimal.NewFromFloat(1.69)
)

// PayInput describes one employee-day that falls on a holiday.
type PayInput struct {
	Type          holiday.Type
	Worked        bool
	DailyRate     decimal.Decimal
	HourlyRate    decimal.Decimal
	OvertimeHours decimal.Decimal
}

// PayResult splits the holiday compensation into the day premium and
// the overtime premium so payroll entries can report them separately.
type PayResult struct {
	HolidayPay         decimal.Decimal
	HolidayOvertimePay decimal.Decimal
}

// Pay computes statutory holiday compensation for one day.
//
// Regular holidays pay the daily rate even when not worked, and double
// pay when worked. Special non-working days pay nothing when not worked
// and 130% when worked.
func Pay(in PayInput) PayResult {
	res := PayResult{
		HolidayPay:         decimal.Zero,
		HolidayOvertimePay: decimal.Zero,
	}

	switch in.Type {
	case holiday.TypeRegular:
		if !in.Worked {
			res.HolidayPay = in.DailyRate.Round(2)
			return res
		}
		res.HolidayPay = in.DailyRate.Mul(regularWorkedMultiplier).Round(2)
		if in.OvertimeHours.IsPositive() {
			res.HolidayOvertimePay = in.OvertimeHours.Mul(in.HourlyRate).Mul(regularOvertimeMultiplier).Round(2)
		}
	case holiday.TypeSpecial:
		if !in.Worked {
			return res
		}
		res.HolidayPay = in.DailyRate.Mul(specialWorkedMultiplier).Round(2)
		if in.OvertimeHours.IsPositive() {
			res.HolidayOvertimePay = in.OvertimeHours.Mul(in.HourlyRate).Mul(specialOvertimeMultiplier).Round(2)
		}
	}

	return res
}
