package attendance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/domain/attendance"
)

const (
	// Minutes of lateness forgiven before any deduction applies.
	GraceMinutes = 10.0

	// Worked hours below this threshold mark the day as half-day.
	HalfDayHours = 4.0

	DefaultExpectedTimeIn  = "08:00"
	DefaultExpectedTimeOut = "17:00"
)

var sixty = decimal.NewFromInt(60)

// EvalInput is everything the evaluator needs for one employee-day.
// The evaluation is a pure function over it.
type EvalInput struct {
	TimeIn          *string
	TimeOut         *string
	ExpectedTimeIn  string // defaults to 08:00 when empty
	ExpectedTimeOut string // defaults to 17:00 when empty
	HourlyRate      decimal.Decimal
	OnLeave         bool
}

type EvalResult struct {
	Status           attendance.Status
	WorkedHours      float64
	LateMinutes      float64
	UndertimeMinutes float64

	LateDeduction      decimal.Decimal
	UndertimeDeduction decimal.Decimal
	AbsentDeduction    decimal.Decimal

	// Malformed flags unparseable time strings. The evaluation treats
	// them as zero values to keep payroll generation non-blocking, but
	// the record is kept visible for audit.
	Malformed bool
}

// Evaluate derives status, worked hours, lateness/undertime minutes and
// monetary deductions for one attendance day.
//
// Status precedence, first match wins: on_leave (external pre-emption),
// absent (no time in), half_day (< 4 worked hours), undertime, late,
// present.
func Evaluate(in EvalInput) EvalResult {
	res := EvalResult{
		LateDeduction:      decimal.Zero,
		UndertimeDeduction: decimal.Zero,
		AbsentDeduction:    decimal.Zero,
	}

	if in.OnLeave {
		res.Status = attendance.StatusOnLeave
		return res
	}

	expectedIn := in.ExpectedTimeIn
	if expectedIn == "" {
		expectedIn = DefaultExpectedTimeIn
	}
	expectedOut := in.ExpectedTimeOut
	if expectedOut == "" {
		expectedOut = DefaultExpectedTimeOut
	}

	if in.TimeIn == nil || *in.TimeIn == "" {
		res.Status = attendance.StatusAbsent
		res.AbsentDeduction = in.HourlyRate.Mul(decimal.NewFromInt(8)).Round(2)
		return res
	}

	var malformed bool

	lateMin, ok := LateMinutes(*in.TimeIn, expectedIn)
	if !ok {
		malformed = true
	}
	res.LateMinutes = lateMin

	if in.TimeOut != nil && *in.TimeOut != "" {
		undertimeMin, ok := UndertimeMinutes(*in.TimeOut, expectedOut)
		if !ok {
			malformed = true
		}
		res.UndertimeMinutes = undertimeMin

		worked, ok := WorkedHours(*in.TimeIn, *in.TimeOut)
		if !ok {
			malformed = true
		}
		res.WorkedHours = worked
	}

	res.Malformed = malformed
	res.LateDeduction = minuteDeduction(res.LateMinutes, in.HourlyRate)
	res.UndertimeDeduction = minuteDeduction(res.UndertimeMinutes, in.HourlyRate)

	switch {
	case res.WorkedHours < HalfDayHours:
		res.Status = attendance.StatusHalfDay
	case res.UndertimeMinutes > 0:
		res.Status = attendance.StatusUndertime
	case res.LateMinutes > 0:
		res.Status = attendance.StatusLate
	default:
		res.Status = attendance.StatusPresent
	}

	return res
}

// LateMinutes returns minutes late past the grace period. The boolean
// is false when either time string is unparseable; the minutes are then
// zero.
func LateMinutes(timeIn, expectedIn string) (float64, bool) {
	actual, err := parseClock(timeIn)
	if err != nil {
		return 0, false
	}
	expected, err := parseClock(expectedIn)
	if err != nil {
		return 0, false
	}

	if !actual.After(expected) {
		return 0, true
	}

	minutes := actual.Sub(expected).Minutes()
	if minutes <= GraceMinutes {
		return 0, true
	}
	return minutes - GraceMinutes, true
}

// UndertimeMinutes returns minutes of early departure. No grace period
// applies.
func UndertimeMinutes(timeOut, expectedOut string) (float64, bool) {
	actual, err := parseClock(timeOut)
	if err != nil {
		return 0, false
	}
	expected, err := parseClock(expectedOut)
	if err != nil {
		return 0, false
	}

	if !actual.Before(expected) {
		return 0, true
	}
	return expected.Sub(actual).Minutes(), true
}

// WorkedHours returns elapsed hours between time in and time out. An
// out time earlier than the in time is treated as an overnight shift
// (plus 24 hours).
func WorkedHours(timeIn, timeOut string) (float64, bool) {
	in, err := parseClock(timeIn)
	if err != nil {
		return 0, false
	}
	out, err := parseClock(timeOut)
	if err != nil {
		return 0, false
	}

	if out.Before(in) {
		out = out.Add(24 * time.Hour)
	}
	return out.Sub(in).Hours(), true
}

func minuteDeduction(minutes float64, hourlyRate decimal.Decimal) decimal.Decimal {
	if minutes <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(minutes).Div(sixty).Mul(hourlyRate).Round(2)
}

func parseClock(s string) (time.Time, error) {
	return time.Parse("15:04", s)
}
