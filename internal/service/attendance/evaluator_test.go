package attendance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/suweldo/payroll-backend-go/internal/domain/attendance"
)

func strPtr(s string) *string { return &s }

func TestEvaluatePresent(t *testing.T) {
	res := Evaluate(EvalInput{
		TimeIn:     strPtr("08:00"),
		TimeOut:    strPtr("17:00"),
		HourlyRate: decimal.NewFromInt(100),
	})

	assert.Equal(t, attendance.StatusPresent, res.Status)
	assert.Equal(t, 9.0, res.WorkedHours)
	assert.Equal(t, 0.0, res.LateMinutes)
	assert.True(t, res.LateDeduction.IsZero())
	assert.False(t, res.Malformed)
}

func TestEvaluateGracePeriod(t *testing.T) {
	// 10 minutes late is inside the grace period.
	res := Evaluate(EvalInput{
		TimeIn:     strPtr("08:10"),
		TimeOut:    strPtr("17:00"),
		HourlyRate: decimal.NewFromInt(100),
	})
	assert.Equal(t, attendance.StatusPresent, res.Status)
	assert.Equal(t, 0.0, res.LateMinutes)

	// 11 minutes late charges 1 minute.
	res = Evaluate(EvalInput{
		TimeIn:     strPtr("08:11"),
		TimeOut:    strPtr("17:00"),
		HourlyRate: decimal.NewFromInt(100),
	})
	assert.Equal(t, attendance.StatusLate, res.Status)
	assert.Equal(t, 1.0, res.LateMinutes)
}

func TestEvaluateLateDeduction(t *testing.T) {
	// 15 minutes late, 10 forgiven, 5 chargeable at 100/hour: 8.33.
	res := Evaluate(EvalInput{
		TimeIn:     strPtr("08:15"),
		TimeOut:    strPtr("17:00"),
		HourlyRate: decimal.NewFromInt(100),
	})

	assert.Equal(t, attendance.StatusLate, res.Status)
	assert.Equal(t, 5.0, res.LateMinutes)
	assert.Equal(t, "8.33", res.LateDeduction.StringFixed(2))
}

func TestEvaluateUndertime(t *testing.T) {
	// No grace on early departure.
	res := Evaluate(EvalInput{
		TimeIn:     strPtr("08:00"),
		TimeOut:    strPtr("16:30"),
		HourlyRate: decimal.NewFromInt(120),
	})

	assert.Equal(t, attendance.StatusUndertime, res.Status)
	assert.Equal(t, 30.0, res.UndertimeMinutes)
	assert.Equal(t, "60.00", res.UndertimeDeduction.StringFixed(2))
}

func TestEvaluateUndertimeBeatsLate(t *testing.T) {
	res := Evaluate(EvalInput{
		TimeIn:     strPtr("08:30"),
		TimeOut:    strPtr("16:00"),
		HourlyRate: decimal.NewFromInt(100),
	})

	assert.Equal(t, attendance.StatusUndertime, res.Status)
	assert.Equal(t, 20.0, res.LateMinutes)
	assert.Equal(t, 60.0, res.UndertimeMinutes)
}

func TestEvaluateHalfDay(t *testing.T) {
	res := Evaluate(EvalInput{
		TimeIn:     strPtr("08:00"),
		TimeOut:    strPtr("11:30"),
		HourlyRate: decimal.NewFromInt(100),
	})

	assert.Equal(t, attendance.StatusHalfDay, res.Status)
	assert.Equal(t, 3.5, res.WorkedHours)
}

func TestEvaluateAbsent(t *testing.T) {
	res := Evaluate(EvalInput{
		TimeIn:     nil,
		HourlyRate: decimal.NewFromInt(150),
	})

	assert.Equal(t, attendance.StatusAbsent, res.Status)
	assert.Equal(t, "1200.00", res.AbsentDeduction.StringFixed(2))
}

func TestEvaluateOnLeave(t *testing.T) {
	res := Evaluate(EvalInput{
		TimeIn:     nil,
		HourlyRate: decimal.NewFromInt(150),
		OnLeave:    true,
	})

	assert.Equal(t, attendance.StatusOnLeave, res.Status)
	assert.True(t, res.AbsentDeduction.IsZero())
}

func TestEvaluateOvernightShift(t *testing.T) {
	res := Evaluate(EvalInput{
		TimeIn:          strPtr("22:00"),
		TimeOut:         strPtr("06:00"),
		ExpectedTimeIn:  "22:00",
		ExpectedTimeOut: "06:00",
		HourlyRate:      decimal.NewFromInt(100),
	})

	assert.Equal(t, attendance.StatusPresent, res.Status)
	assert.Equal(t, 8.0, res.WorkedHours)
}

func TestEvaluateMalformedTimeIn(t *testing.T) {
	// A present but unparseable time string degrades to zero values
	// instead of blocking; the record is flagged for audit.
	res := Evaluate(EvalInput{
		TimeIn:     strPtr("8 o'clock"),
		TimeOut:    strPtr("17:00"),
		HourlyRate: decimal.NewFromInt(100),
	})

	assert.True(t, res.Malformed)
	assert.Equal(t, attendance.StatusHalfDay, res.Status)
	assert.Equal(t, 0.0, res.WorkedHours)
	assert.True(t, res.LateDeduction.IsZero())
}

func TestEvaluateMissingTimeOut(t *testing.T) {
	res := Evaluate(EvalInput{
		TimeIn:     strPtr("08:00"),
		HourlyRate: decimal.NewFromInt(100),
	})

	assert.Equal(t, attendance.StatusHalfDay, res.Status)
	assert.Equal(t, 0.0, res.WorkedHours)
	assert.False(t, res.Malformed)
}
