package holiday

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/suweldo/payroll-backend-go/internal/domain/holiday"
)

func TestPayRegularNotWorked(t *testing.T) {
	res := Pay(PayInput{
		Type:      holiday.TypeRegular,
		Worked:    false,
		DailyRate: decimal.NewFromInt(1000),
	})

	assert.Equal(t, "1000.00", res.HolidayPay.StringFixed(2))
	assert.True(t, res.HolidayOvertimePay.IsZero())
}

func TestPayRegularWorked(t *testing.T) {
	res := Pay(PayInput{
		Type:       holiday.TypeRegular,
		Worked:     true,
		DailyRate:  decimal.NewFromInt(1000),
		HourlyRate: decimal.NewFromInt(125),
	})

	assert.Equal(t, "2000.00", res.HolidayPay.StringFixed(2))
	assert.True(t, res.HolidayOvertimePay.IsZero())
}

func TestPayRegularWorkedWithOvertime(t *testing.T) {
	res := Pay(PayInput{
		Type:          holiday.TypeRegular,
		Worked:        true,
		DailyRate:     decimal.NewFromInt(1000),
		HourlyRate:    decimal.NewFromInt(125),
		OvertimeHours: decimal.NewFromInt(2),
	})

	assert.Equal(t, "2000.00", res.HolidayPay.StringFixed(2))
	// 2h x 125 x 2.6
	assert.Equal(t, "650.00", res.HolidayOvertimePay.StringFixed(2))
}

func TestPaySpecialNotWorked(t *testing.T) {
	res := Pay(PayInput{
		Type:      holiday.TypeSpecial,
		Worked:    false,
		DailyRate: decimal.NewFromInt(1000),
	})

	assert.True(t, res.HolidayPay.IsZero())
	assert.True(t, res.HolidayOvertimePay.IsZero())
}

func TestPaySpecialWorkedWithOvertime(t *testing.T) {
	res := Pay(PayInput{
		Type:          holiday.TypeSpecial,
		Worked:        true,
		DailyRate:     decimal.NewFromInt(1000),
		HourlyRate:    decimal.NewFromInt(125),
		OvertimeHours: decimal.NewFromInt(1),
	})

	assert.Equal(t, "1300.00", res.HolidayPay.StringFixed(2))
	// 1h x 125 x 1.69
	assert.Equal(t, "211.25", res.HolidayOvertimePay.StringFixed(2))
}
