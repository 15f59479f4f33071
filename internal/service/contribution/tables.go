package contribution

import (
	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/domain/statutory"
)

func bracket(min, max, total, employeeShare float64) statutory.SSSBracket {
	maxD := decimal.NewFromFloat(max)
	return statutory.SSSBracket{
		Min:           decimal.NewFromFloat(min),
		Max:           &maxD,
		Total:         decimal.NewFromFloat(total),
		EmployeeShare: decimal.NewFromFloat(employeeShare),
	}
}

func openBracket(min, total, employeeShare float64) statutory.SSSBracket {
	return statutory.SSSBracket{
		Min:           decimal.NewFromFloat(min),
		Total:         decimal.NewFromFloat(total),
		EmployeeShare: decimal.NewFromFloat(employeeShare),
	}
}

// DefaultSSSTable is the 2024 SSS contribution schedule, used when no
// active config row exists for the payroll year.
func DefaultSSSTable() statutory.SSSTable {
	return statutory.SSSTable{Brackets: []statutory.SSSBracket{
		bracket(0, 4249.99, 180.00, 80.00),
		bracket(4250, 4749.99, 202.50, 90.00),
		bracket(4750, 5249.99, 225.00, 100.00),
		bracket(5250, 5749.99, 247.50, 110.00),
		bracket(5750, 6249.99, 270.00, 120.00),
		bracket(6250, 6749.99, 292.50, 130.00),
		bracket(6750, 7249.99, 315.00, 140.00),
		bracket(7250, 7749.99, 337.50, 150.00),
		bracket(7750, 8249.99, 360.00, 160.00),
		bracket(8250, 8749.99, 382.50, 170.00),
		bracket(8750, 9249.99, 405.00, 180.00),
		bracket(9250, 9749.99, 427.50, 190.00),
		bracket(9750, 10249.99, 450.00, 200.00),
		bracket(10250, 10749.99, 472.50, 210.00),
		bracket(10750, 11249.99, 495.00, 220.00),
		bracket(11250, 11749.99, 517.50, 230.00),
		bracket(11750, 12249.99, 540.00, 240.00),
		bracket(12250, 12749.99, 562.50, 250.00),
		bracket(12750, 13249.99, 585.00, 260.00),
		bracket(13250, 13749.99, 607.50, 270.00),
		bracket(13750, 14249.99, 630.00, 280.00),
		bracket(14250, 14749.99, 652.50, 290.00),
		bracket(14750, 15249.99, 675.00, 300.00),
		bracket(15250, 15749.99, 697.50, 310.00),
		bracket(15750, 16249.99, 720.00, 320.00),
		bracket(16250, 16749.99, 742.50, 330.00),
		bracket(16750, 17249.99, 765.00, 340.00),
		bracket(17250, 17749.99, 787.50, 350.00),
		bracket(17750, 18249.99, 810.00, 360.00),
		bracket(18250, 18749.99, 832.50, 370.00),
		bracket(18750, 19249.99, 855.00, 380.00),
		bracket(19250, 19749.99, 877.50, 390.00),
		bracket(19750, 20249.99, 900.00, 400.00),
		bracket(20250, 20749.99, 922.50, 410.00),
		bracket(20750, 21249.99, 945.00, 420.00),
		bracket(21250, 21749.99, 967.50, 430.00),
		bracket(21750, 22249.99, 990.00, 440.00),
		bracket(22250, 22749.99, 1012.50, 450.00),
		bracket(22750, 23249.99, 1035.00, 460.00),
		bracket(23250, 23749.99, 1057.50, 470.00),
		bracket(23750, 24249.99, 1080.00, 480.00),
		bracket(24250, 24749.99, 1102.50, 490.00),
		bracket(24750, 29749.99, 1125.00, 500.00),
		openBracket(29750, 1125.00, 500.00),
	}}
}

// DefaultPhilHealthTable is the 2024 PhilHealth schedule: 4% of the
// capped salary split equally, with a 400 peso floor on the total.
func DefaultPhilHealthTable() statutory.PhilHealthTable {
	return statutory.PhilHealthTable{
		Rate:            decimal.NewFromFloat(0.04),
		SalaryCap:       decimal.NewFromInt(80000),
		MinContribution: decimal.NewFromInt(400),
	}
}

// DefaultPagIBIGTable is the 2024 Pag-IBIG schedule: 2% each side,
// capped at 100 pesos per side.
func DefaultPagIBIGTable() statutory.PagIBIGTable {
	return statutory.PagIBIGTable{
		EmployeeRate: decimal.NewFromFloat(0.02),
		EmployerRate: decimal.NewFromFloat(0.02),
		EmployeeCap:  decimal.NewFromInt(100),
		EmployerCap:  decimal.NewFromInt(100),
	}
}
