// Package payslip renders a payroll entry as a printable PDF.
package payslip

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/domain/payroll"
)

type Renderer struct {
	companyName string
}

func NewRenderer(companyName string) *Renderer {
	return &Renderer{companyName: companyName}
}

// Render builds the payslip PDF for one entry and returns its bytes.
// Map-backed sections are emitted in sorted key order so the same entry
// always renders the same document.
func (r *Renderer) Render(run payroll.RunResponse, entry payroll.EntryResponse) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, r.companyName)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Payslip")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s", entry.EmployeeName))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Employee ID: %s", entry.EmployeeID))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s (%s)", run.StartDate, run.EndDate, run.Type))
	pdf.Ln(10)

	r.section(pdf, "Earnings")
	r.line(pdf, "Base Pay", entry.BasePay)
	r.line(pdf, "Overtime Pay", entry.OvertimePay)
	r.line(pdf, "Nightshift Pay", entry.NightshiftPay)
	r.line(pdf, "Holiday Pay", entry.HolidayPay)
	r.line(pdf, "Holiday Overtime Pay", entry.HolidayOvertimePay)
	r.mapLines(pdf, entry.Allowances)
	r.mapLines(pdf, entry.Bonuses)
	r.mapLines(pdf, entry.Benefits)
	pdf.Ln(4)

	r.section(pdf, "Deductions")
	r.mapLines(pdf, entry.Deductions)
	pdf.Ln(4)

	r.section(pdf, "Totals")
	r.line(pdf, "Gross Pay", entry.Gross)
	r.line(pdf, "Net Pay", entry.Net)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
}

func (r *Renderer) line(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.Cell(110, 7, label)
	pdf.CellFormat(60, 7, amount.StringFixed(2), "", 0, "R", false, 0, "")
	pdf.Ln(7)
}

func (r *Renderer) mapLines(pdf *gofpdf.Fpdf, amounts map[string]decimal.Decimal) {
	keys := make([]string, 0, len(amounts))
	for k := range amounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.line(pdf, k, amounts[k])
	}
}
