package pdf

import (
	"bytes"
	"fmt"

	"flower-backend/internal/models"

	"github.com/jung-kurt/gofpdf/v2"
)

// SettlementStatement renders a printable statement for one settlement,
// including the per-entry snapshot lines and the advance deduction.
func SettlementStatement(s *models.Settlement, farmer *models.Farmer) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Settlement "+s.SettlementNumber, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Flower Market Settlement Statement")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(95, 6, fmt.Sprintf("Settlement No: %s", s.SettlementNumber))
	pdf.Cell(95, 6, fmt.Sprintf("Date: %s", s.SettlementDate.Format("02 Jan 2006")))
	pdf.Ln(6)
	pdf.Cell(95, 6, fmt.Sprintf("Farmer: %s (%s)", farmer.Name, farmer.Code))
	pdf.Cell(95, 6, fmt.Sprintf("Status: %s", s.Status))
	pdf.Ln(6)
	pdf.Cell(95, 6, fmt.Sprintf("Period: %s to %s",
		s.PeriodStart.Format("02 Jan 2006"), s.PeriodEnd.Format("02 Jan 2006")))
	pdf.Ln(10)

	// Item table header
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(25, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Flower", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Rate", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Total", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Commission", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Net", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, it := range s.Items {
		pdf.CellFormat(25, 6, it.EntryDate.Format("02-01-2006"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, it.FlowerTypeName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, it.Quantity.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, it.RatePerUnit.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, it.TotalAmount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, it.CommissionAmount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, it.NetAmount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	// Totals block
	pdf.SetFont("Arial", "B", 10)
	writeTotal := func(label, value string) {
		pdf.CellFormat(140, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, value, "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	writeTotal("Gross Amount:", s.GrossAmount.StringFixed(2))
	writeTotal("Commission:", "-"+s.TotalCommission.StringFixed(2))
	writeTotal("Advances Deducted:", "-"+s.TotalAdvances.StringFixed(2))
	pdf.SetFont("Arial", "B", 12)
	writeTotal("Net Payable:", s.NetPayable.StringFixed(2))

	if s.NetPayable.IsNegative() {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 9)
		pdf.Cell(0, 6, "Farmer owes the market; dues recovery applies.")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render statement: %w", err)
	}
	return buf.Bytes(), nil
}
