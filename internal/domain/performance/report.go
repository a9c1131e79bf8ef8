package performance

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// ReportPDF renders the stored summary for (employee, period) as a PDF.
// The raw model text goes in as-is; structured fields appear when the
// reconciler managed to extract them.
func (s *Service) ReportPDF(ctx context.Context, employeeID int64, period string) ([]byte, error) {
	summary, err := s.store.Summary(ctx, employeeID, period)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	name := summary.EmployeeName
	if summary.EmployeeCode != "" {
		name = fmt.Sprintf("%s (%s)", summary.EmployeeName, summary.EmployeeCode)
	}
	pdf.Cell(0, 8, "Employee: "+name)
	pdf.Ln(7)
	pdf.Cell(0, 8, "Period: "+summary.Period)
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total Score: %.2f", summary.TotalScore))
	pdf.Ln(7)
	pdf.Cell(0, 8, "Category: "+summary.Category)
	pdf.Ln(10)

	if summary.Recommendation != nil {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Recommendation")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, *summary.Recommendation, "", "L", false)
		pdf.Ln(4)
	}
	if summary.Motivation != nil {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Motivation")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, *summary.Motivation, "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "AI Summary")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, summary.AISummary, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
