package render

import (
	"bytes"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/pharmstock/pharmstock-backend/internal/report/domain"
	"github.com/pharmstock/pharmstock-backend/pkg/errors"
)

// valuationPDF renders the inventory valuation report as a flowed PDF
// document: title, metadata lines, bold total, warehouse summary table, then
// the product table capped at the first 50 lines.
func (r *Renderer) valuationPDF(report *domain.ValuationReport) ([]byte, error) {
	pdf := newDocument(report.ReportName, report.GeneratedDate, report.StartDate, report.EndDate)

	writeTotalLine(pdf, "Total Valuation: $"+report.TotalValuation.String())

	if len(report.WarehouseValuations) > 0 {
		writeSectionHeading(pdf, "Warehouse Summary")

		widths := []float64{30, 50, 35, 35, 40}
		writeTableHeader(pdf, warehouseColumns, widths)
		for _, wv := range report.WarehouseValuations {
			writeTableRow(pdf, widths, []string{
				wv.WarehouseID,
				wv.WarehouseName,
				strconv.FormatInt(wv.TotalProducts, 10),
				strconv.FormatInt(wv.TotalQuantity, 10),
				"$" + wv.TotalValue.String(),
			})
		}
		pdf.Ln(6)
	}

	if len(report.ProductValuations) > 0 {
		writeSectionHeading(pdf, "Product Details (First 50)")

		widths := []float64{25, 40, 30, 22, 20, 26, 27}
		writeTableHeader(pdf, productColumns, widths)
		for i, pv := range report.ProductValuations {
			if i >= maxPDFProductRows {
				break
			}
			writeTableRow(pdf, widths, []string{
				pv.SkuID,
				pv.ProductName,
				pv.Category,
				pv.WarehouseID,
				strconv.FormatInt(pv.Quantity, 10),
				"$" + pv.UnitPrice.String(),
				"$" + pv.TotalValue.String(),
			})
		}
	}

	return outputPDF(pdf)
}

// lowStockPDF renders the low stock report as a flowed PDF document with a
// single item table; all rows are shown.
func (r *Renderer) lowStockPDF(report *domain.LowStockReport) ([]byte, error) {
	pdf := newDocument(report.ReportName, report.GeneratedDate, report.StartDate, report.EndDate)

	writeTotalLine(pdf, "Total Low Stock Items: "+strconv.FormatInt(report.TotalLowStockItems, 10))

	if len(report.LowStockItems) > 0 {
		widths := []float64{20, 32, 24, 20, 20, 18, 18, 20, 18}
		writeTableHeader(pdf, lowStockColumns, widths)
		for _, item := range report.LowStockItems {
			writeTableRow(pdf, widths, []string{
				item.SkuID,
				item.ProductName,
				item.Category,
				item.WarehouseID,
				strconv.FormatInt(item.CurrentStock, 10),
				strconv.FormatInt(item.Threshold, 10),
				strconv.FormatInt(item.Shortage, 10),
				strconv.FormatInt(item.DaysUntilOut, 10),
				item.Priority,
			})
		}
	}

	return outputPDF(pdf)
}

// newDocument creates a page with the shared title and metadata lines
func newDocument(title, generated, start, end string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, "Generated: "+generated)
	pdf.Ln(5)
	pdf.Cell(0, 5, "Period: "+start+" to "+end)
	pdf.Ln(10)

	return pdf
}

func writeTotalLine(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, text)
	pdf.Ln(12)
}

func writeSectionHeading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, text)
	pdf.Ln(8)
}

func writeTableHeader(pdf *fpdf.Fpdf, columns []string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for i, col := range columns {
		pdf.CellFormat(widths[i], 7, col, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 8)
}

func writeTableRow(pdf *fpdf.Fpdf, widths []float64, cells []string) {
	for i, cell := range cells {
		pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func outputPDF(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Render(err, "pdf")
	}
	return buf.Bytes(), nil
}
