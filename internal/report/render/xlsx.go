package render

import (
	"github.com/pharmstock/pharmstock-backend/internal/report/domain"
	"github.com/pharmstock/pharmstock-backend/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// sheetWriter appends rows to a single worksheet top to bottom, collecting
// the first write error so callers can check once at the end.
type sheetWriter struct {
	file  *excelize.File
	sheet string
	row   int
	err   error
}

func newSheetWriter(sheet string) *sheetWriter {
	f := excelize.NewFile()
	w := &sheetWriter{file: f, sheet: sheet, row: 1}
	w.err = f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet)
	return w
}

// writeRow writes one row of cells; numeric values keep their Go type so
// excelize stores them as numeric cells
func (w *sheetWriter) writeRow(cells ...interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.file.SetSheetRow(w.sheet, cell, &cells)
	w.row++
}

// blankRow leaves an empty separator row
func (w *sheetWriter) blankRow() {
	w.row++
}

func (w *sheetWriter) setColWidths(lastCol string, width float64) {
	if w.err != nil {
		return
	}
	w.err = w.file.SetColWidth(w.sheet, "A", lastCol, width)
}

func (w *sheetWriter) bytes() ([]byte, error) {
	defer w.file.Close()

	if w.err != nil {
		return nil, errors.Render(w.err, "xlsx")
	}
	buf, err := w.file.WriteToBuffer()
	if err != nil {
		return nil, errors.Render(err, "xlsx")
	}
	return buf.Bytes(), nil
}

// valuationXLSX renders the inventory valuation report as a single-sheet
// workbook mirroring the PDF's row order
func (r *Renderer) valuationXLSX(report *domain.ValuationReport) ([]byte, error) {
	w := newSheetWriter("Inventory Valuation")

	w.writeRow(report.ReportName)
	w.writeRow("Generated: " + report.GeneratedDate)
	w.writeRow("Period: " + report.StartDate + " to " + report.EndDate)
	w.blankRow()
	w.writeRow("Total Valuation: $" + report.TotalValuation.String())
	w.blankRow()

	if len(report.WarehouseValuations) > 0 {
		w.writeRow("Warehouse Summary")
		w.writeRow(toRow(warehouseColumns)...)
		for _, wv := range report.WarehouseValuations {
			value, _ := wv.TotalValue.Float64()
			w.writeRow(wv.WarehouseID, wv.WarehouseName, wv.TotalProducts, wv.TotalQuantity, value)
		}
		w.blankRow()
	}

	if len(report.ProductValuations) > 0 {
		w.writeRow("Product Details")
		w.writeRow(toRow(productColumns)...)
		for _, pv := range report.ProductValuations {
			price, _ := pv.UnitPrice.Float64()
			total, _ := pv.TotalValue.Float64()
			w.writeRow(pv.SkuID, pv.ProductName, pv.Category, pv.WarehouseID, pv.Quantity, price, total)
		}
	}

	w.setColWidths("G", 18)
	return w.bytes()
}

// lowStockXLSX renders the low stock report as a single-sheet workbook
func (r *Renderer) lowStockXLSX(report *domain.LowStockReport) ([]byte, error) {
	w := newSheetWriter("Low Stock Report")

	w.writeRow(report.ReportName)
	w.writeRow("Generated: " + report.GeneratedDate)
	w.writeRow("Period: " + report.StartDate + " to " + report.EndDate)
	w.blankRow()
	w.writeRow("Total Low Stock Items:", report.TotalLowStockItems)
	w.blankRow()

	w.writeRow(toRow(lowStockColumns)...)
	for _, item := range report.LowStockItems {
		w.writeRow(
			item.SkuID, item.ProductName, item.Category, item.WarehouseID,
			item.CurrentStock, item.Threshold, item.Shortage,
			item.DaysUntilOut, item.Priority,
		)
	}

	w.setColWidths("I", 16)
	return w.bytes()
}

func toRow(columns []string) []interface{} {
	row := make([]interface{}, len(columns))
	for i, c := range columns {
		row[i] = c
	}
	return row
}
