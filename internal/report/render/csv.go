package render

import (
	"strconv"
	"strings"

	"github.com/pharmstock/pharmstock-backend/internal/report/domain"
)

// valuationCSV renders the inventory valuation report as plain UTF-8 CSV.
// The layout mirrors the PDF: metadata lines, the grand total, then the
// warehouse summary and full product detail sections separated by blank
// lines. Free-text names are always quoted.
func (r *Renderer) valuationCSV(report *domain.ValuationReport) ([]byte, error) {
	var b strings.Builder

	b.WriteString("Report: " + report.ReportName + "\n")
	b.WriteString("Generated: " + report.GeneratedDate + "\n")
	b.WriteString("Period: " + report.StartDate + " to " + report.EndDate + "\n")
	b.WriteString("Total Valuation: " + report.TotalValuation.String() + "\n")
	b.WriteString("\n")

	if len(report.WarehouseValuations) > 0 {
		b.WriteString("Warehouse Summary\n")
		b.WriteString(strings.Join(warehouseColumns, ",") + "\n")
		for _, wv := range report.WarehouseValuations {
			b.WriteString(wv.WarehouseID + "," + quote(wv.WarehouseName) + "," +
				strconv.FormatInt(wv.TotalProducts, 10) + "," +
				strconv.FormatInt(wv.TotalQuantity, 10) + "," +
				wv.TotalValue.String() + "\n")
		}
		b.WriteString("\n")
	}

	if len(report.ProductValuations) > 0 {
		b.WriteString("Product Details\n")
		b.WriteString(strings.Join(productColumns, ",") + "\n")
		for _, pv := range report.ProductValuations {
			b.WriteString(pv.SkuID + "," + quote(pv.ProductName) + "," +
				pv.Category + "," + pv.WarehouseID + "," +
				strconv.FormatInt(pv.Quantity, 10) + "," +
				pv.UnitPrice.String() + "," +
				pv.TotalValue.String() + "\n")
		}
	}

	return []byte(b.String()), nil
}

// lowStockCSV renders the low stock report as plain UTF-8 CSV with a single
// item table; all rows are shown.
func (r *Renderer) lowStockCSV(report *domain.LowStockReport) ([]byte, error) {
	var b strings.Builder

	b.WriteString("Report: " + report.ReportName + "\n")
	b.WriteString("Generated: " + report.GeneratedDate + "\n")
	b.WriteString("Period: " + report.StartDate + " to " + report.EndDate + "\n")
	b.WriteString("Total Low Stock Items: " + strconv.FormatInt(report.TotalLowStockItems, 10) + "\n")
	b.WriteString("\n")

	b.WriteString(strings.Join(lowStockColumns, ",") + "\n")
	for _, item := range report.LowStockItems {
		b.WriteString(item.SkuID + "," + quote(item.ProductName) + "," +
			item.Category + "," + item.WarehouseID + "," +
			strconv.FormatInt(item.CurrentStock, 10) + "," +
			strconv.FormatInt(item.Threshold, 10) + "," +
			strconv.FormatInt(item.Shortage, 10) + "," +
			strconv.FormatInt(item.DaysUntilOut, 10) + "," +
			item.Priority + "\n")
	}

	return []byte(b.String()), nil
}

// quote wraps a free-text field in double quotes, escaping embedded quotes
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
