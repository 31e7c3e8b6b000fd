// Package render serializes assembled reports into downloadable file
// formats. It holds no business logic: every renderer is a pure, single-pass
// function of the report record, and a failed render returns no partial
// output.
package render

import (
	"strings"

	"github.com/pharmstock/pharmstock-backend/internal/report/domain"
	"github.com/pharmstock/pharmstock-backend/pkg/errors"
	"github.com/pharmstock/pharmstock-backend/pkg/logger"
)

// Format is a supported file output format
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat parses a format string case-insensitively
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", errors.BadRequest("invalid format; must be 'pdf', 'xlsx', or 'csv'")
	}
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv"
	}
}

// Ext returns the file extension for the format, without the dot
func (f Format) Ext() string {
	return string(f)
}

// Renderer renders assembled reports to bytes
type Renderer struct {
	logger *logger.Logger
}

// NewRenderer creates a new renderer
func NewRenderer(log *logger.Logger) *Renderer {
	return &Renderer{logger: log}
}

// RenderValuation renders an inventory valuation report in the given format
func (r *Renderer) RenderValuation(report *domain.ValuationReport, format Format) ([]byte, error) {
	switch format {
	case FormatPDF:
		return r.valuationPDF(report)
	case FormatXLSX:
		return r.valuationXLSX(report)
	case FormatCSV:
		return r.valuationCSV(report)
	default:
		return nil, errors.BadRequest("invalid format; must be 'pdf', 'xlsx', or 'csv'")
	}
}

// RenderLowStock renders a low stock report in the given format
func (r *Renderer) RenderLowStock(report *domain.LowStockReport, format Format) ([]byte, error) {
	switch format {
	case FormatPDF:
		return r.lowStockPDF(report)
	case FormatXLSX:
		return r.lowStockXLSX(report)
	case FormatCSV:
		return r.lowStockCSV(report)
	default:
		return nil, errors.BadRequest("invalid format; must be 'pdf', 'xlsx', or 'csv'")
	}
}

// Fixed column sets, shared by all three formats
var (
	warehouseColumns = []string{"Warehouse ID", "Warehouse Name", "Total Products", "Total Quantity", "Total Value"}
	productColumns   = []string{"SKU", "Product Name", "Category", "Warehouse", "Quantity", "Unit Price", "Total Value"}
	lowStockColumns  = []string{"SKU", "Product Name", "Category", "Warehouse", "Current Stock", "Threshold", "Shortage", "Days Until Out", "Priority"}
)

// maxPDFProductRows caps the valuation product table in PDF output
const maxPDFProductRows = 50
