package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pharmstock/pharmstock-backend/internal/inventory/repository"
	"github.com/pharmstock/pharmstock-backend/internal/report/domain"
	"github.com/pharmstock/pharmstock-backend/pkg/errors"
	"github.com/pharmstock/pharmstock-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ProductSource supplies the full product snapshot for report assembly
type ProductSource interface {
	ListAll(ctx context.Context) ([]*repository.Product, error)
}

// BatchSource supplies the full batch snapshot for report assembly
type BatchSource interface {
	ListAll(ctx context.Context) ([]*repository.ProductBatch, error)
}

// ReportService assembles reports from full product/batch snapshots.
// Each report is computed fresh per request; concurrent requests may observe
// different snapshots since the two reads are not taken in one transaction.
type ReportService struct {
	products ProductSource
	batches  BatchSource
	logger   *logger.Logger
}

// NewReportService creates a new report service
func NewReportService(products ProductSource, batches BatchSource, log *logger.Logger) *ReportService {
	return &ReportService{
		products: products,
		batches:  batches,
		logger:   log,
	}
}

// GenerateValuation assembles an inventory valuation report for the given
// expiry date range. The start date is required (it titles the report); a
// zero end date disables date filtering.
func (s *ReportService) GenerateValuation(ctx context.Context, startDate, endDate time.Time, format string) (*domain.ValuationReport, error) {
	if startDate.IsZero() {
		return nil, errors.Validation(map[string]string{
			"startDate": "this field is required",
		})
	}

	products, err := s.snapshot(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	totalValuation := decimal.Zero
	lines := make([]domain.ProductValuation, 0, len(products))
	byWarehouse := make(map[string]*domain.WarehouseValuation)

	for _, p := range products {
		lineValue := p.Price.Mul(decimal.NewFromInt(p.Quantity))
		totalValuation = totalValuation.Add(lineValue)

		lines = append(lines, domain.ProductValuation{
			SkuID:       p.SkuID,
			ProductName: p.ProductName,
			Category:    p.Category,
			WarehouseID: p.WarehouseID,
			Quantity:    p.Quantity,
			UnitPrice:   p.Price,
			TotalValue:  lineValue,
		})

		wv, ok := byWarehouse[p.WarehouseID]
		if !ok {
			wv = &domain.WarehouseValuation{
				WarehouseID:   p.WarehouseID,
				WarehouseName: warehouseName(p.WarehouseID),
				TotalValue:    decimal.Zero,
			}
			byWarehouse[p.WarehouseID] = wv
		}
		wv.TotalProducts++
		wv.TotalQuantity += p.Quantity
		wv.TotalValue = wv.TotalValue.Add(lineValue)
	}

	warehouses := make([]domain.WarehouseValuation, 0, len(byWarehouse))
	for _, wv := range byWarehouse {
		warehouses = append(warehouses, *wv)
	}
	sort.Slice(warehouses, func(i, j int) bool {
		return warehouses[i].WarehouseID < warehouses[j].WarehouseID
	})

	return &domain.ValuationReport{
		ReportName:          "Inventory Valuation Report - " + startDate.Format("Jan 2006"),
		GeneratedDate:       time.Now().Format(dateLayout),
		StartDate:           startDate.Format(dateLayout),
		EndDate:             formatDate(endDate),
		Format:              formatTag(format),
		TotalValuation:      totalValuation,
		WarehouseValuations: warehouses,
		ProductValuations:   lines,
	}, nil
}

// GenerateLowStock assembles a low stock report for the given expiry date
// range. Products are included iff quantity < threshold.
func (s *ReportService) GenerateLowStock(ctx context.Context, startDate, endDate time.Time, format string) (*domain.LowStockReport, error) {
	if startDate.IsZero() {
		return nil, errors.Validation(map[string]string{
			"startDate": "this field is required",
		})
	}

	products, err := s.snapshot(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	items := make([]domain.LowStockItem, 0)
	for _, p := range products {
		if p.Quantity >= p.ThresholdQuantity {
			continue
		}

		days := daysUntilOut(p.Quantity, p.ThresholdQuantity)
		items = append(items, domain.LowStockItem{
			SkuID:         p.SkuID,
			ProductName:   p.ProductName,
			Category:      p.Category,
			WarehouseID:   p.WarehouseID,
			WarehouseName: warehouseName(p.WarehouseID),
			CurrentStock:  p.Quantity,
			Threshold:     p.ThresholdQuantity,
			Shortage:      p.ThresholdQuantity - p.Quantity,
			DaysUntilOut:  days,
			Priority:      priority(p.Quantity, p.ThresholdQuantity, days),
		})
	}

	return &domain.LowStockReport{
		ReportName:         "Low Stock Report - " + startDate.Format("Jan 2006"),
		GeneratedDate:      time.Now().Format(dateLayout),
		StartDate:          startDate.Format(dateLayout),
		EndDate:            formatDate(endDate),
		Format:             formatTag(format),
		TotalLowStockItems: int64(len(items)),
		LowStockItems:      items,
	}, nil
}

// snapshot loads the full product set and, when both dates are supplied,
// restricts it to products owning at least one batch whose expiry falls
// within [startDate, endDate], inclusive at both boundaries. This is a
// batch-expiry filter, not a generation-date filter.
func (s *ReportService) snapshot(ctx context.Context, startDate, endDate time.Time) ([]*repository.Product, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if startDate.IsZero() || endDate.IsZero() {
		return products, nil
	}

	batches, err := s.batches.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	inRange := make(map[string]struct{})
	for _, b := range batches {
		if !b.Expiry.Before(startDate) && !b.Expiry.After(endDate) {
			inRange[b.SkuID] = struct{}{}
		}
	}

	filtered := products[:0]
	for _, p := range products {
		if _, ok := inRange[p.SkuID]; ok {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// daysUntilOut estimates days until stockout with a linear heuristic: a full
// threshold lasts 30 days. No consumption-rate data exists, so this is a
// placeholder estimate, not a forecast.
func daysUntilOut(quantity, threshold int64) int64 {
	if quantity == 0 {
		return 0
	}

	ratio := float64(quantity) / float64(threshold)
	days := int64(math.Round(30 * ratio))
	if days < 1 {
		days = 1
	}
	return days
}

// priority classifies a low stock item. Either predicate triggers the tier;
// Critical is evaluated first.
func priority(quantity, threshold, days int64) string {
	ratio := float64(quantity) / float64(threshold)

	switch {
	case ratio < 0.3 || days <= 7:
		return domain.PriorityCritical
	case ratio < 0.6 || days <= 14:
		return domain.PriorityHigh
	default:
		return domain.PriorityMedium
	}
}

// warehouseName synthesizes a display name from the warehouse ID. There is
// deliberately no registry lookup.
func warehouseName(warehouseID string) string {
	return "Warehouse " + warehouseID
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// formatTag echoes the requested output format, defaulting to JSON
func formatTag(format string) string {
	if format == "" {
		return "JSON"
	}
	return strings.ToUpper(format)
}
