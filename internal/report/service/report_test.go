package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/pharmstock/pharmstock-backend/internal/inventory/repository"
	"github.com/pharmstock/pharmstock-backend/internal/report/domain"
	"github.com/pharmstock/pharmstock-backend/internal/report/service"
	"github.com/pharmstock/pharmstock-backend/pkg/errors"
	"github.com/pharmstock/pharmstock-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProducts []*repository.Product

func (m memProducts) ListAll(ctx context.Context) ([]*repository.Product, error) {
	return append([]*repository.Product(nil), m...), nil
}

type memBatches []*repository.ProductBatch

func (m memBatches) ListAll(ctx context.Context) ([]*repository.ProductBatch, error) {
	return append([]*repository.ProductBatch(nil), m...), nil
}

func newTestService(products memProducts, batches memBatches) *service.ReportService {
	return service.NewReportService(products, batches, logger.New("test", "test"))
}

func testProduct(skuID, warehouseID string, quantity, threshold int64, price string) *repository.Product {
	return &repository.Product{
		SkuID:             skuID,
		WarehouseID:       warehouseID,
		ProductName:       "Product " + skuID,
		ManufactureName:   "Acme Pharma",
		Category:          repository.CategoryAntibiotics,
		Quantity:          quantity,
		Price:             decimal.RequireFromString(price),
		ThresholdQuantity: threshold,
	}
}

func testBatch(skuID, warehouseID string, expiry time.Time) *repository.ProductBatch {
	return &repository.ProductBatch{
		BatchID:     "B-" + skuID,
		WarehouseID: warehouseID,
		SkuID:       skuID,
		Quantity:    10,
		Expiry:      expiry,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateValuation_Totals(t *testing.T) {
	products := memProducts{
		testProduct("SKU-001", "WH-1", 100, 20, "12.50"),
		testProduct("SKU-002", "WH-1", 40, 10, "55.00"),
		testProduct("SKU-003", "WH-2", 10, 5, "3.10"),
	}
	svc := newTestService(products, nil)

	report, err := svc.GenerateValuation(context.Background(), date(2026, 1, 1), time.Time{}, "")
	require.NoError(t, err)

	// 100*12.50 + 40*55.00 + 10*3.10
	assert.True(t, report.TotalValuation.Equal(decimal.RequireFromString("3481.00")),
		"got total %s", report.TotalValuation)
	require.Len(t, report.ProductValuations, 3)
	require.Len(t, report.WarehouseValuations, 2)

	// Warehouse subtotals are sorted by ID and sum to the grand total
	assert.Equal(t, "WH-1", report.WarehouseValuations[0].WarehouseID)
	assert.Equal(t, "WH-2", report.WarehouseValuations[1].WarehouseID)
	assert.Equal(t, "Warehouse WH-1", report.WarehouseValuations[0].WarehouseName)
	assert.Equal(t, int64(2), report.WarehouseValuations[0].TotalProducts)
	assert.Equal(t, int64(140), report.WarehouseValuations[0].TotalQuantity)

	sum := decimal.Zero
	for _, wv := range report.WarehouseValuations {
		sum = sum.Add(wv.TotalValue)
	}
	assert.True(t, sum.Equal(report.TotalValuation))
}

func TestGenerateValuation_Metadata(t *testing.T) {
	svc := newTestService(memProducts{}, nil)

	report, err := svc.GenerateValuation(context.Background(), date(2026, 1, 15), date(2026, 2, 15), "pdf")
	require.NoError(t, err)

	assert.Equal(t, "Inventory Valuation Report - Jan 2026", report.ReportName)
	assert.Equal(t, time.Now().Format("2006-01-02"), report.GeneratedDate)
	assert.Equal(t, "2026-01-15", report.StartDate)
	assert.Equal(t, "2026-02-15", report.EndDate)
	assert.Equal(t, "PDF", report.Format)
	assert.True(t, report.TotalValuation.IsZero())
	assert.Empty(t, report.ProductValuations)
	assert.Empty(t, report.WarehouseValuations)
}

func TestGenerateValuation_FormatDefaultsToJSON(t *testing.T) {
	svc := newTestService(memProducts{}, nil)

	report, err := svc.GenerateValuation(context.Background(), date(2026, 1, 1), time.Time{}, "")
	require.NoError(t, err)
	assert.Equal(t, "JSON", report.Format)
	assert.Equal(t, "", report.EndDate)
}

func TestGenerateValuation_StartDateRequired(t *testing.T) {
	svc := newTestService(memProducts{}, nil)

	_, err := svc.GenerateValuation(context.Background(), time.Time{}, date(2026, 2, 1), "")
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Contains(t, appErr.Details, "startDate")
}

func TestGenerateValuation_ExpiryWindowFilter(t *testing.T) {
	products := memProducts{
		testProduct("SKU-IN", "WH-1", 10, 5, "1.00"),
		testProduct("SKU-EDGE-LO", "WH-1", 10, 5, "1.00"),
		testProduct("SKU-EDGE-HI", "WH-1", 10, 5, "1.00"),
		testProduct("SKU-OUT", "WH-1", 10, 5, "1.00"),
		testProduct("SKU-NOBATCH", "WH-1", 10, 5, "1.00"),
	}
	batches := memBatches{
		testBatch("SKU-IN", "WH-1", date(2026, 1, 15)),
		// boundaries are inclusive
		testBatch("SKU-EDGE-LO", "WH-1", date(2026, 1, 1)),
		testBatch("SKU-EDGE-HI", "WH-1", date(2026, 1, 31)),
		testBatch("SKU-OUT", "WH-1", date(2026, 2, 1)),
	}
	svc := newTestService(products, batches)

	report, err := svc.GenerateValuation(context.Background(), date(2026, 1, 1), date(2026, 1, 31), "")
	require.NoError(t, err)

	skus := make([]string, 0, len(report.ProductValuations))
	for _, pv := range report.ProductValuations {
		skus = append(skus, pv.SkuID)
	}
	assert.ElementsMatch(t, []string{"SKU-IN", "SKU-EDGE-LO", "SKU-EDGE-HI"}, skus)
}

func TestGenerateValuation_FilterMatchesSKUAcrossWarehouses(t *testing.T) {
	// A batch in one warehouse keeps the same SKU in every warehouse
	products := memProducts{
		testProduct("SKU-001", "WH-1", 10, 5, "1.00"),
		testProduct("SKU-001", "WH-2", 20, 5, "1.00"),
	}
	batches := memBatches{
		testBatch("SKU-001", "WH-1", date(2026, 1, 15)),
	}
	svc := newTestService(products, batches)

	report, err := svc.GenerateValuation(context.Background(), date(2026, 1, 1), date(2026, 1, 31), "")
	require.NoError(t, err)
	assert.Len(t, report.ProductValuations, 2)
}

func TestGenerateLowStock_OnlyBelowThreshold(t *testing.T) {
	products := memProducts{
		testProduct("SKU-LOW", "WH-1", 5, 20, "1.00"),
		testProduct("SKU-AT", "WH-1", 20, 20, "1.00"),
		testProduct("SKU-ABOVE", "WH-1", 50, 20, "1.00"),
	}
	svc := newTestService(products, nil)

	report, err := svc.GenerateLowStock(context.Background(), date(2026, 1, 1), time.Time{}, "")
	require.NoError(t, err)

	require.Len(t, report.LowStockItems, 1)
	assert.Equal(t, int64(1), report.TotalLowStockItems)
	assert.Equal(t, "SKU-LOW", report.LowStockItems[0].SkuID)
}

func TestGenerateLowStock_ItemFields(t *testing.T) {
	products := memProducts{
		testProduct("SKU-001", "WH-1", 5, 20, "1.00"),
	}
	svc := newTestService(products, nil)

	report, err := svc.GenerateLowStock(context.Background(), date(2026, 1, 1), time.Time{}, "")
	require.NoError(t, err)
	require.Len(t, report.LowStockItems, 1)

	item := report.LowStockItems[0]
	assert.Equal(t, "Warehouse WH-1", item.WarehouseName)
	assert.Equal(t, int64(5), item.CurrentStock)
	assert.Equal(t, int64(20), item.Threshold)
	assert.Equal(t, int64(15), item.Shortage)
	// 5/20 of a 30-day threshold rounds to 8 days
	assert.Equal(t, int64(8), item.DaysUntilOut)
	assert.Equal(t, domain.PriorityCritical, item.Priority)
}

func TestGenerateLowStock_Priorities(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int64
		threshold int64
		days      int64
		priority  string
	}{
		{"zero stock", 0, 100, 0, domain.PriorityCritical},
		{"just below critical ratio", 29, 100, 9, domain.PriorityCritical},
		{"well below critical ratio", 20, 100, 6, domain.PriorityCritical},
		{"below high ratio", 50, 100, 15, domain.PriorityHigh},
		{"high ratio with short runway", 45, 100, 14, domain.PriorityHigh},
		{"at high ratio boundary", 60, 100, 18, domain.PriorityMedium},
		{"medium", 90, 100, 27, domain.PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := memProducts{
				testProduct("SKU-001", "WH-1", tt.quantity, tt.threshold, "1.00"),
			}
			svc := newTestService(products, nil)

			report, err := svc.GenerateLowStock(context.Background(), date(2026, 1, 1), time.Time{}, "")
			require.NoError(t, err)
			require.Len(t, report.LowStockItems, 1)

			item := report.LowStockItems[0]
			assert.Equal(t, tt.days, item.DaysUntilOut)
			assert.Equal(t, tt.priority, item.Priority)
		})
	}
}

func TestGenerateLowStock_DaysUntilOutFloor(t *testing.T) {
	// A tiny nonzero stock still reports at least one day
	products := memProducts{
		testProduct("SKU-001", "WH-1", 1, 100, "1.00"),
	}
	svc := newTestService(products, nil)

	report, err := svc.GenerateLowStock(context.Background(), date(2026, 1, 1), time.Time{}, "")
	require.NoError(t, err)
	require.Len(t, report.LowStockItems, 1)
	assert.Equal(t, int64(1), report.LowStockItems[0].DaysUntilOut)
}

func TestGenerateLowStock_Metadata(t *testing.T) {
	svc := newTestService(memProducts{}, nil)

	report, err := svc.GenerateLowStock(context.Background(), date(2026, 3, 1), date(2026, 3, 31), "xlsx")
	require.NoError(t, err)

	assert.Equal(t, "Low Stock Report - Mar 2026", report.ReportName)
	assert.Equal(t, "XLSX", report.Format)
	assert.Equal(t, int64(0), report.TotalLowStockItems)
	assert.NotNil(t, report.LowStockItems)
	assert.Empty(t, report.LowStockItems)
}

func TestGenerateLowStock_StartDateRequired(t *testing.T) {
	svc := newTestService(memProducts{}, nil)

	_, err := svc.GenerateLowStock(context.Background(), time.Time{}, time.Time{}, "")
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
