package domain

import (
	"github.com/shopspring/decimal"
)

// Report types accepted by the generate endpoint
const (
	TypeInventoryValuation = "inventory-valuation"
	TypeLowStock           = "low-stock"
)

// Low stock priority tiers
const (
	PriorityCritical = "Critical"
	PriorityHigh     = "High"
	PriorityMedium   = "Medium"
)

// ValuationReport is the assembled inventory valuation report. It is built
// fresh per request and discarded after rendering; nothing is persisted.
type ValuationReport struct {
	ReportName          string               `json:"report_name"`
	GeneratedDate       string               `json:"generated_date"`
	StartDate           string               `json:"start_date"`
	EndDate             string               `json:"end_date"`
	Format              string               `json:"format"`
	TotalValuation      decimal.Decimal      `json:"total_valuation"`
	WarehouseValuations []WarehouseValuation `json:"warehouse_valuations"`
	ProductValuations   []ProductValuation   `json:"product_valuations"`
}

// WarehouseValuation is a per-warehouse subtotal row. The warehouse name is
// synthesized from the ID, never looked up.
type WarehouseValuation struct {
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	TotalProducts int64           `json:"total_products"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// ProductValuation is a per-product line item
type ProductValuation struct {
	SkuID       string          `json:"sku_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalValue  decimal.Decimal `json:"total_value"`
}

// LowStockReport is the assembled low stock report
type LowStockReport struct {
	ReportName         string         `json:"report_name"`
	GeneratedDate      string         `json:"generated_date"`
	StartDate          string         `json:"start_date"`
	EndDate            string         `json:"end_date"`
	Format             string         `json:"format"`
	TotalLowStockItems int64          `json:"total_low_stock_items"`
	LowStockItems      []LowStockItem `json:"low_stock_items"`
}

// LowStockItem is one product below its reorder threshold
type LowStockItem struct {
	SkuID         string `json:"sku_id"`
	ProductName   string `json:"product_name"`
	Category      string `json:"category"`
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	CurrentStock  int64  `json:"current_stock"`
	Threshold     int64  `json:"threshold"`
	Shortage      int64  `json:"shortage"`
	DaysUntilOut  int64  `json:"days_until_out"`
	Priority      string `json:"priority"`
}

// RecentReport describes a previously generated report. No report history is
// persisted, so listings of these are always empty.
type RecentReport struct {
	ReportID      string `json:"report_id"`
	ReportName    string `json:"report_name"`
	ReportType    string `json:"report_type"`
	GeneratedDate string `json:"generated_date"`
	Format        string `json:"format"`
}
