package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pharmstock/pharmstock-backend/internal/inventory/events"
	"github.com/pharmstock/pharmstock-backend/internal/inventory/repository"
	"github.com/pharmstock/pharmstock-backend/pkg/errors"
	"github.com/pharmstock/pharmstock-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// defaultProfitMargin applies when a product is created without one
var defaultProfitMargin = decimal.NewFromFloat(5.00)

// InventoryService handles inventory business logic
type InventoryService struct {
	warehouseRepo *repository.WarehouseRepository
	productRepo   *repository.ProductRepository
	batchRepo     *repository.BatchRepository
	publisher     *events.InventoryEventPublisher
	logger        *logger.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	warehouseRepo *repository.WarehouseRepository,
	productRepo *repository.ProductRepository,
	batchRepo *repository.BatchRepository,
	publisher *events.InventoryEventPublisher,
	log *logger.Logger,
) *InventoryService {
	return &InventoryService{
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		batchRepo:     batchRepo,
		publisher:     publisher,
		logger:        log,
	}
}

// Product operations

// CreateProduct creates a new product. The warehouse must exist and the
// (sku, warehouse) pair must be unused. The initial quantity is always 0;
// it grows as batches are added.
func (s *InventoryService) CreateProduct(ctx context.Context, p *repository.Product) error {
	exists, err := s.warehouseRepo.Exists(ctx, p.WarehouseID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NotFound("warehouse")
	}

	if !repository.ValidCategory(p.Category) {
		return errors.Validation(map[string]string{
			"category": "unknown product category: " + p.Category,
		})
	}

	if _, err := s.productRepo.GetBySKU(ctx, p.SkuID, p.WarehouseID); err == nil {
		return errors.Conflict(fmt.Sprintf(
			"product with SKU %s already exists in warehouse %s", p.SkuID, p.WarehouseID,
		))
	} else if !errors.Is(err, errors.ErrNotFound) {
		return err
	}

	p.Quantity = 0
	if p.ProfitMargin.IsZero() {
		p.ProfitMargin = defaultProfitMargin
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		return err
	}

	s.publisher.PublishProductCreated(ctx, p)
	return nil
}

// GetProduct gets a product by its (sku, warehouse) pair
func (s *InventoryService) GetProduct(ctx context.Context, skuID, warehouseID string) (*repository.Product, error) {
	return s.productRepo.GetBySKU(ctx, skuID, warehouseID)
}

// ListProducts lists products in a warehouse with search, sorting and
// pagination. The warehouse must exist.
func (s *InventoryService) ListProducts(ctx context.Context, warehouseID, search, sortBy, direction string, page, size int) ([]*repository.Product, int64, error) {
	exists, err := s.warehouseRepo.Exists(ctx, warehouseID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, errors.NotFound("warehouse")
	}

	return s.productRepo.ListByWarehouse(ctx, warehouseID, search, sortBy, direction, page, size)
}

// UpdateProduct updates a product's mutable fields. The cached quantity is
// never updated here.
func (s *InventoryService) UpdateProduct(ctx context.Context, p *repository.Product) error {
	if !repository.ValidCategory(p.Category) {
		return errors.Validation(map[string]string{
			"category": "unknown product category: " + p.Category,
		})
	}

	if err := s.productRepo.Update(ctx, p); err != nil {
		return err
	}

	s.publisher.PublishProductUpdated(ctx, p)
	return nil
}

// DeleteProduct deletes a product. Deletion is rejected while the product
// still owns batches.
func (s *InventoryService) DeleteProduct(ctx context.Context, skuID, warehouseID string) error {
	count, err := s.batchRepo.CountBySKU(ctx, skuID, warehouseID)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.Conflict("cannot delete product with existing batches; remove all batches first")
	}

	if err := s.productRepo.Delete(ctx, skuID, warehouseID); err != nil {
		return err
	}

	s.publisher.PublishProductDeleted(ctx, skuID, warehouseID)
	return nil
}

// Batch operations

// CreateBatch creates a new batch for an existing product and recomputes the
// product's cached quantity
func (s *InventoryService) CreateBatch(ctx context.Context, b *repository.ProductBatch) error {
	if _, err := s.productRepo.GetBySKU(ctx, b.SkuID, b.WarehouseID); err != nil {
		return err
	}

	if err := s.batchRepo.Create(ctx, b); err != nil {
		return err
	}

	s.publisher.PublishBatchCreated(ctx, b)
	return s.RecomputeQuantity(ctx, b.SkuID, b.WarehouseID)
}

// GetBatch gets a batch by its (batch, warehouse) pair
func (s *InventoryService) GetBatch(ctx context.Context, batchID, warehouseID string) (*repository.ProductBatch, error) {
	return s.batchRepo.GetByBatchID(ctx, batchID, warehouseID)
}

// ListBatchesBySKU lists a product's batches ordered by expiry
func (s *InventoryService) ListBatchesBySKU(ctx context.Context, skuID, warehouseID string) ([]*repository.ProductBatch, error) {
	return s.batchRepo.ListBySKU(ctx, skuID, warehouseID)
}

// ListExpiringSoon lists batches in a warehouse expiring within the given
// number of days
func (s *InventoryService) ListExpiringSoon(ctx context.Context, warehouseID string, days int) ([]*repository.ProductBatch, error) {
	before := time.Now().AddDate(0, 0, days)
	return s.batchRepo.ListExpiringSoon(ctx, warehouseID, before)
}

// UpdateBatch updates a batch and recomputes the owning product's quantity
func (s *InventoryService) UpdateBatch(ctx context.Context, b *repository.ProductBatch) error {
	existing, err := s.batchRepo.GetByBatchID(ctx, b.BatchID, b.WarehouseID)
	if err != nil {
		return err
	}
	b.SkuID = existing.SkuID

	if err := s.batchRepo.Update(ctx, b); err != nil {
		return err
	}

	s.publisher.PublishBatchUpdated(ctx, b)
	return s.RecomputeQuantity(ctx, b.SkuID, b.WarehouseID)
}

// DeleteBatch deletes a batch and recomputes the owning product's quantity
func (s *InventoryService) DeleteBatch(ctx context.Context, batchID, warehouseID string) error {
	batch, err := s.batchRepo.GetByBatchID(ctx, batchID, warehouseID)
	if err != nil {
		return err
	}

	if err := s.batchRepo.Delete(ctx, batchID, warehouseID); err != nil {
		return err
	}

	s.publisher.PublishBatchDeleted(ctx, batchID, batch.SkuID, warehouseID)
	return s.RecomputeQuantity(ctx, batch.SkuID, warehouseID)
}

// RecomputeQuantity sets a product's cached quantity to the sum of its
// batches' quantities
func (s *InventoryService) RecomputeQuantity(ctx context.Context, skuID, warehouseID string) error {
	product, err := s.productRepo.GetBySKU(ctx, skuID, warehouseID)
	if err != nil {
		return err
	}

	total, err := s.batchRepo.SumQuantityBySKU(ctx, skuID, warehouseID)
	if err != nil {
		return err
	}

	if err := s.productRepo.UpdateQuantity(ctx, skuID, warehouseID, total); err != nil {
		return err
	}

	s.publisher.PublishStockRecomputed(ctx, skuID, warehouseID, product.Quantity, total)
	return nil
}

// Warehouse operations

// CreateWarehouse creates a new warehouse
func (s *InventoryService) CreateWarehouse(ctx context.Context, w *repository.Warehouse) error {
	return s.warehouseRepo.Create(ctx, w)
}

// GetWarehouse gets a warehouse by ID
func (s *InventoryService) GetWarehouse(ctx context.Context, warehouseID string) (*repository.Warehouse, error) {
	return s.warehouseRepo.GetByID(ctx, warehouseID)
}

// ListWarehouses lists all warehouses
func (s *InventoryService) ListWarehouses(ctx context.Context) ([]*repository.Warehouse, error) {
	return s.warehouseRepo.List(ctx)
}
