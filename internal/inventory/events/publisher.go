package events

import (
	"context"

	"github.com/pharmstock/pharmstock-backend/internal/inventory/repository"
	"github.com/pharmstock/pharmstock-backend/pkg/logger"
	"github.com/pharmstock/pharmstock-backend/pkg/messaging"
)

// InventoryEventPublisher publishes inventory-related events
type InventoryEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewInventoryEventPublisher creates a new inventory event publisher
func NewInventoryEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*InventoryEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeInventoryEvents, "inventory-service", log)
	if err != nil {
		return nil, err
	}

	return &InventoryEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// PublishProductCreated publishes a product created event
func (p *InventoryEventPublisher) PublishProductCreated(ctx context.Context, product *repository.Product) {
	if p == nil {
		return
	}

	data := messaging.ProductCreatedEvent{
		SkuID:       product.SkuID,
		WarehouseID: product.WarehouseID,
		ProductName: product.ProductName,
		Category:    product.Category,
	}

	if err := p.publisher.Publish(ctx, messaging.EventProductCreated, data); err != nil {
		p.logger.Error().Err(err).Str("sku_id", product.SkuID).Msg("failed to publish product created event")
	}
}

// PublishProductUpdated publishes a product updated event
func (p *InventoryEventPublisher) PublishProductUpdated(ctx context.Context, product *repository.Product) {
	if p == nil {
		return
	}

	data := messaging.ProductUpdatedEvent{
		SkuID:       product.SkuID,
		WarehouseID: product.WarehouseID,
	}

	if err := p.publisher.Publish(ctx, messaging.EventProductUpdated, data); err != nil {
		p.logger.Error().Err(err).Str("sku_id", product.SkuID).Msg("failed to publish product updated event")
	}
}

// PublishProductDeleted publishes a product deleted event
func (p *InventoryEventPublisher) PublishProductDeleted(ctx context.Context, skuID, warehouseID string) {
	if p == nil {
		return
	}

	data := messaging.ProductDeletedEvent{
		SkuID:       skuID,
		WarehouseID: warehouseID,
	}

	if err := p.publisher.Publish(ctx, messaging.EventProductDeleted, data); err != nil {
		p.logger.Error().Err(err).Str("sku_id", skuID).Msg("failed to publish product deleted event")
	}
}

// PublishBatchCreated publishes a batch created event
func (p *InventoryEventPublisher) PublishBatchCreated(ctx context.Context, batch *repository.ProductBatch) {
	if p == nil {
		return
	}

	data := messaging.BatchCreatedEvent{
		BatchID:     batch.BatchID,
		SkuID:       batch.SkuID,
		WarehouseID: batch.WarehouseID,
		Quantity:    batch.Quantity,
		Expiry:      batch.Expiry,
	}

	if err := p.publisher.Publish(ctx, messaging.EventBatchCreated, data); err != nil {
		p.logger.Error().Err(err).Str("batch_id", batch.BatchID).Msg("failed to publish batch created event")
	}
}

// PublishBatchUpdated publishes a batch updated event
func (p *InventoryEventPublisher) PublishBatchUpdated(ctx context.Context, batch *repository.ProductBatch) {
	if p == nil {
		return
	}

	data := messaging.BatchUpdatedEvent{
		BatchID:     batch.BatchID,
		SkuID:       batch.SkuID,
		WarehouseID: batch.WarehouseID,
		Quantity:    batch.Quantity,
		Expiry:      batch.Expiry,
	}

	if err := p.publisher.Publish(ctx, messaging.EventBatchUpdated, data); err != nil {
		p.logger.Error().Err(err).Str("batch_id", batch.BatchID).Msg("failed to publish batch updated event")
	}
}

// PublishBatchDeleted publishes a batch deleted event
func (p *InventoryEventPublisher) PublishBatchDeleted(ctx context.Context, batchID, skuID, warehouseID string) {
	if p == nil {
		return
	}

	data := messaging.BatchDeletedEvent{
		BatchID:     batchID,
		SkuID:       skuID,
		WarehouseID: warehouseID,
	}

	if err := p.publisher.Publish(ctx, messaging.EventBatchDeleted, data); err != nil {
		p.logger.Error().Err(err).Str("batch_id", batchID).Msg("failed to publish batch deleted event")
	}
}

// PublishStockRecomputed publishes a stock recomputed event
func (p *InventoryEventPublisher) PublishStockRecomputed(ctx context.Context, skuID, warehouseID string, previous, current int64) {
	if p == nil {
		return
	}

	data := messaging.StockRecomputedEvent{
		SkuID:            skuID,
		WarehouseID:      warehouseID,
		PreviousQuantity: previous,
		NewQuantity:      current,
	}

	if err := p.publisher.Publish(ctx, messaging.EventStockRecomputed, data); err != nil {
		p.logger.Error().Err(err).Str("sku_id", skuID).Msg("failed to publish stock recomputed event")
	}
}
