package messaging

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types
const (
	// Product events
	EventProductCreated = "inventory.product.created"
	EventProductUpdated = "inventory.product.updated"
	EventProductDeleted = "inventory.product.deleted"

	// Batch events
	EventBatchCreated = "inventory.batch.created"
	EventBatchUpdated = "inventory.batch.updated"
	EventBatchDeleted = "inventory.batch.deleted"

	// Stock events
	EventStockRecomputed = "inventory.stock.recomputed"
)

// Exchange names
const (
	ExchangeInventoryEvents = "inventory.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// Product Events

// ProductCreatedEvent is published when a product is created
type ProductCreatedEvent struct {
	SkuID       string `json:"sku_id"`
	WarehouseID string `json:"warehouse_id"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
}

// ProductUpdatedEvent is published when a product is updated
type ProductUpdatedEvent struct {
	SkuID       string `json:"sku_id"`
	WarehouseID string `json:"warehouse_id"`
}

// ProductDeletedEvent is published when a product is deleted
type ProductDeletedEvent struct {
	SkuID       string `json:"sku_id"`
	WarehouseID string `json:"warehouse_id"`
}

// Batch Events

// BatchCreatedEvent is published when a batch is created
type BatchCreatedEvent struct {
	BatchID     string    `json:"batch_id"`
	SkuID       string    `json:"sku_id"`
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	Expiry      time.Time `json:"expiry"`
}

// BatchUpdatedEvent is published when a batch is updated
type BatchUpdatedEvent struct {
	BatchID     string    `json:"batch_id"`
	SkuID       string    `json:"sku_id"`
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	Expiry      time.Time `json:"expiry"`
}

// BatchDeletedEvent is published when a batch is deleted
type BatchDeletedEvent struct {
	BatchID     string `json:"batch_id"`
	SkuID       string `json:"sku_id"`
	WarehouseID string `json:"warehouse_id"`
}

// Stock Events

// StockRecomputedEvent is published when a product's cached quantity is recomputed
// from its batches
type StockRecomputedEvent struct {
	SkuID            string `json:"sku_id"`
	WarehouseID      string `json:"warehouse_id"`
	PreviousQuantity int64  `json:"previous_quantity"`
	NewQuantity      int64  `json:"new_quantity"`
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), time.Now().Nanosecond()%10000)
}
