package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pharmstock/pharmstock-backend/pkg/database"
	"github.com/pharmstock/pharmstock-backend/pkg/errors"
)

// ProductBatch represents a discrete quantity of a product with its own
// expiry date. A batch is identified by its (batch_id, warehouse_id) pair
// and references a product by sku_id within the same warehouse.
type ProductBatch struct {
	BatchID     string    `db:"batch_id" json:"batch_id"`
	WarehouseID string    `db:"warehouse_id" json:"warehouse_id"`
	SkuID       string    `db:"sku_id" json:"sku_id"`
	Quantity    int64     `db:"quantity" json:"quantity"`
	Expiry      time.Time `db:"expiry" json:"expiry"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// BatchRepository handles product batch persistence
type BatchRepository struct {
	db *database.DB
}

// NewBatchRepository creates a new batch repository
func NewBatchRepository(db *database.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// Create creates a new batch
func (r *BatchRepository) Create(ctx context.Context, b *ProductBatch) error {
	query := `
		INSERT INTO product_batches (batch_id, warehouse_id, sku_id, quantity, expiry)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		b.BatchID, b.WarehouseID, b.SkuID, b.Quantity, b.Expiry,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}
	return nil
}

// GetByBatchID gets a batch by its (batch_id, warehouse_id) pair
func (r *BatchRepository) GetByBatchID(ctx context.Context, batchID, warehouseID string) (*ProductBatch, error) {
	var b ProductBatch
	query := `SELECT * FROM product_batches WHERE batch_id = $1 AND warehouse_id = $2`
	if err := r.db.GetContext(ctx, &b, query, batchID, warehouseID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("batch")
		}
		return nil, err
	}
	return &b, nil
}

// ListBySKU lists batches for a product ordered by expiry
func (r *BatchRepository) ListBySKU(ctx context.Context, skuID, warehouseID string) ([]*ProductBatch, error) {
	var batches []*ProductBatch
	query := `
		SELECT * FROM product_batches
		WHERE sku_id = $1 AND warehouse_id = $2
		ORDER BY expiry
	`
	if err := r.db.SelectContext(ctx, &batches, query, skuID, warehouseID); err != nil {
		return nil, err
	}
	return batches, nil
}

// ListAll lists every batch across all warehouses. Used by report assembly,
// which operates on a full snapshot.
func (r *BatchRepository) ListAll(ctx context.Context) ([]*ProductBatch, error) {
	var batches []*ProductBatch
	query := `SELECT * FROM product_batches ORDER BY warehouse_id, batch_id`
	if err := r.db.SelectContext(ctx, &batches, query); err != nil {
		return nil, err
	}
	return batches, nil
}

// ListExpiringSoon lists batches in a warehouse expiring between now and the
// given date, soonest first
func (r *BatchRepository) ListExpiringSoon(ctx context.Context, warehouseID string, before time.Time) ([]*ProductBatch, error) {
	var batches []*ProductBatch
	query := `
		SELECT * FROM product_batches
		WHERE warehouse_id = $1 AND expiry <= $2 AND expiry >= CURRENT_DATE
		ORDER BY expiry
	`
	if err := r.db.SelectContext(ctx, &batches, query, warehouseID, before); err != nil {
		return nil, err
	}
	return batches, nil
}

// SumQuantityBySKU returns the total quantity across a product's batches
func (r *BatchRepository) SumQuantityBySKU(ctx context.Context, skuID, warehouseID string) (int64, error) {
	var total int64
	query := `
		SELECT COALESCE(SUM(quantity), 0) FROM product_batches
		WHERE sku_id = $1 AND warehouse_id = $2
	`
	if err := r.db.GetContext(ctx, &total, query, skuID, warehouseID); err != nil {
		return 0, err
	}
	return total, nil
}

// CountBySKU returns the number of batches owned by a product
func (r *BatchRepository) CountBySKU(ctx context.Context, skuID, warehouseID string) (int64, error) {
	var count int64
	query := `
		SELECT COUNT(*) FROM product_batches
		WHERE sku_id = $1 AND warehouse_id = $2
	`
	if err := r.db.GetContext(ctx, &count, query, skuID, warehouseID); err != nil {
		return 0, err
	}
	return count, nil
}

// Update updates a batch's quantity and expiry
func (r *BatchRepository) Update(ctx context.Context, b *ProductBatch) error {
	query := `
		UPDATE product_batches SET quantity = $3, expiry = $4, updated_at = NOW()
		WHERE batch_id = $1 AND warehouse_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, b.BatchID, b.WarehouseID, b.Quantity, b.Expiry)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.NotFound("batch")
	}
	return nil
}

// Delete deletes a batch
func (r *BatchRepository) Delete(ctx context.Context, batchID, warehouseID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM product_batches WHERE batch_id = $1 AND warehouse_id = $2`,
		batchID, warehouseID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.NotFound("batch")
	}
	return nil
}
