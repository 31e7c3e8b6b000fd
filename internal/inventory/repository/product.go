package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pharmstock/pharmstock-backend/pkg/database"
	"github.com/pharmstock/pharmstock-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Product represents a drug product stocked in a warehouse.
// A product is identified by its (sku_id, warehouse_id) pair.
// Quantity is a cached sum of the product's batch quantities, recomputed
// after batch mutations; it is not live-consistent.
type Product struct {
	SkuID                string          `db:"sku_id" json:"sku_id"`
	WarehouseID          string          `db:"warehouse_id" json:"warehouse_id"`
	ProductName          string          `db:"product_name" json:"product_name"`
	ManufactureName      string          `db:"manufacture_name" json:"manufacture_name"`
	Category             string          `db:"category" json:"category"`
	Description          *string         `db:"description" json:"description,omitempty"`
	StorageType          *string         `db:"storage_type" json:"storage_type,omitempty"`
	Quantity             int64           `db:"quantity" json:"quantity"`
	Price                decimal.Decimal `db:"price" json:"price"`
	ProfitMargin         decimal.Decimal `db:"profit_margin" json:"profit_margin"`
	RequiredPrescription bool            `db:"required_prescription" json:"required_prescription"`
	URL                  *string         `db:"url" json:"url,omitempty"`
	DosageForm           *string         `db:"dosage_form" json:"dosage_form,omitempty"`
	Strength             *string         `db:"strength" json:"strength,omitempty"`
	Concern              *string         `db:"concern" json:"concern,omitempty"`
	ThresholdQuantity    int64           `db:"threshold_quantity" json:"threshold_quantity"`
	CreatedAt            time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at" json:"updated_at"`
}

// ProductRepository handles product persistence
type ProductRepository struct {
	db *database.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *database.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// sortColumns whitelists sortable columns for ListByWarehouse
var sortColumns = map[string]string{
	"name":     "product_name",
	"quantity": "quantity",
	"price":    "price",
	"sku":      "sku_id",
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO products (
			sku_id, warehouse_id, product_name, manufacture_name, category,
			description, storage_type, quantity, price, profit_margin,
			required_prescription, url, dosage_form, strength, concern,
			threshold_quantity
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		p.SkuID, p.WarehouseID, p.ProductName, p.ManufactureName, p.Category,
		p.Description, p.StorageType, p.Quantity, p.Price, p.ProfitMargin,
		p.RequiredPrescription, p.URL, p.DosageForm, p.Strength, p.Concern,
		p.ThresholdQuantity,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}
	return nil
}

// GetBySKU gets a product by its (sku_id, warehouse_id) pair
func (r *ProductRepository) GetBySKU(ctx context.Context, skuID, warehouseID string) (*Product, error) {
	var p Product
	query := `SELECT * FROM products WHERE sku_id = $1 AND warehouse_id = $2`
	if err := r.db.GetContext(ctx, &p, query, skuID, warehouseID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("product")
		}
		return nil, err
	}
	return &p, nil
}

// ListByWarehouse lists products in a warehouse with optional search, sorting
// and pagination. Search matches product name, SKU and manufacturer.
func (r *ProductRepository) ListByWarehouse(ctx context.Context, warehouseID, search, sortBy, direction string, page, size int) ([]*Product, int64, error) {
	where := `warehouse_id = $1`
	args := []interface{}{warehouseID}

	if search != "" {
		where += ` AND (product_name ILIKE $2 OR sku_id ILIKE $2 OR manufacture_name ILIKE $2)`
		args = append(args, "%"+search+"%")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM products WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[sortBy]
	if !ok {
		column = "sku_id"
	}
	dir := "ASC"
	if direction == "DESC" {
		dir = "DESC"
	}

	offset := (page - 1) * size
	query := fmt.Sprintf(
		`SELECT * FROM products WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`,
		where, column, dir, size, offset,
	)

	var products []*Product
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListAll lists every product across all warehouses. Used by report assembly,
// which operates on a full snapshot.
func (r *ProductRepository) ListAll(ctx context.Context) ([]*Product, error) {
	var products []*Product
	query := `SELECT * FROM products ORDER BY warehouse_id, sku_id`
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, err
	}
	return products, nil
}

// Update updates a product's mutable fields. Quantity is excluded; it is only
// touched by UpdateQuantity.
func (r *ProductRepository) Update(ctx context.Context, p *Product) error {
	query := `
		UPDATE products SET
			product_name = $3, manufacture_name = $4, category = $5,
			description = $6, storage_type = $7, price = $8, profit_margin = $9,
			required_prescription = $10, url = $11, dosage_form = $12,
			strength = $13, concern = $14, threshold_quantity = $15,
			updated_at = NOW()
		WHERE sku_id = $1 AND warehouse_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		p.SkuID, p.WarehouseID, p.ProductName, p.ManufactureName, p.Category,
		p.Description, p.StorageType, p.Price, p.ProfitMargin,
		p.RequiredPrescription, p.URL, p.DosageForm, p.Strength, p.Concern,
		p.ThresholdQuantity,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.NotFound("product")
	}
	return nil
}

// UpdateQuantity sets a product's cached quantity
func (r *ProductRepository) UpdateQuantity(ctx context.Context, skuID, warehouseID string, quantity int64) error {
	query := `
		UPDATE products SET quantity = $3, updated_at = NOW()
		WHERE sku_id = $1 AND warehouse_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, skuID, warehouseID, quantity)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.NotFound("product")
	}
	return nil
}

// Delete deletes a product
func (r *ProductRepository) Delete(ctx context.Context, skuID, warehouseID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE sku_id = $1 AND warehouse_id = $2`,
		skuID, warehouseID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.NotFound("product")
	}
	return nil
}
