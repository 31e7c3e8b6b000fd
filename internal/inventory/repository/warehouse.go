package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pharmstock/pharmstock-backend/pkg/database"
	"github.com/pharmstock/pharmstock-backend/pkg/errors"
)

// Warehouse represents a storage location. It exists so product and batch
// operations can validate warehouse references; reports never join against it.
type Warehouse struct {
	WarehouseID string    `db:"warehouse_id" json:"warehouse_id"`
	Name        string    `db:"name" json:"name"`
	Location    *string   `db:"location" json:"location,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// WarehouseRepository handles warehouse persistence
type WarehouseRepository struct {
	db *database.DB
}

// NewWarehouseRepository creates a new warehouse repository
func NewWarehouseRepository(db *database.DB) *WarehouseRepository {
	return &WarehouseRepository{db: db}
}

// Create creates a new warehouse
func (r *WarehouseRepository) Create(ctx context.Context, w *Warehouse) error {
	query := `
		INSERT INTO warehouses (warehouse_id, name, location)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query, w.WarehouseID, w.Name, w.Location).Scan(&w.CreatedAt)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}
	return nil
}

// GetByID gets a warehouse by its ID
func (r *WarehouseRepository) GetByID(ctx context.Context, warehouseID string) (*Warehouse, error) {
	var w Warehouse
	query := `SELECT * FROM warehouses WHERE warehouse_id = $1`
	if err := r.db.GetContext(ctx, &w, query, warehouseID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("warehouse")
		}
		return nil, err
	}
	return &w, nil
}

// List lists all warehouses
func (r *WarehouseRepository) List(ctx context.Context) ([]*Warehouse, error) {
	var warehouses []*Warehouse
	query := `SELECT * FROM warehouses ORDER BY warehouse_id`
	if err := r.db.SelectContext(ctx, &warehouses, query); err != nil {
		return nil, err
	}
	return warehouses, nil
}

// Exists reports whether a warehouse exists
func (r *WarehouseRepository) Exists(ctx context.Context, warehouseID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM warehouses WHERE warehouse_id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, warehouseID); err != nil {
		return false, err
	}
	return exists, nil
}
