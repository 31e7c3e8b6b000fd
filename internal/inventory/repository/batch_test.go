package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/pharmstock/pharmstock-backend/internal/inventory/repository"
	"github.com/pharmstock/pharmstock-backend/pkg/errors"
	"github.com/pharmstock/pharmstock-backend/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var batchColumns = []string{
	"batch_id", "warehouse_id", "sku_id", "quantity", "expiry", "created_at", "updated_at",
}

func batchRow(batchID, warehouseID, skuID string, quantity int64, expiry time.Time) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(batchColumns).AddRow(batchID, warehouseID, skuID, quantity, expiry, now, now)
}

func TestBatchCreate(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("INSERT INTO product_batches").
		WithArgs("BATCH-001", "WH-1", "SKU-001", int64(50), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))

	repo := repository.NewBatchRepository(mockDB.DB)
	batch := &repository.ProductBatch{
		BatchID:     "BATCH-001",
		WarehouseID: "WH-1",
		SkuID:       "SKU-001",
		Quantity:    50,
		Expiry:      time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	err := repo.Create(context.Background(), batch)
	require.NoError(t, err)
	assert.False(t, batch.CreatedAt.IsZero())

	mockDB.ExpectationsWereMet(t)
}

func TestBatchCreate_UnknownProduct(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("INSERT INTO product_batches").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "product_batches_sku_fkey"})

	repo := repository.NewBatchRepository(mockDB.DB)
	err := repo.Create(context.Background(), &repository.ProductBatch{
		BatchID:     "BATCH-001",
		WarehouseID: "WH-1",
		SkuID:       "MISSING",
	})

	require.Error(t, err)
	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "BAD_REQUEST", appErr.Code)

	mockDB.ExpectationsWereMet(t)
}

func TestBatchGetByBatchID_NotFound(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT * FROM product_batches WHERE batch_id = $1 AND warehouse_id = $2").
		WithArgs("MISSING", "WH-1").
		WillReturnRows(sqlmock.NewRows(batchColumns))

	repo := repository.NewBatchRepository(mockDB.DB)
	batch, err := repo.GetByBatchID(context.Background(), "MISSING", "WH-1")
	assert.Nil(t, batch)
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	mockDB.ExpectationsWereMet(t)
}

func TestBatchListBySKU(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	early := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := batchRow("BATCH-001", "WH-1", "SKU-001", 30, early).
		AddRow("BATCH-002", "WH-1", "SKU-001", int64(70), late, time.Now(), time.Now())

	mockDB.ExpectQuery("ORDER BY expiry").
		WithArgs("SKU-001", "WH-1").
		WillReturnRows(rows)

	repo := repository.NewBatchRepository(mockDB.DB)
	batches, err := repo.ListBySKU(context.Background(), "SKU-001", "WH-1")
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, "BATCH-001", batches[0].BatchID)
	assert.True(t, batches[0].Expiry.Before(batches[1].Expiry))

	mockDB.ExpectationsWereMet(t)
}

func TestBatchSumQuantityBySKU(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT COALESCE(SUM(quantity), 0) FROM product_batches").
		WithArgs("SKU-001", "WH-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(100)))

	repo := repository.NewBatchRepository(mockDB.DB)
	total, err := repo.SumQuantityBySKU(context.Background(), "SKU-001", "WH-1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), total)

	mockDB.ExpectationsWereMet(t)
}

func TestBatchSumQuantityBySKU_NoBatches(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT COALESCE(SUM(quantity), 0) FROM product_batches").
		WithArgs("SKU-001", "WH-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(0)))

	repo := repository.NewBatchRepository(mockDB.DB)
	total, err := repo.SumQuantityBySKU(context.Background(), "SKU-001", "WH-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	mockDB.ExpectationsWereMet(t)
}

func TestBatchUpdate_NotFound(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectExec("UPDATE product_batches SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := repository.NewBatchRepository(mockDB.DB)
	err := repo.Update(context.Background(), &repository.ProductBatch{
		BatchID:     "MISSING",
		WarehouseID: "WH-1",
	})

	require.Error(t, err)
	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	mockDB.ExpectationsWereMet(t)
}

func TestBatchDelete(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectExec("DELETE FROM product_batches WHERE batch_id = $1 AND warehouse_id = $2").
		WithArgs("BATCH-001", "WH-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := repository.NewBatchRepository(mockDB.DB)
	err := repo.Delete(context.Background(), "BATCH-001", "WH-1")
	require.NoError(t, err)

	mockDB.ExpectationsWereMet(t)
}

func TestWarehouseExists(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT EXISTS(SELECT 1 FROM warehouses WHERE warehouse_id = $1)").
		WithArgs("WH-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := repository.NewWarehouseRepository(mockDB.DB)
	exists, err := repo.Exists(context.Background(), "WH-1")
	require.NoError(t, err)
	assert.True(t, exists)

	mockDB.ExpectationsWereMet(t)
}
