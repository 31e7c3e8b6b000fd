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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productColumns = []string{
	"sku_id", "warehouse_id", "product_name", "manufacture_name", "category",
	"description", "storage_type", "quantity", "price", "profit_margin",
	"required_prescription", "url", "dosage_form", "strength", "concern",
	"threshold_quantity", "created_at", "updated_at",
}

func productRow(skuID, warehouseID, name string, quantity int64, price string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(productColumns).AddRow(
		skuID, warehouseID, name, "Acme Pharma", repository.CategoryAntibiotics,
		nil, nil, quantity, price, "5.00",
		false, nil, nil, nil, nil,
		int64(20), now, now,
	)
}

func TestProductCreate(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("INSERT INTO products").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))

	repo := repository.NewProductRepository(mockDB.DB)
	product := &repository.Product{
		SkuID:           "SKU-001",
		WarehouseID:     "WH-1",
		ProductName:     "Amoxicillin 500mg",
		ManufactureName: "Acme Pharma",
		Category:        repository.CategoryAntibiotics,
		Price:           decimal.RequireFromString("12.50"),
		ProfitMargin:    decimal.RequireFromString("5.00"),
	}

	err := repo.Create(context.Background(), product)
	require.NoError(t, err)
	assert.False(t, product.CreatedAt.IsZero())

	mockDB.ExpectationsWereMet(t)
}

func TestProductCreate_DuplicateSKU(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("INSERT INTO products").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "products_pkey"})

	repo := repository.NewProductRepository(mockDB.DB)
	err := repo.Create(context.Background(), &repository.Product{
		SkuID:       "SKU-001",
		WarehouseID: "WH-1",
	})

	require.Error(t, err)
	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFLICT", appErr.Code)

	mockDB.ExpectationsWereMet(t)
}

func TestProductGetBySKU(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT * FROM products WHERE sku_id = $1 AND warehouse_id = $2").
		WithArgs("SKU-001", "WH-1").
		WillReturnRows(productRow("SKU-001", "WH-1", "Amoxicillin 500mg", 120, "12.50"))

	repo := repository.NewProductRepository(mockDB.DB)
	product, err := repo.GetBySKU(context.Background(), "SKU-001", "WH-1")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "SKU-001", product.SkuID)
	assert.Equal(t, "Amoxicillin 500mg", product.ProductName)
	assert.Equal(t, int64(120), product.Quantity)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("12.50")))

	mockDB.ExpectationsWereMet(t)
}

func TestProductGetBySKU_NotFound(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT * FROM products WHERE sku_id = $1 AND warehouse_id = $2").
		WithArgs("MISSING", "WH-1").
		WillReturnRows(sqlmock.NewRows(productColumns))

	repo := repository.NewProductRepository(mockDB.DB)
	product, err := repo.GetBySKU(context.Background(), "MISSING", "WH-1")
	assert.Nil(t, product)
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	mockDB.ExpectationsWereMet(t)
}

func TestProductListByWarehouse(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT COUNT(*) FROM products WHERE warehouse_id = $1").
		WithArgs("WH-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))

	rows := productRow("SKU-001", "WH-1", "Amoxicillin 500mg", 120, "12.50").
		AddRow("SKU-002", "WH-1", "Insulin Glargine", "Acme Pharma", repository.CategoryDiabetes,
			nil, nil, int64(40), "55.00", "5.00",
			true, nil, nil, nil, nil,
			int64(10), time.Now(), time.Now())
	mockDB.ExpectQuery("SELECT * FROM products WHERE warehouse_id = $1 ORDER BY sku_id ASC LIMIT 20 OFFSET 0").
		WithArgs("WH-1").
		WillReturnRows(rows)

	repo := repository.NewProductRepository(mockDB.DB)
	products, total, err := repo.ListByWarehouse(context.Background(), "WH-1", "", "", "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, products, 2)
	assert.Equal(t, "SKU-001", products[0].SkuID)
	assert.Equal(t, "SKU-002", products[1].SkuID)

	mockDB.ExpectationsWereMet(t)
}

func TestProductListByWarehouse_SearchAndSort(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT COUNT(*) FROM products WHERE warehouse_id = $1 AND (product_name ILIKE $2 OR sku_id ILIKE $2 OR manufacture_name ILIKE $2)").
		WithArgs("WH-1", "%insulin%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	mockDB.ExpectQuery("ORDER BY product_name DESC LIMIT 10 OFFSET 10").
		WithArgs("WH-1", "%insulin%").
		WillReturnRows(productRow("SKU-002", "WH-1", "Insulin Glargine", 40, "55.00"))

	repo := repository.NewProductRepository(mockDB.DB)
	products, total, err := repo.ListByWarehouse(context.Background(), "WH-1", "insulin", "name", "DESC", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "Insulin Glargine", products[0].ProductName)

	mockDB.ExpectationsWereMet(t)
}

func TestProductUpdate_NotFound(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectExec("UPDATE products SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := repository.NewProductRepository(mockDB.DB)
	err := repo.Update(context.Background(), &repository.Product{
		SkuID:       "MISSING",
		WarehouseID: "WH-1",
	})

	require.Error(t, err)
	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	mockDB.ExpectationsWereMet(t)
}

func TestProductUpdateQuantity(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectExec("UPDATE products SET quantity = $3, updated_at = NOW()").
		WithArgs("SKU-001", "WH-1", int64(75)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := repository.NewProductRepository(mockDB.DB)
	err := repo.UpdateQuantity(context.Background(), "SKU-001", "WH-1", 75)
	require.NoError(t, err)

	mockDB.ExpectationsWereMet(t)
}

func TestProductDelete(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectExec("DELETE FROM products WHERE sku_id = $1 AND warehouse_id = $2").
		WithArgs("SKU-001", "WH-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := repository.NewProductRepository(mockDB.DB)
	err := repo.Delete(context.Background(), "SKU-001", "WH-1")
	require.NoError(t, err)

	mockDB.ExpectationsWereMet(t)
}

func TestValidCategory(t *testing.T) {
	assert.True(t, repository.ValidCategory(repository.CategoryVaccine))
	assert.True(t, repository.ValidCategory(repository.CategoryPainRelief))
	assert.False(t, repository.ValidCategory("FURNITURE"))
	assert.False(t, repository.ValidCategory(""))
}
