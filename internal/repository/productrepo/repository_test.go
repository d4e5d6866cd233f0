package productrepo_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petstock/internal/domain"
	apperror "petstock/internal/errors"
	"petstock/internal/pkg/cache"
	"petstock/internal/pkg/logger"
	"petstock/internal/repository/productrepo"
)

type memCache struct {
	data    map[string]string
	deleted []string
	getErr  error
}

func newMemCache() *memCache { return &memCache{data: map[string]string{}} }

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return v, nil
}
func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	}
	return nil
}
func (c *memCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	c.deleted = append(c.deleted, key)
	return nil
}
func (c *memCache) DeletePrefix(context.Context, string) error {
	c.data = map[string]string{}
	return nil
}
func (c *memCache) IncrWindow(context.Context, string, time.Duration) (int64, error) {
	return 0, nil
}

var columns = []string{"id", "name", "description", "price", "category", "stock", "stock_minimum", "is_active", "version", "created_at", "updated_at"}

func setup(t *testing.T) (*productrepo.ProductRepository, sqlmock.Sqlmock, *memCache) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	c := newMemCache()
	return productrepo.NewProductRepository(db, c, time.Second, time.Minute, logger.NewNop()), mock, c
}

func productRow(id string, stock, min, version int) *sqlmock.Rows {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(columns).
		AddRow(id, "Ração Premium", "Ração para cães", "45.99", "alimentos", stock, min, true, version, now, now)
}

func TestFindByID_Found(t *testing.T) {
	repo, mock, _ := setup(t)

	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WithArgs("p-1").
		WillReturnRows(productRow("p-1", 10, 5, 3))

	p, err := repo.FindByID(context.Background(), "p-1")
	require.NoError(t, err)

	assert.Equal(t, 10, p.Stock)
	assert.Equal(t, 5, p.StockMinimum)
	assert.Equal(t, 3, p.Version)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("45.99")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, _ := setup(t)

	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "nope")

	var nf *apperror.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, apperror.CategoryProductNotFound, nf.Category())
}

func TestFindCachedByID_PopulatesAndHitsCache(t *testing.T) {
	repo, mock, c := setup(t)

	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WithArgs("p-1").
		WillReturnRows(productRow("p-1", 10, 5, 1))

	first, err := repo.FindCachedByID(context.Background(), "p-1")
	require.NoError(t, err)
	require.Contains(t, c.data, "product:p-1")

	// A segunda leitura não toca o banco (nenhuma expectativa nova registrada).
	second, err := repo.FindCachedByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.Stock, second.Stock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCachedByID_CacheErrorFallsBackToDB(t *testing.T) {
	repo, mock, c := setup(t)
	c.getErr = errors.New("redis fora do ar")

	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WithArgs("p-1").
		WillReturnRows(productRow("p-1", 7, 5, 1))

	p, err := repo.FindCachedByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, 7, p.Stock)
}

func TestFindAll_ActiveOnlyOrderedByName(t *testing.T) {
	repo, mock, _ := setup(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE is_active = TRUE ORDER BY name ASC`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("a", "Areia", "", "10.00", "higiene", 2, 5, true, 1, now, now).
			AddRow("b", "Bola", "", "5.50", "brinquedos", 8, 3, true, 1, now, now))

	products, err := repo.FindAll(context.Background(), domain.ProductFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Areia", products[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStock_Success(t *testing.T) {
	repo, mock, c := setup(t)
	c.data["product:p-1"] = "{}"

	updatedAt := time.Now().UTC()
	mock.ExpectQuery(`UPDATE products`).
		WithArgs(4, sqlmock.AnyArg(), "p-1", 2).
		WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}).AddRow(3, updatedAt))

	p := &domain.Product{ID: "p-1", Stock: 4, Version: 2}
	require.NoError(t, repo.UpdateStock(context.Background(), p, 2))

	assert.Equal(t, 3, p.Version)
	assert.NotContains(t, c.data, "product:p-1", "cache deve ser invalidado")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStock_VersionConflict(t *testing.T) {
	repo, mock, _ := setup(t)

	mock.ExpectQuery(`UPDATE products`).
		WithArgs(4, sqlmock.AnyArg(), "p-1", 2).
		WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}))

	err := repo.UpdateStock(context.Background(), &domain.Product{ID: "p-1", Stock: 4}, 2)

	var conflict *apperror.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestUpdateStock_DriverFailureIsPersistenceError(t *testing.T) {
	repo, mock, _ := setup(t)

	mock.ExpectQuery(`UPDATE products`).WillReturnError(errors.New("connection reset"))

	err := repo.UpdateStock(context.Background(), &domain.Product{ID: "p-1", Stock: 4}, 2)

	var pe *apperror.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, apperror.CategoryPersistence, pe.Category())
}

func TestSave_SetsInitialVersion(t *testing.T) {
	repo, mock, _ := setup(t)

	mock.ExpectExec(`INSERT INTO products`).WillReturnResult(sqlmock.NewResult(0, 1))

	p, err := repo.Save(context.Background(), domain.Product{ID: "p-9", Name: "Coleira", Price: decimal.NewFromFloat(19.9)})
	require.NoError(t, err)
	assert.Equal(t, 1, p.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}
