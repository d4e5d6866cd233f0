package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"petstock/internal/domain"
	apperror "petstock/internal/errors"
	"petstock/internal/pkg/cache"
	"petstock/internal/pkg/logger"
)

// Define a chave de cache para produtos.
const productCacheKey = "product:%s"

const productColumns = `id, name, description, price, category, stock, stock_minimum, is_active, version, created_at, updated_at`

// ProductRepository é o Catalog Store sobre PostgreSQL, com cache-aside em Redis
// para as leituras públicas.
type ProductRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewProductRepository cria e retorna uma nova instância do Repositório.
func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.Stock,
		&p.StockMinimum,
		&p.IsActive,
		&p.Version,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// Save insere um novo produto. ID e timestamps devem vir preenchidos pelo serviço.
func (r *ProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const insertSQL = `INSERT INTO products (` + productColumns + `)
	                   VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

	if product.Version == 0 {
		product.Version = 1
	}

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.Stock,
		product.StockMinimum,
		product.IsActive,
		product.Version,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, apperror.NewDBError("failed to insert product", err)
	}

	return product, nil
}

// FindByID busca o produto direto no banco. É a leitura usada pelo fluxo de
// movimentação, que precisa do estoque e da versão atuais.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctxTimeout, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperror.NewProductNotFoundError(id)
	}
	if err != nil {
		return domain.Product{}, apperror.NewDBError("Falha ao buscar produto no DB", err)
	}
	return product, nil
}

// FindCachedByID busca um produto pelo ID, utilizando a estratégia Cache-Aside.
// Falhas do cache nunca impedem a leitura no banco.
func (r *ProductRepository) FindCachedByID(ctx context.Context, id string) (domain.Product, error) {
	key := fmt.Sprintf(productCacheKey, id)

	// --- 1. Cache (READ) ---
	cachedData, err := r.Cache.Get(ctx, key)
	if err == nil {
		var product domain.Product
		if json.Unmarshal([]byte(cachedData), &product) == nil {
			return product, nil
		}
		r.logger.Warn("⚠️ Entrada de cache corrompida, lendo do DB", map[string]interface{}{"key": key})
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("⚠️ Falha ao ler do cache Redis", map[string]interface{}{"key": key, "error": err.Error()})
	}

	// --- 2. Banco de Dados ---
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	// --- 3. Cache (WRITE) ---
	productJSON, err := json.Marshal(product)
	if err == nil {
		if setErr := r.Cache.Set(ctx, key, productJSON, r.CacheTTL); setErr != nil {
			r.logger.Warn("⚠️ Falha ao gravar produto no cache", map[string]interface{}{"key": key, "error": setErr.Error()})
		}
	}

	return product, nil
}

// FindAll lista os produtos ordenados por nome.
func (r *ProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products`
	if filter.ActiveOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		return nil, apperror.NewDBError("Falha ao listar produtos", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, apperror.NewDBError("Falha ao ler produto", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Falha ao iterar produtos", err)
	}
	return products, nil
}

// UpdateStock grava o novo estoque com verificação otimista de versão.
// Se outra escrita alterou a linha desde a leitura, devolve ConflictError.
// Em caso de sucesso, product recebe a nova versão e o novo updated_at.
func (r *ProductRepository) UpdateStock(ctx context.Context, product *domain.Product, expectedVersion int) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `UPDATE products
	                   SET stock = $1, version = version + 1, updated_at = $2
	                   WHERE id = $3 AND version = $4
	                   RETURNING version, updated_at`

	err := r.DB.QueryRowContext(ctxTimeout, updateSQL,
		product.Stock,
		time.Now().UTC(),
		product.ID,
		expectedVersion,
	).Scan(&product.Version, &product.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NewConflictError(fmt.Sprintf("o produto %s foi alterado por outra operação", product.ID))
	}
	if err != nil {
		return apperror.NewPersistenceError("falha ao gravar o novo estoque", err)
	}

	r.invalidate(ctx, product.ID)
	return nil
}

// DeleteAll remove todos os produtos (usado pelo seed) e limpa o cache.
func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if _, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM products`); err != nil {
		return apperror.NewDBError("Falha ao limpar produtos", err)
	}
	if err := r.Cache.DeletePrefix(ctx, "product:"); err != nil {
		r.logger.Warn("⚠️ Falha ao limpar cache de produtos", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (r *ProductRepository) invalidate(ctx context.Context, id string) {
	key := fmt.Sprintf(productCacheKey, id)
	if err := r.Cache.Delete(ctx, key); err != nil {
		r.logger.Warn("⚠️ Falha ao invalidar cache do produto", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
