package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/pdv-supermercado/internal/domain/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Erros específicos do repositório de produtos
var (
	ErrProductNotFound     = errors.New("produto não encontrado")
	ErrProductDuplicateSKU = errors.New("produto com mesmo sku já existe")
)

const productColumns = `id, sku, name, description, category, price, cost, stock,
		min_stock, image_url, batches, expiration_date, active, created_at, updated_at`

// ProductRepository implementa a interface product.Repository
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db *pgxpool.Pool) product.Repository {
	return &ProductRepository{
		db: db,
	}
}

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	batches, err := json.Marshal(p.Batches)
	if err != nil {
		return fmt.Errorf("erro ao converter lotes para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO products (
			id, sku, name, description, category, price, cost, stock,
			min_stock, image_url, batches, expiration_date, active,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)`,
		p.ID, p.SKU, p.Name, p.Description, p.Category, p.Price, p.Cost,
		p.Stock, p.MinStock, p.ImageURL, batches, p.ExpirationDate,
		p.Active, p.CreatedAt, p.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrProductDuplicateSKU
		}
		return fmt.Errorf("erro ao criar produto: %w", err)
	}

	return nil
}

// scanProduct lê uma linha de produto na ordem de productColumns
func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	var batchesJSON []byte

	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.Price,
		&p.Cost, &p.Stock, &p.MinStock, &p.ImageURL, &batchesJSON,
		&p.ExpirationDate, &p.Active, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}

	if err := json.Unmarshal(batchesJSON, &p.Batches); err != nil {
		return nil, fmt.Errorf("erro ao converter lotes: %w", err)
	}

	return &p, nil
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

// FindBySKU implementa product.Repository.FindBySKU
func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE sku = $1`,
		strings.ToUpper(sku))
	return scanProduct(row)
}

// listConditions monta o WHERE da listagem a partir dos filtros
func listConditions(filter product.ListFilter) (string, []interface{}) {
	conditions := []string{"active = true"}
	args := []interface{}{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		idx := len(args)
		conditions = append(conditions,
			fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d OR category ILIKE $%d)", idx, idx, idx))
	}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

// List implementa product.Repository.List
func (r *ProductRepository) List(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	where, args := listConditions(filter)

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(
		`SELECT %s FROM products WHERE %s ORDER BY name LIMIT $%d OFFSET $%d`,
		productColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// Count implementa product.Repository.Count
func (r *ProductRepository) Count(ctx context.Context, filter product.ListFilter) (int, error) {
	where, args := listConditions(filter)

	var count int
	err := r.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM products WHERE %s`, where),
		args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar produtos: %w", err)
	}

	return count, nil
}

// Update implementa product.Repository.Update. O estoque não é alterado por
// este método: vendas, reposições e ajustes têm seus próprios caminhos
// transacionais.
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	batches, err := json.Marshal(p.Batches)
	if err != nil {
		return fmt.Errorf("erro ao converter lotes para JSON: %w", err)
	}

	ct, err := r.db.Exec(ctx,
		`UPDATE products SET
			name = $2, description = $3, category = $4, price = $5,
			cost = $6, min_stock = $7, image_url = $8, batches = $9,
			expiration_date = $10, updated_at = $11
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Category, p.Price, p.Cost,
		p.MinStock, p.ImageURL, batches, p.ExpirationDate, p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao atualizar produto: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Deactivate implementa product.Repository.Deactivate. A exclusão é lógica:
// vendas históricas continuam referenciando o produto.
func (r *ProductRepository) Deactivate(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE products SET active = false, updated_at = $2 WHERE id = $1`,
		id, time.Now())
	if err != nil {
		return fmt.Errorf("erro ao desativar produto: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindLowStock implementa product.Repository.FindLowStock
func (r *ProductRepository) FindLowStock(ctx context.Context) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products
		WHERE active = true AND stock <= min_stock
		ORDER BY stock`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos com estoque baixo: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// FindExpiringBefore implementa product.Repository.FindExpiringBefore
func (r *ProductRepository) FindExpiringBefore(ctx context.Context, deadline time.Time) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products
		WHERE active = true AND expiration_date IS NOT NULL AND expiration_date <= $1
		ORDER BY expiration_date`, deadline)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos a vencer: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// collectProducts lê todas as linhas do resultado
func collectProducts(rows pgx.Rows) ([]*product.Product, error) {
	products := []*product.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer produtos: %w", err)
	}

	return products, nil
}
