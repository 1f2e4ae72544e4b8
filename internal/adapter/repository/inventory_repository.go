package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/pdv-supermercado/internal/domain/inventory"
	"github.com/hugohenrick/pdv-supermercado/internal/domain/product"
	"github.com/hugohenrick/pdv-supermercado/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InventoryRepository implementa a interface inventory.Repository
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository cria uma nova instância de InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) inventory.Repository {
	return &InventoryRepository{
		db: db,
	}
}

// lockProduct busca o produto dentro da transação travando a linha;
// operações administrativas serializam por produto via FOR UPDATE
func lockProduct(ctx context.Context, tx pgx.Tx, productID string) (*product.Product, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`,
		productID)
	return scanProduct(row)
}

// applyStockChange persiste o novo estado do produto após a mutação de estoque
func applyStockChange(ctx context.Context, tx pgx.Tx, p *product.Product) error {
	batches, err := json.Marshal(p.Batches)
	if err != nil {
		return fmt.Errorf("erro ao converter lotes para JSON: %w", err)
	}

	p.UpdatedAt = time.Now()
	_, err = tx.Exec(ctx,
		`UPDATE products SET stock = $2, batches = $3, expiration_date = $4, updated_at = $5
		WHERE id = $1`,
		p.ID, p.Stock, batches, p.ExpirationDate, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar estoque do produto: %w", err)
	}

	return nil
}

// insertMovement grava a movimentação na mesma transação da mutação do
// produto que ela documenta
func insertMovement(ctx context.Context, tx pgx.Tx, m *inventory.Movement) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO inventory_movements (
			id, product_id, product_name, type, change, stock_before,
			stock_after, user_id, user_email, note, reference_id, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)`,
		m.ID, m.ProductID, m.ProductName, m.Type, m.Change, m.StockBefore,
		m.StockAfter, nullIfEmpty(m.UserID), nullIfEmpty(m.UserEmail),
		m.Note, nullIfEmpty(m.ReferenceID), m.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao registrar movimentação de estoque: %w", err)
	}

	return nil
}

// nullIfEmpty converte string vazia em NULL para colunas opcionais
func nullIfEmpty(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

// Restock implementa inventory.Repository.Restock
func (r *InventoryRepository) Restock(ctx context.Context, productID string, quantity int, note string, batch *inventory.BatchInput, actor inventory.Actor) (*product.Product, *inventory.Movement, error) {
	var p *product.Product
	var m *inventory.Movement

	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		p, err = lockProduct(ctx, tx, productID)
		if err != nil {
			return err
		}

		m, err = inventory.NewRestock(p.ID, p.Name, quantity, p.Stock, actor.UserID, actor.Email, note)
		if err != nil {
			return err
		}

		p.Stock = m.StockAfter
		if batch != nil {
			if _, err := p.AddBatch(quantity, batch.ManufacturingDate, batch.ExpirationDate); err != nil {
				return err
			}
		}

		if err := applyStockChange(ctx, tx, p); err != nil {
			return err
		}
		return insertMovement(ctx, tx, m)
	})
	if err != nil {
		return nil, nil, err
	}

	return p, m, nil
}

// Adjust implementa inventory.Repository.Adjust
func (r *InventoryRepository) Adjust(ctx context.Context, productID string, newStock int, note string, actor inventory.Actor) (*product.Product, *inventory.Movement, error) {
	var p *product.Product
	var m *inventory.Movement

	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		p, err = lockProduct(ctx, tx, productID)
		if err != nil {
			return err
		}

		m, err = inventory.NewAdjustment(p.ID, p.Name, newStock, p.Stock, actor.UserID, actor.Email, note)
		if err != nil {
			return err
		}

		p.Stock = m.StockAfter

		if err := applyStockChange(ctx, tx, p); err != nil {
			return err
		}
		return insertMovement(ctx, tx, m)
	})
	if err != nil {
		return nil, nil, err
	}

	return p, m, nil
}

// WriteOffBatch implementa inventory.Repository.WriteOffBatch
func (r *InventoryRepository) WriteOffBatch(ctx context.Context, productID, batchID, note string, actor inventory.Actor) (*product.Product, *inventory.Movement, int, error) {
	var p *product.Product
	var m *inventory.Movement
	var removed int

	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		p, err = lockProduct(ctx, tx, productID)
		if err != nil {
			return err
		}

		stockBefore := p.Stock
		removed, err = p.WriteOffBatch(batchID)
		if err != nil {
			return err
		}

		m, err = inventory.NewExpiredWriteOff(p.ID, p.Name, removed, stockBefore, actor.UserID, actor.Email, note, batchID)
		if err != nil {
			return err
		}

		if err := applyStockChange(ctx, tx, p); err != nil {
			return err
		}
		return insertMovement(ctx, tx, m)
	})
	if err != nil {
		return nil, nil, 0, err
	}

	return p, m, removed, nil
}

// movementConditions monta o WHERE da listagem a partir dos filtros
func movementConditions(filter inventory.ListFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		conditions = append(conditions, fmt.Sprintf("product_id = $%d", len(args)))
	}

	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}

	where := "true"
	if len(conditions) > 0 {
		where = strings.Join(conditions, " AND ")
	}

	return where, args
}

// List implementa inventory.Repository.List
func (r *InventoryRepository) List(ctx context.Context, filter inventory.ListFilter) ([]*inventory.Movement, error) {
	where, args := movementConditions(filter)

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(
		`SELECT id, product_id, product_name, type, change, stock_before,
			stock_after, user_id, user_email, note, reference_id, created_at
		FROM inventory_movements WHERE %s
		ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar movimentações: %w", err)
	}
	defer rows.Close()

	movements := []*inventory.Movement{}
	for rows.Next() {
		var m inventory.Movement
		var userID, userEmail, note, referenceID *string

		err := rows.Scan(
			&m.ID, &m.ProductID, &m.ProductName, &m.Type, &m.Change,
			&m.StockBefore, &m.StockAfter, &userID, &userEmail, &note,
			&referenceID, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler movimentação: %w", err)
		}

		m.UserID = derefString(userID)
		m.UserEmail = derefString(userEmail)
		m.Note = derefString(note)
		m.ReferenceID = derefString(referenceID)
		movements = append(movements, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer movimentações: %w", err)
	}

	return movements, nil
}

// Count implementa inventory.Repository.Count
func (r *InventoryRepository) Count(ctx context.Context, filter inventory.ListFilter) (int, error) {
	where, args := movementConditions(filter)

	var count int
	err := r.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM inventory_movements WHERE %s`, where),
		args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar movimentações: %w", err)
	}

	return count, nil
}

// derefString converte ponteiro opcional em string vazia quando NULL
func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
