package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hugohenrick/pdv-supermercado/internal/domain/inventory"
	"github.com/hugohenrick/pdv-supermercado/internal/domain/sale"
	"github.com/hugohenrick/pdv-supermercado/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Erros específicos do repositório de vendas
var (
	ErrSaleNotFound = errors.New("venda não encontrada")
)

// InsufficientStockError indica que um item do carrinho pediu mais unidades
// do que o estoque disponível; carrega os dados para a mensagem ao caixa
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("estoque insuficiente para %s: disponível %d, solicitado %d",
		e.ProductName, e.Available, e.Requested)
}

const saleColumns = `id, order_number, items, total, customer_name,
		payment_method, status, breakdown, created_by, created_at`

// SaleRepository implementa a interface sale.Repository
type SaleRepository struct {
	db *pgxpool.Pool
}

// NewSaleRepository cria uma nova instância de SaleRepository
func NewSaleRepository(db *pgxpool.Pool) sale.Repository {
	return &SaleRepository{
		db: db,
	}
}

// Checkout implementa sale.Repository.Checkout.
//
// Cada item do carrinho é baixado com uma única escrita condicional
// (stock >= quantidade): leitura e decremento são um passo atômico, fechando
// a janela de corrida entre caixas concorrentes do mesmo produto. Dois
// checkouts simultâneos de um produto escasso nunca são ambos aceitos se a
// soma das quantidades excede o estoque. Qualquer item que falhe aborta o
// carrinho inteiro; a transação desfaz as baixas já feitas neste checkout.
func (r *SaleRepository) Checkout(ctx context.Context, s *sale.Sale) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		stockAfter := make([]int, len(s.Items))

		// Itens processados na ordem do carrinho para um recibo determinístico
		for i := range s.Items {
			item := &s.Items[i]

			err := tx.QueryRow(ctx,
				`UPDATE products
				SET stock = stock - $2, updated_at = now()
				WHERE id = $1 AND active = true AND stock >= $2
				RETURNING name, sku, price, stock`,
				item.ProductID, item.Quantity).Scan(
				&item.ProductName, &item.SKU, &item.UnitPrice, &stockAfter[i])

			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					// Leitura extra distingue produto inexistente de estoque insuficiente
					return r.explainFailedLine(ctx, tx, item)
				}
				return fmt.Errorf("erro ao baixar estoque do produto %s: %w", item.ProductID, err)
			}
		}

		s.Finalize()

		// Movimentações SALE gravadas na mesma transação das baixas
		for i := range s.Items {
			item := &s.Items[i]
			movement, err := inventory.NewMovement(
				item.ProductID, item.ProductName, inventory.TypeSale,
				-item.Quantity, stockAfter[i]+item.Quantity,
				s.CreatedBy, "", "", s.OrderNumber)
			if err != nil {
				return err
			}
			if err := insertMovement(ctx, tx, movement); err != nil {
				return err
			}
		}

		return insertSale(ctx, tx, s)
	})
}

// explainFailedLine descobre por que a baixa condicional não afetou nenhuma
// linha: produto ausente/inativo ou estoque insuficiente
func (r *SaleRepository) explainFailedLine(ctx context.Context, tx pgx.Tx, item *sale.Item) error {
	var name string
	var stock int

	err := tx.QueryRow(ctx,
		`SELECT name, stock FROM products WHERE id = $1 AND active = true`,
		item.ProductID).Scan(&name, &stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProductNotFound
		}
		return fmt.Errorf("erro ao verificar produto %s: %w", item.ProductID, err)
	}

	return &InsufficientStockError{
		ProductID:   item.ProductID,
		ProductName: name,
		Available:   stock,
		Requested:   item.Quantity,
	}
}

// insertSale persiste a venda com os retratos dos itens
func insertSale(ctx context.Context, tx pgx.Tx, s *sale.Sale) error {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return fmt.Errorf("erro ao converter itens para JSON: %w", err)
	}

	var breakdown interface{}
	if s.Breakdown != nil {
		breakdown, err = json.Marshal(s.Breakdown)
		if err != nil {
			return fmt.Errorf("erro ao converter detalhamento para JSON: %w", err)
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO sales (
			id, order_number, items, total, customer_name, payment_method,
			status, breakdown, created_by, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)`,
		s.ID, s.OrderNumber, items, s.Total, nullIfEmpty(s.CustomerName),
		s.PaymentMethod, s.Status, breakdown, nullIfEmpty(s.CreatedBy),
		s.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao salvar venda: %w", err)
	}

	return nil
}

// scanSale lê uma linha de venda na ordem de saleColumns
func scanSale(row pgx.Row) (*sale.Sale, error) {
	var s sale.Sale
	var itemsJSON []byte
	var breakdownJSON []byte
	var customerName, createdBy *string

	err := row.Scan(
		&s.ID, &s.OrderNumber, &itemsJSON, &s.Total, &customerName,
		&s.PaymentMethod, &s.Status, &breakdownJSON, &createdBy, &s.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("erro ao buscar venda: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &s.Items); err != nil {
		return nil, fmt.Errorf("erro ao converter itens: %w", err)
	}

	if len(breakdownJSON) > 0 {
		s.Breakdown = &sale.Breakdown{}
		if err := json.Unmarshal(breakdownJSON, s.Breakdown); err != nil {
			return nil, fmt.Errorf("erro ao converter detalhamento: %w", err)
		}
	}

	s.CustomerName = derefString(customerName)
	s.CreatedBy = derefString(createdBy)

	return &s, nil
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
	return scanSale(row)
}

// FindByOrderNumber implementa sale.Repository.FindByOrderNumber
func (r *SaleRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*sale.Sale, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE order_number = $1`,
		strings.ToUpper(orderNumber))
	return scanSale(row)
}

// saleConditions monta o WHERE da listagem a partir dos filtros
func saleConditions(filter sale.ListFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		idx := len(args)
		conditions = append(conditions,
			fmt.Sprintf("(order_number ILIKE $%d OR customer_name ILIKE $%d)", idx, idx))
	}

	where := "true"
	if len(conditions) > 0 {
		where = strings.Join(conditions, " AND ")
	}

	return where, args
}

// List implementa sale.Repository.List
func (r *SaleRepository) List(ctx context.Context, filter sale.ListFilter) ([]*sale.Sale, error) {
	where, args := saleConditions(filter)

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(
		`SELECT %s FROM sales WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		saleColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}
	defer rows.Close()

	sales := []*sale.Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer vendas: %w", err)
	}

	return sales, nil
}

// Count implementa sale.Repository.Count
func (r *SaleRepository) Count(ctx context.Context, filter sale.ListFilter) (int, error) {
	where, args := saleConditions(filter)

	var count int
	err := r.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM sales WHERE %s`, where),
		args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar vendas: %w", err)
	}

	return count, nil
}

// Cancel implementa sale.Repository.Cancel. A venda é marcada como
// cancelada e cada item devolve sua quantidade ao estoque, com a
// movimentação de ajuste correspondente, tudo na mesma transação.
func (r *SaleRepository) Cancel(ctx context.Context, id string, actorID, actorEmail string) (*sale.Sale, error) {
	var s *sale.Sale

	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			`SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)

		var err error
		s, err = scanSale(row)
		if err != nil {
			return err
		}

		if err := s.Cancel(); err != nil {
			return err
		}

		for i := range s.Items {
			item := &s.Items[i]

			var stockAfter int
			err := tx.QueryRow(ctx,
				`UPDATE products SET stock = stock + $2, updated_at = now()
				WHERE id = $1 RETURNING stock`,
				item.ProductID, item.Quantity).Scan(&stockAfter)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return ErrProductNotFound
				}
				return fmt.Errorf("erro ao devolver estoque do produto %s: %w", item.ProductID, err)
			}

			movement, err := inventory.NewMovement(
				item.ProductID, item.ProductName, inventory.TypeAdjustment,
				item.Quantity, stockAfter-item.Quantity,
				actorID, actorEmail, "estorno de venda cancelada", s.OrderNumber)
			if err != nil {
				return err
			}
			if err := insertMovement(ctx, tx, movement); err != nil {
				return err
			}
		}

		ct, err := tx.Exec(ctx,
			`UPDATE sales SET status = $2 WHERE id = $1`, s.ID, s.Status)
		if err != nil {
			return fmt.Errorf("erro ao cancelar venda: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return ErrSaleNotFound
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}
