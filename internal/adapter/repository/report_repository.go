package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/pdv-supermercado/internal/domain/report"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ReportRepository implementa a interface report.Repository
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository cria uma nova instância de ReportRepository
func NewReportRepository(db *pgxpool.Pool) report.Repository {
	return &ReportRepository{
		db: db,
	}
}

// SalesSummary implementa report.Repository.SalesSummary
func (r *ReportRepository) SalesSummary(ctx context.Context, start, end time.Time) (*report.SalesSummary, error) {
	summary := &report.SalesSummary{
		StartDate:     start,
		EndDate:       end,
		TotalRevenue:  decimal.Zero,
		AverageTicket: decimal.Zero,
		ByPayment:     []report.PaymentTotal{},
		TopProducts:   []report.ProductTotal{},
	}

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM sales
		WHERE status = 'completed' AND created_at >= $1 AND created_at < $2`,
		start, end).Scan(&summary.TotalSales, &summary.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("erro ao consolidar vendas: %w", err)
	}

	if summary.TotalSales > 0 {
		summary.AverageTicket = summary.TotalRevenue.
			DivRound(decimal.NewFromInt(int64(summary.TotalSales)), 2)
	}

	rows, err := r.db.Query(ctx,
		`SELECT payment_method, COUNT(*), COALESCE(SUM(total), 0)
		FROM sales
		WHERE status = 'completed' AND created_at >= $1 AND created_at < $2
		GROUP BY payment_method
		ORDER BY SUM(total) DESC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("erro ao agrupar vendas por pagamento: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pt report.PaymentTotal
		if err := rows.Scan(&pt.PaymentMethod, &pt.Sales, &pt.Revenue); err != nil {
			return nil, fmt.Errorf("erro ao ler total por pagamento: %w", err)
		}
		summary.ByPayment = append(summary.ByPayment, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer totais por pagamento: %w", err)
	}

	// Itens de venda ficam em JSONB; a expansão via jsonb_to_recordset segue
	// o mesmo caminho usado na exportação
	itemRows, err := r.db.Query(ctx,
		`SELECT item.product_id, item.product_name,
			SUM(item.quantity)::int, SUM(item.line_total)
		FROM sales,
			jsonb_to_recordset(sales.items) AS item(
				product_id text, product_name text,
				quantity int, line_total numeric)
		WHERE sales.status = 'completed'
			AND sales.created_at >= $1 AND sales.created_at < $2
		GROUP BY item.product_id, item.product_name
		ORDER BY SUM(item.quantity) DESC
		LIMIT 10`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("erro ao agrupar itens vendidos: %w", err)
	}
	defer itemRows.Close()

	totalItems := 0
	for itemRows.Next() {
		var pt report.ProductTotal
		if err := itemRows.Scan(&pt.ProductID, &pt.ProductName, &pt.Quantity, &pt.Revenue); err != nil {
			return nil, fmt.Errorf("erro ao ler total por produto: %w", err)
		}
		summary.TopProducts = append(summary.TopProducts, pt)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer totais por produto: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(item.quantity), 0)::int
		FROM sales,
			jsonb_to_recordset(sales.items) AS item(quantity int)
		WHERE sales.status = 'completed'
			AND sales.created_at >= $1 AND sales.created_at < $2`,
		start, end).Scan(&totalItems)
	if err != nil {
		return nil, fmt.Errorf("erro ao contar itens vendidos: %w", err)
	}
	summary.TotalItems = totalItems

	return summary, nil
}

// SaleRows implementa report.Repository.SaleRows
func (r *ReportRepository) SaleRows(ctx context.Context, start, end time.Time) ([]report.SaleRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT sales.order_number, sales.created_at,
			item.product_name, item.sku, item.quantity,
			item.unit_price, item.line_total,
			sales.payment_method, COALESCE(sales.customer_name, '')
		FROM sales,
			jsonb_to_recordset(sales.items) AS item(
				product_name text, sku text, quantity int,
				unit_price numeric, line_total numeric)
		WHERE sales.status = 'completed'
			AND sales.created_at >= $1 AND sales.created_at < $2
		ORDER BY sales.created_at, sales.order_number`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("erro ao exportar vendas: %w", err)
	}
	defer rows.Close()

	result := []report.SaleRow{}
	for rows.Next() {
		var sr report.SaleRow
		err := rows.Scan(
			&sr.OrderNumber, &sr.CreatedAt, &sr.ProductName, &sr.SKU,
			&sr.Quantity, &sr.UnitPrice, &sr.LineTotal,
			&sr.PaymentMethod, &sr.CustomerName)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler linha de exportação: %w", err)
		}
		result = append(result, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer linhas de exportação: %w", err)
	}

	return result, nil
}
