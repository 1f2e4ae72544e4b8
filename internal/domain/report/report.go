package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummary consolida as vendas concluídas de um período
type SalesSummary struct {
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	TotalSales    int             `json:"total_sales"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalItems    int             `json:"total_items"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	ByPayment     []PaymentTotal  `json:"by_payment"`
	TopProducts   []ProductTotal  `json:"top_products"`
}

// PaymentTotal agrupa vendas por forma de pagamento
type PaymentTotal struct {
	PaymentMethod string          `json:"payment_method"`
	Sales         int             `json:"sales"`
	Revenue       decimal.Decimal `json:"revenue"`
}

// ProductTotal agrupa quantidades vendidas por produto
type ProductTotal struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// SaleRow é uma linha achatada de item vendido, usada na exportação
type SaleRow struct {
	OrderNumber   string          `json:"order_number"`
	CreatedAt     time.Time       `json:"created_at"`
	ProductName   string          `json:"product_name"`
	SKU           string          `json:"sku"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
	PaymentMethod string          `json:"payment_method"`
	CustomerName  string          `json:"customer_name"`
}

// Repository define as consultas de relatório
type Repository interface {
	// SalesSummary consolida vendas concluídas no intervalo [start, end)
	SalesSummary(ctx context.Context, start, end time.Time) (*SalesSummary, error)

	// SaleRows devolve as linhas de itens vendidos no intervalo, em ordem cronológica
	SaleRows(ctx context.Context, start, end time.Time) ([]SaleRow, error)
}
