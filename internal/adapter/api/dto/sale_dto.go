package dto

import (
	"time"

	"github.com/hugohenrick/pdv-supermercado/internal/domain/sale"
	"github.com/shopspring/decimal"
)

// CheckoutItemRequest representa um item do carrinho no fechamento da venda
type CheckoutItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// CheckoutRequest representa os dados para fechamento de uma venda
type CheckoutRequest struct {
	Items         []CheckoutItemRequest `json:"items" binding:"required"`
	PaymentMethod string                `json:"payment_method"`
	CustomerName  string                `json:"customer_name"`
	CustomerType  string                `json:"customer_type"`
}

// SaleItemResponse representa um item vendido com o retrato do produto
// no momento da venda
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// BreakdownResponse representa a decomposição fiscal opcional da venda
type BreakdownResponse struct {
	CustomerType   string          `json:"customer_type"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountRate   decimal.Decimal `json:"discount_rate"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	VATRate        decimal.Decimal `json:"vat_rate"`
	VATAmount      decimal.Decimal `json:"vat_amount"`
	VatableSale    decimal.Decimal `json:"vatable_sale"`
	VATExemptSale  decimal.Decimal `json:"vat_exempt_sale"`
}

// SaleResponse representa a resposta com dados de uma venda
type SaleResponse struct {
	ID            string             `json:"id"`
	OrderNumber   string             `json:"order_number"`
	Items         []SaleItemResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	CustomerName  string             `json:"customer_name,omitempty"`
	Breakdown     *BreakdownResponse `json:"breakdown,omitempty"`
	Status        string             `json:"status"`
	CreatedBy     string             `json:"created_by,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// CheckoutResponse representa a resposta de uma venda concluída
type CheckoutResponse struct {
	Success bool         `json:"success"`
	Sale    SaleResponse `json:"sale"`
}

// SaleListResponse representa a resposta com a lista de vendas paginada
type SaleListResponse struct {
	Data       []SaleResponse `json:"data"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// ToSaleResponse converte uma venda do domínio para DTO de resposta
func ToSaleResponse(s *sale.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			SKU:         it.SKU,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			LineTotal:   it.LineTotal,
		}
	}

	var breakdown *BreakdownResponse
	if s.Breakdown != nil {
		breakdown = &BreakdownResponse{
			CustomerType:   string(s.Breakdown.CustomerType),
			Subtotal:       s.Breakdown.Subtotal,
			DiscountRate:   s.Breakdown.DiscountRate,
			DiscountAmount: s.Breakdown.DiscountAmount,
			VATRate:        s.Breakdown.VATRate,
			VATAmount:      s.Breakdown.VATAmount,
			VatableSale:    s.Breakdown.VatableSale,
			VATExemptSale:  s.Breakdown.VATExemptSale,
		}
	}

	return SaleResponse{
		ID:            s.ID,
		OrderNumber:   s.OrderNumber,
		Items:         items,
		Total:         s.Total,
		PaymentMethod: string(s.PaymentMethod),
		CustomerName:  s.CustomerName,
		Breakdown:     breakdown,
		Status:        string(s.Status),
		CreatedBy:     s.CreatedBy,
		CreatedAt:     s.CreatedAt,
	}
}

// ToSaleListResponse converte uma lista de vendas do domínio para DTO de resposta paginada
func ToSaleListResponse(sales []*sale.Sale, totalCount, page, pageSize int) SaleListResponse {
	data := make([]SaleResponse, len(sales))
	for i, s := range sales {
		data[i] = ToSaleResponse(s)
	}

	return SaleListResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(totalCount, pageSize),
	}
}
