package dto

import (
	"time"

	"github.com/hugohenrick/pdv-supermercado/internal/domain/product"
	"github.com/shopspring/decimal"
)

// ProductRequest representa os dados de um produto para criação
type ProductRequest struct {
	SKU         string           `json:"sku" binding:"required,sku"`
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Price       decimal.Decimal  `json:"price" binding:"required"`
	Cost        *decimal.Decimal `json:"cost"`
	Stock       int              `json:"stock"`
	MinStock    int              `json:"min_stock"`
	ImageURL    string           `json:"image_url"`
}

// ProductUpdateRequest representa os dados cadastrais de um produto para atualização
type ProductUpdateRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Price       decimal.Decimal  `json:"price" binding:"required"`
	Cost        *decimal.Decimal `json:"cost"`
	MinStock    int              `json:"min_stock"`
	ImageURL    string           `json:"image_url"`
}

// BatchResponse representa um lote de validade na resposta
type BatchResponse struct {
	ID                string     `json:"id"`
	Quantity          int        `json:"quantity"`
	ManufacturingDate *time.Time `json:"manufacturing_date,omitempty"`
	ExpirationDate    time.Time  `json:"expiration_date"`
	ReceivedAt        time.Time  `json:"received_at"`
}

// ProductResponse representa a resposta com dados de um produto
type ProductResponse struct {
	ID             string           `json:"id"`
	SKU            string           `json:"sku"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	Category       string           `json:"category,omitempty"`
	Price          decimal.Decimal  `json:"price"`
	Cost           *decimal.Decimal `json:"cost,omitempty"`
	Stock          int              `json:"stock"`
	MinStock       int              `json:"min_stock"`
	ImageURL       string           `json:"image_url,omitempty"`
	Batches        []BatchResponse  `json:"batches"`
	ExpirationDate *time.Time       `json:"expiration_date,omitempty"`
	Active         bool             `json:"active"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ProductListResponse representa a resposta com a lista de produtos paginada
type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// StockAlertsResponse representa os alertas de estoque baixo e validade próxima
type StockAlertsResponse struct {
	Success       bool              `json:"success"`
	LowStock      []ProductResponse `json:"low_stock"`
	ExpiringSoon  []ProductResponse `json:"expiring_soon"`
	ExpiringUntil time.Time         `json:"expiring_until"`
}

// ToProductResponse converte um produto do domínio para DTO de resposta
func ToProductResponse(p *product.Product) ProductResponse {
	batches := make([]BatchResponse, len(p.Batches))
	for i, b := range p.Batches {
		batches[i] = BatchResponse{
			ID:                b.ID,
			Quantity:          b.Quantity,
			ManufacturingDate: b.ManufacturingDate,
			ExpirationDate:    b.ExpirationDate,
			ReceivedAt:        b.ReceivedAt,
		}
	}

	var cost *decimal.Decimal
	if p.Cost.Valid {
		cost = &p.Cost.Decimal
	}

	return ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		Price:          p.Price,
		Cost:           cost,
		Stock:          p.Stock,
		MinStock:       p.MinStock,
		ImageURL:       p.ImageURL,
		Batches:        batches,
		ExpirationDate: p.ExpirationDate,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProductResponses converte uma lista de produtos do domínio
func ToProductResponses(products []*product.Product) []ProductResponse {
	data := make([]ProductResponse, len(products))
	for i, p := range products {
		data[i] = ToProductResponse(p)
	}
	return data
}

// ToProductListResponse converte uma lista de produtos do domínio para DTO de resposta paginada
func ToProductListResponse(products []*product.Product, totalCount, page, pageSize int) ProductListResponse {
	return ProductListResponse{
		Data:       ToProductResponses(products),
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(totalCount, pageSize),
	}
}
