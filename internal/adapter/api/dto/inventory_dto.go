package dto

import (
	"time"

	"github.com/hugohenrick/pdv-supermercado/internal/domain/inventory"
)

// RestockRequest representa os dados de uma reposição de estoque
type RestockRequest struct {
	Quantity          int        `json:"quantity" binding:"required"`
	Note              string     `json:"note"`
	ManufacturingDate *time.Time `json:"manufacturing_date"`
	ExpirationDate    *time.Time `json:"expiration_date"`
}

// AdjustStockRequest representa um ajuste manual de estoque para um valor absoluto
type AdjustStockRequest struct {
	Stock int    `json:"stock"`
	Note  string `json:"note" binding:"required"`
}

// WriteOffBatchRequest representa a baixa de um lote vencido; o lote é
// identificado na rota e o corpo é opcional
type WriteOffBatchRequest struct {
	Note string `json:"note"`
}

// MovementResponse representa uma movimentação do razão de estoque
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"`
	Change      int       `json:"change"`
	StockBefore int       `json:"stock_before"`
	StockAfter  int       `json:"stock_after"`
	UserID      string    `json:"user_id,omitempty"`
	UserEmail   string    `json:"user_email,omitempty"`
	Note        string    `json:"note,omitempty"`
	ReferenceID string    `json:"reference_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementListResponse representa a resposta com a lista de movimentações paginada
type MovementListResponse struct {
	Data       []MovementResponse `json:"data"`
	TotalCount int                `json:"total_count"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// StockOperationResponse representa o resultado de uma operação de estoque:
// o produto atualizado e a movimentação gravada
type StockOperationResponse struct {
	Success  bool             `json:"success"`
	Product  ProductResponse  `json:"product"`
	Movement MovementResponse `json:"movement"`
	Removed  *int             `json:"removed,omitempty"`
}

// ToMovementResponse converte uma movimentação do domínio para DTO de resposta
func ToMovementResponse(m *inventory.Movement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Type:        string(m.Type),
		Change:      m.Change,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		UserID:      m.UserID,
		UserEmail:   m.UserEmail,
		Note:        m.Note,
		ReferenceID: m.ReferenceID,
		CreatedAt:   m.CreatedAt,
	}
}

// ToMovementListResponse converte uma lista de movimentações do domínio para DTO de resposta paginada
func ToMovementListResponse(movements []*inventory.Movement, totalCount, page, pageSize int) MovementListResponse {
	data := make([]MovementResponse, len(movements))
	for i, m := range movements {
		data[i] = ToMovementResponse(m)
	}

	return MovementListResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(totalCount, pageSize),
	}
}
