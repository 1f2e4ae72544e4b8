package inventory

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-supermercado/pkg/validation"
)

var (
	ErrInvalidQuantity = errors.New("quantidade da movimentação inválida")
	ErrNoChange        = errors.New("novo estoque é igual ao estoque atual")
	ErrMissingNote     = errors.New("ajustes manuais de estoque exigem uma justificativa")
	ErrInvalidType     = errors.New("tipo de movimentação inválido")
)

// MovementType representa a causa de uma movimentação de estoque
type MovementType string

const (
	TypeRestock    MovementType = "RESTOCK"    // Entrada por reposição
	TypeSale       MovementType = "SALE"       // Saída por venda
	TypeAdjustment MovementType = "ADJUSTMENT" // Ajuste manual
	TypeExpired    MovementType = "EXPIRED"    // Baixa por vencimento
)

// Valid informa se o tipo de movimentação é conhecido
func (t MovementType) Valid() bool {
	switch t {
	case TypeRestock, TypeSale, TypeAdjustment, TypeExpired:
		return true
	}
	return false
}

// Movement é o registro imutável de uma alteração de estoque.
// Invariante: StockAfter = StockBefore + Change, e StockAfter espelha o
// estoque do produto no momento do commit da mesma transação.
type Movement struct {
	ID          string       `json:"id"`
	ProductID   string       `json:"product_id"`
	ProductName string       `json:"product_name"`
	Type        MovementType `json:"type"`
	Change      int          `json:"change"`
	StockBefore int          `json:"stock_before"`
	StockAfter  int          `json:"stock_after"`
	UserID      string       `json:"user_id,omitempty"`
	UserEmail   string       `json:"user_email,omitempty"`
	Note        string       `json:"note,omitempty"`
	ReferenceID string       `json:"reference_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// NewMovement cria uma movimentação genérica a partir do delta aplicado
func NewMovement(productID, productName string, movementType MovementType, change, stockBefore int, userID, userEmail, note, referenceID string) (*Movement, error) {
	switch movementType {
	case TypeRestock, TypeSale, TypeAdjustment, TypeExpired:
	default:
		return nil, ErrInvalidType
	}

	return &Movement{
		ID:          uuid.New().String(),
		ProductID:   productID,
		ProductName: productName,
		Type:        movementType,
		Change:      change,
		StockBefore: stockBefore,
		StockAfter:  stockBefore + change,
		UserID:      userID,
		UserEmail:   userEmail,
		Note:        note,
		ReferenceID: referenceID,
		CreatedAt:   time.Now(),
	}, nil
}

// NewRestock valida e cria uma movimentação de reposição.
// A quantidade deve ser positiva e a justificativa é opcional.
func NewRestock(productID, productName string, quantity, stockBefore int, userID, userEmail, note string) (*Movement, error) {
	if quantity < 1 || quantity > validation.MaxStock {
		return nil, ErrInvalidQuantity
	}

	note, err := validation.SanitizeOptionalString(note, validation.MaxNoteLength)
	if err != nil {
		return nil, err
	}

	return NewMovement(productID, productName, TypeRestock, quantity, stockBefore, userID, userEmail, note, "")
}

// NewAdjustment valida e cria uma movimentação de ajuste manual a partir do
// estoque alvo. Ajustes sem alteração são rejeitados e a justificativa é
// obrigatória para manter o ajuste auditável.
func NewAdjustment(productID, productName string, newStock, stockBefore int, userID, userEmail, note string) (*Movement, error) {
	if err := validation.ValidateStock(newStock); err != nil {
		return nil, ErrInvalidQuantity
	}

	if newStock == stockBefore {
		return nil, ErrNoChange
	}

	note, err := validation.SanitizeString(note, validation.MaxNoteLength)
	if err != nil {
		return nil, ErrMissingNote
	}

	return NewMovement(productID, productName, TypeAdjustment, newStock-stockBefore, stockBefore, userID, userEmail, note, "")
}

// NewExpiredWriteOff cria uma movimentação de baixa por vencimento de um lote
func NewExpiredWriteOff(productID, productName string, removed, stockBefore int, userID, userEmail, note, batchID string) (*Movement, error) {
	if removed < 1 {
		return nil, ErrInvalidQuantity
	}

	note, err := validation.SanitizeOptionalString(note, validation.MaxNoteLength)
	if err != nil {
		return nil, err
	}

	return NewMovement(productID, productName, TypeExpired, -removed, stockBefore, userID, userEmail, note, batchID)
}
