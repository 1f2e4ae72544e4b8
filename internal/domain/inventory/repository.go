package inventory

import (
	"context"
	"time"

	"github.com/hugohenrick/pdv-supermercado/internal/domain/product"
)

// Actor identifica quem executou a operação de estoque
type Actor struct {
	UserID string
	Email  string
}

// ListFilter contém os filtros de listagem de movimentações
type ListFilter struct {
	ProductID string
	Type      MovementType
	Limit     int
	Offset    int
}

// BatchInput descreve um lote de validade recebido junto com uma reposição
type BatchInput struct {
	ManufacturingDate *time.Time
	ExpirationDate    time.Time
}

// Repository define a interface do razão de estoque. Toda operação que
// altera o estoque de um produto grava a movimentação correspondente na
// mesma transação; as duas escritas confirmam ou abortam juntas.
type Repository interface {
	// Restock adiciona quantidade ao estoque. Quando batch é informado, um
	// novo lote de validade é registrado junto
	Restock(ctx context.Context, productID string, quantity int, note string, batch *BatchInput, actor Actor) (*product.Product, *Movement, error)

	// Adjust define o estoque para um novo valor absoluto, registrando o
	// delta. Exige justificativa e rejeita ajustes sem alteração
	Adjust(ctx context.Context, productID string, newStock int, note string, actor Actor) (*product.Product, *Movement, error)

	// WriteOffBatch zera um lote de validade, reduz o estoque pela
	// quantidade do lote (limitada ao estoque atual) e recalcula a
	// validade mais próxima
	WriteOffBatch(ctx context.Context, productID, batchID, note string, actor Actor) (*product.Product, *Movement, int, error)

	// List lista as movimentações aplicando filtros e paginação
	List(ctx context.Context, filter ListFilter) ([]*Movement, error)

	// Count conta as movimentações que atendem aos filtros
	Count(ctx context.Context, filter ListFilter) (int, error)
}
