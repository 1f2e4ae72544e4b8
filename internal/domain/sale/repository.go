package sale

import (
	"context"
	"time"
)

// ListFilter contém os filtros de listagem de vendas
type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
	Limit     int
	Offset    int
}

// Repository define a interface para operações de repositório de vendas
type Repository interface {
	// Checkout executa a venda: para cada item, decrementa o estoque do
	// produto com uma única escrita condicional (estoque >= quantidade),
	// captura o retrato do produto no item, grava a movimentação SALE e
	// persiste a venda, tudo na mesma transação. Qualquer falha aborta a
	// venda inteira; nenhum carrinho parcial é observável.
	Checkout(ctx context.Context, s *Sale) error

	// FindByID busca uma venda pelo ID
	FindByID(ctx context.Context, id string) (*Sale, error)

	// FindByOrderNumber busca uma venda pelo número do pedido
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Sale, error)

	// List lista as vendas aplicando filtros e paginação
	List(ctx context.Context, filter ListFilter) ([]*Sale, error)

	// Count conta as vendas que atendem aos filtros
	Count(ctx context.Context, filter ListFilter) (int, error)

	// Cancel marca uma venda concluída como cancelada, devolve as
	// quantidades ao estoque e registra as movimentações de ajuste na
	// mesma transação
	Cancel(ctx context.Context, id string, actorID, actorEmail string) (*Sale, error)
}
