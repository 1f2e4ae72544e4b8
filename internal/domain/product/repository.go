package product

import (
	"context"
	"time"
)

// ListFilter contém os filtros de listagem do catálogo
type ListFilter struct {
	Search   string
	Category string
	Limit    int
	Offset   int
}

// Repository define a interface para operações de repositório de produtos
type Repository interface {
	// Create cria um novo produto
	Create(ctx context.Context, p *Product) error

	// FindByID busca um produto pelo ID
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindBySKU busca um produto pelo SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// List lista os produtos aplicando filtros e paginação
	List(ctx context.Context, filter ListFilter) ([]*Product, error)

	// Count conta os produtos que atendem aos filtros
	Count(ctx context.Context, filter ListFilter) (int, error)

	// Update atualiza os dados cadastrais de um produto; o estoque não é
	// alterado por este método
	Update(ctx context.Context, p *Product) error

	// Deactivate desativa um produto (exclusão lógica)
	Deactivate(ctx context.Context, id string) error

	// FindLowStock lista produtos com estoque no limite mínimo ou abaixo
	FindLowStock(ctx context.Context) ([]*Product, error)

	// FindExpiringBefore lista produtos ativos com validade até a data informada
	FindExpiringBefore(ctx context.Context, deadline time.Time) ([]*Product, error)
}
