package user

import (
	"context"
)

// Repository define a interface para operações de repositório de usuários
type Repository interface {
	// Create cria um novo usuário
	Create(ctx context.Context, u *User) error

	// FindByID busca um usuário pelo ID
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail busca um usuário pelo email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List lista os usuários com paginação
	List(ctx context.Context, limit, offset int) ([]*User, error)

	// Update atualiza os dados de um usuário existente
	Update(ctx context.Context, u *User) error

	// UpdateStatus atualiza o status de um usuário
	UpdateStatus(ctx context.Context, id string, status Status) error

	// UpdateLastLogin registra o último login do usuário
	UpdateLastLogin(ctx context.Context, id string) error

	// Count conta quantos usuários existem
	Count(ctx context.Context) (int, error)
}
