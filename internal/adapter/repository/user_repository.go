package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/pdv-supermercado/internal/domain/user"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Erros específicos do repositório de usuários
var (
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrUserDuplicateEmail = errors.New("usuário com mesmo email já existe")
)

const userColumns = `id, name, email, password, role, status, last_login_at,
		created_at, updated_at`

// UserRepository implementa a interface user.Repository
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository cria uma nova instância de UserRepository
func NewUserRepository(db *pgxpool.Pool) user.Repository {
	return &UserRepository{
		db: db,
	}
}

// Create implementa user.Repository.Create
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (
			id, name, email, password, role, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)`,
		u.ID, u.Name, u.Email, u.Password, u.Role, u.Status,
		u.CreatedAt, u.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrUserDuplicateEmail
		}
		return fmt.Errorf("erro ao criar usuário: %w", err)
	}

	return nil
}

// scanUser lê uma linha de usuário na ordem de userColumns
func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	var lastLoginAt *time.Time

	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Status,
		&lastLoginAt, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}

	if lastLoginAt != nil {
		u.LastLoginAt = *lastLoginAt
	}

	return &u, nil
}

// FindByID implementa user.Repository.FindByID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// FindByEmail implementa user.Repository.FindByEmail
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// List implementa user.Repository.List
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar usuários: %w", err)
	}
	defer rows.Close()

	users := []*user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer usuários: %w", err)
	}

	return users, nil
}

// Update implementa user.Repository.Update
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE users SET
			name = $2, email = $3, password = $4, role = $5, status = $6,
			updated_at = $7
		WHERE id = $1`,
		u.ID, u.Name, u.Email, u.Password, u.Role, u.Status, u.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrUserDuplicateEmail
		}
		return fmt.Errorf("erro ao atualizar usuário: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateStatus implementa user.Repository.UpdateStatus
func (r *UserRepository) UpdateStatus(ctx context.Context, id string, status user.Status) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE users SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now())
	if err != nil {
		return fmt.Errorf("erro ao atualizar status do usuário: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin implementa user.Repository.UpdateLastLogin
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET last_login_at = $2 WHERE id = $1`, id, time.Now())
	if err != nil {
		return fmt.Errorf("erro ao registrar último login: %w", err)
	}

	return nil
}

// Count implementa user.Repository.Count
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar usuários: %w", err)
	}

	return count, nil
}
