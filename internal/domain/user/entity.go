package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-supermercado/pkg/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyName    = errors.New("nome não pode ser vazio")
	ErrInvalidEmail = errors.New("email inválido")
	ErrInvalidRole  = errors.New("papel de usuário inválido")
)

// Role representa o papel/função do usuário
type Role string

// Status representa o status do usuário
type Status string

// Constantes para Role
const (
	RoleAdmin   Role = "admin"   // Administrador do sistema
	RoleManager Role = "manager" // Gerente da loja
	RoleStaff   Role = "staff"   // Operador de caixa
)

// Constantes para Status
const (
	StatusActive   Status = "active"   // Usuário ativo
	StatusInactive Status = "inactive" // Usuário inativo
	StatusBlocked  Status = "blocked"  // Usuário bloqueado
)

// User representa um usuário do sistema
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"-"` // O campo senha não é retornado nas respostas JSON
	Role        Role      `json:"role"`
	Status      Status    `json:"status"`
	LastLoginAt time.Time `json:"last_login_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewUser cria um novo usuário validando nome, email e papel
func NewUser(name, email, password string, role Role) (*User, error) {
	name, err := validation.SanitizeString(name, validation.MaxNameLength)
	if err != nil {
		return nil, ErrEmptyName
	}

	if err := validation.ValidateEmail(email); err != nil {
		return nil, ErrInvalidEmail
	}

	if role != RoleAdmin && role != RoleManager && role != RoleStaff {
		return nil, ErrInvalidRole
	}

	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Role:      role,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.SetPassword(password); err != nil {
		return nil, err
	}

	return u, nil
}

// UpdateProfile atualiza nome, email e papel validando os novos valores
func (u *User) UpdateProfile(name, email string, role Role) error {
	name, err := validation.SanitizeString(name, validation.MaxNameLength)
	if err != nil {
		return ErrEmptyName
	}

	if err := validation.ValidateEmail(email); err != nil {
		return ErrInvalidEmail
	}

	if role != RoleAdmin && role != RoleManager && role != RoleStaff {
		return ErrInvalidRole
	}

	u.Name = name
	u.Email = email
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}

// SetPassword configura a senha do usuário com hash
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsActive verifica se o usuário está ativo
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsAdmin verifica se o usuário é um administrador
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
