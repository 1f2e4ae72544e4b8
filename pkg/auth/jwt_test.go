package auth

import (
	"testing"

	"github.com/hugohenrick/pdv-supermercado/internal/domain/user"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo-de-teste")

	service, err := NewJWTService()
	if err != nil {
		t.Fatalf("erro ao criar serviço JWT: %v", err)
	}

	u := &user.User{
		ID:    "u-1",
		Name:  "Operador de Caixa",
		Email: "caixa@mercado.com.br",
		Role:  user.RoleStaff,
	}

	token, err := service.GenerateToken(u)
	if err != nil {
		t.Fatalf("erro ao gerar token: %v", err)
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("erro ao validar token: %v", err)
	}

	if claims.UserID != u.ID {
		t.Errorf("esperava user_id %q, obteve %q", u.ID, claims.UserID)
	}
	if claims.Email != u.Email {
		t.Errorf("esperava email %q, obteve %q", u.Email, claims.Email)
	}
	if claims.Role != string(user.RoleStaff) {
		t.Errorf("esperava papel %q, obteve %q", user.RoleStaff, claims.Role)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo-de-teste")

	service, err := NewJWTService()
	if err != nil {
		t.Fatalf("erro ao criar serviço JWT: %v", err)
	}

	if _, err := service.ValidateToken("nao-e-um-token"); err != ErrInvalidToken {
		t.Errorf("esperava ErrInvalidToken, obteve %v", err)
	}
}

func TestNewJWTServiceRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	if _, err := NewJWTService(); err != ErrMissingJWTKey {
		t.Errorf("esperava ErrMissingJWTKey, obteve %v", err)
	}
}
