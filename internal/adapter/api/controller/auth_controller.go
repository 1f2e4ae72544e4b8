package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/repository"
	"github.com/hugohenrick/pdv-supermercado/internal/domain/user"
	"github.com/hugohenrick/pdv-supermercado/pkg/auth"
	"github.com/hugohenrick/pdv-supermercado/pkg/logger"
)

// AuthController gerencia as requisições relacionadas à autenticação
type AuthController struct {
	userRepository user.Repository
	jwtService     *auth.JWTService
	logger         logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(userRepository user.Repository, jwtService *auth.JWTService, logger logger.Logger) *AuthController {
	return &AuthController{
		userRepository: userRepository,
		jwtService:     jwtService,
		logger:         logger,
	}
}

// Login autentica um usuário e retorna um token JWT
// @Summary Autentica um usuário
// @Description Verifica as credenciais do usuário e retorna um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credenciais de login"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	u, err := c.userRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Credenciais inválidas", "Email ou senha incorretos"))
			return
		}
		c.logger.Error("Erro ao autenticar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao autenticar usuário", ""))
		return
	}

	if !u.IsActive() {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Usuário inativo", "Sua conta está desativada ou bloqueada"))
		return
	}

	if !u.CheckPassword(request.Password) {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Credenciais inválidas", "Email ou senha incorretos"))
		return
	}

	token, err := c.jwtService.GenerateToken(u)
	if err != nil {
		c.logger.Error("Erro ao gerar token", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao gerar token", ""))
		return
	}

	// Falha ao registrar o último login não impede a autenticação
	if err := c.userRepository.UpdateLastLogin(ctx, u.ID); err != nil {
		c.logger.Warn("falha ao registrar último login", "user_id", u.ID, "error", err)
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Success:     true,
		User:        dto.ToUserResponse(u),
		AccessToken: token,
		ExpiresAt:   time.Now().Add(c.jwtService.Expiration()),
	})
}

// RefreshToken renova um token JWT
// @Summary Renova um token JWT
// @Description Renova um token JWT existente antes da expiração
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Token a ser renovado"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var request dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	newToken, err := c.jwtService.RefreshToken(request.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrExpiredToken) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Token inválido", err.Error()))
			return
		}
		c.logger.Error("Erro ao renovar token", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao renovar token", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.RefreshTokenResponse{
		Success:     true,
		AccessToken: newToken,
		ExpiresAt:   time.Now().Add(c.jwtService.Expiration()),
	})
}

// Me retorna informações do usuário atual
// @Summary Retorna informações do usuário atual
// @Description Retorna informações do usuário autenticado
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	actor := auth.CurrentActor(ctx)
	if actor.UserID == "" {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Não autenticado", ""))
		return
	}

	u, err := c.userRepository.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Usuário não encontrado", ""))
			return
		}
		c.logger.Error("Erro ao buscar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar usuário", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}
