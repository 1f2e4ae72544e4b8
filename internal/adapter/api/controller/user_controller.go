package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/repository"
	"github.com/hugohenrick/pdv-supermercado/internal/domain/user"
	"github.com/hugohenrick/pdv-supermercado/pkg/auth"
	"github.com/hugohenrick/pdv-supermercado/pkg/logger"
)

// UserController gerencia as requisições relacionadas a usuários
type UserController struct {
	userRepository user.Repository
	logger         logger.Logger
}

// NewUserController cria uma nova instância de UserController
func NewUserController(userRepository user.Repository, logger logger.Logger) *UserController {
	return &UserController{
		userRepository: userRepository,
		logger:         logger,
	}
}

// Create cria um novo usuário
// @Summary Cria um novo usuário
// @Description Cria um novo usuário com os dados informados
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param user body dto.UserRequest true "Dados do usuário"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users [post]
func (c *UserController) Create(ctx *gin.Context) {
	var request dto.UserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	u, err := user.NewUser(request.Name, request.Email, request.Password, user.Role(request.Role))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados inválidos", err.Error()))
		return
	}

	if err := c.userRepository.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUserDuplicateEmail) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Email já cadastrado", err.Error()))
			return
		}
		c.logger.Error("Erro ao criar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar usuário", ""))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(u))
}

// CreateFirstAdmin cria o primeiro administrador do sistema
// @Summary Cria o primeiro administrador
// @Description Cria o primeiro usuário administrador; indisponível após o primeiro cadastro
// @Tags setup
// @Accept json
// @Produce json
// @Param user body dto.UserRequest true "Dados do administrador"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /setup/admin [post]
func (c *UserController) CreateFirstAdmin(ctx *gin.Context) {
	count, err := c.userRepository.Count(ctx)
	if err != nil {
		c.logger.Error("Erro ao verificar usuários", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao verificar usuários", ""))
		return
	}
	if count > 0 {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Sistema já configurado", "Já existem usuários cadastrados"))
		return
	}

	var request dto.UserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	u, err := user.NewUser(request.Name, request.Email, request.Password, user.RoleAdmin)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados inválidos", err.Error()))
		return
	}

	if err := c.userRepository.Create(ctx, u); err != nil {
		c.logger.Error("Erro ao criar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar usuário", ""))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(u))
}

// GetByID busca um usuário pelo ID
// @Summary Busca um usuário
// @Description Busca um usuário pelo ID
// @Tags users
// @Produce json
// @Security Bearer
// @Param id path string true "ID do usuário"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (c *UserController) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	u, err := c.userRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Usuário não encontrado", ""))
			return
		}
		c.logger.Error("Erro ao buscar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar usuário", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// List lista os usuários com paginação
// @Summary Lista usuários
// @Description Lista os usuários com paginação
// @Tags users
// @Produce json
// @Security Bearer
// @Param page query int false "Página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.UserListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users [get]
func (c *UserController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	pagination := dto.GetPagination(page, pageSize)

	users, err := c.userRepository.List(ctx, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("Erro ao listar usuários", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar usuários", ""))
		return
	}

	totalCount, err := c.userRepository.Count(ctx)
	if err != nil {
		c.logger.Error("Erro ao contar usuários", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao contar usuários", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserListResponse(users, totalCount, pagination.Page, pagination.PageSize))
}

// Update atualiza os dados de um usuário
// @Summary Atualiza um usuário
// @Description Atualiza os dados de um usuário existente
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do usuário"
// @Param user body dto.UserRequest true "Dados do usuário"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id} [put]
func (c *UserController) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var request dto.UserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	u, err := c.userRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Usuário não encontrado", ""))
			return
		}
		c.logger.Error("Erro ao buscar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar usuário", ""))
		return
	}

	if err := u.UpdateProfile(request.Name, request.Email, user.Role(request.Role)); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados inválidos", err.Error()))
		return
	}

	if err := c.userRepository.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUserDuplicateEmail) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Email já cadastrado", err.Error()))
			return
		}
		c.logger.Error("Erro ao atualizar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar usuário", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// ChangePassword altera a senha do usuário autenticado
// @Summary Altera a senha
// @Description Altera a senha do usuário autenticado
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param password body dto.ChangePasswordRequest true "Senhas atual e nova"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/password [patch]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	var request dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	actor := auth.CurrentActor(ctx)
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

	if !u.CheckPassword(request.CurrentPassword) {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Senha atual incorreta", ""))
		return
	}

	if err := u.SetPassword(request.NewPassword); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Senha inválida", err.Error()))
		return
	}

	if err := c.userRepository.Update(ctx, u); err != nil {
		c.logger.Error("Erro ao alterar senha", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao alterar senha", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Senha alterada com sucesso", nil))
}

// UpdateStatus altera o status de um usuário
// @Summary Altera o status de um usuário
// @Description Ativa, desativa ou bloqueia um usuário
// @Tags users
// @Produce json
// @Security Bearer
// @Param id path string true "ID do usuário"
// @Param status path string true "Novo status" Enums(active, inactive, blocked)
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id}/status/{status} [patch]
func (c *UserController) UpdateStatus(ctx *gin.Context) {
	id := ctx.Param("id")
	status := user.Status(ctx.Param("status"))

	if status != user.StatusActive && status != user.StatusInactive && status != user.StatusBlocked {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Status inválido", "Use active, inactive ou blocked"))
		return
	}

	if err := c.userRepository.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Usuário não encontrado", ""))
			return
		}
		c.logger.Error("Erro ao atualizar status", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar status", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Status atualizado com sucesso", nil))
}
