package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/repository"
	"github.com/hugohenrick/pdv-supermercado/internal/domain/product"
	"github.com/hugohenrick/pdv-supermercado/pkg/logger"
	"github.com/shopspring/decimal"
)

// ExpiringSoonDays define a janela padrão do alerta de validade próxima
const ExpiringSoonDays = 7

// ProductController gerencia as requisições relacionadas a produtos
type ProductController struct {
	productRepository product.Repository
	logger            logger.Logger
}

// NewProductController cria uma nova instância de ProductController
func NewProductController(productRepository product.Repository, logger logger.Logger) *ProductController {
	return &ProductController{
		productRepository: productRepository,
		logger:            logger,
	}
}

// Create cria um novo produto
// @Summary Cria um novo produto
// @Description Cadastra um produto com SKU único
// @Tags products
// @Accept json
// @Produce json
// @Security Bearer
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var request dto.ProductRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	p, err := product.NewProduct(request.SKU, request.Name, request.Description, request.Category, request.Price, request.Stock)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados inválidos", err.Error()))
		return
	}

	p.MinStock = request.MinStock
	p.ImageURL = request.ImageURL
	if request.Cost != nil {
		p.Cost = decimal.NewNullDecimal(*request.Cost)
	}

	if err := c.productRepository.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrProductDuplicateSKU) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "SKU já cadastrado", err.Error()))
			return
		}
		c.logger.Error("Erro ao criar produto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar produto", ""))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProductResponse(p))
}

// GetByID busca um produto pelo ID
// @Summary Busca um produto
// @Description Busca um produto pelo ID
// @Tags products
// @Produce json
// @Security Bearer
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id} [get]
func (c *ProductController) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	p, err := c.productRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Produto não encontrado", ""))
			return
		}
		c.logger.Error("Erro ao buscar produto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar produto", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// GetBySKU busca um produto pelo SKU
// @Summary Busca um produto pelo SKU
// @Description Busca um produto pelo SKU; a comparação ignora maiúsculas e minúsculas
// @Tags products
// @Produce json
// @Security Bearer
// @Param sku path string true "SKU do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/sku/{sku} [get]
func (c *ProductController) GetBySKU(ctx *gin.Context) {
	sku := ctx.Param("sku")

	p, err := c.productRepository.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Produto não encontrado", ""))
			return
		}
		c.logger.Error("Erro ao buscar produto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar produto", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// List lista os produtos ativos com filtros e paginação
// @Summary Lista produtos
// @Description Lista os produtos ativos com busca por nome ou sku e filtro por categoria
// @Tags products
// @Produce json
// @Security Bearer
// @Param search query string false "Busca por nome ou SKU"
// @Param category query string false "Categoria"
// @Param page query int false "Página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.ProductListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [get]
func (c *ProductController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	pagination := dto.GetPagination(page, pageSize)

	filter := product.ListFilter{
		Search:   ctx.Query("search"),
		Category: ctx.Query("category"),
		Limit:    pagination.PageSize,
		Offset:   pagination.Offset(),
	}

	products, err := c.productRepository.List(ctx, filter)
	if err != nil {
		c.logger.Error("Erro ao listar produtos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar produtos", ""))
		return
	}

	totalCount, err := c.productRepository.Count(ctx, filter)
	if err != nil {
		c.logger.Error("Erro ao contar produtos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao contar produtos", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductListResponse(products, totalCount, pagination.Page, pagination.PageSize))
}

// Update atualiza os dados cadastrais de um produto
// @Summary Atualiza um produto
// @Description Atualiza os dados cadastrais; o estoque não é alterado por aqui
// @Tags products
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do produto"
// @Param product body dto.ProductUpdateRequest true "Dados do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var request dto.ProductUpdateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	p, err := c.productRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Produto não encontrado", ""))
			return
		}
		c.logger.Error("Erro ao buscar produto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar produto", ""))
		return
	}

	if err := p.Update(request.Name, request.Description, request.Category, request.Price, request.MinStock, request.ImageURL); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados inválidos", err.Error()))
		return
	}
	if request.Cost != nil {
		p.Cost = decimal.NewNullDecimal(*request.Cost)
	}

	if err := c.productRepository.Update(ctx, p); err != nil {
		c.logger.Error("Erro ao atualizar produto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar produto", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// Delete desativa um produto
// @Summary Remove um produto
// @Description Desativa o produto; o histórico de vendas e movimentações é preservado
// @Tags products
// @Produce json
// @Security Bearer
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.productRepository.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Produto não encontrado", ""))
			return
		}
		c.logger.Error("Erro ao remover produto", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao remover produto", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Produto removido com sucesso", nil))
}

// Alerts lista os produtos com estoque baixo e com validade próxima
// @Summary Alertas de estoque
// @Description Lista produtos com estoque abaixo do mínimo e lotes vencendo na janela informada
// @Tags products
// @Produce json
// @Security Bearer
// @Param days query int false "Janela de validade em dias (padrão 7)"
// @Success 200 {object} dto.StockAlertsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/alerts [get]
func (c *ProductController) Alerts(ctx *gin.Context) {
	days, err := strconv.Atoi(ctx.DefaultQuery("days", strconv.Itoa(ExpiringSoonDays)))
	if err != nil || days < 1 {
		days = ExpiringSoonDays
	}

	lowStock, err := c.productRepository.FindLowStock(ctx)
	if err != nil {
		c.logger.Error("Erro ao buscar alertas de estoque", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar alertas de estoque", ""))
		return
	}

	until := time.Now().AddDate(0, 0, days)
	expiring, err := c.productRepository.FindExpiringBefore(ctx, until)
	if err != nil {
		c.logger.Error("Erro ao buscar alertas de validade", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar alertas de validade", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.StockAlertsResponse{
		Success:       true,
		LowStock:      dto.ToProductResponses(lowStock),
		ExpiringSoon:  dto.ToProductResponses(expiring),
		ExpiringUntil: until,
	})
}
