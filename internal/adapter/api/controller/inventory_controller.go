package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/repository"
	"github.com/hugohenrick/pdv-supermercado/internal/domain/inventory"
	"github.com/hugohenrick/pdv-supermercado/internal/domain/product"
	"github.com/hugohenrick/pdv-supermercado/pkg/auth"
	"github.com/hugohenrick/pdv-supermercado/pkg/logger"
)

// InventoryController gerencia as operações administrativas de estoque
type InventoryController struct {
	inventoryRepository inventory.Repository
	logger              logger.Logger
}

// NewInventoryController cria uma nova instância de InventoryController
func NewInventoryController(inventoryRepository inventory.Repository, logger logger.Logger) *InventoryController {
	return &InventoryController{
		inventoryRepository: inventoryRepository,
		logger:              logger,
	}
}

func stockActor(ctx *gin.Context) inventory.Actor {
	actor := auth.CurrentActor(ctx)
	return inventory.Actor{
		UserID: actor.UserID,
		Email:  actor.Email,
	}
}

// respondStockError traduz os erros das operações de estoque para HTTP
func (c *InventoryController) respondStockError(ctx *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Produto não encontrado", ""))
	case errors.Is(err, product.ErrBatchNotFound):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Lote não encontrado", ""))
	case errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, inventory.ErrNoChange),
		errors.Is(err, inventory.ErrMissingNote),
		errors.Is(err, product.ErrNothingToWriteOff),
		errors.Is(err, product.ErrMissingExpiration),
		errors.Is(err, product.ErrInvalidStock):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Operação de estoque inválida", err.Error()))
	default:
		c.logger.Error(action, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, action, ""))
	}
}

// Restock adiciona quantidade ao estoque de um produto
// @Summary Repõe estoque
// @Description Adiciona quantidade ao estoque; com data de validade, registra um novo lote
// @Tags inventory
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do produto"
// @Param restock body dto.RestockRequest true "Dados da reposição"
// @Success 200 {object} dto.StockOperationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id}/restock [post]
func (c *InventoryController) Restock(ctx *gin.Context) {
	productID := ctx.Param("id")

	var request dto.RestockRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	var batch *inventory.BatchInput
	if request.ExpirationDate != nil {
		batch = &inventory.BatchInput{
			ManufacturingDate: request.ManufacturingDate,
			ExpirationDate:    *request.ExpirationDate,
		}
	}

	p, movement, err := c.inventoryRepository.Restock(ctx, productID, request.Quantity, request.Note, batch, stockActor(ctx))
	if err != nil {
		c.respondStockError(ctx, "Erro ao repor estoque", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StockOperationResponse{
		Success:  true,
		Product:  dto.ToProductResponse(p),
		Movement: dto.ToMovementResponse(movement),
	})
}

// Adjust define o estoque de um produto para um valor absoluto
// @Summary Ajusta estoque
// @Description Define o estoque para o valor informado; a justificativa é obrigatória e ajustes sem alteração são rejeitados
// @Tags inventory
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do produto"
// @Param adjust body dto.AdjustStockRequest true "Novo estoque e justificativa"
// @Success 200 {object} dto.StockOperationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id}/adjust [post]
func (c *InventoryController) Adjust(ctx *gin.Context) {
	productID := ctx.Param("id")

	var request dto.AdjustStockRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	p, movement, err := c.inventoryRepository.Adjust(ctx, productID, request.Stock, request.Note, stockActor(ctx))
	if err != nil {
		c.respondStockError(ctx, "Erro ao ajustar estoque", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StockOperationResponse{
		Success:  true,
		Product:  dto.ToProductResponse(p),
		Movement: dto.ToMovementResponse(movement),
	})
}

// WriteOffBatch dá baixa em um lote vencido
// @Summary Baixa lote vencido
// @Description Zera o lote, reduz o estoque pela quantidade do lote e recalcula a validade mais próxima
// @Tags inventory
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do produto"
// @Param batch_id path string true "ID do lote"
// @Param writeoff body dto.WriteOffBatchRequest false "Observação da baixa"
// @Success 200 {object} dto.StockOperationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id}/batches/{batch_id}/write-off [post]
func (c *InventoryController) WriteOffBatch(ctx *gin.Context) {
	productID := ctx.Param("id")
	batchID := ctx.Param("batch_id")

	var request dto.WriteOffBatchRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	p, movement, removed, err := c.inventoryRepository.WriteOffBatch(ctx, productID, batchID, request.Note, stockActor(ctx))
	if err != nil {
		c.respondStockError(ctx, "Erro ao baixar lote", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StockOperationResponse{
		Success:  true,
		Product:  dto.ToProductResponse(p),
		Movement: dto.ToMovementResponse(movement),
		Removed:  &removed,
	})
}

// ListMovements lista as movimentações do razão de estoque
// @Summary Lista movimentações
// @Description Lista as movimentações de estoque com filtros por produto e tipo
// @Tags inventory
// @Produce json
// @Security Bearer
// @Param product_id query string false "ID do produto"
// @Param type query string false "Tipo da movimentação" Enums(RESTOCK, SALE, ADJUSTMENT, EXPIRED)
// @Param page query int false "Página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.MovementListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /inventory/movements [get]
func (c *InventoryController) ListMovements(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	pagination := dto.GetPagination(page, pageSize)

	movementType := inventory.MovementType(ctx.Query("type"))
	if movementType != "" && !movementType.Valid() {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Tipo de movimentação inválido", "Use RESTOCK, SALE, ADJUSTMENT ou EXPIRED"))
		return
	}

	filter := inventory.ListFilter{
		ProductID: ctx.Query("product_id"),
		Type:      movementType,
		Limit:     pagination.PageSize,
		Offset:    pagination.Offset(),
	}

	movements, err := c.inventoryRepository.List(ctx, filter)
	if err != nil {
		c.logger.Error("Erro ao listar movimentações", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar movimentações", ""))
		return
	}

	totalCount, err := c.inventoryRepository.Count(ctx, filter)
	if err != nil {
		c.logger.Error("Erro ao contar movimentações", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao contar movimentações", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMovementListResponse(movements, totalCount, pagination.Page, pagination.PageSize))
}
