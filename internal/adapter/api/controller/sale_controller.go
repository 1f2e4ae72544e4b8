package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/repository"
	"github.com/hugohenrick/pdv-supermercado/internal/domain/sale"
	"github.com/hugohenrick/pdv-supermercado/pkg/auth"
	"github.com/hugohenrick/pdv-supermercado/pkg/logger"
)

// SaleController gerencia as requisições relacionadas a vendas
type SaleController struct {
	saleRepository sale.Repository
	logger         logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(saleRepository sale.Repository, logger logger.Logger) *SaleController {
	return &SaleController{
		saleRepository: saleRepository,
		logger:         logger,
	}
}

// Checkout fecha uma venda
// @Summary Fecha uma venda
// @Description Valida o carrinho, baixa o estoque de cada item de forma atômica e grava a venda com as movimentações em uma única transação
// @Tags sales
// @Accept json
// @Produce json
// @Security Bearer
// @Param sale body dto.CheckoutRequest true "Carrinho e forma de pagamento"
// @Success 201 {object} dto.CheckoutResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [post]
func (c *SaleController) Checkout(ctx *gin.Context) {
	var request dto.CheckoutRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	items := make([]sale.Item, len(request.Items))
	for i, it := range request.Items {
		items[i] = sale.Item{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		}
	}

	actor := auth.CurrentActor(ctx)
	s, err := sale.NewSale(items, request.CustomerName,
		sale.PaymentMethod(request.PaymentMethod),
		sale.CustomerType(request.CustomerType), actor.UserID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Venda inválida", err.Error()))
		return
	}

	if err := c.saleRepository.Checkout(ctx, s); err != nil {
		var insufficient *repository.InsufficientStockError
		switch {
		case errors.As(err, &insufficient):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest,
				"Estoque insuficiente",
				fmt.Sprintf("%s: disponível %d, solicitado %d",
					insufficient.ProductName, insufficient.Available, insufficient.Requested)))
		case errors.Is(err, repository.ErrProductNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Produto não encontrado", err.Error()))
		default:
			c.logger.Error("Erro ao fechar venda", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao fechar venda", ""))
		}
		return
	}

	c.logger.Info("venda concluída", "order_number", s.OrderNumber, "total", s.Total.String(), "items", len(s.Items))

	ctx.JSON(http.StatusCreated, dto.CheckoutResponse{
		Success: true,
		Sale:    dto.ToSaleResponse(s),
	})
}

// GetByID busca uma venda pelo ID
// @Summary Busca uma venda
// @Description Busca uma venda pelo ID
// @Tags sales
// @Produce json
// @Security Bearer
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	s, err := c.saleRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Venda não encontrada", ""))
			return
		}
		c.logger.Error("Erro ao buscar venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar venda", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(s))
}

// GetByOrderNumber busca uma venda pelo número do pedido
// @Summary Busca uma venda pelo número do pedido
// @Description Busca uma venda pelo número do pedido; a comparação ignora maiúsculas e minúsculas
// @Tags sales
// @Produce json
// @Security Bearer
// @Param order_number path string true "Número do pedido"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/order/{order_number} [get]
func (c *SaleController) GetByOrderNumber(ctx *gin.Context) {
	orderNumber := ctx.Param("order_number")

	s, err := c.saleRepository.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Venda não encontrada", ""))
			return
		}
		c.logger.Error("Erro ao buscar venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar venda", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(s))
}

// List lista as vendas com filtros e paginação
// @Summary Lista vendas
// @Description Lista as vendas com filtro por período e busca por número do pedido ou cliente
// @Tags sales
// @Produce json
// @Security Bearer
// @Param start_date query string false "Data inicial (AAAA-MM-DD)"
// @Param end_date query string false "Data final (AAAA-MM-DD)"
// @Param search query string false "Busca por número do pedido ou cliente"
// @Param page query int false "Página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.SaleListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	pagination := dto.GetPagination(page, pageSize)

	filter := sale.ListFilter{
		Search: ctx.Query("search"),
		Limit:  pagination.PageSize,
		Offset: pagination.Offset(),
	}

	if startStr := ctx.Query("start_date"); startStr != "" {
		start, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Data inicial inválida", "Use o formato AAAA-MM-DD"))
			return
		}
		filter.StartDate = &start
	}

	if endStr := ctx.Query("end_date"); endStr != "" {
		end, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Data final inválida", "Use o formato AAAA-MM-DD"))
			return
		}
		end = end.AddDate(0, 0, 1)
		filter.EndDate = &end
	}

	sales, err := c.saleRepository.List(ctx, filter)
	if err != nil {
		c.logger.Error("Erro ao listar vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar vendas", ""))
		return
	}

	totalCount, err := c.saleRepository.Count(ctx, filter)
	if err != nil {
		c.logger.Error("Erro ao contar vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao contar vendas", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleListResponse(sales, totalCount, pagination.Page, pagination.PageSize))
}

// Cancel cancela uma venda e devolve as quantidades ao estoque
// @Summary Cancela uma venda
// @Description Marca a venda como cancelada e devolve as quantidades vendidas ao estoque na mesma transação
// @Tags sales
// @Produce json
// @Security Bearer
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.CheckoutResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id}/cancel [post]
func (c *SaleController) Cancel(ctx *gin.Context) {
	id := ctx.Param("id")
	actor := auth.CurrentActor(ctx)

	s, err := c.saleRepository.Cancel(ctx, id, actor.UserID, actor.Email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSaleNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Venda não encontrada", ""))
		case errors.Is(err, sale.ErrSaleNotCancellable):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Venda não pode ser cancelada", err.Error()))
		default:
			c.logger.Error("Erro ao cancelar venda", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao cancelar venda", ""))
		}
		return
	}

	c.logger.Info("venda cancelada", "order_number", s.OrderNumber, "cancelled_by", actor.Email)

	ctx.JSON(http.StatusOK, dto.CheckoutResponse{
		Success: true,
		Sale:    dto.ToSaleResponse(s),
	})
}
