package controller

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-supermercado/internal/domain/report"
	"github.com/hugohenrick/pdv-supermercado/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// ReportController gerencia os relatórios de vendas
type ReportController struct {
	reportRepository report.Repository
	logger           logger.Logger
}

// NewReportController cria uma nova instância de ReportController
func NewReportController(reportRepository report.Repository, logger logger.Logger) *ReportController {
	return &ReportController{
		reportRepository: reportRepository,
		logger:           logger,
	}
}

// SalesSummary retorna o relatório consolidado de vendas de um período
// @Summary Relatório de vendas
// @Description Consolida as vendas concluídas do período: totais, ticket médio, vendas por forma de pagamento e produtos mais vendidos
// @Tags reports
// @Produce json
// @Security Bearer
// @Param start_date query string false "Data inicial (AAAA-MM-DD, padrão hoje)"
// @Param end_date query string false "Data final (AAAA-MM-DD)"
// @Success 200 {object} dto.SalesSummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/sales [get]
func (c *ReportController) SalesSummary(ctx *gin.Context) {
	start, end, err := dto.ParsePeriod(ctx.Query("start_date"), ctx.Query("end_date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Período inválido", "Use o formato AAAA-MM-DD"))
		return
	}

	summary, err := c.reportRepository.SalesSummary(ctx, start, end)
	if err != nil {
		c.logger.Error("Erro ao gerar relatório", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao gerar relatório", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.SalesSummaryResponse{
		Success: true,
		Summary: summary,
	})
}

var exportHeader = []string{
	"Pedido", "Data", "Produto", "SKU", "Quantidade",
	"Preço Unitário", "Total da Linha", "Pagamento", "Cliente",
}

// ExportXLSX exporta os itens vendidos do período em planilha Excel
// @Summary Exporta vendas em XLSX
// @Description Gera uma planilha com uma linha por item vendido no período
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security Bearer
// @Param start_date query string false "Data inicial (AAAA-MM-DD, padrão hoje)"
// @Param end_date query string false "Data final (AAAA-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/sales/export [get]
func (c *ReportController) ExportXLSX(ctx *gin.Context) {
	start, end, err := dto.ParsePeriod(ctx.Query("start_date"), ctx.Query("end_date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Período inválido", "Use o formato AAAA-MM-DD"))
		return
	}

	rows, err := c.reportRepository.SaleRows(ctx, start, end)
	if err != nil {
		c.logger.Error("Erro ao exportar vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao exportar vendas", ""))
		return
	}

	f := excelize.NewFile()
	sheet := "Vendas"
	f.SetSheetName("Sheet1", sheet)

	for i, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, r := range rows {
		values := []interface{}{
			r.OrderNumber,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.ProductName,
			r.SKU,
			r.Quantity,
			r.UnitPrice.InexactFloat64(),
			r.LineTotal.InexactFloat64(),
			r.PaymentMethod,
			r.CustomerName,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("vendas_%s_%s.xlsx", start.Format("20060102"), end.AddDate(0, 0, -1).Format("20060102"))
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(ctx.Writer); err != nil {
		c.logger.Error("Erro ao gravar planilha", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao gravar planilha", ""))
	}
}

// ExportCSV exporta os itens vendidos do período em CSV
// @Summary Exporta vendas em CSV
// @Description Gera um CSV com uma linha por item vendido no período
// @Tags reports
// @Produce text/csv
// @Security Bearer
// @Param start_date query string false "Data inicial (AAAA-MM-DD, padrão hoje)"
// @Param end_date query string false "Data final (AAAA-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /reports/sales/export/csv [get]
func (c *ReportController) ExportCSV(ctx *gin.Context) {
	start, end, err := dto.ParsePeriod(ctx.Query("start_date"), ctx.Query("end_date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Período inválido", "Use o formato AAAA-MM-DD"))
		return
	}

	rows, err := c.reportRepository.SaleRows(ctx, start, end)
	if err != nil {
		c.logger.Error("Erro ao exportar vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao exportar vendas", ""))
		return
	}

	filename := fmt.Sprintf("vendas_%s_%s.csv", start.Format("20060102"), end.AddDate(0, 0, -1).Format("20060102"))
	ctx.Header("Content-Type", "text/csv; charset=utf-8")
	ctx.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(ctx.Writer)
	if err := w.Write(exportHeader); err != nil {
		return
	}

	for _, r := range rows {
		record := []string{
			r.OrderNumber,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.ProductName,
			r.SKU,
			strconv.Itoa(r.Quantity),
			r.UnitPrice.StringFixed(2),
			r.LineTotal.StringFixed(2),
			r.PaymentMethod,
			r.CustomerName,
		}
		if err := w.Write(record); err != nil {
			return
		}
	}
	w.Flush()
}
