package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-supermercado/pkg/auth"
)

// SetupReportRoutes configura as rotas para os relatórios de vendas
func SetupReportRoutes(router *gin.RouterGroup, reportController *controller.ReportController) {
	reportRouter := router.Group("/reports")
	reportRouter.Use(auth.JWTAuthMiddleware())
	reportRouter.Use(auth.RoleAuthMiddleware("admin", "manager"))
	{
		reportRouter.GET("/sales", reportController.SalesSummary)
		reportRouter.GET("/sales/export", reportController.ExportXLSX)
		reportRouter.GET("/sales/export/csv", reportController.ExportCSV)
	}
}
