package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-supermercado/pkg/auth"
)

// SetupSaleRoutes configura as rotas para o módulo de vendas
func SetupSaleRoutes(router *gin.RouterGroup, saleController *controller.SaleController) {
	saleRouter := router.Group("/sales")
	saleRouter.Use(auth.JWTAuthMiddleware())
	{
		saleRouter.POST("", saleController.Checkout)
		saleRouter.GET("", saleController.List)
		saleRouter.GET("/order/:order_number", saleController.GetByOrderNumber)
		saleRouter.GET("/:id", saleController.GetByID)

		// O cancelamento devolve estoque, portanto é restrito a administradores
		saleRouter.POST("/:id/cancel", auth.RoleAuthMiddleware("admin"), saleController.Cancel)
	}
}
