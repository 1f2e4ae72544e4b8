package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-supermercado/pkg/auth"
)

// SetupProductRoutes configura as rotas para o módulo de produtos,
// incluindo as operações administrativas de estoque
func SetupProductRoutes(router *gin.RouterGroup, productController *controller.ProductController, inventoryController *controller.InventoryController) {
	productRouter := router.Group("/products")
	productRouter.Use(auth.JWTAuthMiddleware())
	{
		// Consultas disponíveis para qualquer usuário autenticado
		productRouter.GET("", productController.List)
		productRouter.GET("/alerts", productController.Alerts)
		productRouter.GET("/sku/:sku", productController.GetBySKU)
		productRouter.GET("/:id", productController.GetByID)

		// Cadastro e operações de estoque, restritos a administradores
		adminRouter := productRouter.Group("")
		adminRouter.Use(auth.RoleAuthMiddleware("admin"))
		{
			adminRouter.POST("", productController.Create)
			adminRouter.PUT("/:id", productController.Update)
			adminRouter.DELETE("/:id", productController.Delete)

			adminRouter.POST("/:id/restock", inventoryController.Restock)
			adminRouter.POST("/:id/adjust", inventoryController.Adjust)
			adminRouter.POST("/:id/batches/:batch_id/write-off", inventoryController.WriteOffBatch)
		}
	}
}
