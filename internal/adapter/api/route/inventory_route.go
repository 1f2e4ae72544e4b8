package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-supermercado/pkg/auth"
)

// SetupInventoryRoutes configura as rotas para o razão de estoque
func SetupInventoryRoutes(router *gin.RouterGroup, inventoryController *controller.InventoryController) {
	inventoryRouter := router.Group("/inventory")
	inventoryRouter.Use(auth.JWTAuthMiddleware())
	{
		inventoryRouter.GET("/movements", inventoryController.ListMovements)
	}
}
