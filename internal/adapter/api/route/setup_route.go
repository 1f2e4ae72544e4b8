package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/api/controller"
)

// SetupSetupRoutes configura as rotas para configuração inicial do sistema
func SetupSetupRoutes(router *gin.RouterGroup, userController *controller.UserController) {
	setupRouter := router.Group("/setup")
	{
		// Cria o primeiro administrador; só funciona enquanto não há usuários
		setupRouter.POST("/admin", userController.CreateFirstAdmin)
	}
}
