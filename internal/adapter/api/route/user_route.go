package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-supermercado/pkg/auth"
)

// SetupUserRoutes configura as rotas para o módulo de usuários
func SetupUserRoutes(router *gin.RouterGroup, userController *controller.UserController) {
	userRouter := router.Group("/users")
	userRouter.Use(auth.JWTAuthMiddleware())
	{
		// Alteração da própria senha, disponível para qualquer usuário autenticado
		userRouter.PATCH("/password", userController.ChangePassword)

		// Gestão de usuários, restrita a administradores
		adminRouter := userRouter.Group("")
		adminRouter.Use(auth.RoleAuthMiddleware("admin"))
		{
			adminRouter.POST("", userController.Create)
			adminRouter.GET("", userController.List)
			adminRouter.GET("/:id", userController.GetByID)
			adminRouter.PUT("/:id", userController.Update)
			adminRouter.PATCH("/:id/status/:status", userController.UpdateStatus)
		}
	}
}
