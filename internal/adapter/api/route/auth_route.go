package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-supermercado/pkg/auth"
)

// SetupAuthRoutes configura as rotas para o módulo de autenticação
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController, loginLimiter gin.HandlerFunc) {
	authRouter := router.Group("/auth")
	{
		// O limite de requisições protege o login contra força bruta
		authRouter.POST("/login", loginLimiter, authController.Login)
		authRouter.POST("/refresh", authController.RefreshToken)

		authRouter.GET("/me", auth.JWTAuthMiddleware(), authController.Me)
	}
}
