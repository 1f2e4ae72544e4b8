package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hugohenrick/pdv-supermercado/docs"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/api/route"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/repository"
	"github.com/hugohenrick/pdv-supermercado/internal/infrastructure/database"
	"github.com/hugohenrick/pdv-supermercado/pkg/auth"
	"github.com/hugohenrick/pdv-supermercado/pkg/logger"
	"github.com/hugohenrick/pdv-supermercado/pkg/ratelimit"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App representa a aplicação e suas dependências
type App struct {
	router         *gin.Engine
	db             *pgxpool.Pool
	logger         logger.Logger
	rateLimitStore ratelimit.Store
}

// NewApp cria uma nova instância do aplicativo com todas as dependências
func NewApp() (*App, error) {
	appLogger := logger.NewLogger()

	db, err := database.NewPostgresDB()
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService()
	if err != nil {
		return nil, err
	}

	// Limitador de requisições: Redis quando configurado, memória local
	// nas demais situações
	var store ratelimit.Store
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisStore, err := ratelimit.NewRedisStore(addr, os.Getenv("REDIS_PASSWORD"), 0)
		if err != nil {
			return nil, err
		}
		store = redisStore
		appLogger.Info("limitador de requisições usando redis", "addr", addr)
	} else {
		store = ratelimit.NewMemoryStore()
		appLogger.Info("limitador de requisições usando memória local")
	}

	// Repositórios
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Controllers
	authController := controller.NewAuthController(userRepo, jwtService, appLogger)
	userController := controller.NewUserController(userRepo, appLogger)
	productController := controller.NewProductController(productRepo, appLogger)
	inventoryController := controller.NewInventoryController(inventoryRepo, appLogger)
	saleController := controller.NewSaleController(saleRepo, appLogger)
	reportController := controller.NewReportController(reportRepo, appLogger)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	rateLimitConfig := ratelimit.NewConfigFromEnv()

	// Limite global por IP em toda a API
	api := router.Group("/api/v1")
	api.Use(ratelimit.Middleware(store, "api", rateLimitConfig.MaxRequests, rateLimitConfig.Window))

	// Limite mais restrito para o login
	loginLimiter := ratelimit.Middleware(store, "login", rateLimitConfig.LoginMaxRequests, rateLimitConfig.LoginWindow)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	route.SetupSetupRoutes(api, userController)
	route.SetupAuthRoutes(api, authController, loginLimiter)
	route.SetupUserRoutes(api, userController)
	route.SetupProductRoutes(api, productController, inventoryController)
	route.SetupInventoryRoutes(api, inventoryController)
	route.SetupSaleRoutes(api, saleController)
	route.SetupReportRoutes(api, reportController)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &App{
		router:         router,
		db:             db,
		logger:         appLogger,
		rateLimitStore: store,
	}, nil
}

// Start inicia o servidor HTTP
func (a *App) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	a.logger.Info("servidor iniciado", "port", port)
	return a.router.Run(":" + port)
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.rateLimitStore != nil {
		a.rateLimitStore.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
