package main

import (
	"fmt"
	"net/http"
	"os"

	"stockbook/internal/config"
	"stockbook/internal/database"
	"stockbook/internal/handlers"
	"stockbook/internal/logger"
	"stockbook/internal/middleware"
	"stockbook/internal/services"
	"stockbook/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "stockbook/internal/docs" // Import swagger docs
)

// @title           Stockbook API
// @version         1.0
// @description     Stockbook is a personal finance and inventory tracker: record expenses, manage a product catalog with stock levels, and view aggregate reports.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	expenseService := services.NewExpenseService(db)
	inventoryService := services.NewInventoryService(db)
	reportService := services.NewReportService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	productHandler := handlers.NewProductHandler(inventoryService, auditService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/total", expenseHandler.GetMonthlyTotal)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Product routes
	products := protected.Group("/products")
	products.POST("", productHandler.CreateProduct)
	products.GET("", productHandler.ListProducts)
	products.GET("/low-stock", productHandler.GetLowStock)
	products.GET("/value", productHandler.GetInventoryValue)
	products.GET("/:id", productHandler.GetProductByID)
	products.PUT("/:id", productHandler.UpdateProduct)
	products.DELETE("/:id", productHandler.DeleteProduct)
	products.POST("/:id/purchase", productHandler.Purchase)

	// Report routes
	reports := protected.Group("/reports")
	reports.GET("/categories", reportHandler.GetCategoryBreakdown)
	reports.GET("/monthly", reportHandler.GetMonthlySpending)
	reports.GET("/summary", reportHandler.GetExpenseSummary)
	reports.GET("/inventory", reportHandler.GetInventoryReport)

	log.Infof("Starting Stockbook server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
