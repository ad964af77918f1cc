package main

import (
	"fmt"
	"net/http"
	"os"

	"budgeteer/internal/config"
	"budgeteer/internal/database"
	"budgeteer/internal/handlers"
	"budgeteer/internal/logger"
	"budgeteer/internal/middleware"
	"budgeteer/internal/services"
	"budgeteer/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "budgeteer/internal/docs" // Import swagger docs
)

// @title           Budgeteer API
// @version         1.0
// @description     Budgeteer is a personal budgeting application that tracks budget periods, expenses, recurring subscriptions, and savings goals.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("APP_ENV"))
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

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	budgetService := services.NewBudgetService(db)
	ledgerService := services.NewLedgerService(db)
	expenseService := services.NewExpenseService(db)
	subscriptionService := services.NewSubscriptionService(db)
	goalService := services.NewGoalService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, ledgerService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, ledgerService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	goalHandler := handlers.NewGoalHandler(goalService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

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

	// Budget routes
	budget := protected.Group("/budget")
	budget.POST("", budgetHandler.SetBudget)
	budget.PUT("", budgetHandler.UpdateBudget)
	budget.GET("", budgetHandler.GetBalance)
	budget.GET("/history", budgetHandler.GetHistory)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.AddExpense)
	expenses.GET("", expenseHandler.GetLedger)
	expenses.GET("/daily", expenseHandler.GetDailySeries)
	expenses.GET("/categories", expenseHandler.GetCategoryBreakdown)
	expenses.GET("/range", expenseHandler.GetExpensesByRange)
	expenses.PUT("/:id", expenseHandler.EditExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Subscription routes
	subscriptions := protected.Group("/subscriptions")
	subscriptions.POST("", subscriptionHandler.CreateSubscription)
	subscriptions.GET("", subscriptionHandler.GetSubscriptions)
	subscriptions.DELETE("/:id", subscriptionHandler.DeleteSubscription)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.PUT("/:id/saved", goalHandler.AddSaved)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	log.Infof("Starting Budgeteer backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
