// Package router assembles the HTTP API: services, handlers, middleware and
// routes on a single gin engine.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"homebudget/internal/config"
	_ "homebudget/internal/docs" // registers the swagger spec
	"homebudget/internal/handlers"
	"homebudget/internal/middleware"
	"homebudget/internal/money"
	"homebudget/internal/services"
)

// Deps are the collaborators the API needs.
type Deps struct {
	Config         *config.Config
	DB             *gorm.DB
	InitialBalance money.Amount

	// Pinger backs /api/health/db. Defaults to pinging DB.
	Pinger handlers.Pinger
	// Clock is the reference time for named periods. Defaults to time.Now.
	Clock func() time.Time
}

type gormPinger struct {
	db *gorm.DB
}

func (p gormPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// New builds the gin engine.
func New(d Deps) *gin.Engine {
	cfg := d.Config
	pinger := d.Pinger
	if pinger == nil {
		pinger = gormPinger{db: d.DB}
	}

	// Initialize services
	userService := services.NewUserService(d.DB, d.InitialBalance)
	categoryService := services.NewCategoryService(d.DB)
	expenseService := services.NewExpenseService(d.DB)
	incomeService := services.NewIncomeService(d.DB)
	analyticsService := services.NewAnalyticsService(d.DB, d.Clock)
	auditService := services.NewAuditService(d.DB)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(pinger)
	authHandler := handlers.NewAuthHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService, cfg.SeedCategories)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoints
	router.GET("/api/health", healthHandler.Health)
	router.GET("/api/health/db", healthHandler.Database)

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.APIKeyMiddleware(cfg.AdminAPIKey))
	admin.POST("/categories/seed", categoryHandler.SeedCategories)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	incomes := protected.Group("/incomes")
	incomes.POST("", incomeHandler.CreateIncome)
	incomes.GET("", incomeHandler.ListIncomes)
	incomes.GET("/:id", incomeHandler.GetIncomeByID)
	incomes.PUT("/:id", incomeHandler.UpdateIncome)
	incomes.DELETE("/:id", incomeHandler.DeleteIncome)

	analytics := protected.Group("/analytics")
	analytics.GET("/summary", analyticsHandler.GetSummary)
	analytics.GET("/summary/export", analyticsHandler.ExportSummary)

	return router
}

// Handler wraps the engine built by New with CORS handling for the
// configured origins.
func Handler(d Deps) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: d.Config.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-API-Key",
			"X-Request-ID",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
			"X-Request-ID",
		},
	})
	return c.Handler(New(d))
}
