package router

import (
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/config"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/handler"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/infra"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/middleware"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/repository"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/service"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailer *infra.Mailer, loc *time.Location) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	closureRepo := repository.NewClosureRepository(db)
	configRepo := repository.NewConfigRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb, configRepo)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpirationHours, cfg.JWTRefreshHours)
	ledgerSvc := service.NewLedgerService(ledgerRepo)
	closureSvc := service.NewClosureService(closureRepo, saleRepo, expenseRepo, paymentRepo, productRepo, configRepo, ledgerSvc, dispatcher, loc)
	saleSvc := service.NewSaleService(saleRepo, productRepo, closureSvc, ledgerSvc, loc)
	expenseSvc := service.NewExpenseService(expenseRepo, closureSvc, ledgerSvc, loc)
	paymentSvc := service.NewPaymentService(paymentRepo, employeeRepo, closureSvc, ledgerSvc, loc)
	productSvc := service.NewProductService(productRepo, categoryRepo, rdb)
	categorySvc := service.NewCategoryService(categoryRepo, productRepo)
	employeeSvc := service.NewEmployeeService(employeeRepo)
	configSvc := service.NewConfigService(configRepo)
	statsSvc := service.NewStatsService(saleRepo, expenseRepo, paymentRepo, configRepo, loc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	ledgerH := handler.NewLedgerHandler(ledgerSvc)
	registerH := handler.NewRegisterHandler(closureSvc)
	salesH := handler.NewSaleHandler(saleSvc)
	expensesH := handler.NewExpenseHandler(expenseSvc)
	paymentsH := handler.NewPaymentHandler(paymentSvc)
	productsH := handler.NewProductHandler(productSvc)
	categoriesH := handler.NewCategoryHandler(categorySvc)
	employeesH := handler.NewEmployeeHandler(employeeSvc)
	configH := handler.NewConfigHandler(configSvc)
	statsH := handler.NewStatsHandler(statsSvc, loc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, mailer))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: admin, cashier, employee — declared per-endpoint
		staff := middleware.RequireRole("admin", "cashier", "employee")
		cashiers := middleware.RequireRole("admin", "cashier")
		admins := middleware.RequireRole("admin")

		// Sales
		v1.POST("/sales", cashiers, salesH.Create)
		v1.GET("/sales", cashiers, salesH.List)
		v1.GET("/sales/today", cashiers, salesH.ListToday)
		v1.GET("/sales/:id", cashiers, salesH.Get)
		v1.POST("/sales/:id/cancel", cashiers, salesH.Cancel)

		// Expenses
		v1.POST("/expenses", cashiers, expensesH.Create)
		v1.GET("/expenses", cashiers, expensesH.List)
		v1.GET("/expenses/today", cashiers, expensesH.ListToday)
		v1.DELETE("/expenses/:id", admins, expensesH.Delete)

		// Employee payments
		v1.POST("/payments", cashiers, paymentsH.Create)
		v1.GET("/payments", cashiers, paymentsH.List)
		v1.GET("/payments/today", cashiers, paymentsH.ListToday)
		v1.DELETE("/payments/:id", admins, paymentsH.Delete)

		// Cash register lifecycle
		register := v1.Group("/register")
		{
			register.POST("/close", cashiers, registerH.Close)
			// Reopen shares the login limiter: the password gate must not be
			// brute-forceable.
			register.POST("/reopen", admins, middleware.LoginRateLimiter(), registerH.Reopen)
			register.GET("/status", staff, registerH.Status)
			register.GET("/cash", cashiers, registerH.CurrentCash)
			register.GET("/summary", cashiers, registerH.DailySummary)
			register.GET("/closures", admins, registerH.ListClosures)
			register.GET("/closures/:date", admins, registerH.GetClosure)
		}

		// Major-cash ledger
		ledger := v1.Group("/ledger", admins)
		{
			ledger.POST("/movements", ledgerH.PostMovement)
			ledger.GET("/movements", ledgerH.ListMovements)
			ledger.GET("/summary", ledgerH.Summary)
			ledger.DELETE("/movements/:id", ledgerH.DeleteMovement)
		}

		// Menu catalog — everyone reads, admin writes
		v1.GET("/products", cashiers, productsH.List)
		v1.GET("/products/menu", staff, productsH.Menu)
		v1.GET("/products/low-stock", cashiers, productsH.LowStock)
		v1.GET("/products/:id", staff, productsH.Get)
		products := v1.Group("/products", admins)
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Deactivate)
		}

		v1.GET("/categories", staff, categoriesH.List)
		v1.GET("/categories/:id/products", staff, productsH.ListByCategory)
		categories := v1.Group("/categories", admins)
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		// Employees
		v1.GET("/employees", cashiers, employeesH.List)
		employees := v1.Group("/employees", admins)
		{
			employees.POST("", employeesH.Create)
			employees.PUT("/:id", employeesH.Update)
			employees.DELETE("/:id", employeesH.Deactivate)
		}

		// Stats
		stats := v1.Group("/stats", admins)
		{
			stats.GET("/daily", statsH.Daily)
			stats.GET("/monthly", statsH.Monthly)
			stats.GET("/products/top", statsH.TopProducts)
			stats.GET("/products/bottom", statsH.BottomProducts)
		}

		// Business settings
		v1.GET("/config", cashiers, configH.Get)
		v1.PUT("/config", admins, configH.Update)

		// User administration
		users := v1.Group("/users", admins)
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.PUT("/:id", authH.UpdateUser)
			users.DELETE("/:id", authH.DeactivateUser)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
