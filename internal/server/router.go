package server

import (
	"time"

	"go-inventory-admin/internal/auth"
	"go-inventory-admin/internal/handlers"
	"go-inventory-admin/internal/middleware"
	"go-inventory-admin/internal/models"
	"go-inventory-admin/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter wires every route of the admin backend onto a gin engine.
func NewRouter(db *gorm.DB, sessions *auth.SessionStore, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(db, sessions)
	productHandler := handlers.NewProductHandler(db)
	categoryHandler := handlers.NewCategoryHandler(db)
	invoiceHandler := handlers.NewInvoiceHandler(db, services.NewInvoiceService(db))
	stockHandler := handlers.NewStockHandler(db, services.NewStockService(db))
	catalogueHandler := handlers.NewCatalogueHandler(db)
	userHandler := handlers.NewUserHandler(db)
	settingsHandler := handlers.NewSettingsHandler(db)
	reportHandler := handlers.NewReportHandler(db)

	r.GET("/api/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/api/auth/login", authHandler.Login)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(sessions))
	{
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/me", authHandler.Me)

		api.GET("/products", productHandler.List)
		api.GET("/products/export", productHandler.ExportCSV)
		api.GET("/products/sku", productHandler.NextSKU)
		api.GET("/products/:id", productHandler.Get)
		api.POST("/products", productHandler.Create)
		api.PUT("/products/:id", productHandler.Update)
		api.DELETE("/products/:id", productHandler.Delete)

		api.GET("/categories", categoryHandler.List)
		api.POST("/categories", categoryHandler.Create)
		api.PUT("/categories/:id", categoryHandler.Update)
		api.DELETE("/categories/:id", categoryHandler.Delete)

		api.GET("/invoices", invoiceHandler.List)
		api.GET("/invoices/:id", invoiceHandler.Get)
		api.GET("/invoices/:id/pdf", invoiceHandler.PDF)
		api.POST("/invoices", invoiceHandler.Create)
		api.DELETE("/invoices/:id", invoiceHandler.Delete)

		api.POST("/stock/adjust", stockHandler.Adjust)
		api.GET("/stock/movements", stockHandler.Movements)

		api.GET("/catalogues", catalogueHandler.List)
		api.GET("/catalogues/:id", catalogueHandler.Get)
		api.POST("/catalogues", catalogueHandler.Create)
		api.DELETE("/catalogues/:id", catalogueHandler.Delete)

		api.GET("/logs", reportHandler.Logs)
		api.GET("/reports/dashboard", reportHandler.Dashboard)
		api.GET("/reports/stock", reportHandler.Stock)
		api.GET("/reports/invoices", reportHandler.Invoices)

		api.GET("/settings", settingsHandler.Get)
		api.PUT("/settings", settingsHandler.Update)
		api.GET("/backup", settingsHandler.Backup)

		// SUPER ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRole(models.RoleSuperAdmin))
		{
			admin.GET("/users", userHandler.List)
			admin.POST("/users", userHandler.Create)
			admin.POST("/system/reset", settingsHandler.Reset)
		}
	}

	return r
}
