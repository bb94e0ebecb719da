package routes

import (
	"log/slog"

	"crmsystem-backend/config"
	"crmsystem-backend/controllers"
	"crmsystem-backend/middleware"
	"crmsystem-backend/models"
	"crmsystem-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires every route with its authorization gate. Role
// requirements are explicit at each registration.
func SetupRouter(db *gorm.DB, cfg *config.Config, logger *slog.Logger,
	billing *services.BillingService, accounts *services.AccountService,
	notifier *services.NotificationService) *gin.Engine {

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.RequestLogger(logger))

	authController := &controllers.AuthController{DB: db, Cfg: cfg, Accounts: accounts, Logger: logger}
	customerController := &controllers.CustomerController{DB: db, Logger: logger}
	productController := &controllers.ProductController{DB: db, Logger: logger}
	orderController := &controllers.OrderController{DB: db, Billing: billing, Notifier: notifier, Logger: logger}
	dashboardController := &controllers.DashboardController{DB: db, Billing: billing, Logger: logger}
	reportController := &controllers.ReportController{Billing: billing, Logger: logger}
	portalController := &controllers.PortalController{DB: db, Accounts: accounts, Notifier: notifier, Logger: logger}

	auth := r.Group("/auth")
	{
		auth.POST("/register", middleware.UnauthenticatedOnly(cfg), authController.Register)
		auth.POST("/login", middleware.UnauthenticatedOnly(cfg), authController.Login)
		auth.POST("/logout", authController.Logout)
		auth.GET("/me", middleware.RequireAuth(db, cfg), authController.Me)
	}

	authed := r.Group("/", middleware.RequireAuth(db, cfg))

	// Staff dashboard. Customers who land here are redirected to /user.
	authed.GET("/", middleware.AdminOnly(logger), dashboardController.GetDashboard)

	// Customer portal.
	portal := authed.Group("/", middleware.AllowedRoles(logger, models.RoleCustomer))
	{
		portal.GET("/user", portalController.GetUserHome)
		portal.GET("/account", portalController.GetAccount)
		portal.PUT("/account", portalController.UpdateAccount)
		portal.POST("/send-query", portalController.SendQuery)
	}

	// Staff API.
	api := authed.Group("/api", middleware.AllowedRoles(logger, models.RoleAdmin))
	{
		customers := api.Group("/customers")
		{
			customers.POST("", customerController.CreateCustomer)
			customers.GET("", customerController.GetCustomers)
			customers.GET("/:id", customerController.GetCustomer)
			customers.PUT("/:id", customerController.UpdateCustomer)
			customers.GET("/:id/delete", customerController.ConfirmDeleteCustomer)
			customers.DELETE("/:id", customerController.DeleteCustomer)

			customers.POST("/:id/orders", orderController.CreateOrders)
		}

		products := api.Group("/products")
		{
			products.POST("", productController.CreateProduct)
			products.GET("", productController.GetProducts)
			products.GET("/:id", productController.GetProduct)
			products.PUT("/:id", productController.UpdateProduct)
			products.GET("/:id/delete", productController.ConfirmDeleteProduct)
			products.DELETE("/:id", productController.DeleteProduct)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", orderController.GetOrders)
			orders.PUT("/:id", orderController.UpdateOrder)
			orders.GET("/:id/delete", orderController.ConfirmDeleteOrder)
			orders.DELETE("/:id", orderController.DeleteOrder)
		}

		api.GET("/customers-by-bill", reportController.GetCustomersByBill)
	}

	return r
}
