// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/domain/pricing"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"github.com/your-org/storefront-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// SetupRoutes wires every service and handler and mounts all route
// groups under the given API group.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) error {
	rules, err := pricing.RulesFromConfig(cfg)
	if err != nil {
		return err
	}

	emailService := email.NewService(cfg)
	productCache := product.NewCache(redisClient)
	productService := product.NewService(db, productCache, cfg)
	reviewService := product.NewReviewService(db, productCache)
	cartService := cart.NewService(db, productCache, rules)
	userService := user.NewService(db, cfg)
	orderService := order.NewService(db, cfg, cartService, emailService)
	paymentService := payment.NewService(cfg, orderService)
	pdfService := pdf.NewService(cfg)

	authHandler := handlers.NewAuthHandler(userService, cartService, cfg)
	productHandler := handlers.NewProductHandler(productService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	userHandler := handlers.NewUserHandler(userService)
	invoiceHandler := handlers.NewInvoiceHandler(orderService, pdfService)

	setupAuthRoutes(rg, authHandler, cfg)
	setupProductRoutes(rg, productHandler, reviewHandler, cfg)
	setupCartRoutes(rg, cartHandler, cfg)
	setupOrderRoutes(rg, orderHandler, paymentHandler, invoiceHandler, cfg)
	setupUserRoutes(rg, userHandler, cfg)
	setupAdminRoutes(rg, productHandler, orderHandler, userHandler, cfg)

	return nil
}

// setupAuthRoutes sets up authentication routes
func setupAuthRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler, cfg *config.Config) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
	}
}

// setupProductRoutes sets up catalog and review routes
func setupProductRoutes(rg *gin.RouterGroup, h *handlers.ProductHandler, rh *handlers.ReviewHandler, cfg *config.Config) {
	products := rg.Group("/products")
	{
		products.GET("", h.GetProducts)
		products.GET("/latest", h.GetLatestProducts)
		products.GET("/featured", h.GetFeaturedProducts)
		products.GET("/categories", h.GetCategories)
		products.GET("/slug/:slug", h.GetProductBySlug)
		products.GET("/:id", h.GetProduct)
		products.GET("/:id/reviews", rh.GetProductReviews)

		protected := products.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/:id/reviews", rh.UpsertReview)
			protected.GET("/:id/reviews/mine", rh.GetMyReview)
		}
	}
}

// setupCartRoutes sets up cart routes. Auth is optional: guests carry a
// session cookie instead.
func setupCartRoutes(rg *gin.RouterGroup, h *handlers.CartHandler, cfg *config.Config) {
	carts := rg.Group("/cart")
	carts.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		carts.GET("", h.GetCart)
		carts.POST("/items", h.AddItem)
		carts.DELETE("/items/:id", h.RemoveItem)
	}
}

// setupOrderRoutes sets up order, payment and invoice routes
func setupOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler, ph *handlers.PaymentHandler, ih *handlers.InvoiceHandler, cfg *config.Config) {
	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.POST("", h.CreateOrder)
		orders.GET("/mine", h.GetMyOrders)
		orders.GET("/:id", h.GetOrder)
		orders.GET("/:id/invoice", ih.GenerateInvoice)

		orders.POST("/:id/paypal", ph.CreatePayPalOrder)
		orders.POST("/:id/paypal/capture", ph.ApprovePayPalOrder)
		orders.POST("/:id/stripe", ph.CreateStripeIntent)
		orders.POST("/:id/stripe/confirm", ph.ConfirmStripeIntent)
	}
}

// setupUserRoutes sets up profile routes
func setupUserRoutes(rg *gin.RouterGroup, h *handlers.UserHandler, cfg *config.Config) {
	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(cfg))
	{
		users.GET("/me", h.GetProfile)
		users.PUT("/me", h.UpdateProfile)
		users.PUT("/me/address", h.UpdateAddress)
		users.PUT("/me/payment-method", h.UpdatePaymentMethod)
	}
}

// setupAdminRoutes sets up the admin console routes
func setupAdminRoutes(rg *gin.RouterGroup, ph *handlers.ProductHandler, oh *handlers.OrderHandler, uh *handlers.UserHandler, cfg *config.Config) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/summary", oh.GetSummary)

		admin.POST("/products", ph.CreateProduct)
		admin.PUT("/products/:id", ph.UpdateProduct)
		admin.DELETE("/products/:id", ph.DeleteProduct)

		admin.GET("/orders", oh.GetOrders)
		admin.PUT("/orders/:id/pay", oh.MarkOrderPaid)
		admin.PUT("/orders/:id/deliver", oh.MarkOrderDelivered)
		admin.DELETE("/orders/:id", oh.DeleteOrder)

		admin.GET("/users", uh.GetUsers)
		admin.PUT("/users/:id", uh.UpdateUser)
		admin.DELETE("/users/:id", uh.DeleteUser)
	}
}
