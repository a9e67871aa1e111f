// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers.
package routes

import (
	"campusbites/internal/config"
	"campusbites/internal/handlers"
	"campusbites/internal/repositories"
	"campusbites/internal/services/deal"
	"campusbites/internal/services/merchant"
	"campusbites/internal/services/payment"
	"campusbites/internal/services/purchase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and handlers and registers
// every route on the app.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	dealRepo := repositories.NewDealRepository(db, repositories.CacheService)
	merchantRepo := repositories.NewMerchantAccountRepository(db)
	orderRepo := repositories.NewPurchaseOrderRepository(db)

	// Payment provider
	provider := payment.NewStripeProvider(
		config.GetEnv("STRIPE_SECRET_KEY", ""),
		config.ProviderTimeout(),
	)

	// Services
	dealService := deal.NewService(dealRepo)
	merchantService := merchant.NewService(merchantRepo, provider, config.BaseURL())
	purchaseService := purchase.NewService(
		dealService,
		merchantService,
		provider,
		orderRepo,
		purchase.Config{
			CommissionRatePercent: config.CommissionRatePercent(),
			Currency:              config.GetEnv("CURRENCY", "usd"),
			ProviderTimeout:       config.ProviderTimeout(),
		},
	)

	// Handlers
	dealHandler := handlers.NewDealHandler(dealService)
	merchantHandler := handlers.NewMerchantHandler(merchantService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	orderHandler := handlers.NewOrderHandler(orderRepo)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	api.Get("/deals", dealHandler.ListDeals)
	api.Get("/deals/:id", dealHandler.GetDeal)

	api.Post("/checkout", purchaseHandler.Checkout)
	api.Get("/orders/:order_id", orderHandler.GetOrder)

	api.Post("/merchants", merchantHandler.Register)
	api.Post("/merchants/:id/onboarding", merchantHandler.BeginOnboarding)
	api.Get("/merchants/:id/onboarding/complete", merchantHandler.CompleteOnboarding)
	api.Get("/merchants/:id/onboarding/refresh", merchantHandler.RefreshOnboarding)
	api.Get("/merchants/:id/status", merchantHandler.Status)
	api.Get("/merchants/:id/dashboard-link", merchantHandler.DashboardLink)
	api.Get("/merchants/:id/orders", orderHandler.ListMerchantOrders)
}
