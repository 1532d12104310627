package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/openmotors/car-ledger-api/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler *Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Car listing endpoints (public)
		v1.GET("/cars", handler.ListCars)
		v1.GET("/cars/:token_id", handler.GetCar)
		v1.POST("/cars", handler.CreateCar)

		// Trade endpoints (public; the ledger itself arbitrates)
		v1.POST("/cars/:token_id/buy", handler.BuyCar)
		v1.POST("/cars/:token_id/cancel", handler.CancelListing)

		// Reconciliation repairs store state, so it requires authentication
		v1.POST("/cars/:token_id/reconcile", middleware.Auth(authCfg), handler.ReconcileCar)

		// Profile endpoints (public read access)
		v1.GET("/profiles/:address/cars", handler.ProfileCars)
		v1.GET("/profiles/:address/assets", handler.ProfileAssets)

		// Transaction history (public read access)
		v1.GET("/transactions", handler.ListTransactions)
	}
}
