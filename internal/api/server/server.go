package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openmotors/car-ledger-api/internal/api/middleware"
	"github.com/openmotors/car-ledger-api/internal/api/rest"
	"github.com/openmotors/car-ledger-api/internal/assets"
	"github.com/openmotors/car-ledger-api/internal/logger"
	"github.com/openmotors/car-ledger-api/internal/marketplace"
	"github.com/openmotors/car-ledger-api/internal/store"
)

// Config holds the server configuration
type Config struct {
	Debug        bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	UploadsDir   string
	Auth         middleware.AuthConfig
}

// Server wraps the HTTP server
type Server struct {
	config      Config
	listing     *marketplace.ListingService
	purchase    *marketplace.PurchaseService
	aggregation *marketplace.AggregationService
	reconciler  *marketplace.Reconciler
	store       store.Store
	assets      assets.Storage
	httpServer  *http.Server
}

// New creates a new API server
func New(
	cfg Config,
	listing *marketplace.ListingService,
	purchase *marketplace.PurchaseService,
	aggregation *marketplace.AggregationService,
	reconciler *marketplace.Reconciler,
	s store.Store,
	assetStorage assets.Storage,
) *Server {
	return &Server{
		config:      cfg,
		listing:     listing,
		purchase:    purchase,
		aggregation: aggregation,
		reconciler:  reconciler,
		store:       s,
		assets:      assetStorage,
	}
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())

	// Uploaded listing images are served directly
	router.Static("/uploads", s.config.UploadsDir)

	// Create REST handler
	restHandler := rest.NewHandler(s.listing, s.purchase, s.aggregation, s.reconciler, s.store, s.assets)

	// Setup REST routes
	rest.SetupRoutes(router, restHandler, s.config.Auth)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
