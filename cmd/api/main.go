package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/openmotors/car-ledger-api/internal/adapter"
	"github.com/openmotors/car-ledger-api/internal/api/middleware"
	"github.com/openmotors/car-ledger-api/internal/api/server"
	"github.com/openmotors/car-ledger-api/internal/assets"
	"github.com/openmotors/car-ledger-api/internal/config"
	"github.com/openmotors/car-ledger-api/internal/ledger"
	"github.com/openmotors/car-ledger-api/internal/logger"
	"github.com/openmotors/car-ledger-api/internal/marketplace"
	"github.com/openmotors/car-ledger-api/internal/messaging"
	"github.com/openmotors/car-ledger-api/internal/providers/jetstream"
	"github.com/openmotors/car-ledger-api/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting car ledger API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	fs := adapter.NewFileSystem()

	// Connect to the ownership ledger
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ledger.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial ledger RPC", zap.Error(err), zap.String("url", cfg.Ledger.RPCURL))
	}
	ledgerClient, err := ledger.NewEthereumLedger(ethClient, clock, ledger.Config{
		ContractAddress: cfg.Ledger.ContractAddress,
		ChainID:         cfg.Ledger.ChainID,
		PrivateKey:      cfg.Ledger.PrivateKey,
		ReceiptInterval: cfg.Ledger.ReceiptInterval,
		CallTimeout:     cfg.Ledger.CallTimeout,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create ledger client", zap.Error(err))
	}
	defer ledgerClient.Close()
	logger.InfoCtx(ctx, "Connected to ledger",
		zap.String("contract", cfg.Ledger.ContractAddress),
		zap.Int64("chain_id", cfg.Ledger.ChainID),
	)

	// Connect to NATS when configured, otherwise drop events
	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))
	} else {
		publisher = messaging.NewNoopPublisher()
		logger.WarnCtx(ctx, "NATS not configured, market events will be dropped")
	}
	defer publisher.Close()

	// Build the marketplace services
	listingService := marketplace.NewListingService(ledgerClient, dataStore, publisher, clock, cfg.StoreRetry)
	purchaseService := marketplace.NewPurchaseService(ledgerClient, dataStore, publisher, clock, jsonAdapter, cfg.StoreRetry)
	aggregationService := marketplace.NewAggregationService(ledgerClient, dataStore, cfg.Aggregation.Concurrency)
	defer aggregationService.Close()
	reconciler := marketplace.NewReconciler(ledgerClient, dataStore, cfg.StoreRetry)

	assetStorage := assets.NewStorage(cfg.Uploads.Dir, cfg.Uploads.MaxFileSize, fs)

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		UploadsDir:   cfg.Uploads.Dir,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, listingService, purchaseService, aggregationService, reconciler, dataStore, assetStorage)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
