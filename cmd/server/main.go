package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/fetch"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/navstate"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/pkg/clock"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/submitguard"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/web"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

const version = "1.0.0"

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"catalog_api", cfg.Catalog.BaseURL,
		"log_level", cfg.LogLevel,
	)

	// Background work (state janitors) stops with this context
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize catalog client and repositories
	client := fetch.NewClient(cfg.Catalog.BaseURL, log)
	productRepo := repository.NewCatalogProductRepository(client)
	orderRepo := repository.NewCatalogOrderRepository(client)

	// Initialize navigation state
	clk := clock.NewRealClock()
	ttl := time.Duration(cfg.NavState.TTLSeconds) * time.Second
	cleanup := time.Duration(cfg.NavState.CleanupSeconds) * time.Second
	maxEntries := cfg.NavState.MaxEntries
	snapshots := navstate.New[map[models.ID]models.Product]("products", ttl, maxEntries, clk, log)
	confirmations := navstate.New[models.OrderConfirmation]("confirmations", ttl, maxEntries, clk, log)
	go snapshots.RunJanitor(ctx, cleanup)
	go confirmations.RunJanitor(ctx, cleanup)

	// Initialize services
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, submitguard.New(cfg.SubmitGuard.Capacity), log)

	renderer, err := web.NewRenderer(web.Store{
		Name:           cfg.Store.Name,
		CurrencySymbol: cfg.Store.CurrencySymbol,
	}, log)
	if err != nil {
		log.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService, snapshots, renderer, log)
	h := handlers.Handlers{
		Health:   handlers.NewHealthHandler(version, log),
		Pages:    handlers.NewPageHandler(productService, snapshots, renderer, log),
		Products: productHandler,
		Orders:   handlers.NewOrderHandler(productHandler, orderService, confirmations, renderer, log),
	}

	if len(cfg.Metrics.APIKeys) == 0 {
		log.Warn("METRICS_API_KEYS not set, /metrics is unauthenticated")
	}

	router := handlers.NewRouter(h, handlers.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MetricsAPIKeys: cfg.Metrics.APIKeys,
	}, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
