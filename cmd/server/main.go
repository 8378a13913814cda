package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storage-price-estimator/internal/adapters/primary/http/handlers"
	"storage-price-estimator/internal/adapters/primary/http/middleware"
	"storage-price-estimator/internal/adapters/secondary/oracle"
	"storage-price-estimator/internal/config"
	ports "storage-price-estimator/internal/core/ports/output"
	"storage-price-estimator/internal/core/pricing"
	"storage-price-estimator/internal/core/services"
	"storage-price-estimator/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Init(cfg.Logger)

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapter (Output Port - Price Oracle)
	priceOracle := newPriceOracle(cfg)

	// Core Service (Application Layer)
	rates := cfg.Pricing.Rates()
	quoteSvc := services.NewQuoteService(priceOracle, rates)
	log.WithFields(log.Fields{
		"base_price":           rates.BasePrice,
		"byte_price":           rates.BytePrice,
		"permanent_multiplier": rates.PermanentMultiplier.String(),
		"oracle":               priceOracle.Name(),
	}).Info("pricing configured")

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(quoteSvc, cfg.Pricing.MaxUploadBytes)

	// Setup router
	router := gin.New()
	router.MaxMultipartMemory = 8 << 20
	router.Use(middleware.Chain(cfg.Metrics.Enabled)...)
	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	h.RegisterRootRoutes(router)
	api := router.Group("/api/v1/storage-price")
	h.RegisterRoutes(api)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

// newPriceOracle returns the remote oracle when enabled, falling back to the
// local pricing engine.
func newPriceOracle(cfg *config.Config) ports.PriceOracle {
	if !cfg.Oracle.Enabled {
		log.Info("remote price oracle disabled, using local pricing engine")
		return pricing.NewEngine()
	}

	client, err := oracle.NewClient(&cfg.Oracle)
	if err != nil {
		log.Warnf("price oracle init failed (continuing with local pricing engine): %v", err)
		return pricing.NewEngine()
	}
	log.WithField("url", cfg.Oracle.URL).Info("remote price oracle initialized")

	if cfg.Oracle.CacheTTL > 0 {
		log.WithField("ttl", cfg.Oracle.CacheTTL).Info("price oracle cache enabled")
		return oracle.NewCachedOracle(client, cfg.Oracle.CacheSize, cfg.Oracle.CacheTTL)
	}
	return client
}
