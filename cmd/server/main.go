package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ojayWillow/latvian-price-scraper/config"
	httpDelivery "github.com/ojayWillow/latvian-price-scraper/internal/delivery/http"
	"github.com/ojayWillow/latvian-price-scraper/internal/infrastructure/store"
	"github.com/ojayWillow/latvian-price-scraper/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Latvian Price Scraper API v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Storage: %s", cfg.Storage.Path)

	// Initialize infrastructure dependencies
	productStore, err := store.Open(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to open product store: %v", err)
	}
	defer productStore.Close()

	// Initialize usecase layer
	priceService := usecase.NewPriceService(productStore, usecase.PriceServiceConfig{
		Threshold:          cfg.Matching.Threshold,
		Policy:             usecase.MatchPolicy(cfg.Matching.Policy),
		AnchorSource:       cfg.Matching.AnchorSource,
		CacheTTL:           cfg.Matching.CacheTTL,
		EnableDebugLogging: cfg.Matching.Debug,
	})

	log.Printf("Matching: policy=%s threshold=%.2f anchor=%q",
		cfg.Matching.Policy, cfg.Matching.Threshold, cfg.Matching.AnchorSource)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(priceService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
