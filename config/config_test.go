package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("PRICESCRAPER_SERVER_PORT")
		os.Unsetenv("PRICESCRAPER_SERVER_ENVIRONMENT")
		os.Unsetenv("PRICESCRAPER_SERVER_RATE_PER_IP")
		os.Unsetenv("PRICESCRAPER_MATCHING_THRESHOLD")
		os.Unsetenv("PRICESCRAPER_MATCHING_POLICY")
		os.Unsetenv("PRICESCRAPER_MATCHING_ANCHOR_SOURCE")
		os.Unsetenv("PRICESCRAPER_STORAGE_PATH")
		os.Unsetenv("PRICESCRAPER_SCRAPE_PER_SOURCE_LIMIT")
		os.Unsetenv("PRICESCRAPER_SCRAPE_REQUEST_TIMEOUT")
		os.Unsetenv("PRICESCRAPER_EXPORT_PATH")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Matching.Threshold != 0.6 {
			t.Errorf("Matching.Threshold = %v, want 0.6", cfg.Matching.Threshold)
		}
		if cfg.Matching.Policy != "symmetric" {
			t.Errorf("Matching.Policy = %s, want symmetric", cfg.Matching.Policy)
		}
		if cfg.Storage.Path != "products.db" {
			t.Errorf("Storage.Path = %s, want products.db", cfg.Storage.Path)
		}
		if cfg.Scrape.PerSourceLimit != 20 {
			t.Errorf("Scrape.PerSourceLimit = %d, want 20", cfg.Scrape.PerSourceLimit)
		}
		if cfg.Scrape.RequestTimeout != 30*time.Second {
			t.Errorf("Scrape.RequestTimeout = %v, want 30s", cfg.Scrape.RequestTimeout)
		}
		if cfg.Export.Path != "price_comparison.csv" {
			t.Errorf("Export.Path = %s, want price_comparison.csv", cfg.Export.Path)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PRICESCRAPER_SERVER_PORT", "9090")
		os.Setenv("PRICESCRAPER_SERVER_ENVIRONMENT", "production")
		os.Setenv("PRICESCRAPER_MATCHING_THRESHOLD", "0.7")
		os.Setenv("PRICESCRAPER_MATCHING_POLICY", "anchor")
		os.Setenv("PRICESCRAPER_MATCHING_ANCHOR_SOURCE", "Depo")
		os.Setenv("PRICESCRAPER_STORAGE_PATH", "/tmp/test.db")
		os.Setenv("PRICESCRAPER_SCRAPE_REQUEST_TIMEOUT", "10s")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Matching.Threshold != 0.7 {
			t.Errorf("Matching.Threshold = %v, want 0.7", cfg.Matching.Threshold)
		}
		if cfg.Matching.Policy != "anchor" {
			t.Errorf("Matching.Policy = %s, want anchor", cfg.Matching.Policy)
		}
		if cfg.Matching.AnchorSource != "Depo" {
			t.Errorf("Matching.AnchorSource = %s, want Depo", cfg.Matching.AnchorSource)
		}
		if cfg.Storage.Path != "/tmp/test.db" {
			t.Errorf("Storage.Path = %s, want /tmp/test.db", cfg.Storage.Path)
		}
		if cfg.Scrape.RequestTimeout != 10*time.Second {
			t.Errorf("Scrape.RequestTimeout = %v, want 10s", cfg.Scrape.RequestTimeout)
		}
	})

	t.Run("rejects threshold outside range", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PRICESCRAPER_MATCHING_THRESHOLD", "1.5")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want threshold validation error")
		}
	})

	t.Run("rejects unknown matching policy", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PRICESCRAPER_MATCHING_POLICY", "hybrid")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want policy validation error")
		}
	})

	t.Run("rejects anchor policy without anchor source", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PRICESCRAPER_MATCHING_POLICY", "anchor")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want anchor source validation error")
		}
	})
}
