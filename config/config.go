package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Matching MatchingConfig
	Storage  StorageConfig
	Scrape   ScrapeConfig
	Export   ExportConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RatePerIP      int      `mapstructure:"rate_per_ip"` // requests/minute per client
}

// MatchingConfig holds cross-source matching configuration
type MatchingConfig struct {
	Threshold    float64       `mapstructure:"threshold"`
	Policy       string        `mapstructure:"policy"` // "anchor" or "symmetric"
	AnchorSource string        `mapstructure:"anchor_source"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	Debug        bool          `mapstructure:"debug"`
}

// StorageConfig holds SQLite storage configuration
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// ScrapeConfig holds acquisition configuration
type ScrapeConfig struct {
	PerSourceLimit int           `mapstructure:"per_source_limit"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RequestsPerSec float64       `mapstructure:"requests_per_sec"`
}

// ExportConfig holds comparison export configuration
type ExportConfig struct {
	Path string `mapstructure:"path"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricescraper/")

	// Environment variable settings
	v.SetEnvPrefix("PRICESCRAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_per_ip", 100)

	// Matching defaults
	v.SetDefault("matching.threshold", 0.6)
	v.SetDefault("matching.policy", "symmetric")
	v.SetDefault("matching.anchor_source", "")
	v.SetDefault("matching.cache_ttl", "5m")
	v.SetDefault("matching.debug", false)

	// Storage defaults
	v.SetDefault("storage.path", "products.db")

	// Scrape defaults
	v.SetDefault("scrape.per_source_limit", 20)
	v.SetDefault("scrape.request_timeout", "30s")
	v.SetDefault("scrape.requests_per_sec", 1.0)

	// Export defaults
	v.SetDefault("export.path", "price_comparison.csv")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Matching.Threshold < 0 || config.Matching.Threshold > 1 {
		return fmt.Errorf("matching threshold must be in [0,1], got: %v", config.Matching.Threshold)
	}

	if config.Matching.Policy != "anchor" && config.Matching.Policy != "symmetric" {
		return fmt.Errorf("matching policy must be 'anchor' or 'symmetric', got: %s", config.Matching.Policy)
	}

	if config.Matching.Policy == "anchor" && config.Matching.AnchorSource == "" {
		return fmt.Errorf("anchor source is required when matching policy is 'anchor'")
	}

	if config.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}

	return nil
}
