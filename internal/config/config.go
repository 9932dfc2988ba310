package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultCategories is the category list offered when CATALOG_CATEGORIES is unset
var DefaultCategories = []string{
	"All",
	"T-Shirts",
	"Jeans",
	"Jackets",
	"Dresses",
	"Hoodies",
	"Sweaters",
	"Pants",
	"Uncategorized",
}

const defaultJWTSecret = "dev-secret-change-in-production"

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	ProductsAPI ProductsAPIConfig
	Catalog     CatalogConfig
	Admin       AdminConfig
	Database    DatabaseConfig
	RabbitMQ    RabbitMQConfig
}

// ProductsAPIConfig is used to call the products entity backend
type ProductsAPIConfig struct {
	BaseURL    string // e.g. http://localhost:8000
	Token      string // PRODUCTS_API_TOKEN; optional bearer token
	FetchLimit int    // records requested per storefront refresh
}

// CatalogConfig controls storefront sessions
type CatalogConfig struct {
	PageSize        int
	DefaultMaxPrice float64
	Categories      []string
	SessionTTL      time.Duration
}

// AdminConfig holds admin authentication settings
type AdminConfig struct {
	APIKeyHash string // bcrypt hash produced by cmd/hash-api-key
	JWTSecret  string
	TokenTTL   time.Duration
}

// DatabaseConfig is the optional admin audit database; empty Host disables it
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Enabled reports whether an audit database is configured
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// RabbitMQConfig is the optional admin event broker; empty URL disables it
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	fetchLimit, err := intSetting("PRODUCTS_FETCH_LIMIT", 1000)
	if err != nil {
		return nil, err
	}
	pageSize, err := intSetting("CATALOG_PAGE_SIZE", 8)
	if err != nil {
		return nil, err
	}
	maxPrice, err := floatSetting("CATALOG_DEFAULT_MAX_PRICE", 1000000)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := durationSetting("SESSION_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := durationSetting("ADMIN_TOKEN_TTL", 72*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		ProductsAPI: ProductsAPIConfig{
			BaseURL:    strings.TrimSpace(getEnvOrViper("PRODUCTS_API_URL", "http://localhost:8000")),
			Token:      strings.TrimSpace(getEnvOrViper("PRODUCTS_API_TOKEN", "")),
			FetchLimit: fetchLimit,
		},
		Catalog: CatalogConfig{
			PageSize:        pageSize,
			DefaultMaxPrice: maxPrice,
			Categories:      listSetting("CATALOG_CATEGORIES", DefaultCategories),
			SessionTTL:      sessionTTL,
		},
		Admin: AdminConfig{
			APIKeyHash: strings.TrimSpace(getEnvOrViper("ADMIN_API_KEY_HASH", "")),
			JWTSecret:  getEnvOrViper("JWT_SECRET", defaultJWTSecret),
			TokenTTL:   tokenTTL,
		},
		Database: DatabaseConfig{
			Host:     strings.TrimSpace(getEnvOrViper("DB_HOST", "")),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      strings.TrimSpace(getEnvOrViper("RABBITMQ_URL", "")),
			Exchange: getEnvOrViper("ADMIN_EVENTS_EXCHANGE", "storefront_admin_events"),
		},
	}

	// Validate required fields
	if cfg.ProductsAPI.BaseURL == "" {
		return nil, fmt.Errorf("PRODUCTS_API_URL is required")
	}
	if cfg.Catalog.PageSize < 1 {
		return nil, fmt.Errorf("CATALOG_PAGE_SIZE must be at least 1")
	}
	if cfg.Catalog.DefaultMaxPrice < 0 {
		return nil, fmt.Errorf("CATALOG_DEFAULT_MAX_PRICE must be non-negative")
	}
	if cfg.Environment == "production" && cfg.Admin.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func intSetting(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(getEnvOrViper(key, ""))
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func floatSetting(key string, defaultValue float64) (float64, error) {
	raw := strings.TrimSpace(getEnvOrViper(key, ""))
	if raw == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}

func durationSetting(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getEnvOrViper(key, ""))
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func listSetting(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(getEnvOrViper(key, ""))
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
