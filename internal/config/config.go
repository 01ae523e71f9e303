package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Shopify     ShopifyConfig
	Database    DatabaseConfig
}

// ShopifyConfig configures the Admin API gateway. The shop domain and access
// token are not here: they arrive per request in the Shopify headers.
type ShopifyConfig struct {
	APIVersion         string
	TimeoutSeconds     int
	InsecureSkipVerify bool // skip TLS certificate validation; off unless explicitly enabled
}

// DatabaseConfig configures the optional Postgres audit store. When Host is
// empty the store is disabled and created-resource records are not persisted.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Enabled reports whether the audit store should be connected
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
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
	viper.SetDefault("SHOPIFY_API_VERSION", "2025-07")
	viper.SetDefault("SHOPIFY_HTTP_TIMEOUT_SECONDS", "30")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeout, err := strconv.Atoi(getEnvOrViper("SHOPIFY_HTTP_TIMEOUT_SECONDS", "30"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("SHOPIFY_HTTP_TIMEOUT_SECONDS must be a positive integer")
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Shopify: ShopifyConfig{
			APIVersion:         getEnvOrViper("SHOPIFY_API_VERSION", "2025-07"),
			TimeoutSeconds:     timeout,
			InsecureSkipVerify: parseBool(getEnvOrViper("SHOPIFY_TLS_SKIP_VERIFY", "false")),
		},
		Database: DatabaseConfig{
			Host:     strings.TrimSpace(getEnvOrViper("DB_HOST", "")),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "catalogapi"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
	}

	if cfg.Shopify.APIVersion == "" {
		return nil, fmt.Errorf("SHOPIFY_API_VERSION is required")
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

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}
