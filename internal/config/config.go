// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	StockX      StockXConfig
	Pricing     PricingConfig
	RateLimit   RateLimitConfig
	Logging     LoggingConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type StockXConfig struct {
	APIURL       string
	APIKey       string
	AuthURL      string
	ClientID     string
	ClientSecret string
	RefreshToken string
	GrantType    string
	Audience     string
	// Outbound request budget against the marketplace API
	RequestsPerSecond float64
	RequestBurst      int
	TimeoutSeconds    int
}

type PricingConfig struct {
	DefaultMarginPercent float64
	MinPriceThreshold    float64
	MaxPriceThreshold    float64
	DefaultLookbackDays  int
	StaleDataMaxAgeSecs  int
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "stockx_repricer"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		StockX: StockXConfig{
			APIURL:            getEnv("STOCKX_API_URL", "https://api.stockx.com"),
			APIKey:            getEnv("STOCKX_API_KEY", ""),
			AuthURL:           getEnv("STOCKX_AUTH_URL", "https://accounts.stockx.com/oauth/token"),
			ClientID:          getEnv("STOCKX_CLIENT_ID", ""),
			ClientSecret:      getEnv("STOCKX_CLIENT_SECRET", ""),
			RefreshToken:      getEnv("STOCKX_REFRESH_TOKEN", ""),
			GrantType:         getEnv("STOCKX_GRANT_TYPE", "refresh_token"),
			Audience:          getEnv("STOCKX_AUDIENCE", "gateway.stockx.com"),
			RequestsPerSecond: getEnvAsFloat("STOCKX_REQUESTS_PER_SECOND", 2.0),
			RequestBurst:      getEnvAsInt("STOCKX_REQUEST_BURST", 5),
			TimeoutSeconds:    getEnvAsInt("STOCKX_TIMEOUT_SECONDS", 30),
		},
		Pricing: PricingConfig{
			DefaultMarginPercent: getEnvAsFloat("PRICING_DEFAULT_MARGIN_PERCENT", 10.0),
			MinPriceThreshold:    getEnvAsFloat("PRICING_MIN_THRESHOLD", 0.0),
			MaxPriceThreshold:    getEnvAsFloat("PRICING_MAX_THRESHOLD", 10000.0),
			DefaultLookbackDays:  getEnvAsInt("PRICING_DEFAULT_LOOKBACK_DAYS", 30),
			StaleDataMaxAgeSecs:  getEnvAsInt("PRICING_STALE_MAX_AGE_SECONDS", 3600),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 10.0),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database password is required in production")
		}
		if c.StockX.ClientID == "" || c.StockX.ClientSecret == "" || c.StockX.RefreshToken == "" {
			return fmt.Errorf("StockX OAuth credentials are required in production")
		}
	}
	if c.Pricing.MinPriceThreshold > c.Pricing.MaxPriceThreshold {
		return fmt.Errorf("pricing min threshold cannot exceed max threshold")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
