package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

type Config struct {
	Environment string
	LogLevel    string
	API         APIConfig
	Cart        CartConfig
	Database    DatabaseConfig
	Auth        AuthConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type CartConfig struct {
	Currency currency.Unit
}

// DatabaseConfig is optional: without a URL carts live only as long as their session.
type DatabaseConfig struct {
	URL string
}

type AuthConfig struct {
	TokenLeeway time.Duration
}

func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// Load reads the configuration from the environment and an optional .env file
// in the working directory or one of its parents.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigType("env")
	v.SetConfigName(".env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.AddConfigPath("../..")

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("API_TIMEOUT", "15s")
	v.SetDefault("CART_CURRENCY", "XOF")
	v.SetDefault("TOKEN_LEEWAY", "30s")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cur, err := currency.ParseISO(v.GetString("CART_CURRENCY"))
	if err != nil {
		return nil, fmt.Errorf("CART_CURRENCY[%s] is not valid: %w", v.GetString("CART_CURRENCY"), err)
	}

	cfg := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		API: APIConfig{
			BaseURL: v.GetString("API_BASE_URL"),
			Timeout: v.GetDuration("API_TIMEOUT"),
		},
		Cart: CartConfig{
			Currency: cur,
		},
		Database: DatabaseConfig{
			URL: v.GetString("DATABASE_URL"),
		},
		Auth: AuthConfig{
			TokenLeeway: v.GetDuration("TOKEN_LEEWAY"),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}
	if cfg.API.Timeout <= 0 {
		return nil, fmt.Errorf("API_TIMEOUT must be positive")
	}
	if cfg.Auth.TokenLeeway < 0 {
		return nil, fmt.Errorf("TOKEN_LEEWAY must not be negative")
	}

	return cfg, nil
}
