package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Store
	// StoreDSN is the live sqlite handle. The default keeps the whole
	// relational store in memory; durability comes from the snapshot store,
	// not from the sqlite file.
	StoreDSN string `mapstructure:"STORE_DSN"`
	// DataDir is where snapshot blobs are written.
	DataDir string `mapstructure:"DATA_DIR"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`

	// External exchange-rate lookup (best effort)
	RateAPIBaseURL string `mapstructure:"RATE_API_BASE_URL"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("STORE_DSN", ":memory:")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 8)
	viper.SetDefault("RATE_API_BASE_URL", "https://api.exchangerate-api.com")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
