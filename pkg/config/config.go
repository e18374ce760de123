package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Service-to-service auth
	ServiceJWTSecret string
	ServiceJWTIssuer string

	// Rate limit spec in ulule/limiter format, e.g. "100-M"
	RateLimit string

	CORSAllowedOrigins []string

	// Tax and levy rate overrides; empty means the shipped defaults apply.
	LevyVATRate     string
	LevyNHILRate    string
	LevyGETFundRate string
	LevyWHTRate     string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("SERVICE_JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("SERVICE_JWT_ISSUER", "omc-erp")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("LEVY_VAT_RATE", "")
	viper.SetDefault("LEVY_NHIL_RATE", "")
	viper.SetDefault("LEVY_GETFUND_RATE", "")
	viper.SetDefault("LEVY_WHT_RATE", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.ServiceJWTSecret = viper.GetString("SERVICE_JWT_SECRET")
	if cfg.ServiceJWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: SERVICE_JWT_SECRET not set. Using default insecure key.")
	}
	cfg.ServiceJWTIssuer = viper.GetString("SERVICE_JWT_ISSUER")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	cfg.LevyVATRate = viper.GetString("LEVY_VAT_RATE")
	cfg.LevyNHILRate = viper.GetString("LEVY_NHIL_RATE")
	cfg.LevyGETFundRate = viper.GetString("LEVY_GETFUND_RATE")
	cfg.LevyWHTRate = viper.GetString("LEVY_WHT_RATE")

	return cfg, nil
}
