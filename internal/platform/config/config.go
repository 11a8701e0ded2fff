package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Refresh Token Config
	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string

	// Google sign-in (ID-token audience = client ID)
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`

	// Payment provider
	BillingAPIKey        string `mapstructure:"BILLING_API_KEY"`
	BillingAPIBaseURL    string `mapstructure:"BILLING_API_BASE_URL"`
	BillingWebhookSecret string `mapstructure:"BILLING_WEBHOOK_SECRET"`
	BillingProPriceID    string `mapstructure:"BILLING_PRO_PRICE_ID"`

	// Exchange rates
	RateSourceURL string        `mapstructure:"RATE_SOURCE_URL"`
	RateCacheTTL  time.Duration `mapstructure:"RATE_CACHE_TTL"`

	// Plan limits
	FreePlanExpenseLimit int `mapstructure:"FREE_PLAN_EXPENSE_LIMIT"`

	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`
	PosthogAPIKey   string `mapstructure:"POSTHOG_API_KEY"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "spendwise-app")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "rtid")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/api/v1/auth")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("BILLING_API_KEY", "")
	viper.SetDefault("BILLING_API_BASE_URL", "https://api.stripe.com/v1")
	viper.SetDefault("BILLING_WEBHOOK_SECRET", "")
	viper.SetDefault("BILLING_PRO_PRICE_ID", "")
	viper.SetDefault("RATE_SOURCE_URL", "https://api.exchangerate-api.com/v4/latest/USD")
	viper.SetDefault("RATE_CACHE_TTL", "1h")
	viper.SetDefault("FREE_PLAN_EXPENSE_LIMIT", 50)
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	refreshExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshExpiry, err := time.ParseDuration(refreshExpiryStr)
	if err != nil {
		refreshExpiry = time.Hour * 24 * 7
		log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshExpiryStr, refreshExpiry)
	}
	cfg.RefreshTokenExpiryDuration = refreshExpiry
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	cfg.RefreshTokenCookiePath = viper.GetString("REFRESH_TOKEN_COOKIE_PATH")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	cfg.BillingAPIKey = viper.GetString("BILLING_API_KEY")
	cfg.BillingAPIBaseURL = viper.GetString("BILLING_API_BASE_URL")
	cfg.BillingWebhookSecret = viper.GetString("BILLING_WEBHOOK_SECRET")
	cfg.BillingProPriceID = viper.GetString("BILLING_PRO_PRICE_ID")
	if cfg.BillingWebhookSecret == "" {
		log.Println("Warning: BILLING_WEBHOOK_SECRET not set. Inbound billing webhooks will be rejected.")
	}

	cfg.RateSourceURL = viper.GetString("RATE_SOURCE_URL")
	rateTTLStr := viper.GetString("RATE_CACHE_TTL")
	rateTTL, err := time.ParseDuration(rateTTLStr)
	if err != nil {
		rateTTL = time.Hour
		log.Printf("Warning: Invalid value for RATE_CACHE_TTL ('%s'). Defaulting to %s.\n", rateTTLStr, rateTTL)
	}
	cfg.RateCacheTTL = rateTTL

	cfg.FreePlanExpenseLimit = viper.GetInt("FREE_PLAN_EXPENSE_LIMIT")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}
