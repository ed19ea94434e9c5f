package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Record source selection for the timesheet sync. The source is always picked
// by configuration, never inferred from an empty upstream response.
const (
	RecordSourceZoho    = "zoho"
	RecordSourceFixture = "fixture"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Refresh Token Config
	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string
	RefreshTokenSecret         string

	// Admin bootstrap (created at startup when no matching user exists)
	AdminUsername string
	AdminPassword string

	// Upstream timesheet provider
	RecordSource        string
	ZohoAccountsBaseURL string
	ZohoAPIBaseURL      string
	FetchTimeout        time.Duration

	FrontendBaseURL string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "timesheet-insights-app")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "rtid")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/api/v1/auth")
	viper.SetDefault("REFRESH_TOKEN_SECRET", "default_insecure_refresh_secret_please_change_this_!@#$")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("RECORD_SOURCE", RecordSourceZoho)
	viper.SetDefault("ZOHO_ACCOUNTS_BASE_URL", "https://accounts.zoho.com")
	viper.SetDefault("ZOHO_API_BASE_URL", "https://people.zoho.com/people/api")
	viper.SetDefault("FETCH_TIMEOUT", "30s")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	refreshExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshExpiryDuration, err := time.ParseDuration(refreshExpiryStr)
	if err != nil {
		refreshExpiryDuration = time.Hour * 24 * 7
		log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION (%q). Defaulting to %s.\n", refreshExpiryStr, refreshExpiryDuration)
	}
	cfg.RefreshTokenExpiryDuration = refreshExpiryDuration
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	cfg.RefreshTokenCookiePath = viper.GetString("REFRESH_TOKEN_COOKIE_PATH")
	cfg.RefreshTokenSecret = viper.GetString("REFRESH_TOKEN_SECRET")
	if cfg.RefreshTokenSecret == "default_insecure_refresh_secret_please_change_this_!@#$" {
		log.Println("Warning: REFRESH_TOKEN_SECRET not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
	}

	cfg.AdminUsername = viper.GetString("ADMIN_USERNAME")
	cfg.AdminPassword = viper.GetString("ADMIN_PASSWORD")
	if cfg.AdminPassword == "" {
		log.Println("Warning: ADMIN_PASSWORD not set. Admin bootstrap will be skipped.")
	}

	cfg.RecordSource = viper.GetString("RECORD_SOURCE")
	if cfg.RecordSource != RecordSourceZoho && cfg.RecordSource != RecordSourceFixture {
		log.Printf("Warning: Invalid value for RECORD_SOURCE (%q). Defaulting to %s.\n", cfg.RecordSource, RecordSourceZoho)
		cfg.RecordSource = RecordSourceZoho
	}
	cfg.ZohoAccountsBaseURL = viper.GetString("ZOHO_ACCOUNTS_BASE_URL")
	cfg.ZohoAPIBaseURL = viper.GetString("ZOHO_API_BASE_URL")

	fetchTimeoutStr := viper.GetString("FETCH_TIMEOUT")
	fetchTimeout, err := time.ParseDuration(fetchTimeoutStr)
	if err != nil {
		fetchTimeout = 30 * time.Second
		log.Printf("Warning: Invalid value for FETCH_TIMEOUT (%q). Defaulting to %s.\n", fetchTimeoutStr, fetchTimeout)
	}
	cfg.FetchTimeout = fetchTimeout

	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	return cfg, nil
}
