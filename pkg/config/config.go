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
	JWTSecret     string

	// EventAPIKeyHash is the bcrypt hash of the shared key collaborator
	// services present on /events. The plain key never appears in config.
	EventAPIKeyHash string

	// NotificationURL is the endpoint posting notifications are sent to.
	// Empty disables notifications.
	NotificationURL string

	// MaterialityThreshold is the minimum automated posting total that
	// triggers a notification, as a decimal string.
	MaterialityThreshold string

	PosthogAPIKey string
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
	viper.SetDefault("EVENT_API_KEY_HASH", "")
	viper.SetDefault("NOTIFICATION_URL", "")
	viper.SetDefault("MATERIALITY_THRESHOLD", "100000")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.EventAPIKeyHash = viper.GetString("EVENT_API_KEY_HASH")
	if cfg.EventAPIKeyHash == "" {
		log.Println("Warning: EVENT_API_KEY_HASH not set. Event ingestion will reject all requests.")
	}

	cfg.NotificationURL = viper.GetString("NOTIFICATION_URL")
	if cfg.NotificationURL == "" {
		log.Println("Warning: NOTIFICATION_URL not set. Posting notifications disabled.")
	}

	cfg.MaterialityThreshold = viper.GetString("MATERIALITY_THRESHOLD")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}
