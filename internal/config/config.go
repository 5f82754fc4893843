package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// devJWTSecret is the signing secret used when JWT_SECRET is unset outside
// production. It exists only so local development works without a .env file;
// Load refuses to start a production deployment without a real secret.
const devJWTSecret = "surya-yoga-dev-secret-do-not-deploy"

// Config holds application configuration
type Config struct {
	Environment    string
	ServerPort     string
	BaseURL        string
	CookieDomain   string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	JWTSecret       string
	SessionDuration time.Duration
	PurposeTokenTTL time.Duration
	AdminKey        string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	SESRegion    string
	SESFromEmail string
	SESFromName  string
}

// Load reads configuration from the environment, after loading an optional
// .env file. It fails when a production environment is missing its signing
// secret; there is no silent fallback outside development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment:    getEnv("APP_ENV", "development"),
		ServerPort:     getEnv("PORT", "8080"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		CookieDomain:   getEnv("COOKIE_DOMAIN", ""),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./surya-yoga.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		SessionDuration: 7 * 24 * time.Hour,
		PurposeTokenTTL: 24 * time.Hour,
		AdminKey:        os.Getenv("ADMIN_KEY"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URI"),

		SESRegion:    getEnv("SES_REGION", "eu-west-1"),
		SESFromEmail: os.Getenv("SES_FROM_EMAIL"),
		SESFromName:  getEnv("SES_FROM_NAME", "Surya Yoga"),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

// IsProduction reports whether the app runs in a production configuration.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
