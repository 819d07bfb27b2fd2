package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// DefaultCategories are seeded at startup unless SEED_CATEGORIES overrides them.
var DefaultCategories = []string{"food", "car", "accommodation", "gifts", "utilities", "entertainment"}

// Config holds application configuration
type Config struct {
	// Server
	Port           string
	Env            string
	RequestTimeout time.Duration
	AllowedOrigins []string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Accounts
	InitialBalance decimal.Decimal
	SeedCategories []string

	// Admin
	AdminAPIKey string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 15*time.Second),
		AllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		// Database
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "homebudget"),
		DBPassword: getEnv("DB_PASSWORD", "homebudget"),
		DBName:     getEnv("DB_NAME", "homebudget"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "homebudget.db"),

		// JWT
		JWTSecret:        getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		JWTExpirationDur: getDuration("JWT_EXPIRES_IN", 8*time.Hour),

		// Accounts
		SeedCategories: getList("SEED_CATEGORIES", DefaultCategories),

		// Admin
		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),
	}

	balStr := getEnv("INITIAL_BALANCE", "1000.00")
	bal, err := decimal.NewFromString(balStr)
	if err != nil {
		log.Printf("Warning: invalid INITIAL_BALANCE value '%s', falling back to 1000.00\n", balStr)
		bal = decimal.NewFromInt(1000)
	}
	config.InitialBalance = bal

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Set replaces the application configuration. Used by tests.
func Set(c *Config) {
	appConfig = c
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

// getList splits a comma separated variable, dropping blank entries.
func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
