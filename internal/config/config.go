package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port           string
	JWTSecret      string
	MasterPassword string
	FrontendDir    string
	Database       DatabaseConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Alter    bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	masterPassword := os.Getenv("MASTER_PASSWORD_HASH")
	if masterPassword == "" {
		return nil, fmt.Errorf("MASTER_PASSWORD_HASH is required (bcrypt hash of the dashboard password)")
	}

	return &Config{
		Port:           getEnv("PORT", "3001"),
		JWTSecret:      jwtSecret,
		MasterPassword: masterPassword,
		FrontendDir:    os.Getenv("FRONTEND_DIR"),
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "contagem"),
			Alter:    getEnv("DB_ALTER", "false") == "true",
		},
	}, nil
}

// LoadDatabase loads only the database configuration. Used by the CLI
// tools, which do not need the web server secrets.
func LoadDatabase() DatabaseConfig {
	_ = godotenv.Load()

	return DatabaseConfig{
		Host:     getEnv("PG_HOST", "localhost"),
		Port:     getEnv("PG_PORT", "5432"),
		Username: getEnv("PG_USERNAME", "postgres"),
		Password: os.Getenv("PG_PASSWORD"),
		Database: getEnv("PG_DATABASE", "contagem"),
		Alter:    getEnv("DB_ALTER", "false") == "true",
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
