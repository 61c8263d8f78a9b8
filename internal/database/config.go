package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds database configuration
type Config struct {
	// Path to the SQLite database file.
	Path string
}

// NewConfig creates a new database configuration
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, we'll use defaults or environment variables
		fmt.Println("Warning: .env file not found")
	}

	return &Config{
		Path: getEnv("DB_PATH", "stockbook.db"),
	}, nil
}

// DSN returns the SQLite connection string for GORM.
func (c *Config) DSN() string {
	return c.Path
}

// MigrateDSN returns the connection string for golang-migrate.
func (c *Config) MigrateDSN() string {
	return "sqlite3://" + c.Path
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
