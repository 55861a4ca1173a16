package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads the .env file if present. Missing files are fine: deployed
// environments set real environment variables instead.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		Logger.Warnf("No .env file found, using environment variables: %v", err)
	}
}

// Getenv returns the value of key, or fallback when unset or empty.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
