package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads a local .env file if one exists. In deployed environments
// DATABASE_URL, JWT_SECRET and PORT come from the process environment and
// the file is simply absent.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, relying on process environment")
	}
}

// GetEnv returns the value of an environment variable, or the fallback
// when it is unset.
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
