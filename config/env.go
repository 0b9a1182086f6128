package config

import (
	"github.com/joho/godotenv"
)

// LoadEnv loads a local .env file when present. Deployed environments
// set real environment variables and ship no .env file.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		Logger.Warn("No .env file loaded, using environment variables:", err)
	}
}
