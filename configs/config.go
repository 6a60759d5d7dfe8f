package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

func Config(key string) string {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	})

	return os.Getenv(key)
}

// ConfigDefault returns the configured value for key, or fallback when it
// is unset or empty.
func ConfigDefault(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}
