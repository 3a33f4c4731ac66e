package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port         string
	MongoString  string
	PasetoSecret string
	RedisAddr    string
}

// LoadConfig loads configuration from .env file
func LoadConfig() *AppConfig {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: no se encontró archivo .env (normal en producción): %v", err)
	}

	return &AppConfig{
		Port:         getEnv("PORT", "3000"),
		MongoString:  getEnv("MONGOSTRING", ""),
		PasetoSecret: getEnv("PASETO_SECRET", "default_paseto_secret_base64_mustbe32bytes_"),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
	}
}

// Helper function to get environment variable or fallback to default
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
