package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server settings
	AppPort string
	Host    string

	// Database settings
	DatabasePath string

	// JWT settings
	JWTSecret     string
	JWTExpiration string

	// Upload settings
	UploadDir string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		AppPort:      getEnv("PORT", "5000"),
		Host:         getEnv("HOST", "0.0.0.0"),
		DatabasePath: getEnv("DATABASE_PATH", "usedcom.db"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiration: getEnv("JWT_EXPIRES_IN", "72h"),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads/products"),
	}

	return config
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
