package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	GinMode     string
	Port        string
	LogFile     string
}

func Load() *Config {
	// A missing .env is fine; real deployments use the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBDriver:    getEnv("DB_DRIVER", "mysql"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "3306"),
		DBUser:      getEnv("DB_USER", "clubuser"),
		DBPassword:  getEnv("DB_PASSWORD", "clubpassword"),
		DBName:      getEnv("DB_NAME", "club_management"),
		JWTSecret:   getEnv("JWT_SECRET", "development-insecure-secret-change-me"),
		JWTIssuer:   getEnv("JWT_ISSUER", "club-management-api"),
		JWTAudience: getEnv("JWT_AUDIENCE", "club-management-clients"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		Port:        getEnv("PORT", "8080"),
		LogFile:     getEnv("LOG_FILE", "logs/server.log"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
