package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	GatewayBaseURL   string
	GatewayKeyID     string
	GatewayKeySecret string
	Currency         string
}

func LoadEnv() Env {
	// .env opsional; variabel environment asli tetap menang
	_ = godotenv.Load()

	return Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: getenv("GIN_MODE", ""),

		DBUser: getenv("DB_USER", "root"),
		DBPass: getenv("DB_PASS", ""),
		DBHost: getenv("DB_HOST", "127.0.0.1:3306"),
		DBName: getenv("DB_NAME", "rental_app"),

		JWTSecret: getenv("JWT_SECRET", "super-secret-key-change-me"),

		GatewayBaseURL:   getenv("GATEWAY_BASE_URL", "https://api.gateway.local"),
		GatewayKeyID:     getenv("GATEWAY_KEY_ID", ""),
		GatewayKeySecret: getenv("GATEWAY_KEY_SECRET", ""),
		Currency:         getenv("CURRENCY", "IDR"),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
