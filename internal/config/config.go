package config

import (
	"os"
	"strings"
)

type Config struct {
	Port           string
	DatabaseDSN    string // MySQL DSN; empty means the SQLite fallback
	SQLitePath     string
	JWTSecret      string
	Env            string
	AllowedOrigins []string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = os.Getenv("DB_DSN")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "inventory.db")
	cfg.JWTSecret = getEnv("JWT_SECRET", "inventory_admin_dev_secret")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"))
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
