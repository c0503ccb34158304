// Package config loads all runtime configuration once at startup.
// Nothing else in the application reads environment variables.
package config

import (
	"os"
	"strings"
)

// Config holds every setting the server needs. It is built once in main
// and passed down explicitly so tests can substitute values freely.
type Config struct {
	Port string
	Env  string // "development" or "production"

	DatabaseURL string
	ScoresTable string // collection holding score records

	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseServiceKey string // service-role key, needed only for account deletion
	SupabaseJWTSecret  string // HMAC secret for local access-token verification

	AllowedOrigins []string

	LogLevel  string
	LogFormat string // "json" or "text"
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("APP_ENV", "development"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		ScoresTable: getEnv("SCORES_TABLE", "scores"),

		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		SupabaseJWTSecret:  os.Getenv("SUPABASE_JWT_SECRET"),

		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
