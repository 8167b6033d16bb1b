package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Taxonomy  TaxonomyConfig
	Session   SessionConfig
	Selection SelectionConfig
	Events    EventsConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	WsLogFilePath      string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type TaxonomyConfig struct {
	Source string // "file" or "postgres"
	Path   string // JSON or YAML document, used by "file" and by cmd/migrate
}

type SessionConfig struct {
	Store      string // "memory" or "redis"
	TTLMinutes int
	RedisURL   string
}

type SelectionConfig struct {
	DecodePolicy string // "industries_only_fallback" or "keep_listed"
}

type EventsConfig struct {
	Topic       string
	NatsEnabled bool
	NatsURL     string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			WsLogFilePath:      getEnv("WS_LOG_FILE_PATH", "logs/picker_ws.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Taxonomy: TaxonomyConfig{
			Source: strings.ToLower(getEnv("TAXONOMY_SOURCE", "file")),
			Path:   getEnv("TAXONOMY_PATH", "data.json"),
		},
		Session: SessionConfig{
			Store:      strings.ToLower(getEnv("SESSION_STORE", "memory")),
			TTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 60),
			RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Selection: SelectionConfig{
			DecodePolicy: getEnv("SELECTION_DECODE_POLICY", "industries_only_fallback"),
		},
		Events: EventsConfig{
			Topic:       getEnv("SELECTION_EVENTS_TOPIC", "SELECTION_EVENTS"),
			NatsEnabled: getEnvAsBool("NATS_ENABLED", false),
			NatsURL:     getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "niche-picker-backend"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
