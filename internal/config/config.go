package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Store backends.
const (
	StoreMongo  = "mongo"
	StoreDynamo = "dynamo"
	StoreMemory = "memory"
)

type Config struct {
	Env      string
	LogLevel string
	HTTPAddr string

	StoreBackend      string
	MongoURI          string
	MongoDatabase     string
	DynamoTablePrefix string

	KafkaBrokers []string
	KafkaTopic   string

	JWTSecret   string
	TokenExpiry time.Duration

	SMTPHost string
	SMTPPort string
	SMTPFrom string

	// WebDir, when set, is served as the static browser client.
	WebDir string
}

// Load reads configuration from the environment. JWT_SECRET is required
// and must be long enough to be worth signing with.
func Load() (Config, error) {
	cfg := Config{
		Env:               getEnv("APP_ENV", "dev"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		StoreBackend:      getEnv("STORE_BACKEND", StoreMongo),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:     getEnv("MONGO_DATABASE", "storefront"),
		DynamoTablePrefix: getEnv("DYNAMO_TABLE_PREFIX", "storefront_"),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "storefront-events"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenExpiry:       getEnvDuration("TOKEN_EXPIRY", 24*time.Hour),
		SMTPHost:          getEnv("SMTP_HOST", "localhost"),
		SMTPPort:          getEnv("SMTP_PORT", "1025"),
		SMTPFrom:          getEnv("SMTP_FROM", "orders@storefront.example"),
		WebDir:            os.Getenv("WEB_DIR"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	switch cfg.StoreBackend {
	case StoreMongo, StoreDynamo, StoreMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return Config{}, fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
