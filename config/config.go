package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Хранилище документов
const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort int

	DocumentStore string
	DatabaseURL   string
	SQLitePath    string
	BatchSize     int

	AdminPassword string
	JWTSecretKey  string
	SessionTTL    time.Duration

	CORSAllowedOrigins []string

	R2 R2Config

	DiscordWebhookID    string
	DiscordWebhookToken string
}

// R2Config is optional; uploads are disabled while any field is empty.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" &&
		c.BucketName != "" && c.PublicBaseURL != ""
}

func (c *Config) DiscordEnabled() bool {
	return c.DiscordWebhookID != "" && c.DiscordWebhookToken != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	store := strings.ToLower(envOrDefault("DOCUMENT_STORE", StoreSQLite))
	dbURL := os.Getenv("DATABASE_URL")
	switch store {
	case StorePostgres:
		if dbURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
		}
	case StoreSQLite, StoreMemory:
	default:
		return nil, fmt.Errorf("invalid DOCUMENT_STORE %q: want postgres, sqlite or memory", store)
	}

	batchSize, err := intEnv("BATCH_SIZE", 500)
	if err != nil {
		return nil, err
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("BATCH_SIZE must be positive, got %d", batchSize)
	}

	ttl, err := time.ParseDuration(envOrDefault("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL environment variable: %w", err)
	}

	var origins []string
	for _, o := range strings.Split(envOrDefault("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	cfg := &Config{
		ServerPort:         port,
		DocumentStore:      store,
		DatabaseURL:        dbURL,
		SQLitePath:         envOrDefault("SQLITE_PATH", "dashboard.db"),
		BatchSize:          batchSize,
		AdminPassword:      envOrDefault("ADMIN_PASSWORD", "admin"),
		JWTSecretKey:       jwtKey,
		SessionTTL:         ttl,
		CORSAllowedOrigins: origins,
		R2: R2Config{
			AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
			BucketName:      os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
		},
		DiscordWebhookID:    os.Getenv("DISCORD_WEBHOOK_ID"),
		DiscordWebhookToken: os.Getenv("DISCORD_WEBHOOK_TOKEN"),
	}

	return cfg, nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return n, nil
}
