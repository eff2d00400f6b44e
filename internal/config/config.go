package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreSupabase = "supabase"
)

type Config struct {
	// Server
	Port        string
	Environment string
	BaseURL     string
	LogLevel    string
	CORSOrigins []string

	// Filesystem layout
	UploadsDir   string
	ProcessedDir string
	TemplatesDir string

	// Order store
	OrderStore   string
	OrdersDBPath string

	// Database
	DatabaseURL string

	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseOrdersTable    string
	SupabaseStorageBucket  string

	// Limits
	MaxUploadBytes int64
	ProcessTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; variables already set
// in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	maxUpload, err := getEnvInt64("MAX_UPLOAD_BYTES", 5<<20)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	timeout, err := getEnvDuration("PROCESS_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := &Config{
		Port:        getEnv("PORT", "5000"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:5000"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: parseCSV(getEnv("CORS_ORIGINS", "*")),

		UploadsDir:   getEnv("UPLOADS_DIR", "uploads"),
		ProcessedDir: getEnv("PROCESSED_DIR", "processed"),
		TemplatesDir: getEnv("TEMPLATES_DIR", "assets/templates"),

		OrderStore:   strings.ToLower(getEnv("ORDER_STORE", StoreFile)),
		OrdersDBPath: getEnv("ORDERS_DB_PATH", "orders.db"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseOrdersTable:    getEnv("SUPABASE_ORDERS_TABLE", "orders"),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", ""),

		MaxUploadBytes: maxUpload,
		ProcessTimeout: timeout,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.OrderStore {
	case StoreFile:
		if c.OrdersDBPath == "" {
			return fmt.Errorf("ORDERS_DB_PATH is required for the file store")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case StoreSupabase:
		if c.SupabaseURL == "" || c.SupabasePublishableKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_PUBLISHABLE_KEY are required for the supabase store")
		}
	default:
		return fmt.Errorf("ORDER_STORE must be one of %s, %s, %s; got %q", StoreFile, StorePostgres, StoreSupabase, c.OrderStore)
	}
	if c.SupabaseStorageBucket != "" && (c.SupabaseURL == "" || c.SupabasePublishableKey == "") {
		return fmt.Errorf("SUPABASE_STORAGE_BUCKET requires SUPABASE_URL and SUPABASE_PUBLISHABLE_KEY")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.ProcessTimeout <= 0 {
		return fmt.Errorf("PROCESS_TIMEOUT must be positive")
	}
	if c.UploadsDir == "" || c.ProcessedDir == "" || c.TemplatesDir == "" {
		return fmt.Errorf("UPLOADS_DIR, PROCESSED_DIR and TEMPLATES_DIR must not be empty")
	}
	return nil
}

// MirrorEnabled reports whether processed images are copied to Supabase Storage.
func (c *Config) MirrorEnabled() bool {
	return c.SupabaseStorageBucket != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
