// Package config provides configuration for the application
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Draft storage backends
const (
	DraftStorageFile  = "file"
	DraftStorageMySQL = "mysql"
	DraftStorageRedis = "redis"
)

// Config holds all configuration for the application
type Config struct {
	Gateway  GatewayConfig
	Cache    CacheConfig
	Draft    DraftConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Server   ServerConfig
	Logging  LoggingConfig
	CORS     CORSConfig
}

// GatewayConfig holds the remote data gateway settings
type GatewayConfig struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	AcademyID string
}

// CacheConfig holds query cache settings
type CacheConfig struct {
	StaleTime time.Duration
	GCTime    time.Duration
}

// DraftConfig holds autosave settings
type DraftConfig struct {
	Debounce time.Duration
	Storage  string
	FilePath string
	TTL      time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port               int
	RateLimitPerMinute int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables.
//
// A .env file in the working directory is loaded first if it exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{}
	var err error

	// Gateway configuration
	cfg.Gateway.BaseURL = strings.TrimRight(os.Getenv("GATEWAY_BASE_URL"), "/")
	if cfg.Gateway.BaseURL == "" {
		return nil, fmt.Errorf("GATEWAY_BASE_URL is required")
	}
	cfg.Gateway.Token = os.Getenv("GATEWAY_TOKEN")
	cfg.Gateway.AcademyID = os.Getenv("ACADEMY_ID")
	if cfg.Gateway.AcademyID == "" {
		return nil, fmt.Errorf("ACADEMY_ID is required")
	}
	if cfg.Gateway.Timeout, err = durationEnv("GATEWAY_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	// Cache configuration
	if cfg.Cache.StaleTime, err = durationEnv("CACHE_STALE_TIME", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.Cache.GCTime, err = durationEnv("CACHE_GC_TIME", 5*time.Minute); err != nil {
		return nil, err
	}

	// Draft configuration
	if cfg.Draft.Debounce, err = durationEnv("AUTOSAVE_DEBOUNCE", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.Draft.TTL, err = durationEnv("DRAFT_TTL", 0); err != nil {
		return nil, err
	}
	cfg.Draft.Storage = strings.ToLower(os.Getenv("DRAFT_STORAGE"))
	if cfg.Draft.Storage == "" {
		cfg.Draft.Storage = DraftStorageFile
	}
	cfg.Draft.FilePath = os.Getenv("DRAFT_FILE_PATH")
	if cfg.Draft.FilePath == "" {
		cfg.Draft.FilePath = "data/draft.json"
	}

	switch cfg.Draft.Storage {
	case DraftStorageFile:
	case DraftStorageMySQL:
		if err := loadDatabase(cfg); err != nil {
			return nil, err
		}
	case DraftStorageRedis:
		if err := loadRedis(cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("invalid DRAFT_STORAGE: %s", cfg.Draft.Storage)
	}

	// Server configuration
	if cfg.Server.Port, err = intEnv("SERVER_PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.Server.RateLimitPerMinute, err = intEnv("RATE_LIMIT_PER_MINUTE", 100); err != nil {
		return nil, err
	}

	// Logging configuration
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

func loadDatabase(cfg *Config) error {
	cfg.Database.Host = os.Getenv("DB_HOST")
	if cfg.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	cfg.Database.User = os.Getenv("DB_USER")
	if cfg.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}
	cfg.Database.Password = os.Getenv("DB_PASSWORD")
	if cfg.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.DBName = os.Getenv("DB_NAME")
	if cfg.Database.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	return nil
}

func loadRedis(cfg *Config) error {
	cfg.Redis.Host = os.Getenv("REDIS_HOST")
	if cfg.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}
	var err error
	if cfg.Redis.Port, err = intEnv("REDIS_PORT", 6379); err != nil {
		return err
	}
	if cfg.Redis.DB, err = intEnv("REDIS_DB", 0); err != nil {
		return err
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	return nil
}

// parseOrigins splits a comma-separated origin list. An empty list allows every origin.
func parseOrigins(value string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(value, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(name)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", name)
	}
	return d, nil
}

func intEnv(name string, fallback int) (int, error) {
	value := os.Getenv(name)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&multiStatements=true",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

// RedisAddr returns the Redis address in host:port form
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
