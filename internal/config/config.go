package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Redis configuration for the response, entity and author caches
	Redis RedisConfig

	// External user service
	Authors AuthorsConfig

	// Cache TTLs
	Cache CacheConfig

	// Page composition settings
	Site SiteConfig

	// Per-client request limits
	RateLimit RateLimitConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// TrustedProxies lists the proxy IPs or CIDRs whose X-Forwarded-For is
	// believed. Empty means the peer address is the client address.
	TrustedProxies []string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxOpenConns   int
	MaxIdleConns   int
	MaxLifetime    time.Duration
	RunMigrations  bool
	MigrationsPath string
}

// RedisConfig holds cache backend settings. An empty Addr selects the in-memory cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthorsConfig holds the user service client settings
type AuthorsConfig struct {
	RPCAddr     string
	RPCTimeout  time.Duration
	CacheTTL    time.Duration
	FanoutLimit int
}

// CacheConfig holds cache TTLs and the in-memory fallback size
type CacheConfig struct {
	ResponseTTL time.Duration
	MemorySize  int
}

// SiteConfig holds page composition settings
type SiteConfig struct {
	HomeSectionsFile string
	HomeSections     []HomeSection
}

// RateLimitConfig holds per-client token bucket settings. RPS <= 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64
	Burst int
	// MaxClients bounds the number of clients tracked at once
	MaxClients int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables, after loading
// an optional .env file
func Load() (*Config, error) {
	_ = godotenv.Load(getEnv("ENV_FILE", ".env"))

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8090"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			TrustedProxies:  getListEnv("TRUSTED_PROXIES"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			Name:           getEnv("DB_NAME", "media_site"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:   getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:   getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:    getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
			RunMigrations:  getBoolEnv("DB_RUN_MIGRATIONS", false),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Authors: AuthorsConfig{
			RPCAddr:     getEnv("USER_RPC_ADDR", "localhost:50051"),
			RPCTimeout:  getDurationEnv("USER_RPC_TIMEOUT", 3*time.Second),
			CacheTTL:    getDurationEnv("AUTHOR_CACHE_TTL", 15*time.Minute),
			FanoutLimit: getIntEnv("AUTHOR_FANOUT_LIMIT", 8),
		},
		Cache: CacheConfig{
			ResponseTTL: getDurationEnv("RESPONSE_CACHE_TTL", 60*time.Second),
			MemorySize:  getIntEnv("MEMORY_CACHE_SIZE", 4096),
		},
		Site: SiteConfig{
			HomeSectionsFile: getEnv("HOME_SECTIONS_FILE", ""),
		},
		RateLimit: RateLimitConfig{
			RPS:        getFloatEnv("RATE_LIMIT_RPS", 20),
			Burst:      getIntEnv("RATE_LIMIT_BURST", 40),
			MaxClients: getIntEnv("RATE_LIMIT_CLIENTS", 10000),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	sections, err := LoadHomeSections(cfg.Site.HomeSectionsFile)
	if err != nil {
		return nil, err
	}
	cfg.Site.HomeSections = sections

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Cache.ResponseTTL <= 0 {
		return fmt.Errorf("RESPONSE_CACHE_TTL must be positive")
	}
	if c.Authors.CacheTTL <= 0 {
		return fmt.Errorf("AUTHOR_CACHE_TTL must be positive")
	}
	if c.Authors.FanoutLimit <= 0 {
		return fmt.Errorf("AUTHOR_FANOUT_LIMIT must be positive")
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.MaxClients <= 0 {
		return fmt.Errorf("RATE_LIMIT_CLIENTS must be positive")
	}
	for _, p := range c.Server.TrustedProxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("TRUSTED_PROXIES: %q is not an IP or CIDR", p)
			}
		}
	}
	for _, s := range c.Site.HomeSections {
		if s.Key == "" || s.Slug == "" || s.Limit <= 0 {
			return fmt.Errorf("home section %q needs key, slug and a positive limit", s.Key)
		}
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getListEnv splits a comma separated value, dropping empty items
func getListEnv(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
