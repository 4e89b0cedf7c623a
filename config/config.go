package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Backend names accepted by BACKEND.
const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// AppConfig holds the application configuration
type AppConfig struct {
	Port            string
	Environment     string
	LogLevel        string
	Backend         string
	SupabaseURL     string
	SupabaseKey     string
	DBURL           string
	RedisAddress    string
	BearerToken     string
	SymmetricKey    string
	DeviceTokenTTL  time.Duration
	CacheTTL        time.Duration
	AllowedOrigins  []string
	RateLimitPerSec float64
	RateLimitBurst  int
	// EnvFileLoaded is false when no .env file was found.
	EnvFileLoaded   bool
}

// GetBearerToken returns the BearerToken from the config
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}

// IsProduction reports whether ENVIRONMENT is production.
func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads .env when present, then environment variables with defaults.
func Load() (*AppConfig, error) {
	envFileLoaded := godotenv.Load() == nil

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &AppConfig{
		Port:            v.GetString("PORT"),
		Environment:     v.GetString("ENVIRONMENT"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		Backend:         strings.ToLower(v.GetString("BACKEND")),
		SupabaseURL:     v.GetString("SUPABASE_URL"),
		SupabaseKey:     v.GetString("SUPABASE_KEY"),
		DBURL:           v.GetString("DB_URL"),
		RedisAddress:    v.GetString("REDIS_URL"),
		BearerToken:     v.GetString("BEARER_TOKEN"),
		SymmetricKey:    v.GetString("SYMMETRIC_KEY"),
		DeviceTokenTTL:  v.GetDuration("DEVICE_TOKEN_TTL"),
		CacheTTL:        v.GetDuration("CACHE_TTL"),
		AllowedOrigins:  splitList(v.GetString("ALLOWED_ORIGINS")),
		RateLimitPerSec: v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:  v.GetInt("RATE_LIMIT_BURST"),
		EnvFileLoaded:   envFileLoaded,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8930")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("BACKEND", BackendSupabase)
	v.SetDefault("DEVICE_TOKEN_TTL", "0s")
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:19006")
	v.SetDefault("RATE_LIMIT_RPS", 15)
	v.SetDefault("RATE_LIMIT_BURST", 30)
}

// Validate checks the settings the selected backend depends on.
func (c *AppConfig) Validate() error {
	switch c.Backend {
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return errors.New("SUPABASE_URL and SUPABASE_KEY are required for the supabase backend")
		}
	case BackendPostgres:
		if c.DBURL == "" {
			return errors.New("missing DB_URL environment variable")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown BACKEND %q", c.Backend)
	}

	if len(c.SymmetricKey) != 32 {
		return fmt.Errorf("SYMMETRIC_KEY must be 32 bytes long. Current length: %d", len(c.SymmetricKey))
	}
	if c.RateLimitPerSec <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
