package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"MedicApp/logger"

	"github.com/go-redis/redis/v8"
)

type RedisConfig struct {
	URL          string
	PoolSize     int
	DialTimeout  time.Duration
	MinIdleConns int
	ReadTimeout  time.Duration
	MaxRetries   int
}

// LoadRedisConfig builds the pool settings for url from environment variables with default fallbacks
func LoadRedisConfig(url string, log *logger.Logger) (RedisConfig, error) {
	if url == "" {
		return RedisConfig{}, errors.New("REDIS_URL environment variable is not set")
	}

	return RedisConfig{
		URL:          url,
		PoolSize:     getEnvAsInt(log, "REDIS_POOL_SIZE", 10),
		DialTimeout:  getEnvAsDuration(log, "REDIS_DIAL_TIMEOUT", 30*time.Second),
		MinIdleConns: getEnvAsInt(log, "REDIS_MIN_IDLE_CONNS", 5),
		ReadTimeout:  getEnvAsDuration(log, "REDIS_READ_TIMEOUT", 10*time.Second),
		// 0 disables retries; NewRedisClient maps it to go-redis's -1.
		MaxRetries: getEnvAsInt(log, "REDIS_MAX_RETRIES", 0),
	}, nil
}

func getEnvAsInt(log *logger.Logger, name string, defaultValue int) int {
	if value, exists := os.LookupEnv(name); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Warnf("Invalid integer value for %s, using default: %d", name, defaultValue)
	}
	return defaultValue
}

func getEnvAsDuration(log *logger.Logger, name string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(name); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
		log.Warnf("Invalid duration value for %s, using default: %s", name, defaultValue.String())
	}
	return defaultValue
}

// NewRedisClient creates a Redis client with the provided configuration
func NewRedisClient(ctx context.Context, config RedisConfig, log *logger.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = config.PoolSize
	opt.MinIdleConns = config.MinIdleConns
	opt.DialTimeout = config.DialTimeout
	opt.ReadTimeout = config.ReadTimeout
	opt.MaxRetries = config.MaxRetries
	// go-redis treats 0 as its default of 3 retries; -1 turns retries off.
	if opt.MaxRetries == 0 {
		opt.MaxRetries = -1
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis server: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"pool_size":      config.PoolSize,
		"min_idle_conns": config.MinIdleConns,
		"dial_timeout":   config.DialTimeout.String(),
		"read_timeout":   config.ReadTimeout.String(),
	}).Info("Redis client initialized")
	return client, nil
}

// MonitorRedisPool logs the connection pool statistics for monitoring
func MonitorRedisPool(client *redis.Client, log *logger.Logger) {
	stats := client.PoolStats()
	log.WithFields(map[string]interface{}{
		"total": stats.TotalConns,
		"idle":  stats.IdleConns,
		"stale": stats.StaleConns,
	}).Info("Redis pool stats")
}
