package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cast"

	"species-catalog/internal/infrastructure/database"
)

// LoadDatabaseConfig reads the PostgreSQL settings. Unlike the other
// settings a malformed value here is an error, not a silent default.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	port, err := envInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	maxConns, err := envInt("DB_MAX_CONNECTIONS", 25)
	if err != nil {
		return nil, err
	}
	minConns, err := envInt("DB_MIN_CONNECTIONS", 2)
	if err != nil {
		return nil, err
	}
	maxRetries, err := envInt("DB_MAX_RETRIES", 5)
	if err != nil {
		return nil, err
	}

	maxConnLifetime, err := envDuration("DB_MAX_CONN_LIFETIME", "5m")
	if err != nil {
		return nil, err
	}
	maxConnIdleTime, err := envDuration("DB_MAX_CONN_IDLE_TIME", "1m")
	if err != nil {
		return nil, err
	}
	healthCheckPeriod, err := envDuration("DB_HEALTH_CHECK_PERIOD", "1m")
	if err != nil {
		return nil, err
	}
	retryDelay, err := envDuration("DB_RETRY_DELAY", "1s")
	if err != nil {
		return nil, err
	}
	connectTimeout, err := envDuration("DB_CONNECT_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	return &database.DBConfig{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              port,
		Username:          getEnv("DB_USER", "species"),
		Password:          getEnv("DB_PASSWORD", "secret"),
		DBName:            getEnv("DB_NAME", "species_dev"),
		SSLMode:           getEnv("DB_SSLMODE", "disable"),
		MaxConns:          int32(maxConns),
		MinConns:          int32(minConns),
		MaxConnLifetime:   maxConnLifetime,
		MaxConnIdleTime:   maxConnIdleTime,
		HealthCheckPeriod: healthCheckPeriod,
		MaxRetries:        maxRetries,
		RetryDelay:        retryDelay,
		ConnectTimeout:    connectTimeout,
	}, nil
}

func envInt(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func envDuration(key, def string) (time.Duration, error) {
	v, err := cast.ToDurationE(getEnv(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
