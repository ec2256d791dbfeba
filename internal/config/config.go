// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime settings for the server and the CLI
type Config struct {
	Port             string
	Env              string
	DatabaseURL      string
	ModelPath        string
	ModelSeed        uint64
	EstimatorURL     string
	EstimatorTimeout time.Duration
	EstimatorRPS     float64
	EstimatorBurst   int
	LogLevel         string
	LogFormat        string
	AllowOrigins     string
	SavePredictions  bool
	ShutdownTimeout  time.Duration
}

// Load reads configuration from environment variables, applying defaults
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8000"),
		Env:          getEnv("GO_ENV", "development"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		ModelPath:    getEnv("MODEL_PATH", "house_price_model.json"),
		EstimatorURL: strings.TrimRight(getEnv("ESTIMATOR_URL", ""), "/"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
	}

	defaultFormat := "json"
	if cfg.IsDevelopment() {
		defaultFormat = "console"
	}
	cfg.LogFormat = getEnv("LOG_FORMAT", defaultFormat)

	var err error
	if cfg.ModelSeed, err = getEnvUint("MODEL_SEED", 42); err != nil {
		return nil, err
	}
	if cfg.EstimatorTimeout, err = getEnvDuration("ESTIMATOR_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.EstimatorRPS, err = getEnvFloat("ESTIMATOR_RATE_LIMIT", 0); err != nil {
		return nil, err
	}
	if cfg.EstimatorBurst, err = getEnvInt("ESTIMATOR_BURST", 10); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.SavePredictions, err = getEnvBool("SAVE_PREDICTIONS", true); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvUint(key string, defaultValue uint64) (uint64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("config: invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}
