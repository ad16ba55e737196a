package app

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// State store backends.
const (
	StateBackendFile  = "file"
	StateBackendRedis = "redis"
)

// Config holds runtime configuration for the console client.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	APIBaseURL  string        `envconfig:"API_BASE_URL" default:"http://localhost:8081"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	StateBackend string `envconfig:"STATE_BACKEND" default:"file"`
	StateDir     string `envconfig:"STATE_DIR" default:".stockroom"`
	RedisAddr    string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`

	PageSize int `envconfig:"PAGE_SIZE" default:"10"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.StateBackend != StateBackendFile && cfg.StateBackend != StateBackendRedis {
		return nil, fmt.Errorf("app: unknown state backend %q", cfg.StateBackend)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
