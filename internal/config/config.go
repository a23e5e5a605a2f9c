package config

import (
	"time"

	"github.com/maxviazov/nba-totals/internal/logger"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Upstream UpstreamConfig      `mapstructure:"upstream"`
	Metrics  MetricsConfig       `mapstructure:"metrics"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name" validate:"required"`
	Version         string        `mapstructure:"version"`
	Env             string        `mapstructure:"env" validate:"oneof=dev staging prod test"`
	Port            int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	GinMode         string        `mapstructure:"gin_mode" validate:"oneof=debug release test"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// UpstreamConfig points at the player totals API.
type UpstreamConfig struct {
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UserAgent string        `mapstructure:"user_agent"`
	MaxPages  int           `mapstructure:"max_pages" validate:"gte=1,lte=200"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required,startswith=/"`
}
