package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads path (optional), overlays APP_* environment variables and validates the result.
// A .env file in the working directory, when present, is loaded into the environment first;
// variables that are already set win over it.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it even without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "nba-totals")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.gin_mode", "release")
	v.SetDefault("app.read_timeout", 15*time.Second)
	v.SetDefault("app.write_timeout", 60*time.Second)
	v.SetDefault("app.shutdown_timeout", 10*time.Second)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output_target", "stdout")
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.time_field", "ts")
	v.SetDefault("logger.time_format", "rfc3339nano")
	v.SetDefault("logger.service_name", "nba-totals")
	v.SetDefault("logger.service_version", "0.1.0")
	v.SetDefault("logger.env", "prod")
	v.SetDefault("logger.with_caller", false)
	v.SetDefault("logger.stacktrace", false)

	v.SetDefault("upstream.base_url", "http://rest.nbaapi.com")
	v.SetDefault("upstream.timeout", 10*time.Second)
	v.SetDefault("upstream.user_agent", "nba-totals/0.1")
	v.SetDefault("upstream.max_pages", 20)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
