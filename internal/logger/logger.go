package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type LoggerConfig struct {
	Level          string         `json:"level,omitempty" mapstructure:"level" validate:"oneof=debug info warn error"`
	Format         string         `json:"format,omitempty" mapstructure:"format" validate:"oneof=json console"`
	OutputTarget   string         `json:"outputTarget,omitempty" mapstructure:"output_target" validate:"oneof=stdout stderr"`
	FilePath       string         `json:"filePath,omitempty" mapstructure:"file_path"`
	TimeField      string         `json:"timeField,omitempty" mapstructure:"time_field"`
	TimeFormat     string         `json:"timeFormat,omitempty" mapstructure:"time_format" validate:"oneof=rfc3339 rfc3339nano unix unix_ms"`
	ServiceName    string         `json:"serviceName,omitempty" mapstructure:"service_name"`
	ServiceVersion string         `json:"serviceVersion,omitempty" mapstructure:"service_version"`
	Env            string         `json:"env,omitempty" mapstructure:"env" validate:"oneof=dev staging prod"`
	WithCaller     bool           `json:"withCaller,omitempty" mapstructure:"with_caller"`
	Stacktrace     bool           `json:"stacktrace,omitempty" mapstructure:"stacktrace"`
	Fields         map[string]any `json:"fields,omitempty" mapstructure:"fields"`
}

var timeFormats = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"unix":        zerolog.TimeFormatUnix,
	"unix_ms":     zerolog.TimeFormatUnixMs,
}

// New builds the process logger from cfg and sets the global level.
func New(cfg *LoggerConfig) (zerolog.Logger, error) {
	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return zerolog.Nop(), fmt.Errorf("logger config validation error: %w", err)
	}

	var out io.Writer = os.Stdout
	if cfg.OutputTarget == "stderr" {
		out = os.Stderr
	}
	if cfg.FilePath != "" {
		// keep a full history on disk next to the stream; a missing directory is not fatal
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err == nil {
			if f, ferr := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); ferr == nil {
				return build(cfg, zerolog.MultiLevelWriter(wrap(cfg, out), f))
			}
		}
	}
	return build(cfg, wrap(cfg, out))
}

// Build is New with an explicit destination in place of the configured target and file.
func Build(cfg *LoggerConfig, out io.Writer) (zerolog.Logger, error) {
	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return zerolog.Nop(), fmt.Errorf("logger config validation error: %w", err)
	}
	return build(cfg, wrap(cfg, out))
}

func build(cfg *LoggerConfig, out io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}
	zerolog.TimestampFieldName = cfg.TimeField
	zerolog.TimeFieldFormat = timeFormats[cfg.TimeFormat]

	ctx := zerolog.New(out).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Str("env", cfg.Env)
	if cfg.WithCaller {
		ctx = ctx.Caller()
	}
	if cfg.Stacktrace {
		ctx = ctx.Stack()
	}
	if len(cfg.Fields) > 0 {
		ctx = ctx.Fields(cfg.Fields)
	}

	zerolog.SetGlobalLevel(level)
	return ctx.Logger().Level(level), nil
}

func wrap(cfg *LoggerConfig, out io.Writer) io.Writer {
	if cfg.Format == "console" {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return out
}

func (c *LoggerConfig) setDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}
	if c.Level == "" {
		if c.Env == "dev" {
			c.Level = "debug"
		} else {
			c.Level = "info"
		}
	}
	if c.Format == "" {
		if c.Env == "dev" {
			c.Format = "console"
		} else {
			c.Format = "json"
		}
	}
	if c.OutputTarget == "" {
		c.OutputTarget = "stdout"
	}
	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "rfc3339nano"
	}
	if !c.WithCaller && c.Env == "dev" {
		c.WithCaller = true
	}
	if c.ServiceName == "" {
		c.ServiceName = "nba-totals"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.1.0"
	}
}
