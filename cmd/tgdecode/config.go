package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"tgbot/internal/driver/telegram"
	"tgbot/internal/kernel"
	"tgbot/pkg/tgbot"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "TGDECODE"
	defaultConfigName = "tgdecode"
	stdinPath         = "-"
)

// Config is the resolved command configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Input  InputConfig  `mapstructure:"input"`
	Decode DecodeConfig `mapstructure:"decode"`
}

// LogConfig controls diagnostics written to stderr.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

// InputConfig describes where raw updates come from.
type InputConfig struct {
	// Path is the input file. Empty or "-" reads stdin.
	Path        string `mapstructure:"path"`
	Format      string `mapstructure:"format" validate:"oneof=lines updates"`
	Payload     string `mapstructure:"payload" validate:"oneof=update message"`
	MaxLineSize int    `mapstructure:"max_line_size" validate:"min=0"`
}

// DecodeConfig tunes the decode pipeline.
type DecodeConfig struct {
	Workers   int    `mapstructure:"workers" validate:"min=1,max=256"`
	MaxDepth  int    `mapstructure:"max_depth" validate:"min=1,max=64"`
	OnError   string `mapstructure:"on_error" validate:"oneof=skip abort"`
	BatchSize int    `mapstructure:"batch_size" validate:"min=1,max=10000"`
}

// flagKeys maps command flags to configuration keys.
var flagKeys = map[string]string{
	"input":         "input.path",
	"format":        "input.format",
	"payload":       "input.payload",
	"max-line-size": "input.max_line_size",
	"workers":       "decode.workers",
	"max-depth":     "decode.max_depth",
	"on-error":      "decode.on_error",
	"batch-size":    "decode.batch_size",
	"log-level":     "log.level",
	"log-format":    "log.format",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("input.path", stdinPath)
	v.SetDefault("input.format", string(telegram.FormatLines))
	v.SetDefault("input.payload", string(telegram.PayloadUpdate))
	v.SetDefault("input.max_line_size", 0)

	v.SetDefault("decode.workers", 4)
	v.SetDefault("decode.max_depth", tgbot.DefaultMaxDepth)
	v.SetDefault("decode.on_error", string(kernel.ErrorPolicySkip))
	v.SetDefault("decode.batch_size", 100)
}

// loadConfig resolves configuration from defaults, an optional config file,
// TGDECODE_* environment variables and changed flags, in rising priority.
// An explicit configPath must exist; the implicit ./tgdecode.* file may not.
func loadConfig(configPath string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for flag, key := range flagKeys {
			if lookup := flags.Lookup(flag); lookup != nil {
				if err := v.BindPFlag(key, lookup); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName(defaultConfigName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// runtimeConfig converts command settings into driver settings.
func (c Config) runtimeConfig() telegram.RuntimeConfig {
	return telegram.RuntimeConfig{
		Name:        telegram.DriverType,
		Format:      telegram.Format(c.Input.Format),
		Payload:     telegram.Payload(c.Input.Payload),
		BatchSize:   c.Decode.BatchSize,
		MaxDepth:    c.Decode.MaxDepth,
		MaxLineSize: c.Input.MaxLineSize,
	}
}

// readsStdin reports whether input comes from stdin.
func (c InputConfig) readsStdin() bool {
	return c.Path == "" || c.Path == stdinPath
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(w io.Writer, cfg LogConfig) *slog.Logger {
	options := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, options))
	}

	return slog.New(slog.NewJSONHandler(w, options))
}
