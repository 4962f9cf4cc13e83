package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"tgbot/pkg/tgbot"
)

// RuntimeConfig holds the settings of one Bot API input runtime.
type RuntimeConfig struct {
	// Name is the driver instance identifier used in errors and logs.
	Name string
	// Format is the input framing.
	Format Format
	// Payload is what each raw object holds.
	Payload Payload
	// BatchSize is how many raw updates are delivered per batch.
	BatchSize int
	// MaxDepth limits nesting of embedded messages.
	MaxDepth int
	// MaxLineSize limits one input line in FormatLines, zero for the default.
	MaxLineSize int
}

// Validate checks runtime settings.
func (c RuntimeConfig) Validate() error {
	switch c.Format {
	case FormatLines, FormatUpdates:
	default:
		return fmt.Errorf("unsupported format %q", c.Format)
	}
	switch c.Payload {
	case PayloadUpdate, PayloadMessage:
	default:
		return fmt.Errorf("unsupported payload %q", c.Payload)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be > 0")
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must be >= 0")
	}
	if c.MaxLineSize < 0 {
		return fmt.Errorf("max line size must be >= 0")
	}

	return nil
}

// Runtime bundles the input driver with the decoder for its payloads.
type Runtime struct {
	Driver  *Driver
	Decoder *DefaultDecoder
}

// BuildRuntime builds one input runtime reading from reader.
func BuildRuntime(reader io.Reader, cfg RuntimeConfig, logger *slog.Logger) (Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return Runtime{}, fmt.Errorf("validate telegram runtime config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	var sourceOptions []ReaderSourceOption
	if cfg.MaxLineSize > 0 {
		sourceOptions = append(sourceOptions, WithMaxLineSize(cfg.MaxLineSize))
	}
	source, err := NewReaderSource(reader, cfg.Format, sourceOptions...)
	if err != nil {
		return Runtime{}, fmt.Errorf("new telegram reader source: %w", err)
	}

	decoder, err := NewDefaultDecoder(
		WithPayload(cfg.Payload),
		WithMaxDepth(cfg.MaxDepth),
		WithLogger(logger),
	)
	if err != nil {
		return Runtime{}, fmt.Errorf("new telegram decoder: %w", err)
	}

	driver, err := NewDriver(
		source,
		WithName(cfg.Name),
		WithBatchSize(cfg.BatchSize),
		WithErrorHandler(func(ctx context.Context, err error) {
			logger.ErrorContext(ctx, "telegram driver batch error", "driver", cfg.Name, "error", err)
		}),
	)
	if err != nil {
		return Runtime{}, fmt.Errorf("new telegram driver: %w", err)
	}

	return Runtime{Driver: driver, Decoder: decoder}, nil
}

// DefaultRuntimeConfig returns settings for JSON lines of updates.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Name:      DriverType,
		Format:    FormatLines,
		Payload:   PayloadUpdate,
		BatchSize: defaultBatchSize,
		MaxDepth:  tgbot.DefaultMaxDepth,
	}
}
