package telegram

import (
	"context"
	"errors"
	"fmt"
)

const defaultBatchSize = 100

// BatchHandler consumes one batch of raw updates in input order.
type BatchHandler func(ctx context.Context, batch []RawUpdate) error

// driverConfig contains runtime controls for batching and error reporting.
type driverConfig struct {
	name         string
	batchSize    int
	onAsyncError func(context.Context, error)
}

// DriverOption mutates Telegram driver configuration.
type DriverOption func(*driverConfig)

// WithName configures the driver identity used in errors.
func WithName(name string) DriverOption {
	return func(cfg *driverConfig) {
		if name != "" {
			cfg.name = name
		}
	}
}

// WithBatchSize configures how many raw updates are delivered per batch.
func WithBatchSize(size int) DriverOption {
	return func(cfg *driverConfig) {
		if size > 0 {
			cfg.batchSize = size
		}
	}
}

// WithErrorHandler configures callback for batch handler errors.
func WithErrorHandler(handler func(context.Context, error)) DriverOption {
	return func(cfg *driverConfig) {
		if handler != nil {
			cfg.onAsyncError = handler
		}
	}
}

// Driver reads raw updates from a source and delivers them in batches.
type Driver struct {
	cfg    driverConfig
	source UpdateSource
}

// NewDriver creates a Telegram driver.
func NewDriver(source UpdateSource, options ...DriverOption) (*Driver, error) {
	if source == nil {
		return nil, fmt.Errorf("new telegram driver: nil source")
	}

	cfg := driverConfig{
		name:         DriverType,
		batchSize:    defaultBatchSize,
		onAsyncError: func(context.Context, error) {},
	}
	for _, option := range options {
		option(&cfg)
	}

	return &Driver{
		cfg:    cfg,
		source: source,
	}, nil
}

// Name returns the stable driver identifier.
func (d *Driver) Name() string {
	return d.cfg.name
}

// BatchSize returns the configured batch size.
func (d *Driver) BatchSize() int {
	return d.cfg.batchSize
}

// Start consumes the source and calls handler for every full batch and for
// the final partial batch. Cancellation is not reported as an error.
func (d *Driver) Start(ctx context.Context, handler BatchHandler) error {
	if handler == nil {
		return fmt.Errorf("start %s driver: nil handler", d.cfg.name)
	}

	batch := make([]RawUpdate, 0, d.cfg.batchSize)
	flush := func(flushCtx context.Context) error {
		if len(batch) == 0 {
			return nil
		}
		if err := d.handleBatch(flushCtx, batch, handler); err != nil {
			return err
		}
		batch = make([]RawUpdate, 0, d.cfg.batchSize)
		return nil
	}

	err := d.source.Consume(ctx, func(handlerCtx context.Context, update RawUpdate) error {
		batch = append(batch, update)
		if len(batch) < d.cfg.batchSize {
			return nil
		}
		return flush(handlerCtx)
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return fmt.Errorf("start %s driver: consume updates: %w", d.cfg.name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil
	}
	if err := flush(ctx); err != nil {
		return fmt.Errorf("start %s driver: %w", d.cfg.name, err)
	}

	return nil
}

// handleBatch delivers one batch and converts handler panics into errors.
func (d *Driver) handleBatch(ctx context.Context, batch []RawUpdate, handler BatchHandler) (err error) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		err = fmt.Errorf("handle batch at %d panic: %v", batch[0].Sequence, recovered)
		d.cfg.onAsyncError(ctx, err)
	}()

	if err := handler(ctx, batch); err != nil {
		err = fmt.Errorf("handle batch at %d: %w", batch[0].Sequence, err)
		d.cfg.onAsyncError(ctx, err)
		return err
	}

	return nil
}
