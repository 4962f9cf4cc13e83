package kernel

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

const defaultWorkers = 4

// ErrorPolicy decides what a failed update does to its batch.
type ErrorPolicy string

const (
	// ErrorPolicySkip records the failure and keeps decoding the batch.
	ErrorPolicySkip ErrorPolicy = "skip"
	// ErrorPolicyAbort stops the batch at the first failure.
	ErrorPolicyAbort ErrorPolicy = "abort"
)

// Validate reports whether the policy is known.
func (p ErrorPolicy) Validate() error {
	switch p {
	case ErrorPolicySkip, ErrorPolicyAbort:
		return nil
	default:
		return fmt.Errorf("unsupported error policy %q", p)
	}
}

// config stores resolved pipeline settings after option application.
type config struct {
	workers    int
	policy     ErrorPolicy
	logger     *slog.Logger
	newBatchID func() string
}

// Option mutates pipeline construction configuration.
type Option func(*config)

// defaultConfig returns defaults for pipeline controls.
func defaultConfig() config {
	return config{
		workers:    defaultWorkers,
		policy:     ErrorPolicySkip,
		logger:     slog.Default(),
		newBatchID: uuid.NewString,
	}
}

// WithWorkers configures how many updates decode concurrently.
func WithWorkers(workers int) Option {
	return func(cfg *config) {
		if workers > 0 {
			cfg.workers = workers
		}
	}
}

// WithErrorPolicy configures batch behavior on decode failures.
func WithErrorPolicy(policy ErrorPolicy) Option {
	return func(cfg *config) {
		if policy != "" {
			cfg.policy = policy
		}
	}
}

// WithLogger configures pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithBatchIDGenerator overrides how batch identifiers are produced.
func WithBatchIDGenerator(generate func() string) Option {
	return func(cfg *config) {
		if generate != nil {
			cfg.newBatchID = generate
		}
	}
}
