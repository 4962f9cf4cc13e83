package kernel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tgbot/pkg/tgbot"

	"golang.org/x/sync/errgroup"
)

// DecodeFunc decodes one raw update payload.
type DecodeFunc func(ctx context.Context, data []byte) (*tgbot.Update, error)

// Result is the outcome of decoding one payload of a batch.
type Result struct {
	// Index is the payload position in the batch.
	Index int
	// Update is the decoded update, nil on failure.
	Update *tgbot.Update
	// Err is the decode failure, nil on success.
	Err error
}

// Batch is the outcome of one pipeline run.
type Batch struct {
	// ID identifies the batch in logs.
	ID string
	// Results holds one entry per payload in input order. Entries of payloads
	// never decoded because the batch stopped early have Err set to the reason.
	Results []Result
	// Decoded counts successful results.
	Decoded int
	// Failed counts failed results.
	Failed int
}

// Pipeline decodes batches of raw updates on a bounded worker pool.
//
// Updates decode independently, so a Pipeline is safe for concurrent use and
// results keep input order regardless of completion order.
type Pipeline struct {
	decode DecodeFunc
	cfg    config
}

// NewPipeline creates a pipeline around decode.
func NewPipeline(decode DecodeFunc, options ...Option) (*Pipeline, error) {
	if decode == nil {
		return nil, fmt.Errorf("new pipeline: nil decode func")
	}

	cfg := defaultConfig()
	for _, option := range options {
		option(&cfg)
	}
	if err := cfg.policy.Validate(); err != nil {
		return nil, fmt.Errorf("new pipeline: %w", err)
	}

	return &Pipeline{decode: decode, cfg: cfg}, nil
}

// Run decodes payloads concurrently.
//
// With ErrorPolicySkip every failure is recorded in its Result and Run
// returns a nil error. With ErrorPolicyAbort the first failure stops
// scheduling and is returned together with the partial batch. Context
// cancellation is returned as an error under both policies.
func (p *Pipeline) Run(ctx context.Context, payloads [][]byte) (*Batch, error) {
	batch := &Batch{
		ID:      p.cfg.newBatchID(),
		Results: make([]Result, len(payloads)),
	}
	logger := p.cfg.logger.With("batch_id", batch.ID)
	startedAt := time.Now()
	logger.DebugContext(ctx, "decode batch started", "size", len(payloads), "workers", p.cfg.workers)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.cfg.workers)

	scheduled := 0
	for index, payload := range payloads {
		if groupCtx.Err() != nil {
			break
		}
		scheduled++
		index, payload := index, payload
		group.Go(func() error {
			return p.decodeOne(groupCtx, batch, index, payload)
		})
	}
	groupErr := group.Wait()

	stopErr := groupErr
	if stopErr == nil {
		stopErr = ctx.Err()
	}
	for index := range batch.Results {
		result := &batch.Results[index]
		result.Index = index
		if index >= scheduled && stopErr != nil {
			result.Err = fmt.Errorf("not decoded: %w", stopErr)
		}
		if result.Err != nil {
			batch.Failed++
			continue
		}
		batch.Decoded++
	}

	logger.InfoContext(ctx, "decode batch finished",
		"size", len(payloads),
		"decoded", batch.Decoded,
		"failed", batch.Failed,
		"duration", time.Since(startedAt),
	)

	if groupErr != nil {
		return batch, fmt.Errorf("decode batch %s: %w", batch.ID, groupErr)
	}
	if err := ctx.Err(); err != nil {
		return batch, fmt.Errorf("decode batch %s: %w", batch.ID, err)
	}

	return batch, nil
}

// decodeOne stores the result of one payload. It only returns an error when
// the failure must stop the batch.
func (p *Pipeline) decodeOne(ctx context.Context, batch *Batch, index int, payload []byte) error {
	update, err := decodeSafely(fmt.Sprintf("decode update %d", index), func() (*tgbot.Update, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return p.decode(ctx, payload)
	})
	batch.Results[index] = Result{Index: index, Update: update, Err: err}
	if err == nil {
		return nil
	}

	if p.cfg.policy == ErrorPolicyAbort || errors.Is(err, context.Canceled) {
		return err
	}
	p.cfg.logger.WarnContext(ctx, "decode update skipped",
		"batch_id", batch.ID,
		"index", index,
		"error", err,
	)

	return nil
}

// decodeSafely runs decode and converts a panic into an error tagged with
// scope, so one malformed update cannot take down its batch worker.
func decodeSafely(scope string, decode func() (*tgbot.Update, error)) (update *tgbot.Update, err error) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		update = nil
		err = fmt.Errorf("%s: panic recovered: %v", scope, recovered)
	}()

	update, err = decode()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", scope, err)
	}

	return update, nil
}
