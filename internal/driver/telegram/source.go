package telegram

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"tgbot/pkg/tgbot"

	"github.com/go-faster/jx"
)

const defaultMaxLineSize = 16 << 20

// ErrResponseNotOK indicates a getUpdates response with "ok": false.
var ErrResponseNotOK = errors.New("telegram: response not ok")

// UpdateHandler consumes raw Telegram updates.
type UpdateHandler func(ctx context.Context, update RawUpdate) error

// UpdateSource streams raw Telegram updates into the driver.
type UpdateSource interface {
	// Consume runs the update loop until the input ends, the context is
	// canceled, or the handler fails.
	Consume(ctx context.Context, handler UpdateHandler) error
}

// ChannelSource reads updates from a channel.
type ChannelSource struct {
	// Updates is the owned input stream consumed by the source loop.
	Updates <-chan RawUpdate
}

// Consume forwards channel updates until closure or cancellation.
func (s ChannelSource) Consume(ctx context.Context, handler UpdateHandler) error {
	if handler == nil {
		return fmt.Errorf("channel source: nil handler")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-s.Updates:
			if !ok {
				return nil
			}
			if err := handler(ctx, update); err != nil {
				return fmt.Errorf("channel source handle update %d: %w", update.Sequence, err)
			}
		}
	}
}

// readerSourceConfig stores reader source settings after option application.
type readerSourceConfig struct {
	maxLineSize int
}

// ReaderSourceOption mutates reader source configuration.
type ReaderSourceOption func(*readerSourceConfig)

// WithMaxLineSize limits one input line in FormatLines.
func WithMaxLineSize(size int) ReaderSourceOption {
	return func(cfg *readerSourceConfig) {
		if size > 0 {
			cfg.maxLineSize = size
		}
	}
}

// ReaderSource reads raw updates from a byte stream framed by Format.
type ReaderSource struct {
	reader io.Reader
	format Format
	cfg    readerSourceConfig
}

// NewReaderSource creates a source over reader.
func NewReaderSource(reader io.Reader, format Format, options ...ReaderSourceOption) (*ReaderSource, error) {
	if reader == nil {
		return nil, fmt.Errorf("new reader source: nil reader")
	}
	switch format {
	case FormatLines, FormatUpdates:
	default:
		return nil, fmt.Errorf("new reader source: unsupported format %q", format)
	}

	cfg := readerSourceConfig{maxLineSize: defaultMaxLineSize}
	for _, option := range options {
		option(&cfg)
	}

	return &ReaderSource{reader: reader, format: format, cfg: cfg}, nil
}

// Consume reads the whole stream and hands every object to handler in input
// order. It stops early with the context error on cancellation.
func (s *ReaderSource) Consume(ctx context.Context, handler UpdateHandler) error {
	if handler == nil {
		return fmt.Errorf("reader source: nil handler")
	}

	switch s.format {
	case FormatUpdates:
		return s.consumeResponse(ctx, handler)
	default:
		return s.consumeLines(ctx, handler)
	}
}

func (s *ReaderSource) consumeLines(ctx context.Context, handler UpdateHandler) error {
	scanner := bufio.NewScanner(s.reader)
	scanner.Buffer(make([]byte, 0, min(64*1024, s.cfg.maxLineSize)), s.cfg.maxLineSize)

	sequence := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		update := RawUpdate{Sequence: sequence, Data: bytes.Clone(line)}
		sequence++
		if err := handler(ctx, update); err != nil {
			return fmt.Errorf("reader source handle update %d: %w", update.Sequence, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reader source scan: %w", err)
	}

	return nil
}

func (s *ReaderSource) consumeResponse(ctx context.Context, handler UpdateHandler) error {
	data, err := io.ReadAll(s.reader)
	if err != nil {
		return fmt.Errorf("reader source read: %w", err)
	}
	updates, err := parseUpdatesResponse(data)
	if err != nil {
		return fmt.Errorf("reader source: %w", err)
	}

	for sequence, raw := range updates {
		if err := ctx.Err(); err != nil {
			return err
		}
		update := RawUpdate{Sequence: sequence, Data: raw}
		if err := handler(ctx, update); err != nil {
			return fmt.Errorf("reader source handle update %d: %w", sequence, err)
		}
	}

	return nil
}

// parseUpdatesResponse splits a getUpdates response into raw update objects.
func parseUpdatesResponse(data []byte) ([][]byte, error) {
	var (
		ok          bool
		hasOK       bool
		description string
		updates     [][]byte
	)
	body, err := responseBody(data)
	if err != nil {
		return nil, fmt.Errorf("parse updates response: %w", err)
	}
	err = jx.DecodeBytes(body).ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "ok":
			hasOK = true
			value, err := d.Bool()
			if err != nil {
				return fmt.Errorf("read ok: %w", err)
			}
			ok = value
			return nil
		case "description":
			value, err := d.Str()
			if err != nil {
				return fmt.Errorf("read description: %w", err)
			}
			description = value
			return nil
		case "result":
			return d.Arr(func(d *jx.Decoder) error {
				raw, err := d.Raw()
				if err != nil {
					return fmt.Errorf("read result item: %w", err)
				}
				updates = append(updates, bytes.Clone(raw))
				return nil
			})
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("parse updates response: %w", err)
	}
	if !hasOK || !ok {
		return nil, fmt.Errorf("%w: %s", ErrResponseNotOK, description)
	}

	return updates, nil
}

// responseBody returns the single JSON value of a response and rejects
// anything but whitespace after it.
func responseBody(data []byte) (jx.Raw, error) {
	const space = " \t\r\n"

	rest := bytes.TrimLeft(data, space)
	body, err := jx.DecodeBytes(rest).Raw()
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimLeft(rest[len(body):], space)) != 0 {
		return nil, tgbot.ErrTrailingData
	}

	return body, nil
}
