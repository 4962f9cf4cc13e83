package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"tgbot/pkg/tgbot"
)

// Decoder converts raw Telegram objects into validated updates.
type Decoder interface {
	// Decode maps one raw object into a decoded update.
	Decode(ctx context.Context, data []byte) (*tgbot.Update, error)
}

// decoderConfig stores resolved default decoder settings.
type decoderConfig struct {
	payload  Payload
	maxDepth int
	logger   *slog.Logger
}

// DecoderOption mutates default decoder configuration.
type DecoderOption func(*decoderConfig)

// WithPayload selects whether raw objects are updates or bare messages.
func WithPayload(payload Payload) DecoderOption {
	return func(cfg *decoderConfig) {
		if payload != "" {
			cfg.payload = payload
		}
	}
}

// WithMaxDepth limits nesting of embedded messages.
func WithMaxDepth(depth int) DecoderOption {
	return func(cfg *decoderConfig) {
		if depth >= 0 {
			cfg.maxDepth = depth
		}
	}
}

// WithLogger configures the logger used for decode diagnostics.
func WithLogger(logger *slog.Logger) DecoderOption {
	return func(cfg *decoderConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// DefaultDecoder decodes raw objects with tgbot and reports lenient outcomes
// (unsupported update kinds, unknown entity tags) at debug level.
type DefaultDecoder struct {
	payload Payload
	decoder *tgbot.Decoder
	logger  *slog.Logger
}

// NewDefaultDecoder creates a default decoder.
func NewDefaultDecoder(options ...DecoderOption) (*DefaultDecoder, error) {
	cfg := decoderConfig{
		payload:  PayloadUpdate,
		maxDepth: tgbot.DefaultMaxDepth,
		logger:   slog.Default(),
	}
	for _, option := range options {
		option(&cfg)
	}
	switch cfg.payload {
	case PayloadUpdate, PayloadMessage:
	default:
		return nil, fmt.Errorf("new default decoder: unsupported payload %q", cfg.payload)
	}

	return &DefaultDecoder{
		payload: cfg.payload,
		decoder: tgbot.NewDecoder(tgbot.WithMaxDepth(cfg.maxDepth)),
		logger:  cfg.logger,
	}, nil
}

// Decode converts one raw object into an update. Bare messages are wrapped
// into a message update with a zero id.
func (d *DefaultDecoder) Decode(ctx context.Context, data []byte) (*tgbot.Update, error) {
	if d.payload == PayloadMessage {
		message, err := d.decoder.DecodeMessage(data)
		if err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		d.logUnknownEntities(ctx, 0, message)
		return &tgbot.Update{
			Kind:    tgbot.UpdateKindMessage,
			Field:   string(tgbot.UpdateKindMessage),
			Message: message,
		}, nil
	}

	update, err := d.decoder.DecodeUpdate(data)
	if err != nil {
		return nil, fmt.Errorf("decode update: %w", err)
	}
	if update.Kind == tgbot.UpdateKindUnsupported {
		d.logger.DebugContext(ctx, "telegram update kind unsupported",
			"update_id", update.ID,
			"field", update.Field,
		)
		return update, nil
	}
	d.logUnknownEntities(ctx, update.ID, update.Message)

	return update, nil
}

// logUnknownEntities reports entity tags decoded through the lenient path.
func (d *DefaultDecoder) logUnknownEntities(ctx context.Context, updateID int64, message *tgbot.Message) {
	if !d.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	for _, entity := range messageEntities(message) {
		unknown, ok := entity.(tgbot.UnknownEntity)
		if !ok {
			continue
		}
		d.logger.DebugContext(ctx, "telegram text entity tag unknown",
			"update_id", updateID,
			"message_id", message.ID,
			"tag", unknown.Tag,
			"offset", unknown.Offset,
			"length", unknown.Length,
		)
	}
}

// messageEntities returns text or caption entities of a message.
func messageEntities(message *tgbot.Message) []tgbot.TextEntity {
	if message == nil {
		return nil
	}
	if text := message.Text(); text != nil {
		return text.Entities
	}
	if caption := MessageCaption(message); caption != nil {
		return caption.Entities
	}

	return nil
}

// MessageCaption returns the caption of a media message, nil when there is none.
func MessageCaption(message *tgbot.Message) *tgbot.Text {
	switch data := message.Data.(type) {
	case tgbot.AnimationData:
		return data.Caption
	case tgbot.AudioData:
		return data.Caption
	case tgbot.DocumentData:
		return data.Caption
	case tgbot.PhotoData:
		return data.Caption
	case tgbot.VideoData:
		return data.Caption
	case tgbot.VoiceData:
		return data.Caption
	default:
		return nil
	}
}
