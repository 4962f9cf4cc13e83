package tgbot

import (
	"fmt"

	"github.com/go-faster/jx"
)

// UpdateKind names the message-bearing field of an update.
type UpdateKind string

const (
	// UpdateKindMessage is a new incoming message.
	UpdateKindMessage UpdateKind = "message"
	// UpdateKindEditedMessage is a new version of a known message.
	UpdateKindEditedMessage UpdateKind = "edited_message"
	// UpdateKindChannelPost is a new channel post.
	UpdateKindChannelPost UpdateKind = "channel_post"
	// UpdateKindEditedChannelPost is a new version of a known channel post.
	UpdateKindEditedChannelPost UpdateKind = "edited_channel_post"
	// UpdateKindUnsupported is any update that carries no message.
	UpdateKindUnsupported UpdateKind = "unsupported"
)

// Update is one inbound event. Message is nil for unsupported kinds.
type Update struct {
	ID   int64
	Kind UpdateKind
	// Field is the raw payload field name, for example "callback_query" for an
	// unsupported update. It is empty when the update carries no payload.
	Field   string
	Message *Message
}

// DecodeUpdate decodes one update with default settings.
func DecodeUpdate(data []byte) (*Update, error) {
	return defaultDecoder.DecodeUpdate(data)
}

// DecodeUpdate decodes one update object. update_id is required. Updates
// without a message payload are not an error and decode to
// UpdateKindUnsupported.
func (dec *Decoder) DecodeUpdate(data []byte) (*Update, error) {
	var (
		update  Update
		hasID   bool
		payload jx.Raw
	)
	value, err := singleValue(data)
	if err != nil {
		return nil, fmt.Errorf("decode update: %w", err)
	}
	err = decodeObject(jx.DecodeBytes(value), "update", func(d *jx.Decoder, key string) error {
		if key == "update_id" {
			hasID = true
			return readInt64(d, key, &update.ID)
		}
		if null, err := consumeNull(d); err != nil || null {
			return err
		}
		if update.Field != "" {
			return d.Skip()
		}

		update.Field = key
		switch kind := UpdateKind(key); kind {
		case UpdateKindMessage, UpdateKindEditedMessage, UpdateKindChannelPost, UpdateKindEditedChannelPost:
			update.Kind = kind
			raw, err := readRaw(d, key)
			if err != nil {
				return err
			}
			payload = raw
			return nil
		default:
			update.Kind = UpdateKindUnsupported
			return d.Skip()
		}
	})
	if err != nil {
		return nil, err
	}
	if !hasID {
		return nil, &MissingFieldError{Field: "update_id"}
	}
	if update.Kind == "" {
		update.Kind = UpdateKindUnsupported
	}
	if payload == nil {
		return &update, nil
	}

	message, err := dec.decodeMessage(payload, 0)
	if err != nil {
		return nil, err
	}
	update.Message = message

	return &update, nil
}
