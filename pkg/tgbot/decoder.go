package tgbot

import (
	"fmt"

	"github.com/go-faster/jx"
)

// DefaultMaxDepth is the default limit of nested embedded messages
// (reply_to_message, pinned_message) below the top-level message.
const DefaultMaxDepth = 16

// decoderConfig stores resolved decoder settings after option application.
type decoderConfig struct {
	maxDepth int
}

// DecoderOption mutates decoder construction configuration.
type DecoderOption func(*decoderConfig)

// WithMaxDepth limits how deep embedded messages may nest. Zero rejects any
// embedded message; negative values are ignored.
func WithMaxDepth(depth int) DecoderOption {
	return func(cfg *decoderConfig) {
		if depth >= 0 {
			cfg.maxDepth = depth
		}
	}
}

// Decoder turns raw Bot API payloads into validated messages and updates.
//
// A Decoder holds only immutable configuration and is safe for concurrent use.
type Decoder struct {
	maxDepth int
}

// NewDecoder creates a decoder with options applied over defaults.
func NewDecoder(options ...DecoderOption) *Decoder {
	cfg := decoderConfig{maxDepth: DefaultMaxDepth}
	for _, option := range options {
		option(&cfg)
	}

	return &Decoder{maxDepth: cfg.maxDepth}
}

// MaxDepth returns the configured nesting limit.
func (dec *Decoder) MaxDepth() int {
	return dec.maxDepth
}

var defaultDecoder = NewDecoder()

// DecodeMessage decodes one raw message with default settings.
func DecodeMessage(data []byte) (*Message, error) {
	return defaultDecoder.DecodeMessage(data)
}

// DecodeMessage decodes one raw message object.
//
// Validation failures are returned as the typed error values of this package
// without extra context, so their text stays stable for callers that match
// on it. Failures inside embedded messages are prefixed with the field name.
func (dec *Decoder) DecodeMessage(data []byte) (*Message, error) {
	return dec.decodeMessage(data, 0)
}

func (dec *Decoder) decodeMessage(data []byte, depth int) (*Message, error) {
	if depth > dec.maxDepth {
		return nil, fmt.Errorf("%w: limit %d", ErrNestingTooDeep, dec.maxDepth)
	}

	value, err := singleValue(data)
	if err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	var raw rawMessage
	if err := raw.decode(jx.DecodeBytes(value)); err != nil {
		return nil, err
	}

	return dec.assemble(&raw, depth)
}

// assemble composes resolver results into one message. The first failure
// aborts assembly; partial messages are never returned.
func (dec *Decoder) assemble(raw *rawMessage, depth int) (*Message, error) {
	kind, err := resolveKind(raw.chat, raw.from, raw.authorSignature)
	if err != nil {
		return nil, err
	}
	forward, err := resolveForward(raw.forward)
	if err != nil {
		return nil, err
	}
	data, err := dec.resolveData(raw, depth)
	if err != nil {
		return nil, err
	}

	message := &Message{
		ID:           raw.id,
		Date:         raw.date,
		Kind:         kind,
		Data:         data,
		Forward:      forward,
		EditDate:     raw.editDate,
		Edited:       raw.hasEditDate,
		MediaGroupID: raw.mediaGroupID,
	}
	if text, ok := data.(Text); ok {
		message.Commands = collectCommands(text.Entities)
	}

	if raw.replyTo != nil {
		reply, err := dec.decodeMessage(raw.replyTo, depth+1)
		if err != nil {
			return nil, fmt.Errorf("reply_to_message: %w", err)
		}
		message.ReplyTo = reply
	}

	return message, nil
}

// resolveData selects the message content. Text wins over everything else;
// animation is checked before document and venue before location because the
// Bot API sends both fields for those contents.
func (dec *Decoder) resolveData(raw *rawMessage, depth int) (MessageData, error) {
	if raw.text != nil {
		return decodeText(*raw.text, raw.entities)
	}

	caption, err := decodeCaption(raw)
	if err != nil {
		return nil, err
	}

	switch {
	case raw.animation != nil:
		return AnimationData{Animation: *raw.animation, Caption: caption}, nil
	case raw.audio != nil:
		return AudioData{Audio: *raw.audio, Caption: caption}, nil
	case raw.document != nil:
		return DocumentData{Document: *raw.document, Caption: caption}, nil
	case raw.photo != nil:
		return PhotoData{Photo: raw.photo, Caption: caption}, nil
	case raw.sticker != nil:
		return StickerData{Sticker: *raw.sticker}, nil
	case raw.video != nil:
		return VideoData{Video: *raw.video, Caption: caption}, nil
	case raw.videoNote != nil:
		return VideoNoteData{VideoNote: *raw.videoNote}, nil
	case raw.voice != nil:
		return VoiceData{Voice: *raw.voice, Caption: caption}, nil
	case raw.contact != nil:
		return ContactData{Contact: *raw.contact}, nil
	case raw.venue != nil:
		return VenueData{Venue: *raw.venue}, nil
	case raw.location != nil:
		return LocationData{Location: *raw.location}, nil
	case raw.newChatMembers != nil:
		return NewChatMembersData{Users: raw.newChatMembers}, nil
	case raw.leftChatMember != nil:
		return LeftChatMemberData{User: *raw.leftChatMember}, nil
	case raw.newChatTitle != nil:
		return NewChatTitleData{Title: *raw.newChatTitle}, nil
	case raw.newChatPhoto != nil:
		return NewChatPhotoData{Photo: raw.newChatPhoto}, nil
	case raw.deleteChatPhoto:
		return DeleteChatPhotoData{}, nil
	case raw.groupChatCreated:
		return GroupChatCreatedData{}, nil
	case raw.supergroupChatCreated:
		return SupergroupChatCreatedData{}, nil
	case raw.channelChatCreated:
		return ChannelChatCreatedData{}, nil
	case raw.migrateToChatID != nil:
		return MigrateToChatIDData{ChatID: *raw.migrateToChatID}, nil
	case raw.migrateFromChatID != nil:
		return MigrateFromChatIDData{ChatID: *raw.migrateFromChatID}, nil
	case raw.pinned != nil:
		pinned, err := dec.decodeMessage(raw.pinned, depth+1)
		if err != nil {
			return nil, fmt.Errorf("pinned_message: %w", err)
		}
		return PinnedMessageData{Message: pinned}, nil
	default:
		return nil, &UnrecognizedVariantError{Field: "message data"}
	}
}

func decodeText(data string, raws []RawTextEntity) (Text, error) {
	entities, err := DecodeTextEntities(raws, NewUTF16Text(data))
	if err != nil {
		return Text{}, err
	}

	return Text{Data: data, Entities: entities}, nil
}

// decodeCaption returns the media caption, nil when the message has none.
func decodeCaption(raw *rawMessage) (*Text, error) {
	if raw.caption == nil {
		return nil, nil
	}
	caption, err := decodeText(*raw.caption, raw.captionEntities)
	if err != nil {
		return nil, err
	}

	return &caption, nil
}
