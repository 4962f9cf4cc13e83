package tgbot

import (
	"errors"

	"github.com/go-faster/jx"
)

// TextEntityType is the raw entity type tag.
type TextEntityType string

// Entity type tags as sent by the Bot API in the "type" field.
const (
	TextEntityTypeBold          TextEntityType = "bold"
	TextEntityTypeItalic        TextEntityType = "italic"
	TextEntityTypeUnderline     TextEntityType = "underline"
	TextEntityTypeStrikethrough TextEntityType = "strikethrough"
	TextEntityTypeSpoiler       TextEntityType = "spoiler"
	TextEntityTypeCode          TextEntityType = "code"
	TextEntityTypePre           TextEntityType = "pre"
	TextEntityTypeCashtag       TextEntityType = "cashtag"
	TextEntityTypeEmail         TextEntityType = "email"
	TextEntityTypeHashtag       TextEntityType = "hashtag"
	TextEntityTypeMention       TextEntityType = "mention"
	TextEntityTypePhoneNumber   TextEntityType = "phone_number"
	TextEntityTypeURL           TextEntityType = "url"
	TextEntityTypeBotCommand    TextEntityType = "bot_command"
	TextEntityTypeTextLink      TextEntityType = "text_link"
	TextEntityTypeTextMention   TextEntityType = "text_mention"
)

// TextEntity is the closed set of decoded entities. Consumers type-switch over
// the concrete types declared in this file.
type TextEntity interface {
	// EntityType returns the raw type tag the entity was decoded from.
	EntityType() TextEntityType
	// Span returns the covered text span.
	Span() TextEntityData

	isTextEntity()
}

// Span returns the span itself so plain-span entities get it by embedding.
func (d TextEntityData) Span() TextEntityData {
	return d
}

type (
	// Bold is bold text.
	Bold struct{ TextEntityData }
	// Italic is italic text.
	Italic struct{ TextEntityData }
	// Underline is underlined text.
	Underline struct{ TextEntityData }
	// Strikethrough is struck-through text.
	Strikethrough struct{ TextEntityData }
	// Spoiler is hidden spoiler text.
	Spoiler struct{ TextEntityData }
	// Code is a monowidth string.
	Code struct{ TextEntityData }
	// Cashtag is a "$USD" style tag.
	Cashtag struct{ TextEntityData }
	// Email is an email address.
	Email struct{ TextEntityData }
	// Hashtag is a "#hashtag".
	Hashtag struct{ TextEntityData }
	// Mention is an "@username" mention.
	Mention struct{ TextEntityData }
	// PhoneNumber is a phone number.
	PhoneNumber struct{ TextEntityData }
	// URL is a plain URL in the text.
	URL struct{ TextEntityData }
)

// Pre is a monowidth block with an optional programming language.
type Pre struct {
	TextEntityData
	Language string
}

// TextLink is clickable text pointing at URL.
type TextLink struct {
	TextEntityData
	URL string
}

// TextMention mentions a user that has no username.
type TextMention struct {
	TextEntityData
	User User
}

// UnknownEntity holds an entity whose type tag this package does not know.
type UnknownEntity struct {
	TextEntityData
	// Tag is the raw type tag as received.
	Tag string
}

func (Bold) EntityType() TextEntityType { return TextEntityTypeBold }
func (Italic) EntityType() TextEntityType { return TextEntityTypeItalic }
func (Underline) EntityType() TextEntityType { return TextEntityTypeUnderline }
func (Strikethrough) EntityType() TextEntityType { return TextEntityTypeStrikethrough }
func (Spoiler) EntityType() TextEntityType { return TextEntityTypeSpoiler }
func (Code) EntityType() TextEntityType { return TextEntityTypeCode }
func (Pre) EntityType() TextEntityType { return TextEntityTypePre }
func (Cashtag) EntityType() TextEntityType { return TextEntityTypeCashtag }
func (Email) EntityType() TextEntityType { return TextEntityTypeEmail }
func (Hashtag) EntityType() TextEntityType { return TextEntityTypeHashtag }
func (Mention) EntityType() TextEntityType { return TextEntityTypeMention }
func (PhoneNumber) EntityType() TextEntityType { return TextEntityTypePhoneNumber }
func (URL) EntityType() TextEntityType { return TextEntityTypeURL }
func (TextLink) EntityType() TextEntityType { return TextEntityTypeTextLink }
func (TextMention) EntityType() TextEntityType { return TextEntityTypeTextMention }
func (e UnknownEntity) EntityType() TextEntityType { return TextEntityType(e.Tag) }

func (Bold) isTextEntity() {}
func (Italic) isTextEntity() {}
func (Underline) isTextEntity() {}
func (Strikethrough) isTextEntity() {}
func (Spoiler) isTextEntity() {}
func (Code) isTextEntity() {}
func (Pre) isTextEntity() {}
func (Cashtag) isTextEntity() {}
func (Email) isTextEntity() {}
func (Hashtag) isTextEntity() {}
func (Mention) isTextEntity() {}
func (PhoneNumber) isTextEntity() {}
func (URL) isTextEntity() {}
func (TextLink) isTextEntity() {}
func (TextMention) isTextEntity() {}
func (UnknownEntity) isTextEntity() {}

// RawTextEntity is one entry of a raw "entities" list.
type RawTextEntity struct {
	Type   string
	Offset int
	Length int
	// URL is set only when the raw entity carries "url".
	URL *string
	// User is set only when the raw entity carries "user".
	User     *User
	Language string
}

// Decode reads one raw entity object. type, offset and length are required.
func (e *RawTextEntity) Decode(d *jx.Decoder) error {
	var hasType, hasOffset, hasLength bool
	err := decodeObject(d, "entity", func(d *jx.Decoder, key string) error {
		switch key {
		case "type":
			hasType = true
			return readString(d, key, &e.Type)
		case "offset":
			hasOffset = true
			return readInt(d, key, &e.Offset)
		case "length":
			hasLength = true
			return readInt(d, key, &e.Length)
		case "url":
			return readOptString(d, key, &e.URL)
		case "user":
			return readOptUser(d, &e.User)
		case "language":
			return readString(d, key, &e.Language)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return err
	}

	switch {
	case !hasType:
		return &MissingFieldError{Field: "type"}
	case !hasOffset:
		return &MissingFieldError{Field: "offset"}
	case !hasLength:
		return &MissingFieldError{Field: "length"}
	}

	return nil
}

func decodeRawTextEntities(d *jx.Decoder) ([]RawTextEntity, error) {
	if null, err := consumeNull(d); err != nil || null {
		return nil, err
	}
	entities := make([]RawTextEntity, 0)
	if err := d.Arr(func(d *jx.Decoder) error {
		var entity RawTextEntity
		if err := entity.Decode(d); err != nil {
			return err
		}
		entities = append(entities, entity)
		return nil
	}); err != nil {
		return nil, err
	}

	return entities, nil
}

// DecodeTextEntity converts one raw entity into its typed variant.
//
// Bounds and companion field failures are returned as *EntityDecodeError.
func DecodeTextEntity(raw RawTextEntity, text UTF16Text) (TextEntity, error) {
	data, err := text.Extract(raw.Offset, raw.Length)
	if err != nil {
		return nil, &EntityDecodeError{Kind: EntityErrorFailedToParseText, Cause: err}
	}

	switch TextEntityType(raw.Type) {
	case TextEntityTypeBold:
		return Bold{data}, nil
	case TextEntityTypeItalic:
		return Italic{data}, nil
	case TextEntityTypeUnderline:
		return Underline{data}, nil
	case TextEntityTypeStrikethrough:
		return Strikethrough{data}, nil
	case TextEntityTypeSpoiler:
		return Spoiler{data}, nil
	case TextEntityTypeCode:
		return Code{data}, nil
	case TextEntityTypePre:
		return Pre{TextEntityData: data, Language: raw.Language}, nil
	case TextEntityTypeCashtag:
		return Cashtag{data}, nil
	case TextEntityTypeEmail:
		return Email{data}, nil
	case TextEntityTypeHashtag:
		return Hashtag{data}, nil
	case TextEntityTypeMention:
		return Mention{data}, nil
	case TextEntityTypePhoneNumber:
		return PhoneNumber{data}, nil
	case TextEntityTypeURL:
		return URL{data}, nil
	case TextEntityTypeBotCommand:
		return ParseBotCommand(data), nil
	case TextEntityTypeTextLink:
		if raw.URL == nil {
			return nil, &EntityDecodeError{
				Kind:  EntityErrorFailedToParseText,
				Cause: &CompanionFieldError{EntityType: TextEntityTypeTextLink, Field: "url"},
			}
		}
		return TextLink{TextEntityData: data, URL: *raw.URL}, nil
	case TextEntityTypeTextMention:
		if raw.User == nil {
			return nil, &EntityDecodeError{
				Kind:  EntityErrorFailedToParseText,
				Cause: &CompanionFieldError{EntityType: TextEntityTypeTextMention, Field: "user"},
			}
		}
		return TextMention{TextEntityData: data, User: *raw.User}, nil
	default:
		// Deliberately lenient: Telegram adds entity types over time, and one
		// new tag must not make the whole message undecodable. The span is
		// still bounds-checked and the raw tag is kept.
		return UnknownEntity{TextEntityData: data, Tag: raw.Type}, nil
	}
}

// DecodeTextEntities decodes raw entities in input order. The first failure
// aborts decoding and carries the failing index.
func DecodeTextEntities(raws []RawTextEntity, text UTF16Text) ([]TextEntity, error) {
	if raws == nil {
		return nil, nil
	}

	entities := make([]TextEntity, 0, len(raws))
	for index, raw := range raws {
		entity, err := DecodeTextEntity(raw, text)
		if err != nil {
			var entityErr *EntityDecodeError
			if errors.As(err, &entityErr) {
				entityErr.Index = index
			}
			return nil, err
		}
		entities = append(entities, entity)
	}

	return entities, nil
}
