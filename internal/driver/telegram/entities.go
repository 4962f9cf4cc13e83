package telegram

import (
	"fmt"
	"strings"

	"tgbot/pkg/tgbot"

	"github.com/gotd/td/tg"
)

// MapTextEntities converts decoded Bot API entities into MTProto entities.
// Offsets stay in UTF-16 code units, which both APIs share.
func MapTextEntities(entities []tgbot.TextEntity) []tg.MessageEntityClass {
	if len(entities) == 0 {
		return nil
	}

	out := make([]tg.MessageEntityClass, 0, len(entities))
	for _, entity := range entities {
		if entity == nil {
			continue
		}
		out = append(out, mapTextEntity(entity))
	}

	return out
}

func mapTextEntity(entity tgbot.TextEntity) tg.MessageEntityClass {
	span := entity.Span()
	offset, length := span.Offset, span.Length

	switch typed := entity.(type) {
	case tgbot.Bold:
		return &tg.MessageEntityBold{Offset: offset, Length: length}
	case tgbot.Italic:
		return &tg.MessageEntityItalic{Offset: offset, Length: length}
	case tgbot.Underline:
		return &tg.MessageEntityUnderline{Offset: offset, Length: length}
	case tgbot.Strikethrough:
		return &tg.MessageEntityStrike{Offset: offset, Length: length}
	case tgbot.Spoiler:
		return &tg.MessageEntitySpoiler{Offset: offset, Length: length}
	case tgbot.Code:
		return &tg.MessageEntityCode{Offset: offset, Length: length}
	case tgbot.Pre:
		return &tg.MessageEntityPre{Offset: offset, Length: length, Language: typed.Language}
	case tgbot.Cashtag:
		return &tg.MessageEntityCashtag{Offset: offset, Length: length}
	case tgbot.Email:
		return &tg.MessageEntityEmail{Offset: offset, Length: length}
	case tgbot.Hashtag:
		return &tg.MessageEntityHashtag{Offset: offset, Length: length}
	case tgbot.Mention:
		return &tg.MessageEntityMention{Offset: offset, Length: length}
	case tgbot.PhoneNumber:
		return &tg.MessageEntityPhone{Offset: offset, Length: length}
	case tgbot.URL:
		return &tg.MessageEntityURL{Offset: offset, Length: length}
	case tgbot.BotCommand:
		return &tg.MessageEntityBotCommand{Offset: offset, Length: length}
	case tgbot.TextLink:
		return &tg.MessageEntityTextURL{Offset: offset, Length: length, URL: typed.URL}
	case tgbot.TextMention:
		return &tg.MessageEntityMentionName{Offset: offset, Length: length, UserID: typed.User.ID}
	default:
		return &tg.MessageEntityUnknown{Offset: offset, Length: length}
	}
}

// DecodeTelegramEntities converts MTProto entities of text into decoded
// entities, applying the same bounds and companion checks as Bot API input.
//
// MTProto mention entities carry only the user id, so a decoded TextMention
// holds a User with ID set and every other field empty. Callers that need the
// name must resolve the user themselves.
func DecodeTelegramEntities(text string, entities []tg.MessageEntityClass) ([]tgbot.TextEntity, error) {
	if len(entities) == 0 {
		return nil, nil
	}

	raws := make([]tgbot.RawTextEntity, 0, len(entities))
	for _, entity := range entities {
		if entity == nil {
			continue
		}
		raws = append(raws, rawTextEntity(entity))
	}

	decoded, err := tgbot.DecodeTextEntities(raws, tgbot.NewUTF16Text(text))
	if err != nil {
		return nil, fmt.Errorf("decode telegram entities: %w", err)
	}

	return decoded, nil
}

func rawTextEntity(entity tg.MessageEntityClass) tgbot.RawTextEntity {
	raw := tgbot.RawTextEntity{
		Type:   EntityTypeName(entity),
		Offset: entity.GetOffset(),
		Length: entity.GetLength(),
	}

	switch typed := entity.(type) {
	case *tg.MessageEntityPre:
		raw.Language = typed.Language
	case *tg.MessageEntityTextURL:
		url := typed.URL
		raw.URL = &url
	case *tg.MessageEntityMentionName:
		// Only the id is known; first_name stays empty.
		raw.User = &tgbot.User{ID: typed.UserID}
	}

	return raw
}

// EntityTypeName returns the Bot API type tag for one MTProto entity.
// Entities without a Bot API counterpart get their lowered MTProto name.
func EntityTypeName(entity tg.MessageEntityClass) string {
	switch entity.(type) {
	case *tg.MessageEntityBold:
		return string(tgbot.TextEntityTypeBold)
	case *tg.MessageEntityItalic:
		return string(tgbot.TextEntityTypeItalic)
	case *tg.MessageEntityUnderline:
		return string(tgbot.TextEntityTypeUnderline)
	case *tg.MessageEntityStrike:
		return string(tgbot.TextEntityTypeStrikethrough)
	case *tg.MessageEntitySpoiler:
		return string(tgbot.TextEntityTypeSpoiler)
	case *tg.MessageEntityCode:
		return string(tgbot.TextEntityTypeCode)
	case *tg.MessageEntityPre:
		return string(tgbot.TextEntityTypePre)
	case *tg.MessageEntityCashtag:
		return string(tgbot.TextEntityTypeCashtag)
	case *tg.MessageEntityEmail:
		return string(tgbot.TextEntityTypeEmail)
	case *tg.MessageEntityHashtag:
		return string(tgbot.TextEntityTypeHashtag)
	case *tg.MessageEntityMention:
		return string(tgbot.TextEntityTypeMention)
	case *tg.MessageEntityPhone:
		return string(tgbot.TextEntityTypePhoneNumber)
	case *tg.MessageEntityURL:
		return string(tgbot.TextEntityTypeURL)
	case *tg.MessageEntityBotCommand:
		return string(tgbot.TextEntityTypeBotCommand)
	case *tg.MessageEntityTextURL:
		return string(tgbot.TextEntityTypeTextLink)
	case *tg.MessageEntityMentionName:
		return string(tgbot.TextEntityTypeTextMention)
	case *tg.MessageEntityBankCard:
		return "bank_card"
	case *tg.MessageEntityCustomEmoji:
		return "custom_emoji"
	default:
		return strings.ToLower(strings.TrimPrefix(entity.TypeName(), "messageEntity"))
	}
}
