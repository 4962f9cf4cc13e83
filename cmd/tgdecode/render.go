package main

import (
	"fmt"
	"io"

	"tgbot/internal/driver/telegram"
	"tgbot/internal/kernel"
	"tgbot/pkg/tgbot"

	"github.com/go-faster/jx"
)

// renderer writes one JSON line per decode result.
type renderer struct {
	w   io.Writer
	enc jx.Encoder
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{w: w}
}

// Render writes the summary of one result tagged with its input sequence.
func (r *renderer) Render(sequence int, result kernel.Result) error {
	r.enc.Reset()
	r.enc.Obj(func(e *jx.Encoder) {
		e.Field("sequence", func(e *jx.Encoder) { e.Int(sequence) })
		if result.Err != nil {
			e.Field("error", func(e *jx.Encoder) { e.Str(result.Err.Error()) })
			return
		}
		encodeUpdate(e, result.Update)
	})

	line := append(r.enc.Bytes(), '\n')
	if _, err := r.w.Write(line); err != nil {
		return fmt.Errorf("render result %d: %w", sequence, err)
	}

	return nil
}

func encodeUpdate(e *jx.Encoder, update *tgbot.Update) {
	e.Field("update_id", func(e *jx.Encoder) { e.Int64(update.ID) })
	e.Field("kind", func(e *jx.Encoder) { e.Str(string(update.Kind)) })
	if update.Field != "" {
		e.Field("field", func(e *jx.Encoder) { e.Str(update.Field) })
	}
	if update.Message != nil {
		e.Field("message", func(e *jx.Encoder) { encodeMessage(e, update.Message) })
	}
}

func encodeMessage(e *jx.Encoder, message *tgbot.Message) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Int64(message.ID) })
		e.Field("date", func(e *jx.Encoder) { e.Int64(message.Date) })
		if message.IsEdited() {
			e.Field("edit_date", func(e *jx.Encoder) { e.Int64(message.EditDate) })
		}
		e.Field("chat", func(e *jx.Encoder) { encodeChat(e, message.Chat()) })
		if sender := message.Sender(); sender != nil {
			e.Field("sender", func(e *jx.Encoder) { encodeUser(e, *sender) })
		}
		if channel, ok := message.Kind.(tgbot.ChannelKind); ok && channel.AuthorSignature != "" {
			e.Field("author_signature", func(e *jx.Encoder) { e.Str(channel.AuthorSignature) })
		}
		if message.MediaGroupID != "" {
			e.Field("media_group_id", func(e *jx.Encoder) { e.Str(message.MediaGroupID) })
		}

		e.Field("data", func(e *jx.Encoder) { e.Str(dataType(message.Data)) })
		if text := message.Text(); text != nil {
			e.Field("text", func(e *jx.Encoder) { encodeText(e, *text) })
		} else if caption := telegram.MessageCaption(message); caption != nil {
			e.Field("caption", func(e *jx.Encoder) { encodeText(e, *caption) })
		}
		if len(message.Commands) > 0 {
			e.Field("commands", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, command := range message.Commands {
						encodeCommand(e, command)
					}
				})
			})
		}
		if pinned, ok := message.Data.(tgbot.PinnedMessageData); ok && pinned.Message != nil {
			e.Field("pinned_message_id", func(e *jx.Encoder) { e.Int64(pinned.Message.ID) })
		}

		if message.Forward != nil {
			e.Field("forward", func(e *jx.Encoder) { encodeForward(e, *message.Forward) })
		}
		if message.ReplyTo != nil {
			e.Field("reply_to_message_id", func(e *jx.Encoder) { e.Int64(message.ReplyTo.ID) })
		}
	})
}

func encodeChat(e *jx.Encoder, chat tgbot.Chat) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Int64(chat.ChatID()) })
		e.Field("type", func(e *jx.Encoder) { e.Str(string(chat.ChatType())) })
		if username := chat.ChatUsername(); username != "" {
			e.Field("username", func(e *jx.Encoder) { e.Str(username) })
		}
	})
}

func encodeUser(e *jx.Encoder, user tgbot.User) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Int64(user.ID) })
		e.Field("first_name", func(e *jx.Encoder) { e.Str(user.FirstName) })
		if user.Username != "" {
			e.Field("username", func(e *jx.Encoder) { e.Str(user.Username) })
		}
		if user.IsBot {
			e.Field("is_bot", func(e *jx.Encoder) { e.Bool(true) })
		}
	})
}

// encodeText writes the text with its entities. Each entity also carries the
// MTProto constructor it maps to.
func encodeText(e *jx.Encoder, text tgbot.Text) {
	mapped := telegram.MapTextEntities(text.Entities)
	e.Obj(func(e *jx.Encoder) {
		e.Field("data", func(e *jx.Encoder) { e.Str(text.Data) })
		if len(text.Entities) == 0 {
			return
		}
		e.Field("entities", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				index := 0
				for _, entity := range text.Entities {
					if entity == nil {
						continue
					}
					encodeEntity(e, entity, mapped[index].TypeName())
					index++
				}
			})
		})
	})
}

func encodeEntity(e *jx.Encoder, entity tgbot.TextEntity, mtproto string) {
	span := entity.Span()
	e.Obj(func(e *jx.Encoder) {
		e.Field("type", func(e *jx.Encoder) { e.Str(string(entity.EntityType())) })
		e.Field("offset", func(e *jx.Encoder) { e.Int(span.Offset) })
		e.Field("length", func(e *jx.Encoder) { e.Int(span.Length) })
		e.Field("data", func(e *jx.Encoder) { e.Str(span.Data) })
		e.Field("mtproto", func(e *jx.Encoder) { e.Str(mtproto) })

		switch typed := entity.(type) {
		case tgbot.Pre:
			if typed.Language != "" {
				e.Field("language", func(e *jx.Encoder) { e.Str(typed.Language) })
			}
		case tgbot.TextLink:
			e.Field("url", func(e *jx.Encoder) { e.Str(typed.URL) })
		case tgbot.TextMention:
			e.Field("user_id", func(e *jx.Encoder) { e.Int64(typed.User.ID) })
		}
	})
}

func encodeCommand(e *jx.Encoder, command tgbot.BotCommand) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("command", func(e *jx.Encoder) { e.Str(command.Command) })
		if command.BotName != "" {
			e.Field("bot_name", func(e *jx.Encoder) { e.Str(command.BotName) })
		}
	})
}

func encodeForward(e *jx.Encoder, forward tgbot.Forward) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("date", func(e *jx.Encoder) { e.Int64(forward.Date) })
		switch from := forward.From.(type) {
		case tgbot.ForwardFromUser:
			e.Field("origin", func(e *jx.Encoder) { e.Str("user") })
			e.Field("user", func(e *jx.Encoder) { encodeUser(e, from.User) })
		case tgbot.ForwardFromChannel:
			e.Field("origin", func(e *jx.Encoder) { e.Str("channel") })
			e.Field("chat", func(e *jx.Encoder) { encodeChat(e, from.Chat) })
			e.Field("message_id", func(e *jx.Encoder) { e.Int64(from.MessageID) })
			if from.Signature != "" {
				e.Field("signature", func(e *jx.Encoder) { e.Str(from.Signature) })
			}
		case tgbot.ForwardFromHiddenUser:
			e.Field("origin", func(e *jx.Encoder) { e.Str("hidden_user") })
			e.Field("name", func(e *jx.Encoder) { e.Str(from.Name) })
		}
	})
}

// dataType names the message content variant.
func dataType(data tgbot.MessageData) string {
	switch data.(type) {
	case tgbot.Text:
		return "text"
	case tgbot.AnimationData:
		return "animation"
	case tgbot.AudioData:
		return "audio"
	case tgbot.DocumentData:
		return "document"
	case tgbot.PhotoData:
		return "photo"
	case tgbot.StickerData:
		return "sticker"
	case tgbot.VideoData:
		return "video"
	case tgbot.VideoNoteData:
		return "video_note"
	case tgbot.VoiceData:
		return "voice"
	case tgbot.ContactData:
		return "contact"
	case tgbot.LocationData:
		return "location"
	case tgbot.VenueData:
		return "venue"
	case tgbot.NewChatMembersData:
		return "new_chat_members"
	case tgbot.LeftChatMemberData:
		return "left_chat_member"
	case tgbot.NewChatTitleData:
		return "new_chat_title"
	case tgbot.NewChatPhotoData:
		return "new_chat_photo"
	case tgbot.DeleteChatPhotoData:
		return "delete_chat_photo"
	case tgbot.GroupChatCreatedData:
		return "group_chat_created"
	case tgbot.SupergroupChatCreatedData:
		return "supergroup_chat_created"
	case tgbot.ChannelChatCreatedData:
		return "channel_chat_created"
	case tgbot.MigrateToChatIDData:
		return "migrate_to_chat_id"
	case tgbot.MigrateFromChatIDData:
		return "migrate_from_chat_id"
	case tgbot.PinnedMessageData:
		return "pinned_message"
	default:
		return "unknown"
	}
}
