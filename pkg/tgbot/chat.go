package tgbot

import "github.com/go-faster/jx"

// ChatType is the chat record discriminant.
type ChatType string

const (
	// ChatTypeChannel identifies channels.
	ChatTypeChannel ChatType = "channel"
	// ChatTypeGroup identifies basic groups.
	ChatTypeGroup ChatType = "group"
	// ChatTypePrivate identifies one-to-one chats.
	ChatTypePrivate ChatType = "private"
	// ChatTypeSupergroup identifies supergroups.
	ChatTypeSupergroup ChatType = "supergroup"
)

// Chat is the closed set of chat records: ChannelChat, GroupChat, PrivateChat
// and SupergroupChat.
type Chat interface {
	// ChatID returns the chat identifier.
	ChatID() int64
	// ChatType returns the chat discriminant.
	ChatType() ChatType
	// ChatUsername returns the public username, empty when the chat has none.
	ChatUsername() string

	isChat()
}

// ChannelChat is a channel.
type ChannelChat struct {
	ID          int64
	Title       string
	Username    string
	Description string
	InviteLink  string
}

// GroupChat is a basic group.
type GroupChat struct {
	ID                          int64
	Title                       string
	AllMembersAreAdministrators bool
	InviteLink                  string
}

// PrivateChat is a one-to-one chat.
type PrivateChat struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
}

// SupergroupChat is a supergroup.
type SupergroupChat struct {
	ID               int64
	Title            string
	Username         string
	Description      string
	InviteLink       string
	StickerSetName   string
	CanSetStickerSet bool
}

func (c ChannelChat) ChatID() int64 { return c.ID }
func (c ChannelChat) ChatType() ChatType { return ChatTypeChannel }
func (c ChannelChat) ChatUsername() string { return c.Username }
func (ChannelChat) isChat() {}
func (c GroupChat) ChatID() int64 { return c.ID }
func (c GroupChat) ChatType() ChatType { return ChatTypeGroup }
func (c GroupChat) ChatUsername() string { return "" }
func (GroupChat) isChat() {}
func (c PrivateChat) ChatID() int64 { return c.ID }
func (c PrivateChat) ChatType() ChatType { return ChatTypePrivate }
func (c PrivateChat) ChatUsername() string { return c.Username }
func (PrivateChat) isChat() {}
func (c SupergroupChat) ChatID() int64 { return c.ID }
func (c SupergroupChat) ChatType() ChatType { return ChatTypeSupergroup }
func (c SupergroupChat) ChatUsername() string { return c.Username }
func (SupergroupChat) isChat() {}

// rawChat holds the union of chat fields before the discriminant is applied.
type rawChat struct {
	id      int64
	hasID   bool
	kind    string
	hasKind bool

	title                       string
	username                    string
	firstName                   string
	lastName                    string
	description                 string
	inviteLink                  string
	stickerSetName              string
	allMembersAreAdministrators bool
	canSetStickerSet            bool
}

func (c *rawChat) decode(d *jx.Decoder) error {
	err := decodeObject(d, "chat", func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			c.hasID = true
			return readInt64(d, key, &c.id)
		case "type":
			c.hasKind = true
			return readString(d, key, &c.kind)
		case "title":
			return readString(d, key, &c.title)
		case "username":
			return readString(d, key, &c.username)
		case "first_name":
			return readString(d, key, &c.firstName)
		case "last_name":
			return readString(d, key, &c.lastName)
		case "description":
			return readString(d, key, &c.description)
		case "invite_link":
			return readString(d, key, &c.inviteLink)
		case "sticker_set_name":
			return readString(d, key, &c.stickerSetName)
		case "all_members_are_administrators":
			return readBool(d, key, &c.allMembersAreAdministrators)
		case "can_set_sticker_set":
			return readBool(d, key, &c.canSetStickerSet)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return err
	}
	if !c.hasID {
		return &MissingFieldError{Field: "id"}
	}
	if !c.hasKind {
		return &MissingFieldError{Field: "type"}
	}

	return nil
}

// resolve selects the chat variant from the record's own type field.
func (c *rawChat) resolve() (Chat, error) {
	switch ChatType(c.kind) {
	case ChatTypeChannel:
		return ChannelChat{
			ID:          c.id,
			Title:       c.title,
			Username:    c.username,
			Description: c.description,
			InviteLink:  c.inviteLink,
		}, nil
	case ChatTypeGroup:
		return GroupChat{
			ID:                          c.id,
			Title:                       c.title,
			AllMembersAreAdministrators: c.allMembersAreAdministrators,
			InviteLink:                  c.inviteLink,
		}, nil
	case ChatTypePrivate:
		return PrivateChat{
			ID:        c.id,
			FirstName: c.firstName,
			LastName:  c.lastName,
			Username:  c.username,
		}, nil
	case ChatTypeSupergroup:
		return SupergroupChat{
			ID:               c.id,
			Title:            c.title,
			Username:         c.username,
			Description:      c.description,
			InviteLink:       c.inviteLink,
			StickerSetName:   c.stickerSetName,
			CanSetStickerSet: c.canSetStickerSet,
		}, nil
	default:
		return nil, &UnrecognizedVariantError{Field: "chat type", Value: c.kind}
	}
}

// readOptChat decodes a present, non-null chat record and leaves dst nil otherwise.
func readOptChat(d *jx.Decoder, dst **rawChat) error {
	if null, err := consumeNull(d); err != nil || null {
		return err
	}
	chat := new(rawChat)
	if err := chat.decode(d); err != nil {
		return err
	}
	*dst = chat

	return nil
}
