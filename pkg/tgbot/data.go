package tgbot

// MessageData is the closed set of message contents. Text is the variant
// that carries entities and bot commands; the rest mirror Bot API content and
// service fields.
type MessageData interface {
	isMessageData()
}

// Text is message text with its decoded entities in input order. Entities is
// nil when the raw message had no entity list.
type Text struct {
	Data     string
	Entities []TextEntity
}

type (
	// AnimationData is a GIF or silent H.264 video, optionally captioned.
	AnimationData struct {
		Animation Animation
		Caption   *Text
	}
	// AudioData is a music file, optionally captioned.
	AudioData struct {
		Audio   Audio
		Caption *Text
	}
	// DocumentData is a general file, optionally captioned.
	DocumentData struct {
		Document Document
		Caption  *Text
	}
	// PhotoData lists the available sizes of one photo, optionally captioned.
	PhotoData struct {
		Photo   []PhotoSize
		Caption *Text
	}
	// StickerData is a sticker.
	StickerData struct {
		Sticker Sticker
	}
	// VideoData is a video, optionally captioned.
	VideoData struct {
		Video   Video
		Caption *Text
	}
	// VideoNoteData is a round video message.
	VideoNoteData struct {
		VideoNote VideoNote
	}
	// VoiceData is a voice note, optionally captioned.
	VoiceData struct {
		Voice   Voice
		Caption *Text
	}
	// ContactData is a shared phone contact.
	ContactData struct {
		Contact Contact
	}
	// LocationData is a shared point on the map.
	LocationData struct {
		Location Location
	}
	// VenueData is a shared venue.
	VenueData struct {
		Venue Venue
	}
	// NewChatMembersData lists users added to the chat.
	NewChatMembersData struct {
		Users []User
	}
	// LeftChatMemberData marks a user removed from the chat.
	LeftChatMemberData struct {
		User User
	}
	// NewChatTitleData marks a chat title change.
	NewChatTitleData struct {
		Title string
	}
	// NewChatPhotoData marks a chat photo change.
	NewChatPhotoData struct {
		Photo []PhotoSize
	}
	// DeleteChatPhotoData marks a deleted chat photo.
	DeleteChatPhotoData struct{}
	// GroupChatCreatedData marks the creation of a basic group.
	GroupChatCreatedData struct{}
	// SupergroupChatCreatedData marks the creation of a supergroup.
	SupergroupChatCreatedData struct{}
	// ChannelChatCreatedData marks the creation of a channel.
	ChannelChatCreatedData struct{}
	// MigrateToChatIDData marks a group upgraded to the supergroup ChatID.
	MigrateToChatIDData struct {
		ChatID int64
	}
	// MigrateFromChatIDData marks a supergroup created from the group ChatID.
	MigrateFromChatIDData struct {
		ChatID int64
	}
	// PinnedMessageData carries the pinned message.
	PinnedMessageData struct {
		Message *Message
	}
)

func (Text) isMessageData() {}
func (AnimationData) isMessageData() {}
func (AudioData) isMessageData() {}
func (DocumentData) isMessageData() {}
func (PhotoData) isMessageData() {}
func (StickerData) isMessageData() {}
func (VideoData) isMessageData() {}
func (VideoNoteData) isMessageData() {}
func (VoiceData) isMessageData() {}
func (ContactData) isMessageData() {}
func (LocationData) isMessageData() {}
func (VenueData) isMessageData() {}
func (NewChatMembersData) isMessageData() {}
func (LeftChatMemberData) isMessageData() {}
func (NewChatTitleData) isMessageData() {}
func (NewChatPhotoData) isMessageData() {}
func (DeleteChatPhotoData) isMessageData() {}
func (GroupChatCreatedData) isMessageData() {}
func (SupergroupChatCreatedData) isMessageData() {}
func (ChannelChatCreatedData) isMessageData() {}
func (MigrateToChatIDData) isMessageData() {}
func (MigrateFromChatIDData) isMessageData() {}
func (PinnedMessageData) isMessageData() {}
