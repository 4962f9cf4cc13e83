package tgbot

import "github.com/go-faster/jx"

// rawMessage is one message record as received. Pointer and has* fields keep
// field presence, which the resolvers depend on. Embedded messages stay raw
// until the assembler decodes them against its depth budget.
type rawMessage struct {
	id      int64
	hasID   bool
	date    int64
	hasDate bool

	chat            *rawChat
	from            *User
	authorSignature string
	editDate        int64
	hasEditDate     bool
	mediaGroupID    string

	forward rawForward

	replyTo jx.Raw
	pinned  jx.Raw

	text            *string
	entities        []RawTextEntity
	caption         *string
	captionEntities []RawTextEntity

	animation *Animation
	audio     *Audio
	document  *Document
	photo     []PhotoSize
	sticker   *Sticker
	video     *Video
	videoNote *VideoNote
	voice     *Voice
	contact   *Contact
	location  *Location
	venue     *Venue

	newChatMembers        []User
	leftChatMember        *User
	newChatTitle          *string
	newChatPhoto          []PhotoSize
	deleteChatPhoto       bool
	groupChatCreated      bool
	supergroupChatCreated bool
	channelChatCreated    bool
	migrateToChatID       *int64
	migrateFromChatID     *int64
}

func (m *rawMessage) decode(d *jx.Decoder) error {
	err := decodeObject(d, "message", func(d *jx.Decoder, key string) error {
		if null, err := consumeNull(d); err != nil || null {
			return err
		}

		var err error
		switch key {
		case "message_id":
			m.hasID = true
			return readInt64(d, key, &m.id)
		case "date":
			m.hasDate = true
			return readInt64(d, key, &m.date)
		case "chat":
			return readOptChat(d, &m.chat)
		case "from":
			return readOptUser(d, &m.from)
		case "author_signature":
			return readString(d, key, &m.authorSignature)
		case "edit_date":
			m.hasEditDate = true
			return readInt64(d, key, &m.editDate)
		case "media_group_id":
			return readString(d, key, &m.mediaGroupID)

		case "forward_from":
			return readOptUser(d, &m.forward.from)
		case "forward_from_chat":
			return readOptChat(d, &m.forward.fromChat)
		case "forward_from_message_id":
			return readOptInt64(d, key, &m.forward.fromMessageID)
		case "forward_signature":
			return readString(d, key, &m.forward.signature)
		case "forward_sender_name":
			return readOptString(d, key, &m.forward.senderName)
		case "forward_date":
			return readOptInt64(d, key, &m.forward.date)

		case "reply_to_message":
			m.replyTo, err = readRaw(d, key)
		case "pinned_message":
			m.pinned, err = readRaw(d, key)

		case "text":
			return readOptString(d, key, &m.text)
		case "entities":
			m.entities, err = decodeRawTextEntities(d)
		case "caption":
			return readOptString(d, key, &m.caption)
		case "caption_entities":
			m.captionEntities, err = decodeRawTextEntities(d)

		case "animation":
			m.animation = new(Animation)
			err = m.animation.Decode(d)
		case "audio":
			m.audio = new(Audio)
			err = m.audio.Decode(d)
		case "document":
			m.document = new(Document)
			err = m.document.Decode(d)
		case "photo":
			m.photo, err = decodePhotoSizes(d)
		case "sticker":
			m.sticker = new(Sticker)
			err = m.sticker.Decode(d)
		case "video":
			m.video = new(Video)
			err = m.video.Decode(d)
		case "video_note":
			m.videoNote = new(VideoNote)
			err = m.videoNote.Decode(d)
		case "voice":
			m.voice = new(Voice)
			err = m.voice.Decode(d)
		case "contact":
			m.contact = new(Contact)
			err = m.contact.Decode(d)
		case "location":
			m.location = new(Location)
			err = m.location.Decode(d)
		case "venue":
			m.venue = new(Venue)
			err = m.venue.Decode(d)

		case "new_chat_members":
			m.newChatMembers, err = decodeUsers(d)
		case "left_chat_member":
			return readOptUser(d, &m.leftChatMember)
		case "new_chat_title":
			return readOptString(d, key, &m.newChatTitle)
		case "new_chat_photo":
			m.newChatPhoto, err = decodePhotoSizes(d)
		case "delete_chat_photo":
			return readBool(d, key, &m.deleteChatPhoto)
		case "group_chat_created":
			return readBool(d, key, &m.groupChatCreated)
		case "supergroup_chat_created":
			return readBool(d, key, &m.supergroupChatCreated)
		case "channel_chat_created":
			return readBool(d, key, &m.channelChatCreated)
		case "migrate_to_chat_id":
			return readOptInt64(d, key, &m.migrateToChatID)
		case "migrate_from_chat_id":
			return readOptInt64(d, key, &m.migrateFromChatID)
		default:
			return d.Skip()
		}

		return err
	})
	if err != nil {
		return err
	}

	switch {
	case !m.hasID:
		return &MissingFieldError{Field: "message_id"}
	case !m.hasDate:
		return &MissingFieldError{Field: "date"}
	case m.chat == nil:
		return &MissingFieldError{Field: "chat"}
	}

	return nil
}
