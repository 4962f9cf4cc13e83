package tgbot

import "time"

// Message is one fully decoded and validated message.
//
// Messages are immutable after decoding and share nothing with other
// messages, so they can be handed across goroutines without synchronization.
type Message struct {
	// ID is the message identifier inside its chat.
	ID int64
	// Date is the send time as a Unix timestamp.
	Date int64
	// Kind is the chat context together with the sender.
	Kind MessageKind
	// Data is the message content.
	Data MessageData
	// Forward is set when the message is a forward.
	Forward *Forward
	// ReplyTo is the message this one replies to, decoded in full.
	ReplyTo *Message
	// Commands lists bot commands of a text message in entity order. It is
	// empty for every other content.
	Commands []BotCommand
	// EditDate is the last edit time as a Unix timestamp.
	EditDate int64
	// Edited reports that edit_date was present, even when it is zero.
	Edited bool
	// MediaGroupID groups album items, empty for standalone messages.
	MediaGroupID string
}

// Chat returns the chat record the message belongs to.
func (m *Message) Chat() Chat {
	return m.Kind.chat()
}

// ChatID returns the identifier of the chat the message belongs to.
func (m *Message) ChatID() int64 {
	return m.Kind.chat().ChatID()
}

// ChatUsername returns the chat username, empty when the chat has none.
func (m *Message) ChatUsername() string {
	return m.Kind.chat().ChatUsername()
}

// Sender returns the sending user. It is nil for channel posts.
func (m *Message) Sender() *User {
	return m.Kind.sender()
}

// Text returns the message text, or nil when the content is not text.
func (m *Message) Text() *Text {
	text, ok := m.Data.(Text)
	if !ok {
		return nil
	}

	return &text
}

// IsEdited reports whether the message was edited.
func (m *Message) IsEdited() bool {
	return m.Edited
}

// SentAt returns Date as UTC time.
func (m *Message) SentAt() time.Time {
	return time.Unix(m.Date, 0).UTC()
}

// EditedAt returns the last edit time, zero time when never edited.
func (m *Message) EditedAt() time.Time {
	if !m.IsEdited() {
		return time.Time{}
	}

	return time.Unix(m.EditDate, 0).UTC()
}

// UnmarshalJSON decodes a raw message with the default Decoder so Message can
// be used with encoding/json.
func (m *Message) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeMessage(data)
	if err != nil {
		return err
	}
	*m = *decoded

	return nil
}
