package tgbot

// MessageKind is the closed set of chat contexts a message can belong to:
// ChannelKind, GroupKind, PrivateKind and SupergroupKind.
type MessageKind interface {
	chat() Chat
	sender() *User
	isMessageKind()
}

// ChannelKind is a channel post. Channel posts have no sender; the optional
// author signature takes its place.
type ChannelKind struct {
	Chat            ChannelChat
	AuthorSignature string
}

// GroupKind is a message in a basic group.
type GroupKind struct {
	Chat GroupChat
	From User
}

// PrivateKind is a message in a private chat.
type PrivateKind struct {
	Chat PrivateChat
	From User
}

// SupergroupKind is a message in a supergroup.
type SupergroupKind struct {
	Chat SupergroupChat
	From User
}

func (k ChannelKind) chat() Chat { return k.Chat }
func (k GroupKind) chat() Chat { return k.Chat }
func (k PrivateKind) chat() Chat { return k.Chat }
func (k SupergroupKind) chat() Chat { return k.Chat }
func (ChannelKind) sender() *User { return nil }
func (k GroupKind) sender() *User { return &k.From }
func (k PrivateKind) sender() *User { return &k.From }
func (k SupergroupKind) sender() *User { return &k.From }

func (ChannelKind) isMessageKind() {}
func (GroupKind) isMessageKind() {}
func (PrivateKind) isMessageKind() {}
func (SupergroupKind) isMessageKind() {}

// resolveKind selects the chat context from the chat record's type. Every
// variant except channel requires a sender.
func resolveKind(chat *rawChat, from *User, authorSignature string) (MessageKind, error) {
	if chat == nil {
		return nil, &MissingFieldError{Field: "chat"}
	}
	resolved, err := chat.resolve()
	if err != nil {
		return nil, err
	}

	if channel, ok := resolved.(ChannelChat); ok {
		return ChannelKind{Chat: channel, AuthorSignature: authorSignature}, nil
	}
	if from == nil {
		return nil, &MissingFieldError{Field: "from"}
	}

	switch typed := resolved.(type) {
	case GroupChat:
		return GroupKind{Chat: typed, From: *from}, nil
	case PrivateChat:
		return PrivateKind{Chat: typed, From: *from}, nil
	case SupergroupChat:
		return SupergroupKind{Chat: typed, From: *from}, nil
	default:
		return nil, &UnrecognizedVariantError{Field: "chat type", Value: string(resolved.ChatType())}
	}
}
