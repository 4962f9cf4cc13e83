package tgbot

// forwardCombinationMessage is the diagnostic for unresolvable forward fields.
// Existing consumers match on this exact text.
const forwardCombinationMessage = "Unexpected forward_* fields combination"

// Forward describes where a forwarded message originally came from.
type Forward struct {
	// Date is the original send time as a Unix timestamp.
	Date int64
	// From is the resolved origin.
	From ForwardFrom
}

// ForwardFrom is the closed set of forward origins: ForwardFromUser,
// ForwardFromChannel and ForwardFromHiddenUser.
type ForwardFrom interface {
	isForwardFrom()
}

// ForwardFromUser is a message forwarded from a user.
type ForwardFromUser struct {
	User User
}

// ForwardFromChannel is a post forwarded from a channel.
type ForwardFromChannel struct {
	Chat      ChannelChat
	MessageID int64
	// Signature is the post author signature, empty when absent.
	Signature string
}

// ForwardFromHiddenUser is a message forwarded from a user who hides their
// account in forwards; only the display name is known.
type ForwardFromHiddenUser struct {
	Name string
}

func (ForwardFromUser) isForwardFrom() {}
func (ForwardFromChannel) isForwardFrom() {}
func (ForwardFromHiddenUser) isForwardFrom() {}

// rawForward groups the forward_* fields of one raw message.
type rawForward struct {
	date          *int64
	from          *User
	fromChat      *rawChat
	fromMessageID *int64
	signature     string
	senderName    *string
}

// resolveForward maps the forward_* field group to exactly one origin.
//
// Without forward_date the message is not a forward, whatever else is set.
// With it, a combination that matches no origin is an error.
func resolveForward(raw rawForward) (*Forward, error) {
	if raw.date == nil {
		return nil, nil
	}

	switch {
	case raw.from != nil && raw.fromChat == nil:
		return &Forward{Date: *raw.date, From: ForwardFromUser{User: *raw.from}}, nil
	case raw.fromChat != nil && raw.from == nil && raw.fromMessageID != nil:
		chat, err := raw.fromChat.resolve()
		if err != nil {
			return nil, err
		}
		channel, ok := chat.(ChannelChat)
		if !ok {
			return nil, &InvalidCombinationError{Description: forwardCombinationMessage}
		}
		return &Forward{
			Date: *raw.date,
			From: ForwardFromChannel{
				Chat:      channel,
				MessageID: *raw.fromMessageID,
				Signature: raw.signature,
			},
		}, nil
	case raw.from == nil && raw.fromChat == nil && raw.senderName != nil:
		return &Forward{Date: *raw.date, From: ForwardFromHiddenUser{Name: *raw.senderName}}, nil
	default:
		return nil, &InvalidCombinationError{Description: forwardCombinationMessage}
	}
}
