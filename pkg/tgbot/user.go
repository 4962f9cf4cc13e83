package tgbot

import "github.com/go-faster/jx"

// User is a Telegram user or bot.
type User struct {
	// ID is the unique user identifier.
	ID int64
	// IsBot reports whether the user is a bot.
	IsBot bool
	// FirstName is the user's first name.
	FirstName string
	// LastName is the optional last name.
	LastName string
	// Username is the optional username without the leading '@'.
	Username string
	// LanguageCode is the optional IETF language tag of the user's client.
	LanguageCode string
}

// Decode reads one user object. id and first_name are required.
func (u *User) Decode(d *jx.Decoder) error {
	var hasID, hasFirstName bool
	err := decodeObject(d, "user", func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			hasID = true
			return readInt64(d, key, &u.ID)
		case "is_bot":
			return readBool(d, key, &u.IsBot)
		case "first_name":
			hasFirstName = true
			return readString(d, key, &u.FirstName)
		case "last_name":
			return readString(d, key, &u.LastName)
		case "username":
			return readString(d, key, &u.Username)
		case "language_code":
			return readString(d, key, &u.LanguageCode)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return err
	}
	if !hasID {
		return &MissingFieldError{Field: "id"}
	}
	if !hasFirstName {
		return &MissingFieldError{Field: "first_name"}
	}

	return nil
}

// readOptUser decodes a present, non-null user and leaves dst nil otherwise.
func readOptUser(d *jx.Decoder, dst **User) error {
	if null, err := consumeNull(d); err != nil || null {
		return err
	}
	user := new(User)
	if err := user.Decode(d); err != nil {
		return err
	}
	*dst = user

	return nil
}
