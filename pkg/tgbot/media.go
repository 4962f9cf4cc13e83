package tgbot

import "github.com/go-faster/jx"

// File holds the fields shared by every downloadable record.
type File struct {
	FileID       string
	FileUniqueID string
	FileSize     int64
}

// PhotoSize is one size of a photo or thumbnail.
type PhotoSize struct {
	File
	Width  int
	Height int
}

// Animation is a GIF or silent H.264/MPEG-4 AVC video.
type Animation struct {
	File
	Width    int
	Height   int
	Duration int
	Thumb    *PhotoSize
	FileName string
	MimeType string
}

// Audio is a music file.
type Audio struct {
	File
	Duration  int
	Performer string
	Title     string
	MimeType  string
	Thumb     *PhotoSize
}

// Document is a general file.
type Document struct {
	File
	Thumb    *PhotoSize
	FileName string
	MimeType string
}

// Sticker is a sticker.
type Sticker struct {
	File
	Width      int
	Height     int
	IsAnimated bool
	Thumb      *PhotoSize
	Emoji      string
	SetName    string
}

// Video is a video file.
type Video struct {
	File
	Width    int
	Height   int
	Duration int
	Thumb    *PhotoSize
	MimeType string
}

// VideoNote is a round video message.
type VideoNote struct {
	File
	Length   int
	Duration int
	Thumb    *PhotoSize
}

// Voice is a voice note.
type Voice struct {
	File
	Duration int
	MimeType string
}

// Contact is a shared phone contact.
type Contact struct {
	PhoneNumber string
	FirstName   string
	LastName    string
	// UserID is the contact's Telegram user id, zero when unknown.
	UserID int64
	// VCard is additional contact data in vCard form.
	VCard string
}

// Location is a point on the map.
type Location struct {
	Longitude float64
	Latitude  float64
}

// Venue is a location with a name and address.
type Venue struct {
	Location       Location
	Title          string
	Address        string
	FoursquareID   string
	FoursquareType string
}

// decodeFile reads a file record, handling the shared fields and passing the
// rest to fn. file_id is required.
func decodeFile(d *jx.Decoder, name string, file *File, fn func(d *jx.Decoder, key string) error) error {
	var hasFileID bool
	err := decodeObject(d, name, func(d *jx.Decoder, key string) error {
		switch key {
		case "file_id":
			hasFileID = true
			return readString(d, key, &file.FileID)
		case "file_unique_id":
			return readString(d, key, &file.FileUniqueID)
		case "file_size":
			return readInt64(d, key, &file.FileSize)
		default:
			return fn(d, key)
		}
	})
	if err != nil {
		return err
	}
	if !hasFileID {
		return &MissingFieldError{Field: "file_id"}
	}

	return nil
}

// Decode reads one photo size.
func (p *PhotoSize) Decode(d *jx.Decoder) error {
	return decodeFile(d, "photo size", &p.File, func(d *jx.Decoder, key string) error {
		switch key {
		case "width":
			return readInt(d, key, &p.Width)
		case "height":
			return readInt(d, key, &p.Height)
		default:
			return d.Skip()
		}
	})
}

// Decode reads one animation.
func (a *Animation) Decode(d *jx.Decoder) error {
	return decodeFile(d, "animation", &a.File, func(d *jx.Decoder, key string) error {
		switch key {
		case "width":
			return readInt(d, key, &a.Width)
		case "height":
			return readInt(d, key, &a.Height)
		case "duration":
			return readInt(d, key, &a.Duration)
		case "thumb", "thumbnail":
			return readOptPhotoSize(d, &a.Thumb)
		case "file_name":
			return readString(d, key, &a.FileName)
		case "mime_type":
			return readString(d, key, &a.MimeType)
		default:
			return d.Skip()
		}
	})
}

// Decode reads one audio file.
func (a *Audio) Decode(d *jx.Decoder) error {
	return decodeFile(d, "audio", &a.File, func(d *jx.Decoder, key string) error {
		switch key {
		case "duration":
			return readInt(d, key, &a.Duration)
		case "performer":
			return readString(d, key, &a.Performer)
		case "title":
			return readString(d, key, &a.Title)
		case "mime_type":
			return readString(d, key, &a.MimeType)
		case "thumb", "thumbnail":
			return readOptPhotoSize(d, &a.Thumb)
		default:
			return d.Skip()
		}
	})
}

// Decode reads one document.
func (doc *Document) Decode(d *jx.Decoder) error {
	return decodeFile(d, "document", &doc.File, func(d *jx.Decoder, key string) error {
		switch key {
		case "thumb", "thumbnail":
			return readOptPhotoSize(d, &doc.Thumb)
		case "file_name":
			return readString(d, key, &doc.FileName)
		case "mime_type":
			return readString(d, key, &doc.MimeType)
		default:
			return d.Skip()
		}
	})
}

// Decode reads one sticker.
func (s *Sticker) Decode(d *jx.Decoder) error {
	return decodeFile(d, "sticker", &s.File, func(d *jx.Decoder, key string) error {
		switch key {
		case "width":
			return readInt(d, key, &s.Width)
		case "height":
			return readInt(d, key, &s.Height)
		case "is_animated":
			return readBool(d, key, &s.IsAnimated)
		case "thumb", "thumbnail":
			return readOptPhotoSize(d, &s.Thumb)
		case "emoji":
			return readString(d, key, &s.Emoji)
		case "set_name":
			return readString(d, key, &s.SetName)
		default:
			return d.Skip()
		}
	})
}

// Decode reads one video.
func (v *Video) Decode(d *jx.Decoder) error {
	return decodeFile(d, "video", &v.File, func(d *jx.Decoder, key string) error {
		switch key {
		case "width":
			return readInt(d, key, &v.Width)
		case "height":
			return readInt(d, key, &v.Height)
		case "duration":
			return readInt(d, key, &v.Duration)
		case "thumb", "thumbnail":
			return readOptPhotoSize(d, &v.Thumb)
		case "mime_type":
			return readString(d, key, &v.MimeType)
		default:
			return d.Skip()
		}
	})
}

// Decode reads one video note.
func (v *VideoNote) Decode(d *jx.Decoder) error {
	return decodeFile(d, "video note", &v.File, func(d *jx.Decoder, key string) error {
		switch key {
		case "length":
			return readInt(d, key, &v.Length)
		case "duration":
			return readInt(d, key, &v.Duration)
		case "thumb", "thumbnail":
			return readOptPhotoSize(d, &v.Thumb)
		default:
			return d.Skip()
		}
	})
}

// Decode reads one voice note.
func (v *Voice) Decode(d *jx.Decoder) error {
	return decodeFile(d, "voice", &v.File, func(d *jx.Decoder, key string) error {
		switch key {
		case "duration":
			return readInt(d, key, &v.Duration)
		case "mime_type":
			return readString(d, key, &v.MimeType)
		default:
			return d.Skip()
		}
	})
}

// Decode reads one contact. phone_number and first_name are required.
func (c *Contact) Decode(d *jx.Decoder) error {
	var hasPhone, hasFirstName bool
	err := decodeObject(d, "contact", func(d *jx.Decoder, key string) error {
		switch key {
		case "phone_number":
			hasPhone = true
			return readString(d, key, &c.PhoneNumber)
		case "first_name":
			hasFirstName = true
			return readString(d, key, &c.FirstName)
		case "last_name":
			return readString(d, key, &c.LastName)
		case "user_id":
			return readInt64(d, key, &c.UserID)
		case "vcard":
			return readString(d, key, &c.VCard)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return err
	}
	if !hasPhone {
		return &MissingFieldError{Field: "phone_number"}
	}
	if !hasFirstName {
		return &MissingFieldError{Field: "first_name"}
	}

	return nil
}

// Decode reads one location. Both coordinates are required.
func (l *Location) Decode(d *jx.Decoder) error {
	var hasLongitude, hasLatitude bool
	err := decodeObject(d, "location", func(d *jx.Decoder, key string) error {
		switch key {
		case "longitude":
			hasLongitude = true
			return readFloat64(d, key, &l.Longitude)
		case "latitude":
			hasLatitude = true
			return readFloat64(d, key, &l.Latitude)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return err
	}
	if !hasLongitude {
		return &MissingFieldError{Field: "longitude"}
	}
	if !hasLatitude {
		return &MissingFieldError{Field: "latitude"}
	}

	return nil
}

// Decode reads one venue. location, title and address are required.
func (v *Venue) Decode(d *jx.Decoder) error {
	var hasLocation, hasTitle, hasAddress bool
	err := decodeObject(d, "venue", func(d *jx.Decoder, key string) error {
		switch key {
		case "location":
			hasLocation = true
			return v.Location.Decode(d)
		case "title":
			hasTitle = true
			return readString(d, key, &v.Title)
		case "address":
			hasAddress = true
			return readString(d, key, &v.Address)
		case "foursquare_id":
			return readString(d, key, &v.FoursquareID)
		case "foursquare_type":
			return readString(d, key, &v.FoursquareType)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return err
	}

	switch {
	case !hasLocation:
		return &MissingFieldError{Field: "location"}
	case !hasTitle:
		return &MissingFieldError{Field: "title"}
	case !hasAddress:
		return &MissingFieldError{Field: "address"}
	}

	return nil
}

func readOptPhotoSize(d *jx.Decoder, dst **PhotoSize) error {
	if null, err := consumeNull(d); err != nil || null {
		return err
	}
	size := new(PhotoSize)
	if err := size.Decode(d); err != nil {
		return err
	}
	*dst = size

	return nil
}

func decodePhotoSizes(d *jx.Decoder) ([]PhotoSize, error) {
	sizes := make([]PhotoSize, 0)
	if err := d.Arr(func(d *jx.Decoder) error {
		var size PhotoSize
		if err := size.Decode(d); err != nil {
			return err
		}
		sizes = append(sizes, size)
		return nil
	}); err != nil {
		return nil, err
	}

	return sizes, nil
}

func decodeUsers(d *jx.Decoder) ([]User, error) {
	users := make([]User, 0)
	if err := d.Arr(func(d *jx.Decoder) error {
		var user User
		if err := user.Decode(d); err != nil {
			return err
		}
		users = append(users, user)
		return nil
	}); err != nil {
		return nil, err
	}

	return users, nil
}
