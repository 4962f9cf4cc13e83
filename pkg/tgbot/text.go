package tgbot

import "unicode/utf16"

// TextEntityData is the text span covered by one entity.
//
// Offset and Length are measured in UTF-16 code units of the full text, the
// unit Telegram uses for all entity positions.
type TextEntityData struct {
	// Data is the covered substring.
	Data string
	// Offset is the span start in UTF-16 code units.
	Offset int
	// Length is the span length in UTF-16 code units.
	Length int
}

// UTF16Text is message text converted once into UTF-16 code units so that
// every entity of the message slices the same buffer.
type UTF16Text []uint16

// NewUTF16Text encodes text into UTF-16 code units. Runes outside the Basic
// Multilingual Plane take two units; invalid UTF-8 bytes become U+FFFD.
func NewUTF16Text(text string) UTF16Text {
	return utf16.Encode([]rune(text))
}

// Len returns the length in UTF-16 code units.
func (t UTF16Text) Len() int {
	return len(t)
}

// Slice returns units [offset, offset+length) as a UTF-8 string. Bounds must
// already be validated. A span that cuts a surrogate pair decodes the lone
// half as U+FFFD, so the result is always valid UTF-8.
func (t UTF16Text) Slice(offset, length int) string {
	return string(utf16.Decode(t[offset : offset+length]))
}

// Extract validates one offset/length pair against the text and returns the
// covered span.
func (t UTF16Text) Extract(offset, length int) (TextEntityData, error) {
	textLength := t.Len()
	if offset < 0 || offset > textLength {
		return TextEntityData{}, &OutOfBoundsError{
			Field:      BoundsFieldOffset,
			Value:      offset,
			TextLength: textLength,
		}
	}
	if length < 0 || length > textLength-offset {
		return TextEntityData{}, &OutOfBoundsError{
			Field:      BoundsFieldLength,
			Value:      length,
			TextLength: textLength,
		}
	}

	return TextEntityData{
		Data:   t.Slice(offset, length),
		Offset: offset,
		Length: length,
	}, nil
}

// ExtractTextEntityData validates offset and length against text and returns
// the covered substring with the original span values.
func ExtractTextEntityData(text string, offset, length int) (TextEntityData, error) {
	return NewUTF16Text(text).Extract(offset, length)
}
