package tgbot

import (
	"errors"
	"testing"
)

func TestUTF16TextExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		offset    int
		length    int
		want      string
		wantField BoundsField
		wantText  string
	}{
		{name: "ascii prefix", text: "bold text", offset: 0, length: 4, want: "bold"},
		{name: "ascii tail", text: "bold text", offset: 5, length: 4, want: "text"},
		{name: "empty span at end", text: "abc", offset: 3, length: 0, want: ""},
		{name: "empty text", text: "", offset: 0, length: 0, want: ""},
		{name: "surrogate pair counts two units", text: "😀 hi", offset: 0, length: 2, want: "😀"},
		{name: "offset after surrogate pair", text: "😀 hi", offset: 3, length: 2, want: "hi"},
		{name: "bmp multibyte is one unit", text: "привет", offset: 1, length: 2, want: "ри"},
		{name: "lone high surrogate", text: "😀", offset: 0, length: 1, want: "�"},
		{
			name:      "negative offset",
			text:      "abc",
			offset:    -1,
			length:    1,
			wantField: BoundsFieldOffset,
			wantText:  `Offset "-1" is out of text bounds`,
		},
		{
			name:      "offset past end",
			text:      "😀 hi",
			offset:    6,
			length:    0,
			wantField: BoundsFieldOffset,
			wantText:  `Offset "6" is out of text bounds`,
		},
		{
			name:      "length past end",
			text:      "😀 hi",
			offset:    1,
			length:    5,
			wantField: BoundsFieldLength,
			wantText:  `Length "5" is out of text bounds`,
		},
		{
			name:      "negative length",
			text:      "abc",
			offset:    0,
			length:    -2,
			wantField: BoundsFieldLength,
			wantText:  `Length "-2" is out of text bounds`,
		},
		{
			name:      "length overflow",
			text:      "abc",
			offset:    1,
			length:    int(^uint(0) >> 1),
			wantField: BoundsFieldLength,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractTextEntityData(testCase.text, testCase.offset, testCase.length)
			if testCase.wantField != "" {
				var boundsErr *OutOfBoundsError
				if !errors.As(err, &boundsErr) {
					t.Fatalf("error = %v, want OutOfBoundsError", err)
				}
				if boundsErr.Field != testCase.wantField {
					t.Fatalf("field = %q, want %q", boundsErr.Field, testCase.wantField)
				}
				if !errors.Is(err, ErrOutOfBounds) {
					t.Fatalf("errors.Is(%v, ErrOutOfBounds) = false, want true", err)
				}
				if testCase.wantText != "" && err.Error() != testCase.wantText {
					t.Fatalf("error text = %q, want %q", err.Error(), testCase.wantText)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractTextEntityData failed: %v", err)
			}
			if got.Data != testCase.want {
				t.Fatalf("data = %q, want %q", got.Data, testCase.want)
			}
			if got.Offset != testCase.offset || got.Length != testCase.length {
				t.Fatalf("span = (%d,%d), want (%d,%d)", got.Offset, got.Length, testCase.offset, testCase.length)
			}
		})
	}
}

func TestNewUTF16TextLen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want int
	}{
		{text: "", want: 0},
		{text: "abc", want: 3},
		{text: "😀", want: 2},
		{text: "a😀b𝄞", want: 6},
		{text: "日本", want: 2},
	}

	for _, testCase := range tests {
		if got := NewUTF16Text(testCase.text).Len(); got != testCase.want {
			t.Fatalf("NewUTF16Text(%q).Len() = %d, want %d", testCase.text, got, testCase.want)
		}
	}
}
