package tgbot

import (
	"bytes"
	"fmt"

	"github.com/go-faster/jx"
)

// Small readers shared by the record decoders. Each one consumes exactly one
// JSON value and names the field in its error.

func readString(d *jx.Decoder, field string, dst *string) error {
	value, err := d.Str()
	if err != nil {
		return fmt.Errorf("read %s: %w", field, err)
	}
	*dst = value

	return nil
}

func readInt64(d *jx.Decoder, field string, dst *int64) error {
	value, err := d.Int64()
	if err != nil {
		return fmt.Errorf("read %s: %w", field, err)
	}
	*dst = value

	return nil
}

func readInt(d *jx.Decoder, field string, dst *int) error {
	value, err := d.Int()
	if err != nil {
		return fmt.Errorf("read %s: %w", field, err)
	}
	*dst = value

	return nil
}

func readBool(d *jx.Decoder, field string, dst *bool) error {
	value, err := d.Bool()
	if err != nil {
		return fmt.Errorf("read %s: %w", field, err)
	}
	*dst = value

	return nil
}

func readFloat64(d *jx.Decoder, field string, dst *float64) error {
	value, err := d.Float64()
	if err != nil {
		return fmt.Errorf("read %s: %w", field, err)
	}
	*dst = value

	return nil
}

// readOptString stores a present, non-null string and leaves dst nil otherwise.
func readOptString(d *jx.Decoder, field string, dst **string) error {
	if null, err := consumeNull(d); err != nil || null {
		return err
	}
	var value string
	if err := readString(d, field, &value); err != nil {
		return err
	}
	*dst = &value

	return nil
}

// readOptInt64 stores a present, non-null integer and leaves dst nil otherwise.
func readOptInt64(d *jx.Decoder, field string, dst **int64) error {
	if null, err := consumeNull(d); err != nil || null {
		return err
	}
	var value int64
	if err := readInt64(d, field, &value); err != nil {
		return err
	}
	*dst = &value

	return nil
}

// readRaw copies one nested value without interpreting it. Null yields nil.
func readRaw(d *jx.Decoder, field string) (jx.Raw, error) {
	if null, err := consumeNull(d); err != nil || null {
		return nil, err
	}
	raw, err := d.Raw()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}

	return append(jx.Raw(nil), raw...), nil
}

// consumeNull reads a JSON null if one is next. Telegram omits absent fields,
// but null is accepted as absence.
func consumeNull(d *jx.Decoder) (bool, error) {
	if d.Next() != jx.Null {
		return false, nil
	}
	if err := d.Null(); err != nil {
		return false, err
	}

	return true, nil
}

// decodeObject runs fn for every key of one JSON object.
func decodeObject(d *jx.Decoder, name string, fn func(d *jx.Decoder, key string) error) error {
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		return fn(d, string(key))
	}); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}

	return nil
}

const jsonSpace = " \t\r\n"

// singleValue returns the one JSON value data holds. Anything other than
// whitespace after it is ErrTrailingData.
func singleValue(data []byte) (jx.Raw, error) {
	rest := bytes.TrimLeft(data, jsonSpace)
	raw, err := jx.DecodeBytes(rest).Raw()
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimLeft(rest[len(raw):], jsonSpace)) != 0 {
		return nil, ErrTrailingData
	}

	return raw, nil
}
