package tgbot

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingField indicates that a required field is absent from a raw record.
	ErrMissingField = errors.New("tgbot: missing field")
	// ErrOutOfBounds indicates that an entity span does not fit into its text.
	ErrOutOfBounds = errors.New("tgbot: out of text bounds")
	// ErrInvalidCombination indicates mutually exclusive raw fields that cannot be resolved.
	ErrInvalidCombination = errors.New("tgbot: invalid field combination")
	// ErrUnrecognizedVariant indicates an unknown discriminant value.
	ErrUnrecognizedVariant = errors.New("tgbot: unrecognized variant")
	// ErrNestingTooDeep indicates that embedded messages exceed the decoder depth budget.
	ErrNestingTooDeep = errors.New("tgbot: message nesting too deep")
	// ErrTrailingData indicates input left over after the decoded JSON value.
	ErrTrailingData = errors.New("tgbot: unexpected trailing data")
)

// MissingFieldError reports one absent required field.
type MissingFieldError struct {
	// Field is the raw field name.
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%q field is missing", e.Field)
}

// Is reports ErrMissingField equivalence.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// BoundsField names the entity value that failed a bounds check.
type BoundsField string

const (
	// BoundsFieldOffset identifies the entity offset.
	BoundsFieldOffset BoundsField = "offset"
	// BoundsFieldLength identifies the entity length.
	BoundsFieldLength BoundsField = "length"
)

// OutOfBoundsError reports an entity offset or length outside the text.
type OutOfBoundsError struct {
	// Field names the offending value.
	Field BoundsField
	// Value is the offending value as received.
	Value int
	// TextLength is the text length in UTF-16 code units.
	TextLength int
}

func (e *OutOfBoundsError) Error() string {
	label := string(e.Field)
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}

	return fmt.Sprintf("%s \"%d\" is out of text bounds", label, e.Value)
}

// Is reports ErrOutOfBounds equivalence.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// InvalidCombinationError reports a raw field set that maps to no variant.
type InvalidCombinationError struct {
	// Description is the diagnostic text.
	Description string
}

func (e *InvalidCombinationError) Error() string {
	return e.Description
}

// Is reports ErrInvalidCombination equivalence.
func (e *InvalidCombinationError) Is(target error) bool {
	return target == ErrInvalidCombination
}

// UnrecognizedVariantError reports an unknown discriminant.
type UnrecognizedVariantError struct {
	// Field names what was being discriminated, for example "chat type".
	Field string
	// Value is the unknown discriminant, empty when no discriminant was found.
	Value string
}

func (e *UnrecognizedVariantError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("unrecognized %s", e.Field)
	}

	return fmt.Sprintf("unrecognized %s %q", e.Field, e.Value)
}

// Is reports ErrUnrecognizedVariant equivalence.
func (e *UnrecognizedVariantError) Is(target error) bool {
	return target == ErrUnrecognizedVariant
}

// CompanionFieldError reports an entity missing a field its type requires.
//
// It is a MissingField-class error: errors.Is(err, ErrMissingField) holds.
type CompanionFieldError struct {
	// EntityType is the entity type tag that requires the field.
	EntityType TextEntityType
	// Field is the raw companion field name ("url" or "user").
	Field string
}

func (e *CompanionFieldError) Error() string {
	return fmt.Sprintf("%s is required for %s entity", companionLabel(e.Field), e.EntityType)
}

// Is reports ErrMissingField equivalence.
func (e *CompanionFieldError) Is(target error) bool {
	return target == ErrMissingField
}

func companionLabel(field string) string {
	switch field {
	case "url":
		return "URL"
	case "":
		return ""
	default:
		return strings.ToUpper(field[:1]) + field[1:]
	}
}

// EntityErrorKind classifies text entity decode failures.
type EntityErrorKind string

const (
	// EntityErrorFailedToParseText is the only failure class of the entity decoder.
	EntityErrorFailedToParseText EntityErrorKind = "failed_to_parse_text"
)

// EntityDecodeError wraps a failure decoding one raw text entity.
type EntityDecodeError struct {
	// Kind classifies the failure.
	Kind EntityErrorKind
	// Index is the position of the failing entity in the raw list.
	Index int
	// Cause is the underlying extractor or companion field error.
	Cause error
}

func (e *EntityDecodeError) Error() string {
	return "Failed to parse text: " + e.Cause.Error()
}

func (e *EntityDecodeError) Unwrap() error {
	return e.Cause
}
