package telegram

// DriverType is the configured driver type token for the Telegram Bot API input runtime.
const DriverType = "telegram"

// Format identifies how raw updates are framed in an input stream.
type Format string

const (
	// FormatLines is one JSON object per line.
	FormatLines Format = "lines"
	// FormatUpdates is one getUpdates response object with a "result" array.
	FormatUpdates Format = "updates"
)

// Payload identifies what each raw object in the input holds.
type Payload string

const (
	// PayloadUpdate is a full update envelope with update_id.
	PayloadUpdate Payload = "update"
	// PayloadMessage is a bare message object.
	PayloadMessage Payload = "message"
)

// RawUpdate is one undecoded input object with its position in the stream.
type RawUpdate struct {
	// Sequence is the zero-based position in the input stream.
	Sequence int
	// Data is the raw JSON object.
	Data []byte
}
