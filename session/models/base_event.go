package models

// Record kinds understood by the parser. Anything else decodes to
// UnknownEvent.
const (
	KindSession     = "session"
	KindModelChange = "model_change"
	KindMessage     = "message"
	KindToolUse     = "tool_use"
)

// BaseEvent contains fields common to all record kinds.
type BaseEvent struct {
	Type      string
	Timestamp string
}

// GetType returns the record type.
func (e BaseEvent) GetType() string { return e.Type }

// GetTimestamp returns the raw timestamp, empty when absent.
func (e BaseEvent) GetTimestamp() string { return e.Timestamp }
