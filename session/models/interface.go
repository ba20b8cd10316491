package models

// Event is implemented by every decoded event-log record.
type Event interface {
	GetType() string
	GetTimestamp() string
}

// Ensure all types implement Event
var (
	_ Event = (*SessionEvent)(nil)
	_ Event = (*ModelChangeEvent)(nil)
	_ Event = (*MessageEvent)(nil)
	_ Event = (*ToolUseEvent)(nil)
	_ Event = (*UnknownEvent)(nil)
)
