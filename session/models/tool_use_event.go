package models

// ToolUseEvent records one tool invocation.
type ToolUseEvent struct {
	BaseEvent
	Name string
}
